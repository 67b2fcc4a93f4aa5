package site

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/lovepack/internal/engine"
)

const testUUID = "7d444840-9dc0-11d1-b245-5ffdce74fad2"

func directoryResult() engine.Result {
	var l engine.Layout
	l.Add("/main.lua", 24)
	l.Add("/assets/sfx/jump.ogg", 9)
	return engine.Result{
		Mode:     engine.ModeDirectory,
		Manifest: engine.BuildManifest(uuid.MustParse(testUUID), l),
		DirectoryOps: []engine.DirectoryOp{
			{Parent: "/", Name: "assets"},
			{Parent: "/assets", Name: "sfx"},
		},
		Blob: make([]byte, 33),
	}
}

func archiveResult() engine.Result {
	var l engine.Layout
	l.Add(engine.ArchiveVirtualPath, 5)
	return engine.Result{
		Mode:         engine.ModeArchive,
		Manifest:     engine.BuildManifest(uuid.MustParse(testUUID), l),
		DirectoryOps: []engine.DirectoryOp{},
		Blob:         []byte("PK..."),
	}
}

func TestRenderGameJS(t *testing.T) {
	s, err := Render(Options{Title: "Jumper"}, directoryResult())
	require.NoError(t, err)

	js := string(s.GameJS)
	assert.Contains(t, js,
		"Module['FS_createPath']('/', 'assets', true, true);\n      Module['FS_createPath']('/assets', 'sfx', true, true);")
	assert.Contains(t, js, `loadPackage({"package_uuid":"`+testUUID+`","remote_package_size":33,"files":[`)
	assert.Contains(t, js, `{"filename":"/assets/sfx/jump.ogg","crunched":0,"start":24,"end":33,"audio":true}`)
	assert.NotContains(t, js, "{{")
}

func TestRenderIndexHTML(t *testing.T) {
	s, err := Render(Options{Title: "Tom & Jerry <3", Memory: 33554432}, directoryResult())
	require.NoError(t, err)

	html := string(s.IndexHTML)
	assert.Contains(t, html, "<title>Tom &amp; Jerry &lt;3</title>")
	assert.Contains(t, html, `arguments: ["./"],`)
	assert.Contains(t, html, "33554432")
	assert.Contains(t, html, `src="love.js"`)
	assert.Equal(t, Release, s.Options.Flavor, "flavor defaults to release")
	assert.Contains(t, html, "Cross-Origin-Opener-Policy")
}

func TestRenderArchiveArguments(t *testing.T) {
	s, err := Render(Options{Title: "g", Flavor: Compat}, archiveResult())
	require.NoError(t, err)

	assert.Contains(t, string(s.IndexHTML), `arguments: ["./game.love"],`)
	assert.NotContains(t, string(s.IndexHTML), "Cross-Origin-Opener-Policy")
	assert.NotContains(t, string(s.GameJS), "FS_createPath'](")
}

func TestRenderDefaultMemory(t *testing.T) {
	s, err := Render(Options{Title: "g"}, directoryResult())
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultMemoryBudget, s.Options.Memory)
	assert.Contains(t, string(s.IndexHTML), "16777216")
}

func TestRenderRejectsFailedResult(t *testing.T) {
	_, err := Render(Options{}, engine.Result{Err: &engine.BudgetExceededError{Budget: 1, TotalSize: 2}})
	var be *engine.BudgetExceededError
	assert.ErrorAs(t, err, &be)
}

func TestRenderUnknownFlavor(t *testing.T) {
	_, err := Render(Options{Flavor: "nightly"}, directoryResult())
	assert.ErrorContains(t, err, "nightly")
}

func TestCreatePathCalls(t *testing.T) {
	assert.Empty(t, CreatePathCalls(nil))

	got := CreatePathCalls([]engine.DirectoryOp{{Parent: "/", Name: "it's"}})
	assert.Equal(t, `Module['FS_createPath']('/', 'it\'s', true, true);`, got)

	lines := strings.Split(CreatePathCalls(directoryResult().DirectoryOps), "\n")
	assert.Len(t, lines, 2)
}

func TestJSString(t *testing.T) {
	assert.Equal(t, `'plain'`, jsString("plain"))
	assert.Equal(t, `'a\\b'`, jsString(`a\b`))
	assert.Equal(t, `'line\nbreak'`, jsString("line\nbreak"))
	assert.Equal(t, `'x\u2028y'`, jsString("x\u2028y"))
}

func TestRuntimeFiles(t *testing.T) {
	assert.Contains(t, RuntimeFiles(Release), "love.worker.js")
	assert.NotContains(t, RuntimeFiles(Compat), "love.worker.js")
	for _, f := range []Flavor{Release, Compat} {
		files := RuntimeFiles(f)
		assert.Subset(t, files, []string{"love.js", "love.wasm", "consolewrapper.js", "theme"})
	}
}
