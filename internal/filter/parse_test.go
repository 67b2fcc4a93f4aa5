package filter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	filterFile := filepath.Join(dir, "filter.rules")

	content := `# This is a comment
+ *.lua
- *.psd

- build/
noprefix.txt
`
	require.NoError(t, os.WriteFile(filterFile, []byte(content), 0644))

	c := NewChain()
	require.NoError(t, c.LoadFile(filterFile))

	rules := c.Rules()
	require.Len(t, rules, 4)
	assert.True(t, rules[0].Include)
	assert.False(t, rules[1].Include)
	assert.False(t, rules[2].Include)
	assert.False(t, rules[3].Include)

	assert.True(t, c.Match("main.lua", false, 100))
	assert.False(t, c.Match("art.psd", false, 100))
	assert.False(t, c.Match("build", true, 0))
	assert.False(t, c.Match("noprefix.txt", false, 100))
}

func TestLoadFileEmpty(t *testing.T) {
	dir := t.TempDir()
	filterFile := filepath.Join(dir, "empty.rules")
	require.NoError(t, os.WriteFile(filterFile, []byte("# only comments\n\n"), 0644))

	c := NewChain()
	require.NoError(t, c.LoadFile(filterFile))
	assert.Empty(t, c.Rules())
}

func TestLoadFileNotExists(t *testing.T) {
	c := NewChain()
	err := c.LoadFile("/nonexistent/path")
	assert.Error(t, err)
}

func TestLoadReportsLine(t *testing.T) {
	c := NewChain()
	err := c.Load(strings.NewReader("- *.tmp\n- *.{a,b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadIgnoreFile(t *testing.T) {
	root := t.TempDir()

	c := NewChain()
	loaded, err := c.LoadIgnoreFile(root)
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.True(t, c.Empty())

	require.NoError(t, os.WriteFile(filepath.Join(root, IgnoreFileName), []byte("*.psd\n.git/\n"), 0644))

	loaded, err = c.LoadIgnoreFile(root)
	require.NoError(t, err)
	assert.True(t, loaded)

	assert.False(t, c.Match(IgnoreFileName, false, 10))
	assert.False(t, c.Match("art/hero.psd", false, 10))
	assert.False(t, c.Match(".git", true, 0))
	assert.True(t, c.Match("main.lua", false, 10))
}
