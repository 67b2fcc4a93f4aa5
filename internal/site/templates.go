package site

import (
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates
var templateFS embed.FS

var (
	gameJSTemplate = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/game.js.tmpl"))

	indexTemplates = map[Flavor]*htmltemplate.Template{
		Release: htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/release/index.html.tmpl")),
		Compat:  htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/compat/index.html.tmpl")),
	}
)
