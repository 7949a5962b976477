// Package web holds the embedded HTML templates for the portal page.
package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/minicloud/portal/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexTemplate is the name of the dashboard page template.
const IndexTemplate = "index.html"

// PageData is the view model for IndexTemplate.
type PageData struct {
	Title       string
	Cards       []model.Card
	Degraded    bool
	Source      string
	GeneratedAt time.Time
}

// Templates parses the embedded templates with the sprig function map.
func Templates() (*template.Template, error) {
	return template.New("").
		Funcs(sprig.HtmlFuncMap()).
		ParseFS(templateFS, "templates/*.html")
}

// MustTemplates is Templates for package init and main; it panics on a
// parse error, which can only come from a broken embedded file.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
