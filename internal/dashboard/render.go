package dashboard

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var pageTpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// Render writes the page as HTML.
func Render(w io.Writer, p Page) error {
	return pageTpl.ExecuteTemplate(w, "dashboard.html", p)
}
