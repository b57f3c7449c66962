package rendering

import (
	"embed"
	"strings"
	"text/template"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer produces resume HTML. It holds only parsed templates, so one
// Renderer may be shared between goroutines.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"pageSize": cssPageSize,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse templates",
			Cause:   err,
		}
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNewRenderer is like NewRenderer but panics on a template error
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Render returns the resume fragment for doc: a single
// <div class="resume-container template-X page-Y"> element.
func (r *Renderer) Render(doc *types.Document) (string, error) {
	return r.execute("resume", doc)
}

// RenderPage returns a standalone HTML page for doc, sized for printing
func (r *Renderer) RenderPage(doc *types.Document) (string, error) {
	return r.execute("page", doc)
}

func (r *Renderer) execute(name string, doc *types.Document) (string, error) {
	if r == nil || r.tmpl == nil {
		return "", &RenderError{Message: "renderer not initialized"}
	}

	view := BuildView(doc)

	var result strings.Builder
	if err := r.tmpl.ExecuteTemplate(&result, name, view); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template " + name,
			Cause:   err,
		}
	}
	return result.String(), nil
}

// cssPageSize maps a page size to its CSS @page keyword
func cssPageSize(size string) string {
	if size == string(types.PageSizeLetter) {
		return "letter"
	}
	return "A4"
}
