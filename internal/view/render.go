package view

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ErrUnknownSection is returned when rendering a section that does not exist.
var ErrUnknownSection = errors.New("unknown section")

// Renderer executes the page templates.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"deref":       deref,
		"upper":       upper,
		"join":        strings.Join,
		"statusLabel": statusLabel,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Page renders the full HTML document.
func (r *Renderer) Page(w io.Writer, s Snapshot) error {
	return r.execute(w, "layout.html", s)
}

// App renders the application body: header, navigation, the active section,
// modals and notices.
func (r *Renderer) App(w io.Writer, s Snapshot) error {
	return r.execute(w, "app", s)
}

// Section renders the content of one section on its own.
func (r *Renderer) Section(w io.Writer, name string, s Snapshot) error {
	if !HasSection(name) {
		return fmt.Errorf("%q: %w", name, ErrUnknownSection)
	}
	return r.execute(w, "section-"+name, s)
}

func (r *Renderer) execute(w io.Writer, name string, s Snapshot) error {
	if err := r.templates.ExecuteTemplate(w, name, s); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// upper accepts any string kind, such as model.Priority.
func upper(v any) string { return strings.ToUpper(fmt.Sprint(v)) }

// statusLabel renders "in-progress" as "IN PROGRESS".
func statusLabel(v any) string {
	return strings.ToUpper(strings.Replace(fmt.Sprint(v), "-", " ", 1))
}
