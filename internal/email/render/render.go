package render

import (
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

// Renderer renders named HTML email templates. All templates are parsed
// once at construction; a Renderer is safe for concurrent use and is
// meant to live for the whole process (constructed in main, injected).
type Renderer struct {
	tmpl *template.Template
}

// New parses every *.html template in the given file system.
func New(fsys fs.FS) (*Renderer, error) {
	tmpl, err := template.ParseFS(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template identified by name with the given data.
// Name is the template file name without the .html extension.
func (r *Renderer) Render(name string, data any) (string, error) {
	t := r.tmpl.Lookup(name + ".html")
	if t == nil {
		return "", fmt.Errorf("template %q not found", name)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return sb.String(), nil
}
