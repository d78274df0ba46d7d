package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed theme/*.tmpl
var themeFS embed.FS

const (
	layoutTemplate = "layout.tmpl"
	entryTemplate  = "entry.tmpl"
	indexTemplate  = "index.tmpl"
)

var requiredTemplates = []string{layoutTemplate, entryTemplate, indexTemplate}

// DefaultTemplates is the theme compiled into the binary.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(themeFS, "theme")
	if err != nil {
		panic(err)
	}
	return sub
}

// TemplateRenderer renders pages into the shared layout. Each page template
// fills the layout's "content" block.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

func NewTemplateRenderer(fsys fs.FS) (*TemplateRenderer, error) {
	if err := CheckThemeTemplates(fsys); err != nil {
		return nil, err
	}
	layout, err := template.New(layoutTemplate).ParseFS(fsys, layoutTemplate)
	if err != nil {
		return nil, err
	}
	r := &TemplateRenderer{pages: make(map[string]*template.Template, 2)}
	for _, name := range []string{entryTemplate, indexTemplate} {
		t, err := template.Must(layout.Clone()).ParseFS(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *TemplateRenderer) RenderEntry(ctx context.Context, page EntryPage) ([]byte, error) {
	return r.exec(entryTemplate, page)
}

func (r *TemplateRenderer) RenderIndex(ctx context.Context, page IndexPage) ([]byte, error) {
	return r.exec(indexTemplate, page)
}

func (r *TemplateRenderer) exec(name string, data interface{}) ([]byte, error) {
	t := r.pages[name]
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func CheckThemeTemplates(fsys fs.FS) error {
	for _, name := range requiredTemplates {
		if _, err := fs.Stat(fsys, name); err != nil {
			return fmt.Errorf("missing template: %s", name)
		}
	}
	return nil
}
