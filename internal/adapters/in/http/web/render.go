package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

const layoutFile = "layout.gohtml"

// Renderer executes embedded page templates, each wrapped in the shared
// layout. It implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template under templates/.
func NewRenderer() (*Renderer, error) {
	return newRenderer(templateFS, "templates")
}

func newRenderer(fsys fs.FS, dir string) (*Renderer, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == layoutFile || path.Ext(name) != ".gohtml" {
			continue
		}
		tmpl, err := template.New(layoutFile).ParseFS(fsys, path.Join(dir, layoutFile), path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	// Render into a buffer so a failing template never writes a partial page.
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, layoutFile, data); err != nil {
		return fmt.Errorf("failed to execute %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
