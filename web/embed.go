// Package web embeds the page template and static assets and renders the
// ask-a-question page from a server-supplied render context.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"assignhelper/internal/domain"
)

//go:embed templates static
var assetsFS embed.FS

// PageData is the render context the index template consumes.
type PageData struct {
	RecentQuestions []*domain.HistoryEntry
	MostFrequent    []*domain.FrequencyEntry
}

// Renderer renders the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Index renders the main page. Rendering is total over any well-formed
// PageData: empty sequences produce their empty-state message, never an
// empty list.
func (r *Renderer) Index(w io.Writer, data PageData) error {
	if err := r.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	return nil
}

// StaticHandler serves the embedded static assets under /static/.
func StaticHandler() http.Handler {
	subFS, err := fs.Sub(assetsFS, "static")
	if err != nil {
		panic("web: failed to create sub filesystem: " + err.Error())
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(subFS)))
}
