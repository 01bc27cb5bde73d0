// Package web holds the server-rendered HTML for the local preview server.
//
// Each media item renders through the preview template, which switches on
// the resolved strategy: video and audio elements with metadata preload,
// an image element, an embedded document viewer, a model-viewer custom
// element for 3D assets, and static placeholders for icon-only and
// unsupported types. The byte sources are the resolved URLs from the
// preview package, so absolute and CDN-relative items render the same way.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// PreviewData is the template context for a single item's preview page.
type PreviewData struct {
	Title       string
	Badge       string
	Description string
	Strategy    string // preview.Strategy string form
	Label       string // icon family for placeholder strategies
	Source      string // resolved byte-source URL
}

// IndexEntry is one row of the library index page.
type IndexEntry struct {
	ID       string
	Title    string
	Badge    string
	Strategy string
}

// IndexData is the template context for the library index page.
type IndexData struct {
	Title   string
	Entries []IndexEntry
}

// RenderPreview writes the preview page for one item.
func RenderPreview(w io.Writer, data PreviewData) error {
	if err := templates.ExecuteTemplate(w, "preview.html", data); err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	return nil
}

// RenderIndex writes the library index page.
func RenderIndex(w io.Writer, data IndexData) error {
	if err := templates.ExecuteTemplate(w, "index.html", data); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	return nil
}
