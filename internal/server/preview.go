package server

import (
	"net/http"
	"strings"
	"sync"

	"github.com/desertthunder/damx/internal/models"
	"github.com/desertthunder/damx/internal/preview"
	"github.com/desertthunder/damx/internal/web"
)

// PreviewHandler serves the library index and per-item preview pages.
// Implements the Handler interface for registration with a Router.
type PreviewHandler struct {
	resolver preview.Resolver

	mu    sync.RWMutex
	items []models.MediaItem
	byID  map[models.ItemID]models.MediaItem
}

// NewPreviewHandler creates a handler over a catalog snapshot.
func NewPreviewHandler(items []models.MediaItem, resolver preview.Resolver) *PreviewHandler {
	h := &PreviewHandler{resolver: resolver}
	h.SetItems(items)
	return h
}

// SetItems replaces the catalog snapshot the handler serves.
func (h *PreviewHandler) SetItems(items []models.MediaItem) {
	byID := make(map[models.ItemID]models.MediaItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	h.mu.Lock()
	h.items = items
	h.byID = byID
	h.mu.Unlock()
}

// Routes returns the HTTP routes this handler serves.
func (h *PreviewHandler) Routes() []string {
	return []string{"/", "/preview/", "/healthz"}
}

// ServeHTTP dispatches to the index, preview, or health endpoint.
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch {
	case r.URL.Path == "/healthz":
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	case r.URL.Path == "/":
		h.serveIndex(w)
	case strings.HasPrefix(r.URL.Path, "/preview/"):
		h.servePreview(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *PreviewHandler) serveIndex(w http.ResponseWriter) {
	h.mu.RLock()
	items := h.items
	h.mu.RUnlock()

	entries := make([]web.IndexEntry, 0, len(items))
	for _, item := range items {
		strategy, _ := preview.Resolve(item)
		entries = append(entries, web.IndexEntry{
			ID:       string(item.ID),
			Title:    item.Title,
			Badge:    item.Badge(),
			Strategy: strategy.String(),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.RenderIndex(w, web.IndexData{Title: "Media Library", Entries: entries}); err != nil {
		http.Error(w, "Failed to render index", http.StatusInternalServerError)
	}
}

func (h *PreviewHandler) servePreview(w http.ResponseWriter, r *http.Request) {
	id := models.ItemID(strings.TrimPrefix(r.URL.Path, "/preview/"))

	h.mu.RLock()
	item, ok := h.byID[id]
	h.mu.RUnlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	strategy, label := preview.Resolve(item)
	data := web.PreviewData{
		Title:       item.Title,
		Badge:       item.Badge(),
		Description: item.Description,
		Strategy:    strategy.String(),
		Label:       label,
		Source:      h.resolver.Source(item),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.RenderPreview(w, data); err != nil {
		http.Error(w, "Failed to render preview", http.StatusInternalServerError)
	}
}
