// package tasks implements the side-effectful library operations: catalog
// refresh, downloads, and uploads.
//
// The core abstraction is LibraryEngine, which orchestrates calls against
// the backend and records the outcomes in the preference store. Operations
// emit progress updates via channels for non-blocking status reporting to
// CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/desertthunder/damx/internal/models"
	"github.com/desertthunder/damx/internal/prefs"
	"github.com/desertthunder/damx/internal/preview"
	"github.com/desertthunder/damx/internal/services"
	"github.com/desertthunder/damx/internal/shared"
)

// Preferences is the subset of the preference store the engine mutates.
type Preferences interface {
	RecordDownload(id models.ItemID) error
}

// Engine defines the library operations exposed to the CLI and TUI layers.
type Engine interface {
	// Refresh fetches the full media catalog from the backend.
	Refresh(ctx context.Context) (*Catalog, error)

	// Download fetches one item's bytes and saves them under dir.
	Download(ctx context.Context, item models.MediaItem, dir string) (*DownloadResult, error)

	// BulkDownload fetches many items concurrently with rate limiting.
	BulkDownload(ctx context.Context, items []models.MediaItem, opts BulkDownloadOpts, progress chan<- ProgressUpdate) (*BulkDownloadResult, error)

	// Upload submits a local file with its category tag and refreshes the
	// catalog once the backend has settled.
	Upload(ctx context.Context, path, typeTag string) (*Catalog, error)
}

// Catalog is one refreshed snapshot of the media collection.
//
// Generation is a monotonically increasing fetch counter: when responses
// resolve out of order, a snapshot older than the last applied one must be
// discarded instead of overwriting newer data.
type Catalog struct {
	Items      []models.MediaItem
	Generation uint64
}

// LibraryEngine implements Engine against a services.Service backend.
type LibraryEngine struct {
	service  services.Service
	store    Preferences
	resolver preview.Resolver

	fetchGen   atomic.Uint64 // generation handed to the next Refresh
	appliedGen atomic.Uint64 // newest generation accepted via Apply
}

// NewLibraryEngine creates a LibraryEngine with the provided dependencies.
func NewLibraryEngine(service services.Service, store Preferences, resolver preview.Resolver) *LibraryEngine {
	return &LibraryEngine{
		service:  service,
		store:    store,
		resolver: resolver,
	}
}

// Resolver exposes the engine's URL resolver for layers that render previews.
func (e *LibraryEngine) Resolver() preview.Resolver {
	return e.resolver
}

// Refresh fetches the full media catalog. The returned snapshot carries the
// generation assigned when the fetch started; callers apply it with
// [LibraryEngine.Apply] so that stale responses lose to newer ones.
func (e *LibraryEngine) Refresh(ctx context.Context) (*Catalog, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	gen := e.fetchGen.Add(1)

	items, err := e.service.ListMedia(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	return &Catalog{Items: items, Generation: gen}, nil
}

// Apply reports whether the snapshot is current. A snapshot loses when a
// newer generation has already been applied; winners advance the applied
// generation.
func (e *LibraryEngine) Apply(c *Catalog) bool {
	for {
		applied := e.appliedGen.Load()
		if c.Generation <= applied {
			return false
		}
		if e.appliedGen.CompareAndSwap(applied, c.Generation) {
			return true
		}
	}
}

// recordDownload marks an item downloaded, tolerating a nil store.
func (e *LibraryEngine) recordDownload(id models.ItemID) error {
	if e.store == nil {
		return nil
	}
	return e.store.RecordDownload(id)
}

// sendProgress sends a progress update through the channel without blocking.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

var _ Engine = (*LibraryEngine)(nil)
var _ Preferences = (*prefs.Store)(nil)
