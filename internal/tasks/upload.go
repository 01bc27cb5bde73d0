package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/damx/internal/shared"
)

// settleDelay gives the backend time to index a fresh upload before the
// follow-up catalog refresh.
const settleDelay = 1500 * time.Millisecond

// Upload submits a local file with its category tag, waits for the backend
// to settle, then refreshes the catalog.
//
// The refresh result is returned so callers can apply the new snapshot
// immediately; an upload that succeeds but fails to refresh still reports
// the refresh error.
func (e *LibraryEngine) Upload(ctx context.Context, path, typeTag string) (*Catalog, error) {
	return e.upload(ctx, path, typeTag, nil)
}

// UploadWithProgress is Upload with progress reporting for the TUI.
func (e *LibraryEngine) UploadWithProgress(ctx context.Context, path, typeTag string, progress chan<- ProgressUpdate) (*Catalog, error) {
	return e.upload(ctx, path, typeTag, progress)
}

func (e *LibraryEngine) upload(ctx context.Context, path, typeTag string, progress chan<- ProgressUpdate) (*Catalog, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no file selected", shared.ErrInvalidInput)
	}
	if typeTag == "" {
		return nil, fmt.Errorf("%w: asset type is required", shared.ErrInvalidInput)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	defer f.Close()

	filename := filepath.Base(path)
	e.sendProgress(progress, uploadingUpdate(filename, typeTag))

	if err := e.service.Upload(ctx, f, filename, typeTag); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUploadFailed, err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(settleDelay):
	}

	catalog, err := e.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("upload succeeded but refresh failed: %w", err)
	}

	return catalog, nil
}
