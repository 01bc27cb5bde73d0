package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/damx/internal/models"
	"github.com/desertthunder/damx/internal/shared"
	"golang.org/x/time/rate"
)

// DownloadResult describes one completed download.
type DownloadResult struct {
	Item  models.MediaItem
	Path  string // Local path the bytes were written to
	Bytes int64  // Size written
}

// BulkDownloadOpts contains configuration for bulk downloads.
type BulkDownloadOpts struct {
	OutputDir  string  // Base output directory (default: damx_download_{epoch})
	NumWorkers int     // Concurrent workers (default: 5, capped at 10)
	RateLimit  float64 // Requests per second (default: 5)
}

// ItemDownloadResult is the per-item outcome inside a bulk run.
type ItemDownloadResult struct {
	ItemID  models.ItemID `json:"item_id"`
	Title   string        `json:"title"`
	Path    string        `json:"path,omitempty"`
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
}

// BulkDownloadResult summarizes a bulk run.
type BulkDownloadResult struct {
	RunID           string               `json:"run_id"`
	TotalItems      int                  `json:"total_items"`
	SuccessCount    int                  `json:"success_count"`
	FailedCount     int                  `json:"failed_count"`
	OutputDirectory string               `json:"output_directory"`
	Results         []ItemDownloadResult `json:"results"`
}

// sanitizeFilename strips path separators and control characters from a
// suggested save name so backend-provided titles can't escape the target
// directory.
func sanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '_'
		case r < 0x20:
			return -1
		default:
			return r
		}
	}, name)

	name = strings.Trim(name, ". ")
	if name == "" {
		return "download"
	}
	return name
}

// Download fetches one item's bytes with the session credential attached
// and writes them under dir using the item's save name.
//
// The download is recorded in the preference store only after the bytes are
// fully on disk; any failure removes the partial file and leaves the
// preference sets untouched.
func (e *LibraryEngine) Download(ctx context.Context, item models.MediaItem, dir string) (*DownloadResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	src := e.resolver.Source(item)

	body, err := e.service.Fetch(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDownloadFailed, err)
	}

	path := filepath.Join(dir, sanitizeFilename(item.SaveName()))
	if err := os.WriteFile(path, body, 0644); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := e.recordDownload(item.ID); err != nil {
		return nil, fmt.Errorf("saved %s but failed to record download: %w", path, err)
	}

	return &DownloadResult{Item: item, Path: path, Bytes: int64(len(body))}, nil
}

// BulkDownload fetches multiple items concurrently with rate limiting and
// progress tracking, then writes a manifest summarizing the run.
//
// Partial failures are collected per item rather than aborting the run.
func (e *LibraryEngine) BulkDownload(ctx context.Context, items []models.MediaItem, opts BulkDownloadOpts, progress chan<- ProgressUpdate) (*BulkDownloadResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("damx_download_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkDownloadResult{
		RunID:           shared.GenerateID(),
		TotalItems:      len(items),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ItemDownloadResult, 0, len(items)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan models.MediaItem, len(items))
	results := make(chan ItemDownloadResult, len(items))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				res, err := e.Download(ctx, item, opts.OutputDir)
				if err != nil {
					results <- ItemDownloadResult{
						ItemID:  item.ID,
						Title:   item.Title,
						Success: false,
						Error:   err.Error(),
					}
					continue
				}
				results <- ItemDownloadResult{
					ItemID:  item.ID,
					Title:   item.Title,
					Path:    res.Path,
					Success: true,
				}
			}
		}()
	}

	go func() {
		for i, item := range items {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			e.sendProgress(progress, downloadingUpdate(i+1, len(items), item))
			jobs <- item
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessCount++
			e.sendProgress(progress, savedUpdate(completed, len(items), res.Path))
		} else {
			result.FailedCount++
		}
	}

	if err := writeManifest(opts.OutputDir, result); err != nil {
		return result, fmt.Errorf("downloads finished but manifest failed: %w", err)
	}

	return result, nil
}

// writeManifest records the bulk run summary alongside the downloads.
func writeManifest(dir string, result *BulkDownloadResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
