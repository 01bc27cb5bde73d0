package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/damx/internal/catalog"
	"github.com/desertthunder/damx/internal/prefs"
	"github.com/desertthunder/damx/internal/shared"
	"github.com/desertthunder/damx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// DownloadItem downloads one item by ID to the output directory.
func (r *Runner) DownloadItem(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: item ID is required", shared.ErrMissingArgument)
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = r.config.Downloads.Dir
	}

	item, err := r.findItem(ctx, id)
	if err != nil {
		return err
	}

	r.logger.Info("downloading", "id", id, "title", item.Title, "dir", outputDir)

	result, err := r.engine.Download(ctx, item, outputDir)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDownloadFailed, err)
	}

	r.writePlain("✓ Downloaded %s\n", item.Title)
	r.writePlain("  Path: %s\n", result.Path)
	r.writePlain("  Size: %s\n", shared.FormatBytes(result.Bytes))
	return nil
}

// DownloadBulk downloads the filtered catalog concurrently with rate limiting.
func (r *Runner) DownloadBulk(ctx context.Context, cmd *cli.Command) error {
	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = r.config.Downloads.Dir
	}

	view := catalog.View{Page: 1}
	if tags := cmd.StringSlice("type"); len(tags) > 0 {
		view.TypeFilters = map[string]bool{}
		for _, tag := range tags {
			view.TypeFilters[catalog.NormalizeType(tag)] = true
		}
	}
	if v := cmd.String("view"); v != "" {
		mode, err := catalog.ParseViewMode(v)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		view.Mode = mode
	}

	items, err := r.fetchCatalog(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	favorites := prefs.NewSet()
	downloads := prefs.NewSet()
	if r.store != nil {
		favorites = r.store.Favorites()
		downloads = r.store.Downloads()
	}

	// Collect every page of the filtered selection
	selected := []catalog.Page{}
	page := catalog.Compute(items, view, favorites, downloads)
	selected = append(selected, page)
	for p := 2; p <= page.TotalPages; p++ {
		selected = append(selected, catalog.Compute(items, view.WithPage(p), favorites, downloads))
	}

	targets := page.Items[:0:0]
	for _, p := range selected {
		targets = append(targets, p.Items...)
	}

	if len(targets) == 0 {
		return r.writePlain("Nothing to download\n")
	}

	opts := tasks.BulkDownloadOpts{
		OutputDir:  outputDir,
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float64("rate"),
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = r.config.Downloads.NumWorkers
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = r.config.Downloads.RateLimit
	}

	r.logger.Info("bulk download", "items", len(targets), "dir", outputDir, "workers", opts.NumWorkers)
	r.writePlain("Downloading %d items to %s...\n\n", len(targets), outputDir)

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			if update.Total > 0 {
				r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
			} else {
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.BulkDownload(ctx, targets, opts, progress)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDownloadFailed, err)
	}

	r.writePlain("\n✓ Downloaded %d/%d items\n", result.SuccessCount, result.TotalItems)
	if result.FailedCount > 0 {
		r.writePlain("✗ %d items failed:\n", result.FailedCount)
		for _, item := range result.Results {
			if item.Error != "" {
				r.writePlain("  • %s: %s\n", item.Title, item.Error)
			}
		}
	}
	r.writePlain("Manifest: %s/manifest.json\n", result.OutputDirectory)
	return nil
}
