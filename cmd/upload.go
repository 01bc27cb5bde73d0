package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/damx/internal/catalog"
	"github.com/desertthunder/damx/internal/preview"
	"github.com/desertthunder/damx/internal/shared"
	"github.com/desertthunder/damx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// UploadRun submits a local file with its category tag, waits for the
// backend to settle, and reports the refreshed catalog size.
func (r *Runner) UploadRun(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	typeTag := catalog.NormalizeType(cmd.String("type"))

	if path == "" {
		return fmt.Errorf("%w: file path is required", shared.ErrMissingArgument)
	}

	r.logger.Info("uploading", "path", path, "type", typeTag)
	r.writePlain("Uploading %s as %s (accepts %s)...\n", path, typeTag, preview.AcceptPatterns(typeTag))

	progress := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	refreshed, err := r.engine.UploadWithProgress(ctx, path, typeTag, progress)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUploadFailed, err)
	}

	r.engine.Apply(refreshed)
	r.writePlain("✓ Upload complete\n")
	r.writePlain("Catalog now holds %d items\n", len(refreshed.Items))
	return nil
}
