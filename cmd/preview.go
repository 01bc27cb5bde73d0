package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/damx/internal/server"
	"github.com/desertthunder/damx/internal/shared"
	"github.com/urfave/cli/v3"
)

// PreviewServe serves the library index and per-item preview pages on
// localhost until interrupted.
func (r *Runner) PreviewServe(ctx context.Context, cmd *cli.Command) error {
	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := int(cmd.Int("port"))
	if port == 0 {
		port = r.config.Server.Port
	}

	items, err := r.fetchCatalog(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	handler := server.NewPreviewHandler(items, r.engine.Resolver())
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(handler)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("preview server listening at %v", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	url := fmt.Sprintf("http://%s/", addr)
	r.writePlain("Serving %d items at %s\n", len(items), url)
	if err := shared.OpenBrowser(url); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlain("Open this URL in your browser: %s\n", url)
	}
	r.writePlain("Press Ctrl+C to stop\n")

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return httpServer.Shutdown(context.Background())
	}
}

// PreviewOpen opens one item's resolved source URL in the browser.
func (r *Runner) PreviewOpen(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: item ID is required", shared.ErrMissingArgument)
	}

	item, err := r.findItem(ctx, id)
	if err != nil {
		return err
	}

	url := r.engine.Resolver().Source(item)
	if url == "" {
		return fmt.Errorf("%w: item has no resolvable source", shared.ErrMediaNotFound)
	}

	r.writePlain("→ Opening %s...\n", url)
	if err := shared.OpenBrowser(url); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlain("Open this URL in your browser:\n%s\n", url)
	}
	return nil
}
