package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/damx/internal/catalog"
	"github.com/desertthunder/damx/internal/models"
	"github.com/desertthunder/damx/internal/shared"
	"github.com/urfave/cli/v3"
)

// listCollection prints the catalog items belonging to one tracked set.
func (r *Runner) listCollection(ctx context.Context, mode catalog.ViewMode, empty string) error {
	store, err := r.requireStore()
	if err != nil {
		return err
	}

	items, err := r.fetchCatalog(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	page := catalog.Compute(items, catalog.View{Mode: mode, Page: 1}, store.Favorites(), store.Downloads())
	if page.TotalItems == 0 {
		return r.writePlain("%s\n", empty)
	}

	r.writePlain("Found %d items:\n\n", page.TotalItems)
	for i, item := range page.Items {
		r.writePlain("%d. %s\n", i+1, item.Title)
		r.writePlain("   ID: %s\n", item.ID)
		r.writePlain("   Type: %s\n", item.Badge())
		r.writePlain("\n")
	}
	return nil
}

// FavoritesList lists favorited items present in the catalog.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	return r.listCollection(ctx, catalog.ModeFavorites, "No favorites yet. Toggle one with 'damx favorites toggle <id>'.")
}

// FavoritesToggle flips an item's favorite membership.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: item ID is required", shared.ErrMissingArgument)
	}

	store, err := r.requireStore()
	if err != nil {
		return err
	}

	favorite, err := store.ToggleFavorite(models.ItemID(id))
	if err != nil {
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}

	if favorite {
		r.logger.Info("favorited", "id", id)
		return r.writePlain("★ Added %s to favorites\n", id)
	}
	r.logger.Info("unfavorited", "id", id)
	return r.writePlain("✓ Removed %s from favorites\n", id)
}

// DownloadsList lists items recorded in the download history.
func (r *Runner) DownloadsList(ctx context.Context, cmd *cli.Command) error {
	return r.listCollection(ctx, catalog.ModeDownloads, "No downloads yet. Fetch one with 'damx download item <id>'.")
}
