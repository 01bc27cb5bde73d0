package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/damx/internal/catalog"
	"github.com/desertthunder/damx/internal/formatter"
	"github.com/desertthunder/damx/internal/prefs"
	"github.com/desertthunder/damx/internal/preview"
	"github.com/desertthunder/damx/internal/shared"
	"github.com/urfave/cli/v3"
)

// viewFromFlags builds the library view selection from command flags.
func viewFromFlags(cmd *cli.Command) (catalog.View, error) {
	view := catalog.View{
		Category: cmd.String("category"),
		Search:   cmd.String("search"),
		Page:     int(cmd.Int("page")),
	}
	if view.Page < 1 {
		view.Page = 1
	}

	if tags := cmd.StringSlice("type"); len(tags) > 0 {
		view.TypeFilters = map[string]bool{}
		for _, tag := range tags {
			view.TypeFilters[catalog.NormalizeType(tag)] = true
		}
	}

	if s := cmd.String("sort"); s != "" {
		order, err := catalog.ParseSortOrder(s)
		if err != nil {
			return view, fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		view.Sort = order
	}

	if v := cmd.String("view"); v != "" {
		mode, err := catalog.ParseViewMode(v)
		if err != nil {
			return view, fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		view.Mode = mode
	}

	return view, nil
}

// computePage runs the pipeline over a fresh catalog snapshot.
func (r *Runner) computePage(ctx context.Context, view catalog.View) (catalog.Page, error) {
	items, err := r.fetchCatalog(ctx)
	if err != nil {
		return catalog.Page{}, err
	}

	favorites := prefs.NewSet()
	downloads := prefs.NewSet()
	if r.store != nil {
		favorites = r.store.Favorites()
		downloads = r.store.Downloads()
	} else if view.Mode != catalog.ModeAll {
		return catalog.Page{}, fmt.Errorf("%w: %s view needs the preference store", shared.ErrServiceUnavailable, view.Mode)
	}

	return catalog.Compute(items, view, favorites, downloads), nil
}

// MediaList lists the catalog applying filters, search, sort, and pagination.
func (r *Runner) MediaList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	view, err := viewFromFlags(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("listing media", "mode", view.Mode.String(), "sort", view.Sort.String(), "page", view.Page)

	page, err := r.computePage(ctx, view)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.renderListing(page, useJSON, pretty)
}

// MediaSearch lists catalog items matching a query argument. Equivalent to
// `media list --search` with the remaining filters still available.
func (r *Runner) MediaSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	view, err := viewFromFlags(cmd)
	if err != nil {
		return err
	}
	view.Search = query

	r.logger.Info("searching media", "query", query, "page", view.Page)

	page, err := r.computePage(ctx, view)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.renderListing(page, cmd.Bool("json"), cmd.Bool("pretty"))
}

func (r *Runner) renderListing(page catalog.Page, useJSON, pretty bool) error {
	if useJSON {
		return r.writeJSON(page, pretty)
	}

	r.writePlain("Page %d of %d (%d items total)\n\n", page.Number, page.TotalPages, page.TotalItems)
	for i, item := range page.Items {
		n := (page.Number-1)*catalog.ItemsPerPage + i + 1
		r.writePlain("%d. %s\n", n, item.Title)
		r.writePlain("   ID: %s\n", item.ID)
		r.writePlain("   Type: %s\n", item.Badge())
		if ext := item.Ext(); ext != "" {
			r.writePlain("   Extension: .%s\n", ext)
		}
		if !item.CreatedAt.IsZero() {
			r.writePlain("   Created: %s\n", item.CreatedAt.Format("2006-01-02"))
		}
		r.writePlain("\n")
	}

	return nil
}

// MediaShow displays one item with its resolved preview strategy and source.
func (r *Runner) MediaShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: item ID is required", shared.ErrMissingArgument)
	}

	item, err := r.findItem(ctx, id)
	if err != nil {
		return err
	}

	strategy, label := preview.Resolve(item)
	source := r.engine.Resolver().Source(item)

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"item":     item,
			"strategy": strategy.String(),
			"label":    label,
			"source":   source,
		}, true)
	}

	r.writePlainHeader(item.Title)
	r.writePlain("ID: %s\n", item.ID)
	r.writePlain("Type: %s\n", item.Badge())
	if ext := item.Ext(); ext != "" {
		r.writePlain("Extension: .%s\n", ext)
	}
	r.writePlain("Preview: %s\n", strategy)
	if label != "" {
		r.writePlain("Icon: %s\n", label)
	}
	r.writePlain("Source: %s\n", source)
	if item.Description != "" {
		r.writePlain("\n%s\n", item.Description)
	}
	if r.store != nil && r.store.IsFavorite(item.ID) {
		r.writePlain("\n★ Favorited\n")
	}

	return nil
}

// MediaTypes lists the distinct type tags in the catalog.
func (r *Runner) MediaTypes(ctx context.Context, cmd *cli.Command) error {
	items, err := r.fetchCatalog(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	tags := catalog.Types(items)
	r.writePlain("Found %d types:\n\n", len(tags))
	for _, tag := range tags {
		r.writePlain("  %s (%s)\n", tag, catalog.NormalizeType(tag))
	}
	return nil
}

// MediaExport writes the filtered catalog to CSV, Markdown, or plain text.
func (r *Runner) MediaExport(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	outputFile := cmd.String("output")

	view, err := viewFromFlags(cmd)
	if err != nil {
		return err
	}

	page, err := r.computePage(ctx, view)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	title := fmt.Sprintf("Media Library (%s, %s)", view.Mode, view.Sort)

	var data []byte
	switch format {
	case "csv":
		data, err = formatter.ExportToCSV(page.Items)
	case "md", "markdown":
		data, err = formatter.ExportToMarkdown(title, page.Items)
	case "txt", "text":
		data, err = formatter.ExportToText(title, page.Items)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return fmt.Errorf("failed to export catalog: %w", err)
	}

	if outputFile == "" {
		outputFile = fmt.Sprintf("media_export.%s", format)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	r.logger.Infof("catalog exported to %v with %v items", outputFile, len(page.Items))
	r.writePlain("✓ Exported %d items to %s\n", len(page.Items), outputFile)
	return nil
}
