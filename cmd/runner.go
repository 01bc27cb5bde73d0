package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/damx/internal/models"
	"github.com/desertthunder/damx/internal/prefs"
	"github.com/desertthunder/damx/internal/preview"
	"github.com/desertthunder/damx/internal/services"
	"github.com/desertthunder/damx/internal/shared"
	"github.com/desertthunder/damx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	service     services.Service
	stockhub    *services.StockHubService
	api         *services.APIService
	store       *prefs.Store
	sessionPath string
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	engine      *tasks.LibraryEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Service     services.Service
	StockHub    *services.StockHubService
	API         *services.APIService
	Store       *prefs.Store
	SessionPath string
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Service == nil && opts.StockHub != nil {
		opts.Service = opts.StockHub
	}

	resolver := preview.Resolver{ContentRoot: opts.Config.CDN.BaseURL}

	var store tasks.Preferences
	if opts.Store != nil {
		store = opts.Store
	}
	engine := tasks.NewLibraryEngine(opts.Service, store, resolver)

	return &Runner{
		config:      opts.Config,
		service:     opts.Service,
		stockhub:    opts.StockHub,
		api:         opts.API,
		store:       opts.Store,
		sessionPath: opts.SessionPath,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		engine:      engine,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, mediaCommand, favoritesCommand, downloadsCommand,
		downloadCommand, uploadCommand, previewCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// fetchCatalog refreshes the media catalog and applies the snapshot.
func (r *Runner) fetchCatalog(ctx context.Context) ([]models.MediaItem, error) {
	catalog, err := r.engine.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	r.engine.Apply(catalog)
	return catalog.Items, nil
}

// findItem locates one catalog item by ID.
func (r *Runner) findItem(ctx context.Context, id string) (models.MediaItem, error) {
	items, err := r.fetchCatalog(ctx)
	if err != nil {
		return models.MediaItem{}, err
	}
	for _, item := range items {
		if item.ID == models.ItemID(id) {
			return item, nil
		}
	}
	return models.MediaItem{}, fmt.Errorf("%w: item %q not in catalog", shared.ErrMediaNotFound, id)
}

// requireStore returns the preference store or an error when the database
// was unavailable at startup.
func (r *Runner) requireStore() (*prefs.Store, error) {
	if r.store == nil {
		return nil, fmt.Errorf("%w: preference store not initialized, run 'damx setup database'", shared.ErrServiceUnavailable)
	}
	return r.store, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
