package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/damx/internal/prefs"
	"github.com/desertthunder/damx/internal/services"
	"github.com/desertthunder/damx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var store *prefs.Store
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err == nil {
			if s, err := prefs.NewStore(db); err == nil {
				store = s
			} else {
				logger.Warn("preference store unavailable", "error", err)
			}
		} else {
			logger.Warn("migrations failed", "error", err)
		}
	} else {
		logger.Warn("database unavailable", "error", err)
	}

	stockhub := services.NewStockHubService(config.API.BaseURL, nil)
	api := services.NewAPIService(config.API.BaseURL, nil)

	sessionPath := config.API.TokenPath
	if sessionPath == "" {
		if p, err := services.DefaultSessionPath(); err == nil {
			sessionPath = p
		}
	}
	if session, err := services.LoadSession(sessionPath); err == nil {
		stockhub.SetToken(session.Token)
		api.SetToken(session.Token)
	}

	runner := NewRunner(RunnerOpts{
		Config:      config,
		StockHub:    stockhub,
		API:         api,
		Store:       store,
		SessionPath: sessionPath,
		Logger:      logger,
	})

	app := &cli.Command{
		Name:     "damx",
		Usage:    "Browse, download & manage your StockHub media library",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
