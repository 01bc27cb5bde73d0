// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage StockHub authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "signup",
				Usage: "Register a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Full name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password (6 characters minimum)",
						Required: true,
					},
				},
				Action: r.AuthSignup,
			},
			{
				Name:  "change-password",
				Usage: "Rotate the current account password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "current",
						Usage:    "Current password",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "new",
						Usage:    "New password (6 characters minimum)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "confirm",
						Usage: "Confirm the new password (defaults to --new)",
					},
				},
				Action: r.AuthChangePassword,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed-in user's profile",
				Action: r.AuthWhoami,
			},
			{
				Name:   "logout",
				Usage:  "Clear the saved session",
				Action: r.AuthLogout,
			},
			{
				Name:  "import",
				Usage: "Bootstrap a session token from a browser request (Copy as cURL)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.AuthImport,
			},
		},
	}
}

// mediaCommand handles catalog browsing operations
func mediaCommand(r *Runner) *cli.Command {
	listFlags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "type",
			Aliases: []string{"t"},
			Usage:   "Type tags to include (repeatable)",
		},
		&cli.StringFlag{
			Name:    "category",
			Aliases: []string{"c"},
			Usage:   "Active category ('all' disables)",
			Value:   "all",
		},
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Search term for title or extension",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort order: recent or name",
			Value: "recent",
		},
		&cli.StringFlag{
			Name:  "view",
			Usage: "View mode: all, favorites, or downloads",
			Value: "all",
		},
		&cli.IntFlag{
			Name:    "page",
			Aliases: []string{"p"},
			Usage:   "1-based page number",
			Value:   1,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}

	return &cli.Command{
		Name:    "media",
		Aliases: []string{"m"},
		Usage:   "Media catalog operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the catalog with filters, sorting, and pagination",
				Flags:  listFlags,
				Action: r.MediaList,
			},
			{
				Name:  "search",
				Usage: "Search the catalog by title or extension",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  listFlags,
				Action: r.MediaSearch,
			},
			{
				Name:  "show",
				Usage: "Show one item with its resolved preview strategy",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MediaShow,
			},
			{
				Name:   "types",
				Usage:  "List distinct type tags present in the catalog",
				Action: r.MediaTypes,
			},
			{
				Name:  "export",
				Usage: "Export the filtered catalog to CSV, Markdown, or text",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md, or txt",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				}, listFlags...),
				Action: r.MediaExport,
			},
		},
	}
}

// favoritesCommand handles the favorites collection
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage favorited items",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List favorited items",
				Action: r.FavoritesList,
			},
			{
				Name:  "toggle",
				Usage: "Toggle an item in or out of favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.FavoritesToggle,
			},
		},
	}
}

// downloadsCommand lists the download history
func downloadsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "downloads",
		Usage: "Show download history",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List downloaded items",
				Action: r.DownloadsList,
			},
		},
	}
}

// downloadCommand handles fetching media bytes to disk
func downloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "download",
		Aliases: []string{"dl"},
		Usage:   "Download media to disk",
		Commands: []*cli.Command{
			{
				Name:  "item",
				Usage: "Download one item by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
				},
				Action: r.DownloadItem,
			},
			{
				Name:  "bulk",
				Usage: "Download the filtered catalog concurrently",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Type tags to include (repeatable)",
					},
					&cli.StringFlag{
						Name:  "view",
						Usage: "View mode: all, favorites, or downloads",
						Value: "all",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent downloads",
					},
					&cli.Float64Flag{
						Name:  "rate",
						Usage: "Download requests per second",
					},
				},
				Action: r.DownloadBulk,
			},
		},
	}
}

// uploadCommand submits a new asset
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "upload",
		Usage: "Upload a local file with its category tag",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "type",
				Aliases:  []string{"t"},
				Usage:    "Category tag (photos, videos, music, 3d, pdf, ...)",
				Required: true,
			},
		},
		Action: r.UploadRun,
	}
}

// previewCommand serves and opens rendered preview pages
func previewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Preview media in the browser",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serve the library index and per-item preview pages",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "Host to bind",
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "Port to bind",
					},
				},
				Action: r.PreviewServe,
			},
			{
				Name:  "open",
				Usage: "Open one item's resolved source URL in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.PreviewOpen,
			},
		},
	}
}

// apiCommand handles direct StockHub API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the StockHub backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the backend, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a configuration file from the template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive library browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for the media library",
		Action:  r.TUI,
	}
}
