// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// gamesCommand handles game catalog operations
func gamesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "games",
		Aliases: []string{"g"},
		Usage:   "Game catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List games, one page at a time",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Only show games in this genre",
					},
					&cli.IntFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Usage:   "Page number to show",
						Value:   1,
					},
					&cli.IntFlag{
						Name:  "page-size",
						Usage: "Games per page (defaults to the configured size)",
					},
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Browse the local cache without fetching",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.GamesList,
			},
			{
				Name:  "show",
				Usage: "Show full detail for one game",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Game ID to show",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Browse the local cache without fetching",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.GamesShow,
			},
			{
				Name:  "search",
				Usage: "Search games on the server by free text",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Usage:   "Page number to show",
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
				},
				Action: r.GamesSearch,
			},
			{
				Name:  "genres",
				Usage: "List the distinct genres in the catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Browse the local cache without fetching",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.GamesGenres,
			},
			{
				Name:  "export",
				Usage: "Export the catalog to CSV, Markdown, plain text or JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, text or json",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (base filename or directory)",
					},
					&cli.StringFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Only export games in this genre",
					},
					&cli.BoolFlag{
						Name:  "developers",
						Usage: "Include the developer catalog",
					},
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Export from the local cache without fetching",
					},
				},
				Action: r.GamesExport,
			},
		},
	}
}

// developersCommand handles developer catalog operations
func developersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "developers",
		Aliases: []string{"devs"},
		Usage:   "Developer catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the game studios in the catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Browse the local cache without fetching",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.DevelopersList,
			},
		},
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage your account and session",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Account holder name (letters only)",
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "Email address",
					},
					&cli.StringFlag{
						Name:  "password",
						Usage: "Password (at least 4 characters)",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Log in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "email",
						Usage: "Email address",
					},
					&cli.StringFlag{
						Name:  "password",
						Usage: "Password",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show whether a session token is stored",
				Action: r.AuthStatus,
			},
		},
	}
}

// setupCommand handles setup operations for the local database.
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
		},
	}
}

// refreshCommand fetches the remote catalog into the local cache.
func refreshCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "refresh",
		Usage:  "Fetch the remote catalog and cache it locally",
		Action: r.Refresh,
	}
}

// tuiCommand returns the top-level TUI command for interactive catalog browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for catalog browsing",
		Action:  r.TUI,
	}
}
