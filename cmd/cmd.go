// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}
}

// booksCommand handles book operations
func booksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "books",
		Aliases: []string{"book", "b"},
		Usage:   "List, add, edit and delete books",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List your books grouped by category",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "title",
						Usage: "Only books whose title contains this text",
					},
					&cli.StringFlag{
						Name:  "author",
						Usage: "Only books whose author contains this text",
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Only books with this reading status (not_started, in_progress, completed)",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only books whose category contains this text",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort by title, author, readingStatus or category",
						Value: "title",
					},
					&cli.StringFlag{
						Name:  "order",
						Usage: "Sort order (asc or desc)",
						Value: "asc",
					},
				}, outputFlags()...),
				Action: r.BooksList,
			},
			{
				Name:  "add",
				Usage: "Add a book, optionally with a review",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Book title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "author",
						Usage:    "Book author",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Reading status (not_started, in_progress, completed)",
						Value: "not_started",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Category name; created on the server if new",
					},
					&cli.BoolFlag{
						Name:  "suggest",
						Usage: "Ask the server for a category when --category is empty",
					},
					&cli.StringFlag{
						Name:  "review",
						Usage: "Review text",
					},
					&cli.IntFlag{
						Name:  "rating",
						Usage: "Review rating from 1 to 5",
					},
				}, outputFlags()...),
				Action: r.BooksAdd,
			},
			{
				Name:  "edit",
				Usage: "Change fields of an existing book",
				Flags: append([]cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Book ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "New title",
					},
					&cli.StringFlag{
						Name:  "author",
						Usage: "New author",
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "New reading status",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "New category name; empty clears it",
					},
					&cli.StringFlag{
						Name:  "review",
						Usage: "New review text",
					},
					&cli.IntFlag{
						Name:  "rating",
						Usage: "New review rating from 0 to 5",
					},
				}, outputFlags()...),
				Action: r.BooksEdit,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a book",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Book ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.BooksDelete,
			},
		},
	}
}

// categoriesCommand handles category lookups
func categoriesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "categories",
		Aliases: []string{"category", "cat"},
		Usage:   "Category operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List known categories",
				Flags:  outputFlags(),
				Action: r.CategoriesList,
			},
			{
				Name:  "suggest",
				Usage: "Ask the server to suggest a category for a title",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "title",
					},
				},
				Action: r.CategoriesSuggest,
			},
		},
	}
}

// reportCommand prints the per-category, per-status book counts
func reportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Show book counts by category and reading status",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (text, markdown, csv or json)",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
		},
		Action: r.Report,
	}
}

// exportCommand writes the grouped book list
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export your books grouped by category",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (markdown, csv, json or text)",
				Value:   "markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
		},
		Action: r.Export,
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls for debugging",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the book service, prints the raw response",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON responses",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// setupCommand initializes configuration and the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml if missing, initialize the database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent migration instead of applying new ones",
			},
		},
		Action: r.Setup,
	}
}

// loginCommand starts a session for a user
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in by email",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Email address of an existing user",
				Required: true,
			},
		},
		Action: r.Login,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Forget the stored session",
		Action: r.Logout,
	}
}

func whoamiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the signed in user",
		Flags:  outputFlags(),
		Action: r.Whoami,
	}
}

// tuiCommand returns the top-level TUI command for browsing books.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive book browser",
		Action:  r.TUI,
	}
}
