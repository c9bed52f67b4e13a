package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// CategoriesList prints the categories known to the server.
func (r *Runner) CategoriesList(ctx context.Context, cmd *cli.Command) error {
	categories, err := r.store.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(categories, cmd.Bool("pretty"))
	}

	if len(categories) == 0 {
		return r.writePlain("No categories.\n")
	}
	for _, c := range categories {
		r.writePlain("[%d] %s\n", c.ID, c.Name)
	}
	return nil
}

// CategoriesSuggest asks the server for a category name for a title. Nothing is saved.
func (r *Runner) CategoriesSuggest(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")

	c := r.newCollection(nil, nil)
	defer c.Close()

	name, err := c.SuggestCategory(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to suggest a category: %w", err)
	}
	if name == "" {
		return r.writePlain("No suggestion.\n")
	}
	return r.writePlain("%s\n", name)
}
