package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Report prints book counts per category and reading status for the current user.
func (r *Runner) Report(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	sess, err := r.currentSession(ctx)
	if err != nil {
		return err
	}

	rows, err := r.store.Report(ctx, sess.Email)
	if err != nil {
		return fmt.Errorf("failed to fetch report: %w", err)
	}
	r.logger.Debug("report fetched", "rows", len(rows))

	data, err := formatter.RenderReport(format, rows)
	if err != nil {
		return err
	}
	return r.emit(data, cmd.String("output"))
}

// Export writes the user's books grouped by category.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	sess, err := r.currentSession(ctx)
	if err != nil {
		return err
	}

	c := r.newCollection(sess, nil)
	defer c.Close()
	if err := c.Load(ctx, false); err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}

	grouped := c.Grouped()
	r.logger.Info("exporting books", "format", format, "books", grouped.Count(), "categories", len(grouped))

	data, err := formatter.RenderGrouped(format, grouped)
	if err != nil {
		return err
	}
	return r.emit(data, cmd.String("output"))
}
