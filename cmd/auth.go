package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// Login looks the user up by email and stores the session locally.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session storage is not configured", shared.ErrMissingConfig)
	}

	email := cmd.String("email")
	r.logger.Infof("signing in as %v", email)

	sess, err := r.sessions.Login(ctx, email)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	return r.writePlain("✓ Signed in as %s\n", sess)
}

// Logout clears the stored session.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	if r.sessions == nil {
		return fmt.Errorf("%w: session storage is not configured", shared.ErrMissingConfig)
	}
	if err := r.sessions.Logout(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Signed out\n")
}

// Whoami prints the stored session.
func (r *Runner) Whoami(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.currentSession(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(sess, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Signed in")
	r.writePlain("User:    %s\n", sess)
	if !sess.CreatedAt.IsZero() {
		r.writePlain("Since:   %s\n", sess.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	r.writePlain("Server:  %s\n", r.api.BaseURL())
	return nil
}
