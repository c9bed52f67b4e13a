package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/shelf/internal/session"
	"github.com/desertthunder/shelf/internal/shared"
)

// SessionRepository implements [session.Store] on the single-row sessions table.
type SessionRepository struct {
	db *sql.DB
}

var _ session.Store = (*SessionRepository)(nil)

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save replaces the stored session.
func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	if !s.Valid() {
		return fmt.Errorf("%w: session needs a user id and email", shared.ErrValidation)
	}
	if err := requireTable(r.db, "sessions"); err != nil {
		return err
	}

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO sessions (id, user_id, email, name, created_at) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			email = excluded.email,
			name = excluded.name,
			created_at = excluded.created_at
	`
	if _, err := r.db.ExecContext(ctx, query, s.UserID, s.Email, s.Name, createdAt); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored session or an error wrapping [shared.ErrNoSession].
func (r *SessionRepository) Load(ctx context.Context) (*session.Session, error) {
	if err := requireTable(r.db, "sessions"); err != nil {
		return nil, err
	}

	query := `SELECT user_id, email, name, created_at FROM sessions WHERE id = 1`

	var s session.Session
	err := r.db.QueryRowContext(ctx, query).Scan(&s.UserID, &s.Email, &s.Name, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &s, nil
}

// Clear removes the stored session.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := requireTable(r.db, "sessions"); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
