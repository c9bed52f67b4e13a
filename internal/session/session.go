// package session holds the signed-in user's identity and the login flow that produces it
package session

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/shared"
)

// Session is the explicit identity passed to everything that acts on the user's behalf.
type Session struct {
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Valid reports whether the session identifies a user. A nil session is invalid.
func (s *Session) Valid() bool {
	return s != nil && s.UserID > 0 && s.Email != ""
}

func (s *Session) String() string {
	if s == nil {
		return "<no session>"
	}
	if s.Name != "" {
		return fmt.Sprintf("%s <%s> (id %d)", s.Name, s.Email, s.UserID)
	}
	return fmt.Sprintf("%s (id %d)", s.Email, s.UserID)
}

// Login looks up the user by email and returns a new session for the exact match.
//
// The service may return loose matches, so only a case-insensitive exact email match counts.
func Login(ctx context.Context, users services.UserFinder, email string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", shared.ErrValidation)
	}

	found, err := users.UsersByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	for _, u := range found {
		if strings.EqualFold(strings.TrimSpace(u.Email), email) {
			return &Session{UserID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: time.Now().UTC()}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, email)
}

// Store persists the current session between runs.
type Store interface {
	// Save replaces the stored session.
	Save(ctx context.Context, s *Session) error

	// Load returns the stored session, or an error wrapping [shared.ErrNoSession] when there is none.
	Load(ctx context.Context) (*Session, error)

	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Manager ties the login flow to a [Store].
type Manager struct {
	store  Store
	users  services.UserFinder
	logger *log.Logger
}

// NewManager creates a [Manager]. A nil logger discards output.
func NewManager(store Store, users services.UserFinder, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Manager{store: store, users: users, logger: logger.With("component", "session")}
}

// Login signs in and persists the new session, replacing any previous one.
func (m *Manager) Login(ctx context.Context, email string) (*Session, error) {
	s, err := Login(ctx, m.users, email)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	m.logger.Info("logged in", "email", s.Email, "user_id", s.UserID)
	return s, nil
}

// Current returns the persisted session or an error wrapping [shared.ErrNoSession].
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	s, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !s.Valid() {
		return nil, fmt.Errorf("%w: stored session is incomplete", shared.ErrNoSession)
	}
	return s, nil
}

// Logout clears the persisted session.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	m.logger.Info("logged out")
	return nil
}
