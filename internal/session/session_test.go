package session

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	tu "github.com/desertthunder/shelf/internal/testing"
)

type memoryStore struct {
	s       *Session
	saveErr error
}

func (m *memoryStore) Save(_ context.Context, s *Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	c := *s
	m.s = &c
	return nil
}

func (m *memoryStore) Load(context.Context) (*Session, error) {
	if m.s == nil {
		return nil, shared.ErrNoSession
	}
	c := *m.s
	return &c, nil
}

func (m *memoryStore) Clear(context.Context) error {
	m.s = nil
	return nil
}

func newUsers() *tu.FakeStore {
	users := tu.NewFakeStore()
	users.Users = []models.User{
		{ID: 1, Email: "aa@x.com"},
		{ID: 2, Email: "A@x.com", Name: "Ann"},
		{ID: 3, Email: "b@x.com"},
	}
	return users
}

func TestSessionValid(t *testing.T) {
	tests := []struct {
		name string
		s    *Session
		want bool
	}{
		{"Nil", nil, false},
		{"Missing ID", &Session{Email: "a@x.com"}, false},
		{"Missing Email", &Session{UserID: 1}, false},
		{"Complete", &Session{UserID: 1, Email: "a@x.com"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Chooses Exact Match", func(t *testing.T) {
		s, err := Login(ctx, newUsers(), "  a@x.com ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.UserID != 2 || s.Email != "A@x.com" || s.Name != "Ann" {
			t.Errorf("expected user 2, got %+v", s)
		}
		if s.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("Empty Email", func(t *testing.T) {
		users := newUsers()
		if _, err := Login(ctx, users, "   "); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if users.CallCount("UsersByEmail") != 0 {
			t.Error("validation failure should not reach the service")
		}
	})

	t.Run("Only Loose Matches", func(t *testing.T) {
		if _, err := Login(ctx, newUsers(), "x.com"); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("Service Failure", func(t *testing.T) {
		users := newUsers()
		users.UsersErr = shared.ErrNetwork
		if _, err := Login(ctx, users, "a@x.com"); !errors.Is(err, shared.ErrNetwork) {
			t.Errorf("expected ErrNetwork, got %v", err)
		}
	})
}

func TestManager(t *testing.T) {
	ctx := context.Background()

	t.Run("Login Persists And Logout Clears", func(t *testing.T) {
		store := &memoryStore{}
		m := NewManager(store, newUsers(), nil)

		if _, err := m.Current(ctx); !errors.Is(err, shared.ErrNoSession) {
			t.Fatalf("expected ErrNoSession before login, got %v", err)
		}

		if _, err := m.Login(ctx, "b@x.com"); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		cur, err := m.Current(ctx)
		if err != nil {
			t.Fatalf("expected session after login, got %v", err)
		}
		if cur.UserID != 3 {
			t.Errorf("expected user 3, got %d", cur.UserID)
		}

		if err := m.Logout(ctx); err != nil {
			t.Fatalf("logout failed: %v", err)
		}
		if _, err := m.Current(ctx); !errors.Is(err, shared.ErrNoSession) {
			t.Errorf("expected ErrNoSession after logout, got %v", err)
		}
	})

	t.Run("Failed Login Keeps Previous Session", func(t *testing.T) {
		store := &memoryStore{s: &Session{UserID: 3, Email: "b@x.com"}}
		m := NewManager(store, newUsers(), nil)

		if _, err := m.Login(ctx, "nobody@x.com"); err == nil {
			t.Fatal("expected login to fail")
		}
		if cur, err := m.Current(ctx); err != nil || cur.UserID != 3 {
			t.Errorf("previous session should remain, got %+v %v", cur, err)
		}
	})

	t.Run("Save Failure", func(t *testing.T) {
		m := NewManager(&memoryStore{saveErr: errors.New("disk full")}, newUsers(), nil)
		if _, err := m.Login(ctx, "b@x.com"); err == nil {
			t.Error("expected save failure to be returned")
		}
	})

	t.Run("Incomplete Stored Session", func(t *testing.T) {
		m := NewManager(&memoryStore{s: &Session{Email: "b@x.com"}}, newUsers(), nil)
		if _, err := m.Current(ctx); !errors.Is(err, shared.ErrNoSession) {
			t.Errorf("expected ErrNoSession, got %v", err)
		}
	})
}
