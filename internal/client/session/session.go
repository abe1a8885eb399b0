// Package session tracks which account is currently authenticated.
//
// The active session is an explicit value handed to the operations that need
// it, not package-level state. The Manager persists it in the prefs store so
// a restart keeps the user signed in, same as the original app.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamevault-app/gamevault/internal/client/repositories/prefs"
	"github.com/gamevault-app/gamevault/internal/client/storekeys"
	"github.com/gamevault-app/gamevault/internal/common"
)

// Session is the authenticated account context passed into comment and
// profile operations.
type Session struct {
	Email    string
	Username string
}

// Manager loads and stores the single active session.
type Manager struct {
	prefs prefs.Repository
}

func NewManager(p prefs.Repository) *Manager {
	return &Manager{prefs: p}
}

// Current returns the active session, or common.ErrNoActiveSession when
// nobody is signed in. A missing cached username falls back to the stored
// account username, then to the email itself.
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	email, err := m.prefs.Get(ctx, storekeys.LoggedUser)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	username, err := m.prefs.Get(ctx, storekeys.CurrentUsername)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("failed to read session username: %w", err)
		}
		username, err = m.prefs.Get(ctx, storekeys.Username(email))
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				return nil, fmt.Errorf("failed to read account username: %w", err)
			}
			username = email
		}
	}

	return &Session{Email: email, Username: username}, nil
}

// Save makes s the active session.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if err := m.prefs.Set(ctx, storekeys.LoggedUser, s.Email); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if err := m.prefs.Set(ctx, storekeys.CurrentUsername, s.Username); err != nil {
		return fmt.Errorf("failed to save session username: %w", err)
	}
	return nil
}

// Clear signs the active account out. Clearing an absent session is a no-op.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.prefs.Delete(ctx, storekeys.LoggedUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := m.prefs.Delete(ctx, storekeys.CurrentUsername); err != nil {
		return fmt.Errorf("failed to clear session username: %w", err)
	}
	return nil
}
