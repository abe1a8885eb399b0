// Package services contains the application services of the GameVault data
// layer: accounts, comments, and profile images over the prefs store, plus
// remote-backed variants of the account and comment services.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/gamevault-app/gamevault/internal/client/models"
	"github.com/gamevault-app/gamevault/internal/client/repositories/prefs"
	"github.com/gamevault-app/gamevault/internal/client/session"
	"github.com/gamevault-app/gamevault/internal/client/storekeys"
	"github.com/gamevault-app/gamevault/internal/common"
	"github.com/gamevault-app/gamevault/internal/logging"
)

// AccountService manages credential records and the active session.
//
// Contract:
//   - Register: create an account; common.ErrEmailTaken on a duplicate email.
//   - Login: verify credentials; on success persist and return the session;
//     common.ErrInvalidCredentials on unknown email or wrong password.
//   - Logout: clear the active session; idempotent.
//   - Current: the active session, or common.ErrNoActiveSession.
//
// Emails are compared case-sensitively throughout.
type AccountService interface {
	Register(ctx context.Context, email, password, username string) error
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Logout(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool
	Current(ctx context.Context) (*session.Session, error)
	UsernameFor(ctx context.Context, email string) (string, error)
}

// Accounts is the local AccountService over the prefs store. Stored
// credentials are bcrypt hashes; values written by older app versions hold
// the plaintext password and are upgraded to a hash on the next successful
// login.
type Accounts struct {
	prefs    prefs.Repository
	sessions *session.Manager
	log      logging.Logger
}

func NewAccounts(p prefs.Repository, sm *session.Manager, log logging.Logger) *Accounts {
	return &Accounts{prefs: p, sessions: sm, log: log.With("service", "accounts")}
}

func (a *Accounts) Register(ctx context.Context, email, password, username string) error {
	_, err := a.prefs.Get(ctx, storekeys.Credential(email))
	if err == nil {
		return common.ErrEmailTaken
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.prefs.Set(ctx, storekeys.Credential(email), string(hash)); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	if err := a.prefs.Set(ctx, storekeys.Username(email), username); err != nil {
		return fmt.Errorf("failed to store username: %w", err)
	}

	a.log.Info(ctx, "account registered", "email", email)
	return nil
}

func (a *Accounts) Login(ctx context.Context, email, password string) (*session.Session, error) {
	stored, err := a.prefs.Get(ctx, storekeys.Credential(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}

	if err := a.verifyPassword(ctx, email, stored, password); err != nil {
		return nil, err
	}

	username, err := a.UsernameFor(ctx, email)
	if err != nil {
		return nil, err
	}

	sess := &session.Session{Email: email, Username: username}
	if err := a.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	a.log.Info(ctx, "login", "email", email)
	return sess, nil
}

// verifyPassword checks candidate against the stored credential. A stored
// value that is not a bcrypt hash is a legacy plaintext record: it is
// compared directly and rewritten as a hash on success.
func (a *Accounts) verifyPassword(ctx context.Context, email, stored, candidate string) error {
	if isBcryptHash(stored) {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)); err != nil {
			return common.ErrInvalidCredentials
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 0 {
		return common.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(candidate), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.prefs.Set(ctx, storekeys.Credential(email), string(hash)); err != nil {
		return fmt.Errorf("failed to upgrade credential: %w", err)
	}
	a.log.Info(ctx, "legacy credential upgraded", "email", email)
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func (a *Accounts) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *Accounts) IsLoggedIn(ctx context.Context) bool {
	_, err := a.sessions.Current(ctx)
	return err == nil
}

func (a *Accounts) Current(ctx context.Context) (*session.Session, error) {
	return a.sessions.Current(ctx)
}

// UsernameFor returns the display name on record for email, falling back to
// the email itself when none is stored.
func (a *Accounts) UsernameFor(ctx context.Context, email string) (string, error) {
	username, err := a.prefs.Get(ctx, storekeys.Username(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return email, nil
		}
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	return username, nil
}

// AccountFor returns the account on record for email.
func (a *Accounts) AccountFor(ctx context.Context, email string) (*models.Account, error) {
	if _, err := a.prefs.Get(ctx, storekeys.Credential(email)); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}
	username, err := a.UsernameFor(ctx, email)
	if err != nil {
		return nil, err
	}
	return &models.Account{Email: email, Username: username}, nil
}
