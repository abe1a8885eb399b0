package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamevault-app/gamevault/internal/client/remote"
	"github.com/gamevault-app/gamevault/internal/client/session"
	"github.com/gamevault-app/gamevault/internal/common"
	"github.com/gamevault-app/gamevault/internal/logging"
)

// RemoteAccounts is the AccountService over the hosted backend. The signed-in
// account is still cached through the local session manager, so the rest of
// the app resolves "the current user" the same way in both deployments.
type RemoteAccounts struct {
	client   remote.Client
	sessions *session.Manager
	log      logging.Logger
}

func NewRemoteAccounts(client remote.Client, sm *session.Manager, log logging.Logger) *RemoteAccounts {
	return &RemoteAccounts{client: client, sessions: sm, log: log.With("service", "accounts", "backend", "remote")}
}

func (a *RemoteAccounts) Register(ctx context.Context, email, password, username string) error {
	if err := a.client.Register(ctx, email, username, password); err != nil {
		return fmt.Errorf("remote register failed: %w", err)
	}
	a.log.Info(ctx, "account registered", "email", email)
	return nil
}

func (a *RemoteAccounts) Login(ctx context.Context, email, password string) (*session.Session, error) {
	account, err := a.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) || errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("remote login failed: %w", err)
	}

	username := account.Username
	if username == "" {
		username = account.Email
	}

	sess := &session.Session{Email: account.Email, Username: username}
	if err := a.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	a.log.Info(ctx, "login", "email", email)
	return sess, nil
}

func (a *RemoteAccounts) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *RemoteAccounts) IsLoggedIn(ctx context.Context) bool {
	_, err := a.sessions.Current(ctx)
	return err == nil
}

func (a *RemoteAccounts) Current(ctx context.Context) (*session.Session, error) {
	return a.sessions.Current(ctx)
}

func (a *RemoteAccounts) UsernameFor(ctx context.Context, email string) (string, error) {
	account, err := a.client.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return email, nil
		}
		return "", fmt.Errorf("remote user lookup failed: %w", err)
	}
	if account.Username == "" {
		return email, nil
	}
	return account.Username, nil
}
