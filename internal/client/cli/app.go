// Package cli implements the interactive GameVault client: a small REPL
// over the account, comment, and profile services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gamevault-app/gamevault/internal/client/config"
	"github.com/gamevault-app/gamevault/internal/client/remote"
	"github.com/gamevault-app/gamevault/internal/client/repositories/prefs"
	"github.com/gamevault-app/gamevault/internal/client/services"
	"github.com/gamevault-app/gamevault/internal/client/session"
	"github.com/gamevault-app/gamevault/internal/common"
	"github.com/gamevault-app/gamevault/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	store    prefs.Repository
	accounts services.AccountService
	comments services.CommentService
	profile  *services.Profile
	sess     *session.Session
	reader   *bufio.Reader
	log      logging.Logger
}

// NewApp opens the local store and wires the services for the configured
// backend. The profile image store is on-device in both modes.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := prefs.Open(ctx, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	sessions := session.NewManager(store)

	app := &App{
		config:  cfg,
		store:   store,
		profile: services.NewProfile(store, log),
		reader:  bufio.NewReader(os.Stdin),
		log:     log,
	}

	switch cfg.Backend {
	case config.BackendRemote:
		client := remote.NewHTTPClient(cfg.RemoteBaseURL, cfg.RequestTimeout, log)
		app.accounts = services.NewRemoteAccounts(client, sessions, log)
		app.comments = services.NewRemoteComments(client, log)

	default:
		accounts := services.NewAccounts(store, sessions, log)
		comments := services.NewComments(store, accounts, log)
		if err := comments.Recover(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to recover store: %w", err)
		}
		app.accounts = accounts
		app.comments = comments
	}

	// A previous run may have left an active session.
	sess, err := sessions.Current(ctx)
	if err != nil && !errors.Is(err, common.ErrNoActiveSession) {
		_ = store.Close()
		return nil, err
	}
	app.sess = sess

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	if a.sess != nil {
		printlnFn("Welcome back,", a.sess.Username)
	}
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.sess != nil
}

func (a *App) status() string {
	if a.sess == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.sess.Username)
}
