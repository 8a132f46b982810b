package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/callsecure/internal/client/config"
	"github.com/dmitrijs2005/callsecure/internal/client/dashboard"
	"github.com/dmitrijs2005/callsecure/internal/client/models"
	"github.com/dmitrijs2005/callsecure/internal/client/services"
	"github.com/dmitrijs2005/callsecure/internal/client/storage"
	"github.com/dmitrijs2005/callsecure/internal/filex"
	"github.com/dmitrijs2005/callsecure/internal/logging"
)

type App struct {
	config      *config.Config
	store       storage.Storage
	authService services.AuthService
	logger      logging.Logger

	loggedIn bool
	user     *models.UserRecord
	board    *dashboard.State

	// values of the last rejected sign-up, offered again on retry
	draft models.RegisterForm

	reader *bufio.Reader
	out    io.Writer
}

// resolveDSN places a relative sqlite database file inside the data directory.
func resolveDSN(c *config.Config) (string, error) {
	if c.StorageDriver != storage.DriverSQLite {
		return c.DatabaseDSN, nil
	}
	return filex.PathIn(c.DataDir, c.DatabaseDSN)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel).With("session_id", uuid.NewString())

	dsn, err := resolveDSN(c)
	if err != nil {
		return nil, fmt.Errorf("error resolving database path: %w", err)
	}

	store, err := storage.Open(ctx, c.StorageDriver, dsn)
	if err != nil {
		logger.Error(ctx, "error initializing storage", "driver", c.StorageDriver, "error", err)
		return nil, err
	}
	logger.Debug(ctx, "storage opened", "driver", c.StorageDriver)

	as := services.NewAuthService(store, logger, c.SuccessDelay)

	return &App{
		config:      c,
		store:       store,
		authService: as,
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run restores a remembered session if there is one and then runs the REPL
// until the user exits. Storage is closed on return.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.logger.Warn(ctx, "error closing storage", "error", err)
		}
	}()

	printlnFn("Welcome to CallSecure (type 'help' for commands)")

	if a.restoreSession(ctx) {
		_ = a.Dashboard(ctx)
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// restoreSession enters the authenticated state when a session was
// remembered on a previous run. The session is not checked against the
// stored users.
func (a *App) restoreSession(ctx context.Context) bool {
	if !a.authService.IsRemembered(ctx) {
		return false
	}

	user, err := a.authService.RememberedUser(ctx)
	if err != nil {
		a.logger.Warn(ctx, "remembered session is unreadable", "error", err)
		user = nil
	}
	a.enter(user)
	return true
}

func (a *App) enter(user *models.UserRecord) {
	a.loggedIn = true
	a.user = user
	a.board = dashboard.NewState()
}

func (a *App) leave() {
	a.loggedIn = false
	a.user = nil
	a.board = nil
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) status() string {
	if !a.loggedIn {
		return "guest"
	}
	if a.user == nil {
		return "remembered"
	}
	return a.user.Username
}
