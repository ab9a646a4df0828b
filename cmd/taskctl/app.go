package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	cognitopkg "github.com/jaekwang-park/taskboard/internal/cognito"
	"github.com/jaekwang-park/taskboard/internal/config"
	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/repository"
	"github.com/jaekwang-park/taskboard/internal/service"
	"github.com/jaekwang-park/taskboard/internal/session"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

var errNotLoggedIn = errors.New("not logged in: run 'taskctl login' or pass --user")

type options struct {
	configPath  string
	sessionPath string
	user        string
	verbose     bool
}

// app holds everything a command needs. It is populated by setup before any
// command runs.
type app struct {
	opts   options
	out    io.Writer
	errOut io.Writer

	cfg      config.Config
	logger   *slog.Logger
	stores   repository.Stores
	sessions *session.FileStore
	session  *session.Session

	tasks       *service.TaskService
	board       *service.Board
	preferences *service.PreferencesService
	analytics   *service.AnalyticsService

	// newIdentityClient is replaced in tests.
	newIdentityClient func(ctx context.Context, cfg config.CognitoConfig) (cognitopkg.Client, error)
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:               out,
		errOut:            errOut,
		newIdentityClient: awsIdentityClient,
	}
}

func awsIdentityClient(ctx context.Context, cfg config.CognitoConfig) (cognitopkg.Client, error) {
	if cfg.AppClientID == "" {
		return nil, errors.New("COGNITO_APP_CLIENT_ID is not configured")
	}
	return cognitopkg.NewAWSClient(ctx, cfg.Region, cfg.AppClientID, cfg.AppClientSecret)
}

func (a *app) setup(ctx context.Context) error {
	level := slog.LevelWarn
	if a.opts.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateStore(); err != nil {
		return err
	}
	a.cfg = cfg

	a.stores, err = repository.OpenStores(ctx, cfg.Store.Driver, cfg.StoreDSN())
	if err != nil {
		return err
	}
	a.logger.Debug("store opened", "driver", cfg.Store.Driver)

	path := a.opts.sessionPath
	if path == "" {
		if path, err = session.DefaultPath(); err != nil {
			return err
		}
	}
	a.sessions = session.NewFileStore(path)
	a.session = session.New()
	if err := a.restoreSession(ctx); err != nil {
		return err
	}

	a.tasks = service.NewTaskService(a.stores.Tasks, tasklist.Deriver{Now: time.Now, Language: cfg.CollationLocale})
	a.board = service.NewBoard(a.tasks, a.session, service.WithNotifier(service.NotifierFunc(a.notify)))
	a.preferences = service.NewPreferencesService(a.stores.Preferences)
	a.analytics = service.NewAnalyticsService(a.tasks)
	return nil
}

func (a *app) loadConfig() (config.Config, error) {
	if a.opts.configPath != "" {
		return config.LoadFile(a.opts.configPath)
	}
	return config.Load(), nil
}

// restoreSession signs in the --user principal when given, otherwise the one
// saved by the last login.
func (a *app) restoreSession(ctx context.Context) error {
	if a.opts.user != "" {
		return a.session.SignIn(model.Principal{ID: a.opts.user}, session.Tokens{})
	}
	if err := session.Restore(ctx, a.session, a.sessions); err != nil {
		a.logger.Warn("saved session unreadable, continuing signed out", "path", a.sessions.Path(), "error", err)
	}
	return nil
}

func (a *app) authService(ctx context.Context) (*service.AuthService, error) {
	client, err := a.newIdentityClient(ctx, a.cfg.Cognito)
	if err != nil {
		return nil, err
	}
	return service.NewAuthService(client, a.stores.Users), nil
}

func (a *app) principal() (model.Principal, error) {
	p, ok := a.session.Principal()
	if !ok {
		return model.Principal{}, errNotLoggedIn
	}
	return p, nil
}

func (a *app) notify(n service.Notice) {
	mark := "ok"
	if n.Kind == service.NoticeError {
		mark = "error"
	}
	fmt.Fprintf(a.errOut, "[%s] %s\n", mark, n.Message)
	if n.Err != nil {
		a.logger.Debug("notice", "message", n.Message, "error", n.Err)
	}
}

func (a *app) close() {
	if err := a.stores.Close(); err != nil && a.logger != nil {
		a.logger.Warn("failed to close store", "error", err)
	}
}
