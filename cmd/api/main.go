package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	cognitopkg "github.com/jaekwang-park/taskboard/internal/cognito"
	"github.com/jaekwang-park/taskboard/internal/config"
	tbhttp "github.com/jaekwang-park/taskboard/internal/http"
	"github.com/jaekwang-park/taskboard/internal/middleware"
	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/repository"
	"github.com/jaekwang-park/taskboard/internal/service"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

// withCache wraps the task repository in the Redis read-through cache. An
// unreachable Redis at startup leaves the repository uncached.
func withCache(ctx context.Context, cfg config.RedisConfig, tasks repository.TaskRepository, logger *slog.Logger) (repository.TaskRepository, func()) {
	if !cfg.Enabled() {
		return tasks, func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, task cache disabled", "addr", cfg.Addr, "error", err)
		client.Close()
		return tasks, func() {}
	}
	logger.Info("task cache enabled", "addr", cfg.Addr, "ttl", cfg.TTL)
	return repository.NewCachedTask(tasks, client, cfg.TTL), func() { client.Close() }
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"auth_dev_mode", cfg.AuthDevMode,
		"log_level", cfg.LogLevel,
		"store", cfg.Store.Driver,
	)

	st, err := repository.OpenStores(ctx, cfg.Store.Driver, cfg.StoreDSN())
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Info("database connected", "driver", cfg.Store.Driver)

	taskRepo, closeCache := withCache(ctx, cfg.Redis, st.Tasks, logger)
	defer closeCache()

	// Services
	deriver := tasklist.Deriver{Now: time.Now, Language: cfg.CollationLocale}
	taskSvc := service.NewTaskService(taskRepo, deriver)
	svcs := tbhttp.Services{
		Tasks:       taskSvc,
		Categories:  service.NewCategoryService(st.Categories),
		Preferences: service.NewPreferencesService(st.Preferences),
		Analytics:   service.NewAnalyticsService(taskSvc),
		Store:       st.DB,
		Now:         time.Now,
	}

	// Cognito client + Auth service
	if cfg.Cognito.AppClientID != "" {
		cognitoClient, err := cognitopkg.NewAWSClient(
			ctx,
			cfg.Cognito.Region,
			cfg.Cognito.AppClientID,
			cfg.Cognito.AppClientSecret,
		)
		if err != nil {
			return err
		}
		svcs.Auth = service.NewAuthService(cognitoClient, st.Users)
		logger.Info("cognito client initialized", "region", cfg.Cognito.Region)
	} else {
		logger.Warn("cognito client not initialized: COGNITO_APP_CLIENT_ID not set")
	}

	// Auth middleware
	authCfg := middleware.AuthConfig{
		DevMode: cfg.AuthDevMode,
	}
	if !cfg.AuthDevMode {
		jwksURL := middleware.CognitoJWKSURL(cfg.Cognito.Region, cfg.Cognito.UserPoolID)
		authCfg.Keys = middleware.NewJWKSClient(jwksURL)
		authCfg.Issuer = middleware.CognitoIssuer(cfg.Cognito.Region, cfg.Cognito.UserPoolID)
		authCfg.AppClientID = cfg.Cognito.AppClientID
		authCfg.Resolver = principalResolver(svcs.Auth)
	}
	auth, err := middleware.NewAuth(authCfg)
	if err != nil {
		return fmt.Errorf("failed to create auth middleware: %w", err)
	}

	// HTTP Server
	srv := tbhttp.NewServer(cfg.ServerPort, logger, tbhttp.NewRouter(logger, auth, svcs))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

// loadConfig reads CONFIG_FILE when set, otherwise the environment alone.
func loadConfig() (config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load(), nil
}

// principalResolver maps a token subject to the local user. Subjects that
// never logged in through this service are unknown.
func principalResolver(auth *service.AuthService) middleware.ResolverFunc {
	return func(ctx context.Context, sub string) (model.Principal, error) {
		p, err := auth.ResolvePrincipal(ctx, sub)
		if errors.Is(err, service.ErrUnauthenticated) {
			return model.Principal{}, middleware.ErrUnknownSubject
		}
		return p, err
	}
}
