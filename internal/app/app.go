// Package app assembles the service from configuration. Every entrypoint
// (HTTP server, serverless functions, MCP) builds through here so they share
// one set of defaults.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"ytm-service/internal/config"
	"ytm-service/internal/credential"
	"ytm-service/internal/limiter"
	"ytm-service/internal/logging"
	"ytm-service/internal/ytm"
	"ytm-service/internal/ytmusic"
)

const migrateTimeout = 5 * time.Second

// App holds the wired service and the connections it owns.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Service *ytm.Service
	Server  *ytm.Server

	closers []func()
}

// New wires the limiter, credential materializer and upstream client, plus
// Redis and Postgres when their URLs are configured. An unreachable Postgres
// only disables the audit log.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, Logger: logger}

	lim := limiter.New(map[string]int64{
		ytm.CounterSearch:      int64(cfg.SearchRateLimit),
		ytm.CounterPlaylistAdd: int64(cfg.PlaylistRateLimit),
	})
	creds := credential.New(cfg.CredentialBlob, cfg.CredentialPath, logging.WithComponent(logger, "credential"))

	clientLogger := logging.WithComponent(logger, "ytmusic")
	factory := func(path string) (ytm.Client, error) {
		c, err := ytmusic.NewFromFile(path, ytmusic.Options{
			BaseURL:      cfg.APIBaseURL,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Logger:       clientLogger,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	opts := []ytm.Option{ytm.WithLogger(logging.WithComponent(logger, "ytm"))}

	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opt)
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		opts = append(opts,
			ytm.WithSearchCache(ytm.NewRedisSearchCache(rdb, cfg.SearchCacheTTL)),
			ytm.WithEventPublisher(ytm.NewRedisPublisher(rdb, cfg.EventsChannel)),
		)
	}

	if cfg.DatabaseURL != "" {
		if audit, closeFn, err := openAuditLog(ctx, cfg.DatabaseURL); err != nil {
			logger.Warn("audit log disabled", "err", err)
		} else {
			a.closers = append(a.closers, closeFn)
			opts = append(opts, ytm.WithAuditLog(audit))
		}
	}

	a.Service = ytm.NewService(lim, creds, factory, opts...)
	a.Server = ytm.NewServer(a.Service, cfg.MaxBodyBytes)
	return a, nil
}

// openAuditLog connects and migrates the audit table. The audit log is
// optional, so callers run without it when this fails.
func openAuditLog(ctx context.Context, dsn string) (ytm.AuditLog, func(), error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("pg: %w", err)
	}
	mctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()
	if err := ytm.AutoMigrate(mctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return ytm.NewPostgresAuditLog(pool), pool.Close, nil
}

// Close releases connections in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

var (
	processMu  sync.Mutex
	processApp *App
)

// Process returns the App for this process, building it from the environment
// on first use. Serverless functions call it on every invocation; the limiter
// state therefore lives as long as the function instance. A failed build is
// not remembered, the next call tries again.
func Process() (*App, error) {
	processMu.Lock()
	defer processMu.Unlock()
	if processApp != nil {
		return processApp, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	a, err := New(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}
	processApp = a
	return a, nil
}

// Endpoint adapts one of the server's handlers for a serverless function.
// Startup failures are reported as 500 on every call.
func Endpoint(pick func(*ytm.Server) http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := Process()
		if err != nil {
			slog.Error("ytm-service startup failed", "err", err)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"server misconfigured"}`))
			return
		}
		pick(a.Server)(w, r)
	}
}
