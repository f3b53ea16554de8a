package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booktracker/internal/config"
	"booktracker/internal/platform/bookapi"
	"booktracker/internal/session"
	"booktracker/internal/web"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnvFiles()
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

// sessionStore is a repository with the housekeeping the server needs.
type sessionStore struct {
	repo    session.Repository
	ping    func(ctx context.Context) error
	cleanup func(ctx context.Context, before time.Time) (int64, error)
	close   func()
}

func openStore(ctx context.Context, cfg *config.Config) (*sessionStore, error) {
	switch cfg.SessionStore {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("cannot create db pool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("cannot ping database (%s): %w", config.RedactDSN(cfg.DBDSN), err)
		}
		log.Println("database connection OK")
		repo := session.NewPostgresRepo(pool, cfg.DBTimeout)
		return &sessionStore{repo: repo, ping: repo.Ping, cleanup: repo.CleanupIdle, close: pool.Close}, nil

	case config.StoreSQLite:
		repo, err := session.OpenSQLite(cfg.SQLitePath, cfg.DBTimeout)
		if err != nil {
			return nil, err
		}
		log.Printf("session store sqlite path=%s", cfg.SQLitePath)
		return &sessionStore{repo: repo, ping: repo.Ping, cleanup: repo.CleanupIdle, close: func() { _ = repo.Close() }}, nil

	default:
		return &sessionStore{repo: session.NewMemoryRepo(), close: func() {}}, nil
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()

	shells := web.NewRegistry(web.NewShellFactory(web.ShellOptions{
		Sessions: session.NewService(store.repo),
		API: bookapi.Options{
			BaseURL:    cfg.APIBaseURL,
			Timeout:    cfg.FetchTimeout,
			MaxRetries: cfg.APIMaxRetries,
			Limiter:    bookapi.NewLimiter(cfg.APIRPS),
		},
		FetchTimeout: cfg.FetchTimeout,
	}), cfg.ShellIdleTTL, cfg.MaxShells)
	go shells.Run(ctx)
	if store.cleanup != nil {
		go cleanupSessions(ctx, store.cleanup, cfg.SessionTTL)
	}

	srv := web.NewServer(shells, web.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		SecureCookies:  cfg.SecureCookies,
		Ready:          store.ping,
	})
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2*cfg.FetchTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s api=%s store=%s", cfg.Addr, cfg.APIBaseURL, cfg.SessionStore)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// cleanupSessions drops persisted sessions of clients gone longer than ttl.
func cleanupSessions(ctx context.Context, cleanup func(context.Context, time.Time) (int64, error), ttl time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		n, err := cleanup(ctx, time.Now().Add(-ttl))
		if err != nil {
			log.Printf("session cleanup err=%v", err)
		} else if n > 0 {
			log.Printf("session cleanup removed=%d", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
