// Command professord runs the AI professor backend API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mentor3d/professor/internal/api"
	"github.com/mentor3d/professor/internal/config"
	"github.com/mentor3d/professor/internal/effects"
	"github.com/mentor3d/professor/internal/queue"
	"github.com/mentor3d/professor/internal/storage"
	"github.com/mentor3d/professor/internal/storage/postgres"
	"github.com/mentor3d/professor/internal/storage/sqlite"
)

func main() {
	if err := run(); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	setupLogging(cfg)

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	// The queue is optional: without it, side effects apply in process.
	var publisher effects.Publisher
	var conn *queue.Connection
	var consumer *queue.Consumer
	if cfg.RabbitMQURL != "" {
		conn, err = queue.NewConnection(cfg.RabbitMQURL)
		if err != nil {
			slog.Warn("queue unavailable, applying effects in process", "error", err)
		} else {
			publisher = queue.NewProducer(conn)
			defer conn.Close()
		}
	}

	app, err := api.NewApp(ctx, api.AppConfig{
		Config:    cfg,
		Store:     store,
		Publisher: publisher,
	})
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	defer app.Close()

	if conn != nil {
		consumer = queue.NewConsumer(conn, app.Worker.Apply, queue.DefaultConsumerConfig())
		if err := consumer.Start(ctx); err != nil {
			return fmt.Errorf("start consumer: %w", err)
		}
		defer consumer.Stop()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(app),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		slog.Info("received signal, shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		close(done)
	}()

	slog.Info("server starting", "port", cfg.Port, "debug", cfg.Debug)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	slog.Info("daemon stopped")
	return nil
}

// openStore selects postgres when DATABASE_URL is set, sqlite otherwise
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		slog.Info("using postgres store")
		return postgres.NewStore(pool), nil
	}

	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	slog.Info("using sqlite store", "path", cfg.SQLitePath)
	return sqlite.NewStore(db), nil
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	if cfg.Debug {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
