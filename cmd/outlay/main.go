package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"outlay/internal/config"
	"outlay/internal/httpapi"
	"outlay/internal/store"
	"outlay/internal/store/memory"
	"outlay/internal/store/postgres"
	"outlay/internal/store/sqlite"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	st, closer, err := openStore(cfg, logger)
	if err != nil {
		// An unreachable store is fatal: better to crash at startup than
		// serve 500s forever.
		logger.Fatal("failed to init store", zap.Error(err))
	}
	if closer != nil {
		defer closer()
	}

	srv := httpapi.NewServer(cfg, st, logger)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("outlay listening", zap.String("addr", cfg.ListenAddr()))
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
}

// openStore picks the backend from the connection string: empty selects the
// in-memory store, a postgres:// URL selects PostgreSQL, anything else is
// treated as a SQLite file path.
func openStore(cfg config.Config, logger *zap.Logger) (store.Store, func(), error) {
	switch {
	case cfg.DatabaseURL == "":
		logger.Info("using memory store")
		return memory.NewStore(), nil, nil

	case strings.HasPrefix(cfg.DatabaseURL, "postgres://"),
		strings.HasPrefix(cfg.DatabaseURL, "postgresql://"):
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		pg, err := postgres.NewStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("using postgres store")
		return pg, pg.Close, nil

	default:
		sq, err := sqlite.NewStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite store", zap.String("path", cfg.DatabaseURL))
		return sq, func() { _ = sq.Close() }, nil
	}
}
