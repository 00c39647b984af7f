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

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/joho/godotenv/autoload"

	"yahoofs/browser"
	"yahoofs/cache"
	"yahoofs/config"
	"yahoofs/fetch"
	"yahoofs/share"
	"yahoofs/stock"
	"yahoofs/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the service and serves until SIGINT/SIGTERM. Resources are
// released by its defers before main exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	var fetcher share.Fetcher
	switch cfg.FetchMode {
	case config.FetchBrowser:
		pool := browser.New(cfg.BrowserPoolSize, cfg.UserAgent, cfg.FetchTimeout, logger)
		defer pool.Shutdown()
		fetcher = pool
	default:
		fetcher = fetch.New(cfg.FetchTimeout, cfg.UserAgent)
	}

	responses := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL, logger)
	defer responses.Close()

	client := share.NewClient(fetcher, utils.NewURLBuilder(cfg.BaseURL), cfg.Anchors, cfg.ChunkDays, logger)

	router := mux.NewRouter()
	stock.NewHandler(client, responses, logger).Routes(router)

	var h http.Handler = router
	h = handlers.CompressHandler(h)
	h = handlers.CombinedLoggingHandler(os.Stdout, h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     h,
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server is running", "port", cfg.Port, "fetch_mode", cfg.FetchMode, "cache", cfg.RedisAddr != "")
	return serve(ctx, server, logger)
}

// serve runs server until it fails or ctx is done, then shuts it down.
// Listener errors come back to the caller instead of exiting.
func serve(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
