package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"divvy/internal/config"
	"divvy/internal/ledger"
	"divvy/internal/middleware"
	"divvy/internal/service"
	"divvy/internal/storage"
	"divvy/internal/storage/memory"
	"divvy/internal/storage/sqlite"
	"divvy/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.Store)

	// One ledger session per process; the service serializes access.
	led := ledger.New(store, cfg.LedgerKey)
	if err := led.Load(context.Background()); err != nil {
		// Persisted state is best-effort: start empty rather than fail.
		slog.Warn("Failed to load persisted ledger, starting empty", "error", err)
	}

	mux := http.NewServeMux()
	service.New(led).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	// h2c enables HTTP/2 without TLS.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "ledger_key", cfg.LedgerKey)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func newStore(cfg config.Config) (storage.Store, error) {
	if cfg.Store == "memory" {
		return memory.New(), nil
	}
	return sqlite.New(cfg.DBPath)
}
