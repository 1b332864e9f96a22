package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcmexdev/greyden-storefront/internal/cart"
	"github.com/jcmexdev/greyden-storefront/internal/catalog"
	"github.com/jcmexdev/greyden-storefront/internal/checkout"
	"github.com/jcmexdev/greyden-storefront/internal/notify"
	"github.com/jcmexdev/greyden-storefront/internal/pkg/config"
	"github.com/jcmexdev/greyden-storefront/internal/pkg/telemetry"
	"github.com/jcmexdev/greyden-storefront/internal/storefront/infra/httpx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := telemetry.InitLogger(cfg.LogLevel); err != nil {
		slog.Error("failed to initialise logger", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, telemetry.TracerConfig{
		Enabled:     cfg.TracingEnabled,
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Environment: cfg.Environment,
	})
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	menu, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		slog.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		slog.Error("failed to open cart storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			slog.Error("cart storage close error", "error", err)
		}
	}()

	notifier := notify.New()
	defer notifier.Close()

	store := cart.NewStore(storage, cart.WithKey(cfg.CartKey), cart.WithNotifier(notifier))
	restored, err := store.Restore(ctx)
	if err != nil {
		slog.Error("could not restore cart, starting empty", "error", err)
	}
	slog.Info("cart restored", "result", restored.String(), "items", store.Len())
	if at, ok := cartLastSaved(ctx, storage, cfg.CartKey); ok {
		slog.Info("cart last saved", "at", at.Format(time.RFC3339))
	}

	handler := httpx.NewHandler(menu, store, notifier, checkout.NewService(store, checkout.LogSink{}), cfg.BasePath)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(handler, cfg.BasePath),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("storefront running", "addr", cfg.HTTPAddr, "base_path", cfg.BasePath, "storage", cfg.StorageDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("storefront stopped")
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}
