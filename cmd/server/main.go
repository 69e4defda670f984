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

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/maykapos/hotelpos/internal/auth"
	"github.com/maykapos/hotelpos/internal/cart"
	"github.com/maykapos/hotelpos/internal/config"
	"github.com/maykapos/hotelpos/internal/metrics"
	"github.com/maykapos/hotelpos/internal/middleware"
	"github.com/maykapos/hotelpos/internal/server"
	"github.com/maykapos/hotelpos/internal/service"
	"github.com/maykapos/hotelpos/internal/storage/sqlite"
	"github.com/maykapos/hotelpos/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	pinHash := cfg.AdminPINHash
	if pinHash == "" {
		hash, err := auth.HashPIN(config.DefaultAdminPIN)
		if err != nil {
			slog.Error("Failed to hash default PIN", "error", err)
			os.Exit(1)
		}
		pinHash = hash
		slog.Warn("ADMIN_PIN_HASH not set, using the default PIN")
	}
	if cfg.JWTSecret == "dev-secret-change-me" {
		slog.Warn("JWT_SECRET not set, using the development default")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	inventory := service.NewInventoryService(store)
	billing := service.NewBillingService(store, cart.New(), cfg.ReceiptWidth)
	srv := server.New(
		inventory,
		billing,
		auth.NewPINVerifier(pinHash),
		auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
	)

	mux := http.NewServeMux()
	mux.Handle("/", srv.Routes())
	mux.Handle("GET /metrics", metrics.Handler())

	handler := middleware.RequestLogger(mux)

	// h2c lets gRPC-style and plain HTTP/2 clients talk without TLS.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: h2cHandler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "address", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
