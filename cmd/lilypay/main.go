package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lilypay/internal/auth"
	"lilypay/internal/cart"
	"lilypay/internal/catalog"
	"lilypay/internal/config"
	"lilypay/internal/database"
	"lilypay/internal/logger"
	"lilypay/internal/order"
	"lilypay/internal/report"
	"lilypay/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	log := logger.New("lilypay")
	requestID := logger.GenerateRequestID()

	log.Info("service_starting", "Starting LilyPay POS", requestID, map[string]interface{}{
		"port": cfg.HTTP.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log, requestID); err != nil {
		log.Error("service_failed", "POS service failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, requestID string) error {
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	authService := auth.NewService(db, log, cfg.Auth.BcryptCost)
	if err := authService.EnsureDefaultUsers(ctx); err != nil {
		return fmt.Errorf("failed to seed default users: %w", err)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.TokenTTL())
	catalogService := catalog.NewService(catalog.NewRepository(db), log)
	carts := cart.NewRegistry()
	orderService := order.NewService(order.NewRepository(db), log, cfg.CommitTimeout())
	reportService := report.NewService(report.NewRepository(db), log, cfg.POS.RecentOrdersLimit)

	srv := server.New(authService, tokens, catalogService, carts, orderService, reportService, db, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("LilyPay POS started on port %d", cfg.HTTP.Port), requestID, map[string]interface{}{
			"port": cfg.HTTP.Port,
		})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return httpServer.Shutdown(shutdownCtx)
}
