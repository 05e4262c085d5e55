package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gyeongbi/internal/amqp"
	"gyeongbi/internal/config"
	apphttp "gyeongbi/internal/http"
	"gyeongbi/internal/ledger"
	"gyeongbi/internal/pricing"
	"gyeongbi/internal/route"
	"gyeongbi/internal/store"
	"gyeongbi/internal/store/memory"
	"gyeongbi/internal/store/sqlite"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var kv store.KV
	switch cfg.StoreBackend {
	case "memory":
		kv = memory.NewStore()
		logger.Info("Initialized memory store", "backend", cfg.StoreBackend)
	default:
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		kv = repo
		logger.Info("Initialized SQLite store", "backend", cfg.StoreBackend, "path", cfg.SQLiteDBPath)
	}

	// Fuel prices: Opinet when a key is configured, constants otherwise.
	var priceProvider pricing.Provider
	if cfg.OpinetAPIKey != "" {
		priceProvider = pricing.NewOpinetClient(cfg.OpinetAPIKey)
		logger.Info("Opinet fuel price provider enabled")
	} else {
		logger.Info("No OPINET_API_KEY - serving fallback fuel prices")
	}
	resolver := pricing.NewResolver(priceProvider)

	// Routes: Naver Directions when credentials are configured, mock
	// candidates otherwise.
	var routeProvider route.Provider
	if cfg.NaverClientID != "" && cfg.NaverClientSecret != "" {
		routeProvider = route.NewNaverClient(cfg.NaverClientID, cfg.NaverClientSecret)
		logger.Info("Naver route provider enabled")
	} else {
		routeProvider = route.NewMockProvider(time.Now().UnixNano())
		logger.Info("No Naver credentials - serving mock route candidates")
	}

	l := ledger.New(kv, resolver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Keep the fuel price cache warm so requests rarely wait on Opinet.
	if priceProvider != nil {
		go func() {
			ticker := time.NewTicker(cfg.PollInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					resolver.Current(ctx)
				}
			}
		}()
	}

	// Export job queue is optional; without it the exports endpoint
	// answers 503.
	var jobs apphttp.JobPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable - export jobs disabled", "error", err)
		} else {
			defer amqpClient.Close()
			jobs = amqpClient
			logger.Info("AMQP export queue connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	srv := apphttp.NewServer(":"+cfg.Port, resolver, routeProvider, l, jobs, cfg.ExportAuthor)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting gyeongbi server", "port", cfg.Port, "backend", cfg.StoreBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
