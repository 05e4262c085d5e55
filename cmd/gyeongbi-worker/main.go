package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"gyeongbi/internal/amqp"
	"gyeongbi/internal/config"
	"gyeongbi/internal/export"
	"gyeongbi/internal/export/sheets"
	"gyeongbi/internal/ledger"
	"gyeongbi/internal/pricing"
	"gyeongbi/internal/store"
	"gyeongbi/internal/store/memory"
	"gyeongbi/internal/store/sqlite"
	"gyeongbi/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting gyeongbi-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var kv store.KV
	switch cfg.StoreBackend {
	case "memory":
		kv = memory.NewStore()
	default:
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		kv = repo
	}

	// The worker only reads confirmed records, so prices resolve from
	// constants; no provider needed.
	l := ledger.New(kv, pricing.NewResolver(nil))

	renderers := []export.Renderer{
		export.CSVRenderer{},
		&export.PDFRenderer{FontPath: cfg.ExportPDFFont},
	}

	// Google Sheets export target (optional)
	var publisher export.Publisher
	if cfg.GoogleSpreadsheetID != "" {
		client, err := sheets.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		publisher = client
		logger.Info("Google Sheets export target initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exportWorker := worker.NewExportWorker(l, renderers, publisher, cfg.ExportOutputDir)

	go func() {
		err := amqpClient.ConsumeExportJobs(ctx, func(msg *amqp.ExportJobMessage) error {
			return exportWorker.HandleExportJob(ctx, msg)
		})
		if err != nil && err != context.Canceled {
			logger.Error("Message consumption failed", "error", err)
		}
		cancel()
	}()

	logger.Info("Worker ready", "queue", cfg.AMQPQueue, "output_dir", cfg.ExportOutputDir)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	case <-ctx.Done():
	}

	logger.Info("Worker stopped gracefully")
}
