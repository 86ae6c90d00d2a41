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

	"github.com/joho/godotenv"

	"github.com/inkform/inkform/internal/common"
	"github.com/inkform/inkform/internal/export"
	"github.com/inkform/inkform/internal/llm/hf"
	"github.com/inkform/inkform/internal/pipeline"
	"github.com/inkform/inkform/internal/render"
	repo "github.com/inkform/inkform/internal/repository"
	svc "github.com/inkform/inkform/internal/server"
)

func main() {
	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Structured logger that outputs messages with variables but no time/level.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Inference.APIKey == "" {
		// Deliberately non-fatal: the key is a per-request configuration
		// error, so the CRUD surface stays available without it.
		logger.Warn("no inference API key configured; uploads will fail until one is set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Best-effort: a failed migration is logged, not fatal.
	if err := db.Init(ctx); err != nil {
		logger.Warn("store init failed; continuing", "error", err)
	}

	records := repo.NewRecordRepository(db.Client, logger)

	extractor := hf.NewClient(hf.Config{
		APIKey:      cfg.Inference.APIKey,
		BaseURL:     cfg.Inference.BaseURL,
		Model:       cfg.Inference.Model,
		Temperature: cfg.Inference.Temperature,
		MaxTokens:   cfg.Inference.MaxTokens,
		JPEGQuality: cfg.Render.JPEGQuality,
		Timeout:     cfg.Inference.Timeout,
	}, logger)

	renderer := render.New(render.Config{
		DPI:      cfg.Render.DPI,
		MaxPages: cfg.Render.MaxPages,
	}, logger)

	processor := pipeline.NewProcessor(renderer, extractor, logger)
	exporter := export.NewService(records, logger)

	service := svc.NewService(records, processor, exporter, cfg.Storage, logger)
	if err := service.Startup(); err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           service.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("inkform listening", "addr", cfg.Server.HTTPAddr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
