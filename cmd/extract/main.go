// One-shot extraction of a local file to stdout, bypassing the HTTP layer.
// Useful for prompt and model iteration.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/inkform/inkform/internal/common"
	"github.com/inkform/inkform/internal/llm/hf"
	"github.com/inkform/inkform/internal/pipeline"
	"github.com/inkform/inkform/internal/render"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "extract <file.png|file.jpg|file.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	_ = godotenv.Load()
	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

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

	start := time.Now()
	outcome, err := processor.Process(ctx, path)
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}
	if outcome.Degraded {
		logger.Warn("extraction degraded", "path", path, "reason", outcome.Reason)
	}
	logger.Info("extraction done",
		"path", path,
		"fields", len(outcome.Doc.Fields),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcome.Doc); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}
