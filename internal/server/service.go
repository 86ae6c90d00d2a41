// Package server exposes the HTTP surface: upload, result retrieval, and
// record CRUD over the store.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/inkform/inkform/internal/common"
	"github.com/inkform/inkform/internal/llm"
	"github.com/inkform/inkform/internal/repository"
)

// Processor runs one upload through render/extract/parse.
type Processor interface {
	Process(ctx context.Context, path string) (llm.Outcome, error)
}

// Exporter produces the records workbook.
type Exporter interface {
	ExportRecordsXLSX(ctx context.Context) ([]byte, error)
}

type Service struct {
	records   repository.RecordRepository
	processor Processor
	exporter  Exporter
	storage   common.StorageConfig
	logger    *slog.Logger
}

func NewService(records repository.RecordRepository, processor Processor, exporter Exporter, storage common.StorageConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		records:   records,
		processor: processor,
		exporter:  exporter,
		storage:   storage,
		logger:    logger,
	}
}

// Startup ensures the artifact directories exist. Idempotent, safe to call
// on every process start.
func (s *Service) Startup() error {
	for _, dir := range []string{s.storage.UploadDir, s.storage.ResultsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Routes builds the chi router for the whole API.
func (s *Service) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	// Allow-all: the API serves arbitrary browser frontends.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", s.handleRoot)
	r.Post("/upload", s.handleUpload)
	r.Get("/result/{task_id}", s.handleResult)

	r.Route("/records", func(r chi.Router) {
		r.Get("/", s.handleListRecords)
		r.Get("/export", s.handleExportRecords)
		r.Get("/{record_id}", s.handleGetRecord)
		r.Put("/{record_id}", s.handleUpdateRecord)
		r.Delete("/{record_id}", s.handleDeleteRecord)
	})

	return r
}

func (s *Service) handleRoot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Handwritten Form Extraction API",
		"status":  "running",
	})
}
