package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/inkform/inkform/constants"
	"github.com/inkform/inkform/internal/llm/hf"
)

// handleUpload accepts a multipart file, validates its extension, persists
// the raw bytes under a fresh task id, runs extraction, and stores the
// resulting field document both on disk and in the record store.
func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	ext := filepath.Ext(header.Filename)
	if !constants.IsAllowedExt(ext) {
		respondError(w, http.StatusBadRequest, "Invalid file type. Allowed: .png, .jpg, .jpeg, .pdf")
		return
	}

	taskID := uuid.New().String()
	uploadPath := filepath.Join(s.storage.UploadDir, taskID+"."+constants.NormalizeExt(ext))

	dst, err := os.Create(uploadPath)
	if err != nil {
		s.logger.Error("upload.save_error", "task_id", taskID, "error", err)
		respondError(w, http.StatusInternalServerError, "Processing error: could not save upload")
		return
	}
	_, err = io.Copy(dst, file)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.logger.Error("upload.save_error", "task_id", taskID, "error", err)
		respondError(w, http.StatusInternalServerError, "Processing error: could not save upload")
		return
	}

	s.logger.Info("upload.received",
		"task_id", taskID,
		"filename", header.Filename,
		"bytes", header.Size,
	)

	outcome, err := s.processor.Process(r.Context(), uploadPath)
	if err != nil {
		// Configuration-class failure (e.g. missing API key); distinct from
		// the in-band degraded path.
		status := http.StatusInternalServerError
		if errors.Is(err, hf.ErrMissingAPIKey) {
			s.logger.Error("upload.config_error", "task_id", taskID, "error", err)
		} else {
			s.logger.Error("upload.process_error", "task_id", taskID, "error", err)
		}
		respondError(w, status, "Processing error: "+err.Error())
		return
	}
	if outcome.Degraded {
		s.logger.Warn("upload.extraction_degraded", "task_id", taskID, "reason", outcome.Reason)
	}

	// Result document on disk, independent of the store copy.
	resultPath := filepath.Join(s.storage.ResultsDir, taskID+".json")
	doc, err := json.MarshalIndent(outcome.Doc, "", "  ")
	if err == nil {
		err = os.WriteFile(resultPath, doc, 0o644)
	}
	if err != nil {
		s.logger.Error("upload.result_write_error", "task_id", taskID, "error", err)
		respondError(w, http.StatusInternalServerError, "Processing error: could not persist result")
		return
	}

	recordID, err := s.records.Insert(r.Context(), taskID, outcome.Doc)
	if err != nil {
		s.logger.Error("upload.insert_error", "task_id", taskID, "error", err)
		respondError(w, http.StatusInternalServerError, "Processing error: could not store record")
		return
	}

	s.logger.Info("upload.done",
		"task_id", taskID,
		"record_id", recordID,
		"fields", len(outcome.Doc.Fields),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	respondJSON(w, http.StatusOK, map[string]any{
		"task_id":   taskID,
		"record_id": recordID,
		"status":    "success",
		"message":   "File uploaded and processed successfully",
	})
}
