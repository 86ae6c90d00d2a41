package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkform/inkform/internal/entity"
)

// handleResult fetches an extraction result by its external task id.
func (s *Service) handleResult(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "task_id")

	rec, err := s.records.GetByTaskID(r.Context(), taskID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch result")
		return
	}
	if rec == nil {
		respondError(w, http.StatusNotFound, "Result not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"task_id":    rec.TaskID,
		"record_id":  rec.ID,
		"data":       rec.RawJSON,
		"created_at": rec.CreatedAt,
		"updated_at": rec.UpdatedAt,
	})
}

func (s *Service) handleListRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := s.records.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list records")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"records": recs,
		"count":   len(recs),
	})
}

func (s *Service) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	rec, err := s.records.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch record")
		return
	}
	if rec == nil {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// updateRecordRequest replaces the stored document wholesale.
type updateRecordRequest struct {
	RawJSON entity.FieldDoc `json:"raw_json"`
}

func (s *Service) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	var req updateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	existing, err := s.records.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch record")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	matched, err := s.records.Update(r.Context(), id, req.RawJSON)
	if err != nil || !matched {
		s.logger.Error("records.update_error", "record_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update record")
		return
	}

	updated, err := s.records.GetByID(r.Context(), id)
	if err != nil || updated == nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch record")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Service) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	matched, err := s.records.Delete(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete record")
		return
	}
	if !matched {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":   "Record deleted successfully",
		"record_id": id,
	})
}

func (s *Service) handleExportRecords(w http.ResponseWriter, r *http.Request) {
	data, err := s.exporter.ExportRecordsXLSX(r.Context())
	if err != nil {
		s.logger.Error("records.export_error", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to export records")
		return
	}

	filename := fmt.Sprintf("records-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// recordID parses the numeric path parameter; a non-numeric id can never
// match a record, so it reports not-found rather than a syntax error.
func recordID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "record_id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
