package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/inkform/inkform/internal/common"
	"github.com/inkform/inkform/internal/entity"
	"github.com/inkform/inkform/internal/llm"
)

// fakeRecordRepository is an in-memory stand-in for the ent-backed store.
type fakeRecordRepository struct {
	nextID  int
	records map[int]*entity.Record
}

func newFakeRepo() *fakeRecordRepository {
	return &fakeRecordRepository{nextID: 1, records: map[int]*entity.Record{}}
}

func (f *fakeRecordRepository) Insert(_ context.Context, taskID string, doc entity.FieldDoc) (int, error) {
	for _, r := range f.records {
		if r.TaskID == taskID {
			return 0, errors.New("task_id already exists")
		}
	}
	id := f.nextID
	f.nextID++
	now := time.Now()
	f.records[id] = &entity.Record{ID: id, TaskID: taskID, RawJSON: doc, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeRecordRepository) GetByID(_ context.Context, id int) (*entity.Record, error) {
	return f.records[id], nil
}

func (f *fakeRecordRepository) GetByTaskID(_ context.Context, taskID string) (*entity.Record, error) {
	for _, r := range f.records {
		if r.TaskID == taskID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecordRepository) GetAll(_ context.Context) ([]*entity.Record, error) {
	out := make([]*entity.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeRecordRepository) Update(_ context.Context, id int, doc entity.FieldDoc) (bool, error) {
	r, ok := f.records[id]
	if !ok {
		return false, nil
	}
	r.RawJSON = doc
	r.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeRecordRepository) Delete(_ context.Context, id int) (bool, error) {
	if _, ok := f.records[id]; !ok {
		return false, nil
	}
	delete(f.records, id)
	return true, nil
}

type stubProcessor struct {
	outcome llm.Outcome
	err     error
	paths   []string
}

func (s *stubProcessor) Process(_ context.Context, path string) (llm.Outcome, error) {
	s.paths = append(s.paths, path)
	return s.outcome, s.err
}

type stubExporter struct {
	data []byte
	err  error
}

func (s *stubExporter) ExportRecordsXLSX(context.Context) ([]byte, error) {
	return s.data, s.err
}

func newTestService(t *testing.T, proc *stubProcessor, exp *stubExporter) (*Service, *fakeRecordRepository) {
	t.Helper()
	repo := newFakeRepo()
	storage := common.StorageConfig{
		UploadDir:  filepath.Join(t.TempDir(), "uploads"),
		ResultsDir: filepath.Join(t.TempDir(), "results"),
	}
	svc := NewService(repo, proc, exp, storage, nil)
	if err := svc.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	return svc, repo
}

func do(t *testing.T, svc *Service, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	svc.Routes().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response %q: %v", rr.Body.String(), err)
	}
	return body
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestRoot(t *testing.T) {
	svc, _ := newTestService(t, &stubProcessor{}, &stubExporter{})
	rr := do(t, svc, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["status"] != "running" {
		t.Errorf("status field: got %v", body["status"])
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	svc, _ := newTestService(t, &stubProcessor{}, &stubExporter{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://example.com")
	rr := do(t, svc, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin: got %q, want *", got)
	}

	// Preflight for the update route.
	pre := httptest.NewRequest(http.MethodOptions, "/records/1", nil)
	pre.Header.Set("Origin", "http://example.com")
	pre.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr = do(t, svc, pre)
	if rr.Code != http.StatusOK {
		t.Fatalf("preflight status: got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPut) {
		t.Errorf("allow-methods: got %q, want PUT included", got)
	}
}

func TestUploadSuccess(t *testing.T) {
	proc := &stubProcessor{outcome: llm.OK(entity.FieldDoc{
		Fields: []entity.Field{{Label: "Name", Value: "Ada"}},
	})}
	svc, repo := newTestService(t, proc, &stubExporter{})

	buf, ctype := multipartUpload(t, "form.png", []byte("png bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", ctype)

	rr := do(t, svc, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["status"] != "success" {
		t.Errorf("status: got %v", body["status"])
	}
	taskID, _ := body["task_id"].(string)
	if taskID == "" {
		t.Fatal("missing task_id")
	}

	rec, _ := repo.GetByTaskID(context.Background(), taskID)
	if rec == nil {
		t.Fatal("record not inserted")
	}
	if len(rec.RawJSON.Fields) != 1 || rec.RawJSON.Fields[0].Value != "Ada" {
		t.Errorf("stored doc: got %+v", rec.RawJSON)
	}

	// Upload and result artifacts land on disk under the task id.
	if _, err := os.Stat(filepath.Join(svc.storage.UploadDir, taskID+".png")); err != nil {
		t.Errorf("upload artifact: %v", err)
	}
	resultBytes, err := os.ReadFile(filepath.Join(svc.storage.ResultsDir, taskID+".json"))
	if err != nil {
		t.Fatalf("result artifact: %v", err)
	}
	var doc entity.FieldDoc
	if err := json.Unmarshal(resultBytes, &doc); err != nil {
		t.Fatalf("result artifact decode: %v", err)
	}
	if len(doc.Fields) != 1 {
		t.Errorf("result fields: got %d", len(doc.Fields))
	}
	if len(proc.paths) != 1 || !strings.HasSuffix(proc.paths[0], taskID+".png") {
		t.Errorf("processor path: got %v", proc.paths)
	}
}

func TestUploadNoFile(t *testing.T) {
	svc, _ := newTestService(t, &stubProcessor{}, &stubExporter{})
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	rr := do(t, svc, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
	if decodeBody(t, rr)["detail"] != "No file provided" {
		t.Errorf("detail: got %v", decodeBody(t, rr)["detail"])
	}
}

func TestUploadInvalidExtension(t *testing.T) {
	svc, repo := newTestService(t, &stubProcessor{}, &stubExporter{})

	buf, ctype := multipartUpload(t, "notes.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", ctype)

	rr := do(t, svc, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
	if decodeBody(t, rr)["detail"] != "Invalid file type. Allowed: .png, .jpg, .jpeg, .pdf" {
		t.Errorf("detail: got %v", decodeBody(t, rr)["detail"])
	}
	if len(repo.records) != 0 {
		t.Errorf("records inserted for rejected upload: %d", len(repo.records))
	}
}

func TestUploadProcessorConfigError(t *testing.T) {
	proc := &stubProcessor{err: errors.New("inference API key not found")}
	svc, repo := newTestService(t, proc, &stubExporter{})

	buf, ctype := multipartUpload(t, "form.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", ctype)

	rr := do(t, svc, req)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rr.Code)
	}
	detail, _ := decodeBody(t, rr)["detail"].(string)
	if !strings.HasPrefix(detail, "Processing error: ") {
		t.Errorf("detail: got %q", detail)
	}
	if len(repo.records) != 0 {
		t.Errorf("records inserted despite processing error: %d", len(repo.records))
	}
}

func TestUploadDegradedStillStored(t *testing.T) {
	proc := &stubProcessor{outcome: llm.Degrade(llm.ReasonNoJSON,
		entity.Field{Label: "Raw AI Response", Value: "garbage"},
	)}
	svc, repo := newTestService(t, proc, &stubExporter{})

	buf, ctype := multipartUpload(t, "form.jpg", []byte("jpg bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", ctype)

	rr := do(t, svc, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	if len(repo.records) != 1 {
		t.Fatalf("records: got %d, want 1", len(repo.records))
	}
}

func TestResultFound(t *testing.T) {
	svc, repo := newTestService(t, &stubProcessor{}, &stubExporter{})
	doc := entity.FieldDoc{Fields: []entity.Field{{Label: "Name", Value: "Ada"}}}
	id, _ := repo.Insert(context.Background(), "task-1", doc)

	rr := do(t, svc, httptest.NewRequest(http.MethodGet, "/result/task-1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["task_id"] != "task-1" {
		t.Errorf("task_id: got %v", body["task_id"])
	}
	if int(body["record_id"].(float64)) != id {
		t.Errorf("record_id: got %v", body["record_id"])
	}
}

func TestResultNotFound(t *testing.T) {
	svc, _ := newTestService(t, &stubProcessor{}, &stubExporter{})
	rr := do(t, svc, httptest.NewRequest(http.MethodGet, "/result/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", rr.Code)
	}
	if decodeBody(t, rr)["detail"] != "Result not found" {
		t.Errorf("detail: got %v", decodeBody(t, rr)["detail"])
	}
}

func TestListRecords(t *testing.T) {
	svc, repo := newTestService(t, &stubProcessor{}, &stubExporter{})
	_, _ = repo.Insert(context.Background(), "task-1", entity.FieldDoc{})
	_, _ = repo.Insert(context.Background(), "task-2", entity.FieldDoc{})

	rr := do(t, svc, httptest.NewRequest(http.MethodGet, "/records/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if int(body["count"].(float64)) != 2 {
		t.Errorf("count: got %v", body["count"])
	}
}

func TestGetRecordNotFound(t *testing.T) {
	svc, _ := newTestService(t, &stubProcessor{}, &stubExporter{})
	for _, path := range []string{"/records/99", "/records/abc"} {
		rr := do(t, svc, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusNotFound {
			t.Errorf("%s: status got %d, want 404", path, rr.Code)
		}
	}
}

func TestUpdateRecord(t *testing.T) {
	svc, repo := newTestService(t, &stubProcessor{}, &stubExporter{})
	id, _ := repo.Insert(context.Background(), "task-1", entity.FieldDoc{
		Fields: []entity.Field{{Label: "Name", Value: "Ada"}},
	})

	payload := `{"raw_json":{"fields":[{"label":"Name","value":"Grace"}]}}`
	req := httptest.NewRequest(http.MethodPut, "/records/1", strings.NewReader(payload))
	rr := do(t, svc, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}

	rec, _ := repo.GetByID(context.Background(), id)
	if rec.RawJSON.Fields[0].Value != "Grace" {
		t.Errorf("stored value: got %q", rec.RawJSON.Fields[0].Value)
	}
}

func TestUpdateRecordInvalidBody(t *testing.T) {
	svc, repo := newTestService(t, &stubProcessor{}, &stubExporter{})
	_, _ = repo.Insert(context.Background(), "task-1", entity.FieldDoc{})

	req := httptest.NewRequest(http.MethodPut, "/records/1", strings.NewReader("{not json"))
	rr := do(t, svc, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
	if decodeBody(t, rr)["detail"] != "Invalid request body" {
		t.Errorf("detail: got %v", decodeBody(t, rr)["detail"])
	}
}

func TestUpdateRecordNotFound(t *testing.T) {
	svc, _ := newTestService(t, &stubProcessor{}, &stubExporter{})
	req := httptest.NewRequest(http.MethodPut, "/records/42", strings.NewReader(`{"raw_json":{"fields":[]}}`))
	rr := do(t, svc, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", rr.Code)
	}
}

func TestDeleteRecord(t *testing.T) {
	svc, repo := newTestService(t, &stubProcessor{}, &stubExporter{})
	_, _ = repo.Insert(context.Background(), "task-1", entity.FieldDoc{})

	rr := do(t, svc, httptest.NewRequest(http.MethodDelete, "/records/1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if decodeBody(t, rr)["message"] != "Record deleted successfully" {
		t.Errorf("message: got %v", decodeBody(t, rr)["message"])
	}

	rr = do(t, svc, httptest.NewRequest(http.MethodDelete, "/records/1", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete status: got %d, want 404", rr.Code)
	}
}

func TestExportRecords(t *testing.T) {
	exp := &stubExporter{data: []byte("PK workbook")}
	svc, _ := newTestService(t, &stubProcessor{}, exp)

	rr := do(t, svc, httptest.NewRequest(http.MethodGet, "/records/export", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type: got %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, ".xlsx") {
		t.Errorf("content disposition: got %q", cd)
	}
	got, _ := io.ReadAll(rr.Body)
	if !bytes.Equal(got, exp.data) {
		t.Errorf("body: got %q", got)
	}
}

func TestExportRecordsError(t *testing.T) {
	svc, _ := newTestService(t, &stubProcessor{}, &stubExporter{err: errors.New("boom")})
	rr := do(t, svc, httptest.NewRequest(http.MethodGet, "/records/export", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rr.Code)
	}
}
