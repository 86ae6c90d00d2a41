package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/inkform/inkform/internal/entity"
)

type fakeRepo struct {
	recs []*entity.Record
	err  error
}

func (f *fakeRepo) Insert(context.Context, string, entity.FieldDoc) (int, error) {
	return 0, errors.New("not implemented")
}
func (f *fakeRepo) GetByID(context.Context, int) (*entity.Record, error)          { return nil, nil }
func (f *fakeRepo) GetByTaskID(context.Context, string) (*entity.Record, error)   { return nil, nil }
func (f *fakeRepo) GetAll(context.Context) ([]*entity.Record, error)              { return f.recs, f.err }
func (f *fakeRepo) Update(context.Context, int, entity.FieldDoc) (bool, error)    { return false, nil }
func (f *fakeRepo) Delete(context.Context, int) (bool, error)                     { return false, nil }

func TestExportRecordsXLSX(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	repo := &fakeRepo{recs: []*entity.Record{
		{
			ID:     2,
			TaskID: "task-2",
			RawJSON: entity.FieldDoc{Fields: []entity.Field{
				{Label: "Name", Value: "Ada"},
				{Label: "Date", Value: "5/1"},
			}},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{ID: 1, TaskID: "task-1", CreatedAt: now, UpdatedAt: now}, // empty document
	}}

	data, err := NewService(repo, nil).ExportRecordsXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportRecordsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Records")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// Header + two field rows + one row for the empty record.
	if len(rows) != 4 {
		t.Fatalf("rows: got %d, want 4", len(rows))
	}
	if rows[0][0] != "Record ID" || rows[0][2] != "Field Label" {
		t.Errorf("header row: got %v", rows[0])
	}
	if rows[1][1] != "task-2" || rows[1][2] != "Name" || rows[1][3] != "Ada" {
		t.Errorf("first field row: got %v", rows[1])
	}
	if rows[2][2] != "Date" || rows[2][3] != "5/1" {
		t.Errorf("second field row: got %v", rows[2])
	}
	// Empty-document record keeps its identity columns.
	if rows[3][0] != "1" || rows[3][1] != "task-1" {
		t.Errorf("empty record row: got %v", rows[3])
	}
}

func TestExportRecordsXLSXEmptyStore(t *testing.T) {
	data, err := NewService(&fakeRepo{}, nil).ExportRecordsXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportRecordsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Records")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows: got %d, want header only", len(rows))
	}
}

func TestExportRecordsXLSXStoreError(t *testing.T) {
	_, err := NewService(&fakeRepo{err: errors.New("boom")}, nil).ExportRecordsXLSX(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}
