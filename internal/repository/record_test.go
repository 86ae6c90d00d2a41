package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/inkform/inkform/internal/common"
	"github.com/inkform/inkform/internal/entity"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, Config{DSN: filepath.Join(t.TempDir(), "records.db")}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(db.Close)
	if err := db.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return db
}

func TestRecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(openTestDB(t).Client, nil)

	doc := entity.FieldDoc{Fields: []entity.Field{
		{Label: "Name", Value: "Ada"},
		{Label: "Date", Value: "5/1"},
	}}
	id, err := repo.Insert(ctx, "task-1", doc)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	rec, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if rec == nil {
		t.Fatal("GetByID: record missing")
	}
	if rec.TaskID != "task-1" {
		t.Errorf("task_id: got %q", rec.TaskID)
	}
	if len(rec.RawJSON.Fields) != 2 || rec.RawJSON.Fields[0].Value != "Ada" {
		t.Errorf("doc: got %+v", rec.RawJSON)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	byTask, err := repo.GetByTaskID(ctx, "task-1")
	if err != nil {
		t.Fatalf("GetByTaskID: %v", err)
	}
	if byTask == nil || byTask.ID != id {
		t.Errorf("GetByTaskID: got %+v", byTask)
	}
}

func TestRecordNotFoundIsNil(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(openTestDB(t).Client, nil)

	rec, err := repo.GetByID(ctx, 999)
	if err != nil || rec != nil {
		t.Errorf("GetByID: got (%+v, %v), want (nil, nil)", rec, err)
	}
	rec, err = repo.GetByTaskID(ctx, "missing")
	if err != nil || rec != nil {
		t.Errorf("GetByTaskID: got (%+v, %v), want (nil, nil)", rec, err)
	}
}

func TestRecordDuplicateTaskID(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(openTestDB(t).Client, nil)

	if _, err := repo.Insert(ctx, "task-1", entity.FieldDoc{}); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	_, err := repo.Insert(ctx, "task-1", entity.FieldDoc{})
	if err == nil {
		t.Fatal("duplicate Insert: expected error")
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "DUPLICATE_TASK_ID" {
		t.Errorf("error: got %v, want DUPLICATE_TASK_ID AppError", err)
	}
}

func TestRecordListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(openTestDB(t).Client, nil)

	var ids []int
	for _, task := range []string{"task-1", "task-2", "task-3"} {
		id, err := repo.Insert(ctx, task, entity.FieldDoc{})
		if err != nil {
			t.Fatalf("Insert %s: %v", task, err)
		}
		ids = append(ids, id)
	}

	recs, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("records: got %d, want 3", len(recs))
	}
	// Newest first; id breaks created_at ties.
	for i, want := range []int{ids[2], ids[1], ids[0]} {
		if recs[i].ID != want {
			t.Errorf("position %d: got id %d, want %d", i, recs[i].ID, want)
		}
	}
}

func TestRecordUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(openTestDB(t).Client, nil)

	id, err := repo.Insert(ctx, "task-1", entity.FieldDoc{
		Fields: []entity.Field{{Label: "Name", Value: "Ada"}},
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	before, _ := repo.GetByID(ctx, id)

	time.Sleep(10 * time.Millisecond) // let updated_at advance
	matched, err := repo.Update(ctx, id, entity.FieldDoc{
		Fields: []entity.Field{{Label: "Name", Value: "Grace"}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !matched {
		t.Fatal("Update: no row matched")
	}

	after, _ := repo.GetByID(ctx, id)
	if after.RawJSON.Fields[0].Value != "Grace" {
		t.Errorf("value: got %q", after.RawJSON.Fields[0].Value)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("updated_at not advanced: before %v, after %v", before.UpdatedAt, after.UpdatedAt)
	}

	matched, err = repo.Update(ctx, 999, entity.FieldDoc{})
	if err != nil || matched {
		t.Errorf("Update missing: got (%v, %v), want (false, nil)", matched, err)
	}
}

func TestRecordDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(openTestDB(t).Client, nil)

	id, err := repo.Insert(ctx, "task-1", entity.FieldDoc{})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	matched, err := repo.Delete(ctx, id)
	if err != nil || !matched {
		t.Fatalf("Delete: got (%v, %v), want (true, nil)", matched, err)
	}
	rec, err := repo.GetByID(ctx, id)
	if err != nil || rec != nil {
		t.Errorf("GetByID after delete: got (%+v, %v)", rec, err)
	}

	matched, err = repo.Delete(ctx, id)
	if err != nil || matched {
		t.Errorf("second Delete: got (%v, %v), want (false, nil)", matched, err)
	}
}
