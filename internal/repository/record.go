package repository

import (
	"context"
	"log/slog"

	"github.com/inkform/inkform/gen/ent"
	"github.com/inkform/inkform/gen/ent/record"
	"github.com/inkform/inkform/internal/common"
	"github.com/inkform/inkform/internal/entity"
)

// RecordRepository is the single-table store of extraction results.
// Lookups return a nil record (not an error) when nothing matches;
// Update and Delete report whether any row matched.
type RecordRepository interface {
	Insert(ctx context.Context, taskID string, doc entity.FieldDoc) (int, error)
	GetByID(ctx context.Context, id int) (*entity.Record, error)
	GetByTaskID(ctx context.Context, taskID string) (*entity.Record, error)
	GetAll(ctx context.Context) ([]*entity.Record, error)
	Update(ctx context.Context, id int, doc entity.FieldDoc) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type recordRepository struct {
	client *ent.Client
	logger *slog.Logger
}

func NewRecordRepository(client *ent.Client, logger *slog.Logger) RecordRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &recordRepository{client: client, logger: logger}
}

func (r *recordRepository) Insert(ctx context.Context, taskID string, doc entity.FieldDoc) (int, error) {
	rec, err := r.client.Record.Create().
		SetTaskID(taskID).
		SetRawJSON(doc).
		Save(ctx)
	if err != nil {
		if ent.IsConstraintError(err) {
			r.logger.Error("record.insert.duplicate_task_id", "task_id", taskID)
			return 0, common.NewAppError("DUPLICATE_TASK_ID", "task_id already exists", err)
		}
		r.logger.Error("record.insert.error", "task_id", taskID, "error", err)
		return 0, common.WrapError(err, "insert record")
	}
	return rec.ID, nil
}

func (r *recordRepository) GetByID(ctx context.Context, id int) (*entity.Record, error) {
	rec, err := r.client.Record.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		r.logger.Error("record.get.error", "id", id, "error", err)
		return nil, common.WrapError(err, "get record")
	}
	return toRecord(rec), nil
}

func (r *recordRepository) GetByTaskID(ctx context.Context, taskID string) (*entity.Record, error) {
	rec, err := r.client.Record.Query().
		Where(record.TaskID(taskID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		r.logger.Error("record.get_by_task.error", "task_id", taskID, "error", err)
		return nil, common.WrapError(err, "get record by task id")
	}
	return toRecord(rec), nil
}

// GetAll returns every record, newest first. id breaks created_at ties so
// the listing order is deterministic.
func (r *recordRepository) GetAll(ctx context.Context) ([]*entity.Record, error) {
	recs, err := r.client.Record.Query().
		Order(ent.Desc(record.FieldCreatedAt), ent.Desc(record.FieldID)).
		All(ctx)
	if err != nil {
		r.logger.Error("record.list.error", "error", err)
		return nil, common.WrapError(err, "list records")
	}
	out := make([]*entity.Record, len(recs))
	for i, rec := range recs {
		out[i] = toRecord(rec)
	}
	return out, nil
}

func (r *recordRepository) Update(ctx context.Context, id int, doc entity.FieldDoc) (bool, error) {
	// updated_at refreshes via the schema's UpdateDefault.
	_, err := r.client.Record.UpdateOneID(id).
		SetRawJSON(doc).
		Save(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return false, nil
		}
		r.logger.Error("record.update.error", "id", id, "error", err)
		return false, common.WrapError(err, "update record")
	}
	return true, nil
}

func (r *recordRepository) Delete(ctx context.Context, id int) (bool, error) {
	err := r.client.Record.DeleteOneID(id).Exec(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return false, nil
		}
		r.logger.Error("record.delete.error", "id", id, "error", err)
		return false, common.WrapError(err, "delete record")
	}
	return true, nil
}

func toRecord(rec *ent.Record) *entity.Record {
	return &entity.Record{
		ID:        rec.ID,
		TaskID:    rec.TaskID,
		RawJSON:   rec.RawJSON,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
