package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktime/internal/core/domain"
	"tasktime/internal/core/ports"
)

const (
	loadTaskQuery = `
SELECT id, public_id, account_id, user_id, client_id, invoice_id, description,
       is_running, time_log, is_deleted, deleted_at, created_at, updated_at
FROM tasks
WHERE account_id = ? AND public_id = ?`

	insertTaskQuery = `
INSERT INTO tasks
  (public_id, account_id, user_id, client_id, invoice_id, description, is_running, time_log, is_deleted, deleted_at, created_at, updated_at)
VALUES
  (:public_id, :account_id, :user_id, :client_id, :invoice_id, :description, :is_running, :time_log, :is_deleted, :deleted_at, :created_at, :updated_at)`

	updateTaskQuery = `
UPDATE tasks SET
  client_id = :client_id,
  invoice_id = :invoice_id,
  description = :description,
  is_running = :is_running,
  time_log = :time_log,
  updated_at = :updated_at
WHERE id = :id AND account_id = :account_id`

	resolveClientQuery = `
SELECT id FROM clients
WHERE account_id = ? AND public_id = ? AND deleted_at IS NULL`
)

type TaskRepository struct {
	db *sqlx.DB
}

type taskRecord struct {
	ID          uint64         `db:"id"`
	PublicID    string         `db:"public_id"`
	AccountID   uint64         `db:"account_id"`
	UserID      uint64         `db:"user_id"`
	ClientID    sql.NullInt64  `db:"client_id"`
	InvoiceID   sql.NullInt64  `db:"invoice_id"`
	Description string         `db:"description"`
	IsRunning   bool           `db:"is_running"`
	TimeLog     domain.TimeLog `db:"time_log"`
	IsDeleted   bool           `db:"is_deleted"`
	DeletedAt   sql.NullTime   `db:"deleted_at"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ExecuteFilter(ctx context.Context, spec domain.FilterSpec) ([]domain.TaskRow, error) {
	query, args, err := compileFilter(spec)
	if err != nil {
		return nil, err
	}

	rows := []domain.TaskRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *TaskRepository) LoadTaskByPublicID(ctx context.Context, accountID uint64, publicID string, includeDeleted bool) (domain.Task, error) {
	query := loadTaskQuery
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	var record taskRecord
	if err := r.db.GetContext(ctx, &record, query, accountID, publicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, publicID)
		}
		return domain.Task{}, err
	}

	return mapTaskRecordToDomainTask(record), nil
}

func (r *TaskRepository) Persist(ctx context.Context, task *domain.Task) error {
	record := mapDomainTaskToTaskRecord(*task)

	if task.ID != 0 {
		_, err := r.db.NamedExecContext(ctx, updateTaskQuery, record)
		return err
	}

	result, err := r.db.NamedExecContext(ctx, insertTaskQuery, record)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	task.ID = uint64(id)
	return nil
}

func (r *TaskRepository) ResolveClientID(ctx context.Context, accountID uint64, clientPublicID string) (uint64, error) {
	var id uint64
	if err := r.db.GetContext(ctx, &id, resolveClientQuery, accountID, clientPublicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", domain.ErrClientNotFound, clientPublicID)
		}
		return 0, err
	}
	return id, nil
}

func mapTaskRecordToDomainTask(record taskRecord) domain.Task {
	task := domain.Task{
		ID:          record.ID,
		PublicID:    record.PublicID,
		AccountID:   record.AccountID,
		UserID:      record.UserID,
		Description: record.Description,
		IsRunning:   record.IsRunning,
		TimeLog:     record.TimeLog,
		IsDeleted:   record.IsDeleted,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}

	if record.ClientID.Valid {
		value := uint64(record.ClientID.Int64)
		task.ClientID = &value
	}

	if record.InvoiceID.Valid {
		value := uint64(record.InvoiceID.Int64)
		task.InvoiceID = &value
	}

	if record.DeletedAt.Valid {
		value := record.DeletedAt.Time
		task.DeletedAt = &value
	}

	return task
}

func mapDomainTaskToTaskRecord(task domain.Task) taskRecord {
	record := taskRecord{
		ID:          task.ID,
		PublicID:    task.PublicID,
		AccountID:   task.AccountID,
		UserID:      task.UserID,
		Description: task.Description,
		IsRunning:   task.IsRunning,
		TimeLog:     task.TimeLog,
		IsDeleted:   task.IsDeleted,
		CreatedAt:   task.CreatedAt.UTC(),
		UpdatedAt:   task.UpdatedAt.UTC(),
	}

	if task.ClientID != nil {
		record.ClientID = sql.NullInt64{Int64: int64(*task.ClientID), Valid: true}
	}

	if task.InvoiceID != nil {
		record.InvoiceID = sql.NullInt64{Int64: int64(*task.InvoiceID), Valid: true}
	}

	if task.DeletedAt != nil {
		record.DeletedAt = sql.NullTime{Time: task.DeletedAt.UTC(), Valid: true}
	}

	return record
}
