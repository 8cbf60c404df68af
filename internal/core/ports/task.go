package ports

import (
	"context"
	"time"

	"tasktime/internal/core/domain"
)

type TaskRepository interface {
	ExecuteFilter(ctx context.Context, spec domain.FilterSpec) ([]domain.TaskRow, error)
	LoadTaskByPublicID(ctx context.Context, accountID uint64, publicID string, includeDeleted bool) (domain.Task, error)
	// Persist inserts the task when its ID is zero and updates it otherwise.
	Persist(ctx context.Context, task *domain.Task) error
	ClientResolver
}

// ClientResolver maps a client public id to its internal key within an account.
type ClientResolver interface {
	ResolveClientID(ctx context.Context, accountID uint64, clientPublicID string) (uint64, error)
}

type Clock interface {
	Now() time.Time
}

type TaskService interface {
	List(ctx context.Context, session domain.Session, clientPublicID, search string) ([]domain.TaskRow, error)
	Save(ctx context.Context, session domain.Session, publicID string, payload domain.SavePayload, existing *domain.Task) (domain.Task, error)
}
