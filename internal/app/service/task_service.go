package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tasktime/internal/core/domain"
	"tasktime/internal/core/ports"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type TaskService struct {
	taskRepository ports.TaskRepository
	clock          ports.Clock
}

func NewTaskService(taskRepository ports.TaskRepository, clock ports.Clock) *TaskService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TaskService{taskRepository: taskRepository, clock: clock}
}

// Find builds the listing filter for the session account, narrowed to a client and a search text when given.
func (s *TaskService) Find(session domain.Session, clientPublicID, search string) domain.FilterSpec {
	return domain.BuildFilter(session.AccountID, clientPublicID, session.StatusFilter, search)
}

func (s *TaskService) List(ctx context.Context, session domain.Session, clientPublicID, search string) ([]domain.TaskRow, error) {
	return s.taskRepository.ExecuteFilter(ctx, s.Find(session, clientPublicID, search))
}

// Save applies the payload to an existing, loaded or new task and persists it.
// Soft-deleted tasks are returned as they are, without any write.
func (s *TaskService) Save(
	ctx context.Context,
	session domain.Session,
	publicID string,
	payload domain.SavePayload,
	existing *domain.Task,
) (domain.Task, error) {
	now := s.clock.Now()

	var task domain.Task
	switch {
	case existing != nil:
		task = *existing
	case publicID != "":
		loaded, err := s.taskRepository.LoadTaskByPublicID(ctx, session.AccountID, publicID, true)
		if err != nil {
			return domain.Task{}, err
		}
		task = loaded
	default:
		task = domain.Task{
			PublicID:  uuid.NewString(),
			AccountID: session.AccountID,
			UserID:    session.UserID,
			CreatedAt: now,
		}
	}

	if task.IsDeleted {
		return task, nil
	}

	var clientID *uint64
	if payload.Client != nil && *payload.Client != "" {
		resolved, err := s.taskRepository.ResolveClientID(ctx, session.AccountID, *payload.Client)
		if err != nil {
			if errors.Is(err, domain.ErrClientNotFound) {
				return domain.Task{}, fmt.Errorf("%w: client %q", domain.ErrInvalidReference, *payload.Client)
			}
			return domain.Task{}, fmt.Errorf("resolve client %q: %w", *payload.Client, err)
		}
		clientID = &resolved
	}

	updated := task
	if payload.TimeLog != nil {
		if err := domain.ReplaceTimeLog(&updated, *payload.TimeLog); err != nil {
			return domain.Task{}, err
		}
	} else {
		// Stored logs are only reordered. An open interval that sorts before a closed one
		// stays open, and a later stop closes whichever interval ends up last.
		updated.TimeLog = domain.Canonicalize(task.TimeLog)
		if err := updated.TimeLog.Validate(); err != nil {
			zap.L().Warn("stored time log is inconsistent", zap.String("public_id", updated.PublicID), zap.Error(err))
		}
	}

	if clientID != nil {
		updated.ClientID = clientID
	}
	if payload.Description != nil {
		updated.Description = strings.TrimSpace(*payload.Description)
	}

	domain.ApplyAction(&updated, payload.Action, now.Unix())
	updated.UpdatedAt = now

	if err := s.taskRepository.Persist(ctx, &updated); err != nil {
		zap.L().Error("failed to persist task", zap.String("public_id", updated.PublicID), zap.Error(err))
		return domain.Task{}, fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
	}

	zap.L().Debug("task saved",
		zap.String("public_id", updated.PublicID),
		zap.String("action", string(payload.Action)),
		zap.Bool("is_running", updated.IsRunning),
	)
	return updated, nil
}

var _ ports.TaskService = (*TaskService)(nil)
