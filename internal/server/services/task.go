package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/google/uuid"
)

// TaskService implements per-user task CRUD. Every lookup is scoped to
// the acting user, so a task that exists but belongs to someone else is
// indistinguishable from one that does not exist: both are
// common.ErrorNotFound.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create makes a task owned by the acting user. The owner is never taken
// from the payload; only description and completed are accepted, with
// strict type checks.
func (s *TaskService) Create(ctx context.Context, userID string, payload []byte) (*models.Task, error) {
	fields, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}

	task := &models.Task{ID: uuid.NewString(), UserID: userID}

	for key, raw := range fields {
		switch key {
		case "description":
			if err := unmarshalDescription(raw, &task.Description); err != nil {
				return nil, err
			}
		case "completed":
			if err := unmarshalCompleted(raw, &task.Completed); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: invalid field %q", common.ErrorValidation, key)
		}
	}

	if task.Description == "" {
		return nil, fmt.Errorf("%w: description is required", common.ErrorValidation)
	}

	created, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return created, nil
}

// List returns the acting user's tasks matching the query. The owner
// scope is applied in the repository regardless of query contents.
func (s *TaskService) List(ctx context.Context, userID string, q tasks.Query) ([]*models.Task, error) {
	result, err := s.repomanager.Tasks(s.db).List(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return result, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).Find(ctx, userID, taskID)
}

// Update applies a partial task update. Ownership is checked before the
// payload is even validated, and long before any write: a not-owned task
// yields 404 regardless of what the payload looks like. updated_at is
// refreshed by the same UPDATE statement that applies the change.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, payload []byte) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	task, err := repo.Find(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	fields, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}

	for key, raw := range fields {
		switch key {
		case "description":
			if err := unmarshalDescription(raw, &task.Description); err != nil {
				return nil, err
			}
		case "completed":
			if err := unmarshalCompleted(raw, &task.Completed); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: invalid update field %q", common.ErrorValidation, key)
		}
	}

	updated, err := repo.Update(ctx, task)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return updated, nil
}

// Delete removes the acting user's task and returns it.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	task, err := repo.Find(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := repo.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error deleting task: %w", err)
	}

	return task, nil
}

// --- helpers below ---

func unmarshalDescription(raw json.RawMessage, dst *string) error {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil || strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: invalid description", common.ErrorValidation)
	}
	*dst = strings.TrimSpace(v)
	return nil
}

// unmarshalCompleted rejects anything that is not a genuine JSON boolean,
// e.g. the string "not yet".
func unmarshalCompleted(raw json.RawMessage, dst *bool) error {
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: completed must be a boolean", common.ErrorValidation)
	}
	*dst = v
	return nil
}
