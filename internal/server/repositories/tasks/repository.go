package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// Find loads a task scoped to its owner. A missing task and a task
	// owned by someone else are the same ErrorNotFound.
	Find(ctx context.Context, userID, taskID string) (*models.Task, error)
	List(ctx context.Context, userID string, q Query) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
