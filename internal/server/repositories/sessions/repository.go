package sessions

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository stores the active-token list: one row per issued bearer
// token that has not been revoked.
type Repository interface {
	Create(ctx context.Context, userID string, token string) error
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
