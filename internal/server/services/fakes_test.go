package services

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

// memStore is an in-memory substitute for the database, shared by the
// fake repositories below.
type memStore struct {
	users    map[string]*models.User
	sessions map[string]*models.Session
	tasks    map[string]*models.Task
	seq      int
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*models.User),
		sessions: make(map[string]*models.Session),
		tasks:    make(map[string]*models.Task),
	}
}

type fakeRepoManager struct {
	store *memStore
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository {
	return &fakeUsersRepo{store: m.store}
}

func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessions.Repository {
	return &fakeSessionsRepo{store: m.store}
}

func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasks.Repository {
	return &fakeTasksRepo{store: m.store}
}

type fakeUsersRepo struct {
	store *memStore
}

func (r *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u := *user
	u.CreatedAt = time.Now()
	r.store.users[u.ID] = &u
	copied := u
	return &copied, nil
}

func (r *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUsersRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return common.ErrorNotFound
	}
	for id, u := range r.store.users {
		if id != user.ID && u.Email == user.Email {
			return common.ErrorAlreadyExists
		}
	}
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.store.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.store.users, id)
	return nil
}

type fakeSessionsRepo struct {
	store *memStore
}

func (r *fakeSessionsRepo) Create(ctx context.Context, userID string, token string) error {
	r.store.seq++
	r.store.sessions[token] = &models.Session{
		ID:        string(rune('a' + r.store.seq)),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *fakeSessionsRepo) Find(ctx context.Context, token string) (*models.Session, error) {
	s, ok := r.store.sessions[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionsRepo) Delete(ctx context.Context, token string) error {
	if _, ok := r.store.sessions[token]; !ok {
		return common.ErrorNotFound
	}
	delete(r.store.sessions, token)
	return nil
}

func (r *fakeSessionsRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	for token, s := range r.store.sessions {
		if s.UserID == userID {
			delete(r.store.sessions, token)
		}
	}
	return nil
}

type fakeTasksRepo struct {
	store *memStore
}

func (r *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	t := *task
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.store.tasks[t.ID] = &t
	copied := t
	return &copied, nil
}

func (r *fakeTasksRepo) Find(ctx context.Context, userID, taskID string) (*models.Task, error) {
	t, ok := r.store.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTasksRepo) List(ctx context.Context, userID string, q tasks.Query) ([]*models.Task, error) {
	result := make([]*models.Task, 0)
	for _, t := range r.store.tasks {
		if t.UserID != userID {
			continue
		}
		if q.Completed != nil && t.Completed != *q.Completed {
			continue
		}
		copied := *t
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		var less bool
		switch q.SortBy {
		case "description":
			less = result[i].Description < result[j].Description
		case "completed":
			less = !result[i].Completed && result[j].Completed
		case "updated_at":
			less = result[i].UpdatedAt.Before(result[j].UpdatedAt)
		default:
			less = result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		if q.Desc {
			return !less
		}
		return less
	})

	if q.Skip > 0 {
		if q.Skip >= len(result) {
			return []*models.Task{}, nil
		}
		result = result[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(result) {
		result = result[:q.Limit]
	}

	return result, nil
}

func (r *fakeTasksRepo) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	existing, ok := r.store.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return nil, common.ErrorNotFound
	}
	t := *task
	t.UpdatedAt = time.Now()
	r.store.tasks[t.ID] = &t
	copied := t
	return &copied, nil
}

func (r *fakeTasksRepo) Delete(ctx context.Context, userID, taskID string) error {
	t, ok := r.store.tasks[taskID]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.store.tasks, taskID)
	return nil
}

func (r *fakeTasksRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	for id, t := range r.store.tasks {
		if t.UserID == userID {
			delete(r.store.tasks, id)
		}
	}
	return nil
}
