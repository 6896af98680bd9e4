package httpapi

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
)

type testLogger struct{}

func (l *testLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (l *testLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (l *testLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (l *testLogger) Error(ctx context.Context, msg string, args ...any) {}
func (l *testLogger) With(args ...any) logging.Logger                    { return l }

// stubUserService implements userService through optional function
// fields; unset methods report an unauthenticated/internal failure.
type stubUserService struct {
	signup       func(ctx context.Context, name, email, password string) (*models.User, string, error)
	login        func(ctx context.Context, email, password string) (*models.User, string, error)
	authenticate func(ctx context.Context, token string) (*models.User, error)
	getByID      func(ctx context.Context, id string) (*models.User, error)
	logout       func(ctx context.Context, token string) error
	logoutAll    func(ctx context.Context, userID string) error
	update       func(ctx context.Context, user *models.User, payload []byte) (*models.User, error)
	setAvatarKey func(ctx context.Context, user *models.User, key string) error
	deleteUser   func(ctx context.Context, userID string) (*models.User, error)
}

func (s *stubUserService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	return s.signup(ctx, name, email, password)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	return s.login(ctx, email, password)
}

func (s *stubUserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	return s.authenticate(ctx, token)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByID(ctx, id)
}

func (s *stubUserService) Logout(ctx context.Context, token string) error {
	return s.logout(ctx, token)
}

func (s *stubUserService) LogoutAll(ctx context.Context, userID string) error {
	return s.logoutAll(ctx, userID)
}

func (s *stubUserService) Update(ctx context.Context, user *models.User, payload []byte) (*models.User, error) {
	return s.update(ctx, user, payload)
}

func (s *stubUserService) SetAvatarKey(ctx context.Context, user *models.User, key string) error {
	return s.setAvatarKey(ctx, user, key)
}

func (s *stubUserService) Delete(ctx context.Context, userID string) (*models.User, error) {
	return s.deleteUser(ctx, userID)
}

type stubTaskService struct {
	create     func(ctx context.Context, userID string, payload []byte) (*models.Task, error)
	list       func(ctx context.Context, userID string, q tasks.Query) ([]*models.Task, error)
	get        func(ctx context.Context, userID, taskID string) (*models.Task, error)
	update     func(ctx context.Context, userID, taskID string, payload []byte) (*models.Task, error)
	deleteTask func(ctx context.Context, userID, taskID string) (*models.Task, error)
}

func (s *stubTaskService) Create(ctx context.Context, userID string, payload []byte) (*models.Task, error) {
	return s.create(ctx, userID, payload)
}

func (s *stubTaskService) List(ctx context.Context, userID string, q tasks.Query) ([]*models.Task, error) {
	return s.list(ctx, userID, q)
}

func (s *stubTaskService) Get(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return s.get(ctx, userID, taskID)
}

func (s *stubTaskService) Update(ctx context.Context, userID, taskID string, payload []byte) (*models.Task, error) {
	return s.update(ctx, userID, taskID, payload)
}

func (s *stubTaskService) Delete(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return s.deleteTask(ctx, userID, taskID)
}

type stubAvatarService struct {
	upload    func(ctx context.Context, userID string, data []byte, contentType string) (string, error)
	remove    func(ctx context.Context, key string) error
	presigned func(ctx context.Context, key string) (string, error)
}

func (s *stubAvatarService) Upload(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	return s.upload(ctx, userID, data, contentType)
}

func (s *stubAvatarService) Remove(ctx context.Context, key string) error {
	return s.remove(ctx, key)
}

func (s *stubAvatarService) PresignedGetURL(ctx context.Context, key string) (string, error) {
	return s.presigned(ctx, key)
}

// authedStub returns a user service whose Authenticate accepts exactly
// the given token.
func authedStub(token string, user *models.User) *stubUserService {
	return &stubUserService{
		authenticate: func(ctx context.Context, got string) (*models.User, error) {
			if got != token {
				return nil, common.ErrorUnauthorized
			}
			return user, nil
		},
	}
}
