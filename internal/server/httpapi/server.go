// Package httpapi is the HTTP boundary of the server: routing, the auth
// guard middleware, request decoding, and mapping of service errors to
// status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
)

type userService interface {
	Signup(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Logout(ctx context.Context, token string) error
	LogoutAll(ctx context.Context, userID string) error
	Update(ctx context.Context, user *models.User, payload []byte) (*models.User, error)
	SetAvatarKey(ctx context.Context, user *models.User, key string) error
	Delete(ctx context.Context, userID string) (*models.User, error)
}

type taskService interface {
	Create(ctx context.Context, userID string, payload []byte) (*models.Task, error)
	List(ctx context.Context, userID string, q tasks.Query) ([]*models.Task, error)
	Get(ctx context.Context, userID, taskID string) (*models.Task, error)
	Update(ctx context.Context, userID, taskID string, payload []byte) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID string) (*models.Task, error)
}

type avatarService interface {
	Upload(ctx context.Context, userID string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

type Server struct {
	address string
	logger  logging.Logger
	users   userService
	tasks   taskService
	avatars avatarService
}

func NewServer(a string, l logging.Logger, us userService, ts taskService, as avatarService) *Server {
	return &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		tasks:   ts,
		avatars: as,
	}
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
