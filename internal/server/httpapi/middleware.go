package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type ctxKey string

const (
	userKey  ctxKey = "user"
	tokenKey ctxKey = "token"
)

// authenticate is the auth guard: it extracts the bearer token, resolves
// the acting user through the user service (signature check plus
// session-list membership), and stores both on the request context. Any
// failure is a terminal 401.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.writeUnauthorized(w)
			return
		}

		user, err := s.users.Authenticate(r.Context(), token)
		if err != nil {
			// a store failure is not an auth failure; it must be
			// logged and reported as a server error
			if errors.Is(err, common.ErrorUnauthorized) {
				s.writeUnauthorized(w)
			} else {
				s.writeError(r.Context(), w, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// actingUser returns the user and token placed on the context by the
// auth guard. It must only be called from guarded handlers.
func actingUser(ctx context.Context) (*models.User, string) {
	user, _ := ctx.Value(userKey).(*models.User)
	token, _ := ctx.Value(tokenKey).(string)
	return user, token
}
