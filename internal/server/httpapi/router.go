package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes builds the full route table. Signup, login, and avatar fetch
// are public; everything else sits behind the auth guard.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/users", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/users/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}/avatar", s.handleGetAvatar).Methods(http.MethodGet)

	u := r.PathPrefix("/users").Subrouter()
	u.Use(s.authenticate)
	u.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	u.HandleFunc("/logoutAll", s.handleLogoutAll).Methods(http.MethodPost)
	u.HandleFunc("/me", s.handleGetProfile).Methods(http.MethodGet)
	u.HandleFunc("/me", s.handleUpdateProfile).Methods(http.MethodPatch)
	u.HandleFunc("/me", s.handleDeleteProfile).Methods(http.MethodDelete)
	u.HandleFunc("/me/avatar", s.handleUploadAvatar).Methods(http.MethodPost)
	u.HandleFunc("/me/avatar", s.handleDeleteAvatar).Methods(http.MethodDelete)

	t := r.PathPrefix("/tasks").Subrouter()
	t.Use(s.authenticate)
	t.HandleFunc("", s.handleCreateTask).Methods(http.MethodPost)
	t.HandleFunc("", s.handleListTasks).Methods(http.MethodGet)
	t.HandleFunc("/{id}", s.handleGetTask).Methods(http.MethodGet)
	t.HandleFunc("/{id}", s.handleUpdateTask).Methods(http.MethodPatch)
	t.HandleFunc("/{id}", s.handleDeleteTask).Methods(http.MethodDelete)

	return r
}
