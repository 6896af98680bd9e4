package httpapi

import (
	"io"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/gorilla/mux"
)

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user, _ := actingUser(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(r.Context(), w, common.ErrorValidation)
		return
	}

	task, err := s.tasks.Create(r.Context(), user.ID, body)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user, _ := actingUser(r.Context())

	result, err := s.tasks.List(r.Context(), user.ID, tasks.ParseQuery(r.URL.Query()))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	user, _ := actingUser(r.Context())

	task, err := s.tasks.Get(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user, _ := actingUser(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(r.Context(), w, common.ErrorValidation)
		return
	}

	task, err := s.tasks.Update(r.Context(), user.ID, mux.Vars(r)["id"], body)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user, _ := actingUser(r.Context())

	task, err := s.tasks.Delete(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}
