package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/gorilla/mux"
)

// maxAvatarBytes caps avatar uploads.
const maxAvatarBytes = 1 << 20

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(r.Context(), w, common.ErrorValidation)
		return
	}

	user, token, err := s.users.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.logger.Info(r.Context(), "User signed up", "email", user.Email)
	s.writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(r.Context(), w, common.ErrorValidation)
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	_, token := actingUser(r.Context())

	if err := s.users.Logout(r.Context(), token); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLogoutAll(w http.ResponseWriter, r *http.Request) {
	user, _ := actingUser(r.Context())

	if err := s.users.LogoutAll(r.Context(), user.ID); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := actingUser(r.Context())
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := actingUser(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(r.Context(), w, common.ErrorValidation)
		return
	}

	updated, err := s.users.Update(r.Context(), user, body)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := actingUser(r.Context())

	deleted, err := s.users.Delete(r.Context(), user.ID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	// Object storage is outside the delete transaction; a leftover
	// avatar object is acceptable and logged.
	if deleted.AvatarKey != "" {
		if err := s.avatars.Remove(r.Context(), deleted.AvatarKey); err != nil {
			s.logger.Warn(r.Context(), "avatar cleanup failed", "user_id", deleted.ID, "error", err.Error())
		}
	}

	s.logger.Info(r.Context(), "User deleted", "user_id", deleted.ID)
	s.writeJSON(w, http.StatusOK, deleted)
}

func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, _ := actingUser(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAvatarBytes))
	if err != nil || len(body) == 0 {
		s.writeError(r.Context(), w, common.ErrorValidation)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	previous := user.AvatarKey

	key, err := s.avatars.Upload(r.Context(), user.ID, body, contentType)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	if err := s.users.SetAvatarKey(r.Context(), user, key); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	// every upload gets a fresh key; the superseded object is cleaned
	// up best-effort
	if previous != "" && previous != key {
		if err := s.avatars.Remove(r.Context(), previous); err != nil {
			s.logger.Warn(r.Context(), "avatar cleanup failed", "user_id", user.ID, "error", err.Error())
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user, _ := actingUser(r.Context())

	if user.AvatarKey != "" {
		if err := s.avatars.Remove(r.Context(), user.AvatarKey); err != nil {
			s.writeError(r.Context(), w, err)
			return
		}
		if err := s.users.SetAvatarKey(r.Context(), user, ""); err != nil {
			s.writeError(r.Context(), w, err)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGetAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if user.AvatarKey == "" {
		s.writeError(r.Context(), w, common.ErrorNotFound)
		return
	}

	url, err := s.avatars.PresignedGetURL(r.Context(), user.AvatarKey)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}
