// Package services contains server-side business logic. This file
// implements UserService: signup, login, token-list auth, logout, profile
// updates, and account deletion with its cascade.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and authentication operations. A bearer
// token is only valid while it both verifies against the signing secret
// and is present in the user's session list, so logout revokes
// immediately.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server
// config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Signup creates a new user and issues a first session token, both in one
// transaction. Duplicate emails yield common.ErrorAlreadyExists.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return nil, "", fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{ID: uuid.NewString(), Name: name, Email: email, PasswordHash: hash}

	var token string
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created

		token, err = s.issueToken(ctx, user.ID, tx)
		return err
	}); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	return user, token, nil
}

// Login verifies the credentials and appends a fresh token to the user's
// session list. Unknown email and wrong password are indistinguishable.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID, s.db)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Authenticate resolves the acting user for a bearer token. The token
// must carry a valid signature, still be present verbatim in the session
// list, belong to the user it names, and that user must still exist.
// Every failure mode collapses to common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	session, err := s.repomanager.Sessions(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if session.UserID != userID {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// GetByID loads a user by id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// Logout revokes exactly the presented token; the user's other sessions
// stay valid.
func (s *UserService) Logout(ctx context.Context, token string) error {
	err := s.repomanager.Sessions(s.db).Delete(ctx, token)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return common.ErrorInternal
	}
	return nil
}

// LogoutAll clears the user's whole session list.
func (s *UserService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.repomanager.Sessions(s.db).DeleteAllForUser(ctx, userID); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// Update applies a partial profile update. Only name, email, and password
// are accepted; any other key is a validation error and nothing is
// written.
func (s *UserService) Update(ctx context.Context, user *models.User, payload []byte) (*models.User, error) {
	fields, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}

	updated := *user

	for key, raw := range fields {
		switch key {
		case "name":
			var name string
			if err := json.Unmarshal(raw, &name); err != nil || strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("%w: invalid name", common.ErrorValidation)
			}
			updated.Name = strings.TrimSpace(name)
		case "email":
			var email string
			if err := json.Unmarshal(raw, &email); err != nil {
				return nil, fmt.Errorf("%w: invalid email", common.ErrorValidation)
			}
			email = normalizeEmail(email)
			if err := validateEmail(email); err != nil {
				return nil, err
			}
			updated.Email = email
		case "password":
			var password string
			if err := json.Unmarshal(raw, &password); err != nil {
				return nil, fmt.Errorf("%w: invalid password", common.ErrorValidation)
			}
			if err := validatePassword(password); err != nil {
				return nil, err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return nil, common.ErrorInternal
			}
			updated.PasswordHash = hash
		default:
			return nil, fmt.Errorf("%w: invalid update field %q", common.ErrorValidation, key)
		}
	}

	if err := s.repomanager.Users(s.db).Update(ctx, &updated); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return &updated, nil
}

// SetAvatarKey records (or clears) the storage key of the user's avatar.
func (s *UserService) SetAvatarKey(ctx context.Context, user *models.User, key string) error {
	updated := *user
	updated.AvatarKey = key
	if err := s.repomanager.Users(s.db).Update(ctx, &updated); err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	user.AvatarKey = key
	return nil
}

// Delete removes the user together with all owned tasks and sessions.
// The cascade runs as dependent steps inside a single transaction; the
// avatar object cleanup is the caller's concern since object storage is
// not transactional.
func (s *UserService) Delete(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Tasks(tx).DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		if err := s.repomanager.Sessions(tx).DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, userID)
	}); err != nil {
		return nil, fmt.Errorf("error deleting user: %w", err)
	}

	return user, nil
}

// --- helpers below ---

func (s *UserService) issueToken(ctx context.Context, userID string, tx dbx.DBTX) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", err
	}
	if err := s.repomanager.Sessions(tx).Create(ctx, userID, token); err != nil {
		return "", err
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email is invalid", common.ErrorValidation)
	}
	return nil
}

// validatePassword applies the signup password policy: at least 7
// characters and not containing the word "password".
func validatePassword(password string) error {
	if len(password) < 7 {
		return fmt.Errorf("%w: password too short", common.ErrorValidation)
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return fmt.Errorf("%w: password must not contain \"password\"", common.ErrorValidation)
	}
	return nil
}

// decodeObject parses a JSON object into raw fields, rejecting
// non-object payloads.
func decodeObject(payload []byte) (map[string]json.RawMessage, error) {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("%w: invalid payload", common.ErrorValidation)
	}
	return fields, nil
}
