package models

import (
	"encoding/json"
	"time"
)

// User is an account record. PasswordHash and AvatarKey never leave the
// server: MarshalJSON serializes the public profile only.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	AvatarKey    string
	CreatedAt    time.Time
}

func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"createdAt"`
	}{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	})
}
