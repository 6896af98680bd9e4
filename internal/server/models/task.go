package models

import "time"

// Task belongs to exactly one user; UserID is assigned by the server and
// never taken from client input.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
