package models

import "time"

// Session is one entry of a user's active-token list. The token string is
// stored verbatim as issued; logout deletes the row, which revokes the
// token even while its signature is still valid.
type Session struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
}
