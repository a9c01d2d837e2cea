package store

import "github.com/google/uuid"

// NewRunToken returns a fresh run token. UUIDv7 keeps tokens unique and
// time-ordered, so listing by token lists by creation time.
func NewRunToken() string {
	return uuid.Must(uuid.NewV7()).String()
}
