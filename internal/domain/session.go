package domain

import "context"

// SessionRepository persists the single active session: at most one user
// record at a time, stored independently of the user collection.
type SessionRepository interface {
	// Get returns the session user, or ErrNotFound when no session exists
	// or the stored record cannot be decoded.
	Get(ctx context.Context) (*User, error)
	Put(ctx context.Context, user *User) error
	Clear(ctx context.Context) error
}
