package domain

import (
	"context"
	"time"
)

// Role determines what a user may do on the marketplace. Buyers browse;
// "both" users additionally post listings.
type Role string

const (
	RoleBuyer Role = "buyer"
	RoleBoth  Role = "both"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleBoth
}

// User represents a registered user of the marketplace.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	College      string    `json:"college"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRepository defines persistence operations for users. The user
// collection is append-only; accounts are never edited or deleted.
type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	Append(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
