package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/msomdec/campus-market/internal/domain"
)

// UserRepository implements domain.UserRepository on the kv store. The whole
// user collection lives under a single key as a JSON array; every mutation is
// one read-modify-write of that array.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	raw, ok, err := r.db.getValue(ctx, keyUsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var users []domain.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// Append adds a user to the collection. It returns domain.ErrDuplicateEmail
// when a stored user already has the exact same email.
func (r *UserRepository) Append(ctx context.Context, user *domain.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	for _, existing := range users {
		if existing.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}

	users = append(users, *user)
	return r.save(ctx, users)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) save(ctx context.Context, users []domain.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	return r.db.putValue(ctx, keyUsers, string(raw))
}
