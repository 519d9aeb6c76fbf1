package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/msomdec/campus-market/internal/domain"
)

// SessionRepository implements domain.SessionRepository on the kv store. The
// session is a single user record persisted independently of the user list.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SQLite-backed SessionRepository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Get returns the session user. An absent key and an undecodable value both
// mean "no session" and report domain.ErrNotFound.
func (r *SessionRepository) Get(ctx context.Context) (*domain.User, error) {
	raw, ok, err := r.db.getValue(ctx, keySession)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	user := &domain.User{}
	if err := json.Unmarshal([]byte(raw), user); err != nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (r *SessionRepository) Put(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.db.putValue(ctx, keySession, string(raw))
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.db.deleteValue(ctx, keySession)
}
