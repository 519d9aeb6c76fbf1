package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/campus-market/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// emailPattern accepts the usual local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,}$`)

// AccountService owns user accounts and the single active session, and issues
// the tokens the HTTP layer uses to identify requests.
type AccountService struct {
	users      domain.UserRepository
	sessions   domain.SessionRepository
	jwtSecret  []byte
	bcryptCost int
}

// NewAccountService creates a new AccountService.
func NewAccountService(users domain.UserRepository, sessions domain.SessionRepository, jwtSecret string, bcryptCost int) *AccountService {
	return &AccountService{
		users:      users,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account after validating inputs and establishes
// it as the active session.
func (s *AccountService) Register(ctx context.Context, name, email, password, college string, role domain.Role) (*domain.User, error) {
	name = strings.TrimSpace(name)
	college = strings.TrimSpace(college)

	if utf8.RuneCountInString(name) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", domain.ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: enter a valid email address", domain.ErrInvalidInput)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(college) < 2 {
		return nil, fmt.Errorf("%w: college must be at least 2 characters", domain.ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		College:      college,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Append(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.sessions.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("establish session: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials, establishes the session, and returns the
// user. It never distinguishes an unknown email from a wrong password.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	// An ill-shaped email or too-short password can never match a stored
	// account, so reject before the lookup.
	if !emailPattern.MatchString(email) || len(password) < 6 {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.sessions.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("establish session: %w", err)
	}

	return user, nil
}

// CurrentSession returns the persisted session user, or nil when no session
// exists or the stored record is unreadable.
func (s *AccountService) CurrentSession(ctx context.Context) (*domain.User, error) {
	user, err := s.sessions.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return user, nil
}

// Logout ends the active session. Only the session record is cleared; the
// item catalog is not touched.
func (s *AccountService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// GetUserByID retrieves a user by their ID.
func (s *AccountService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GenerateToken returns a signed JWT identifying the user.
func (s *AccountService) GenerateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and validates a JWT token string.
// Returns the user ID from the sub claim.
func (s *AccountService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.ErrInvalidCredentials
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrInvalidCredentials
	}

	return sub, nil
}
