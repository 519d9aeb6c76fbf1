package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotSeller          = errors.New("only seller accounts can post items")
	ErrInvalidInput       = errors.New("invalid input")
)
