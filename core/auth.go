package core

import (
	"errors"
	"time"
)

// User represents an authenticated principal returned to handlers.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

var (
	// ErrInvalidCredentials is returned when username/password is wrong.
	// The same value covers "no such user" and "wrong password" so callers
	// cannot tell which field failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateUsername is returned when registering an already-taken username.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrEmptyCredentials is returned when username or password is blank.
	ErrEmptyCredentials = errors.New("username and password are required")
)

// AuthService defines registration and authentication behaviour.
type AuthService interface {
	Register(username, password string) (int64, error)
	Login(username, password string) (string, User, error)
}
