package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by services, repositories and the HTTP layer.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidWindow      = errors.New("start time must be before end time")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrAlreadyBooked      = errors.New("slot already taken")
	ErrNotSubscribed      = errors.New("you are not subscribed to this slot")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrMissingFields      = errors.New("username and password are required")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication credentials were not provided")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
)

// WeakPasswordError lists every reason the password policy rejected a password.
type WeakPasswordError struct {
	Reasons []string
}

func (e *WeakPasswordError) Error() string {
	return ErrWeakPassword.Error() + ": " + strings.Join(e.Reasons, " ")
}

// Is makes errors.Is(err, ErrWeakPassword) true.
func (e *WeakPasswordError) Is(target error) bool {
	return target == ErrWeakPassword
}
