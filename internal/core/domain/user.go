package domain

import (
	"errors"
	"time"
)

var (
	// ErrValidation is returned when required input is missing or malformed.
	ErrValidation = errors.New("missing or invalid field")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers every login failure: unknown email, wrong
	// password, and throttled attempts all collapse into this one error.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by repositories when no user matches.
	ErrUserNotFound = errors.New("user not found")
)

// User models a registered account. Accounts are created once and never
// updated or deleted through the API.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
