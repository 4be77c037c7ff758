package auth

import (
	"errors"
	"fmt"
)

type (
	// BadRequest is returned when the input is incomplete or invalid,
	// Reason is safe to show to the client.
	BadRequest struct {
		Reason string
	}

	InvalidRole struct {
		Value string
	}

	DuplicateEmail struct {
		Email string
	}

	UserNotFound struct {
		Email string
	}
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrAccessDenied       = errors.New("auth: access denied")

	ErrInvalidSignature = errors.New("auth: token signature is invalid")
	ErrExpired          = errors.New("auth: token expired")
	ErrMalformed        = errors.New("auth: token is malformed")

	ErrWeakSecret    = fmt.Errorf("auth: signing secret must have at least %v bytes", MinSecretLen)
	ErrEmptyPassword = errors.New("auth: refusing to hash an empty password")
)

func (b BadRequest) Error() string {
	return b.Reason
}

func (i InvalidRole) Error() string {
	return fmt.Sprintf("role %q is not one of %v", i.Value, allRoles)
}

func (d DuplicateEmail) Error() string {
	return fmt.Sprintf("email %v is already registered", d.Email)
}

func (u UserNotFound) Error() string {
	return fmt.Sprintf("user %v not found", u.Email)
}
