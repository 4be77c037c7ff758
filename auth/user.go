package auth

import (
	"strings"
	"time"
)

type (
	// StoredUser is the record kept by a CredentialStore.
	// It must never be handed to an encoder, use Public instead.
	StoredUser struct {
		ID           int64
		Name         string
		Email        string
		PasswordHash string `json:"-"`
		Role         Role
		CreatedAt    time.Time
	}

	PublicUser struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  Role   `json:"role"`
	}
)

func (s StoredUser) Public() PublicUser {
	return PublicUser{
		ID:    s.ID,
		Name:  s.Name,
		Email: s.Email,
		Role:  s.Role,
	}
}

// EmailKey returns the value used to compare emails, both for uniqueness
// and for lookups.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
