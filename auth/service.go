package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type (
	CredentialStore interface {
		// CreateUser stores u and returns it with its ID assigned.
		// Emails must be unique under EmailKey, enforced atomically by the
		// store, otherwise DuplicateEmail is returned.
		CreateUser(ctx context.Context, u StoredUser) (StoredUser, error)
		// FindUserByEmail compares emails using EmailKey and returns
		// UserNotFound when nothing matches.
		FindUserByEmail(ctx context.Context, email string) (StoredUser, error)
	}

	Service struct {
		store  CredentialStore
		hasher Hasher
		issuer *Issuer
	}

	RegisterInput struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	Session struct {
		Token     string
		ExpiresAt time.Time
		User      PublicUser
	}
)

var (
	errMissingFields      = BadRequest{Reason: "Missing required fields"}
	errMissingCredentials = BadRequest{Reason: "Email and password required"}
	errInvalidRole        = BadRequest{Reason: "Invalid role"}
)

func NewService(store CredentialStore, hasher Hasher, issuer *Issuer) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		issuer: issuer,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (PublicUser, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" || in.Role == "" {
		return PublicUser{}, errMissingFields
	}
	role, err := ParseRole(in.Role)
	if err != nil {
		return PublicUser{}, errInvalidRole
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		var br BadRequest
		if errors.As(err, &br) {
			return PublicUser{}, br
		}
		return PublicUser{}, fmt.Errorf("unable to register %v, cause %w", email, err)
	}
	stored, err := s.store.CreateUser(ctx, StoredUser{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		var dup DuplicateEmail
		if errors.As(err, &dup) {
			return PublicUser{}, dup
		}
		return PublicUser{}, fmt.Errorf("unable to register %v, cause %w", email, err)
	}
	return stored.Public(), nil
}

// Login checks the password of the user identified by email and issues a
// token on success. Unknown users yield UserNotFound, a wrong password
// yields ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return Session{}, errMissingCredentials
	}
	stored, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		var nf UserNotFound
		if errors.As(err, &nf) {
			return Session{}, nf
		}
		return Session{}, fmt.Errorf("unable to lookup %v, cause %w", email, err)
	}
	ok, err := s.hasher.Verify(in.Password, stored.PasswordHash)
	if err != nil {
		return Session{}, fmt.Errorf("unable to verify password for user %v, cause %w", stored.ID, err)
	} else if !ok {
		return Session{}, ErrInvalidCredentials
	}
	token, exp, err := s.issuer.Issue(stored.ID, stored.Role)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		ExpiresAt: exp,
		User:      stored.Public(),
	}, nil
}
