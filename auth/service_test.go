package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testService(t *testing.T) (*Service, *Verifier) {
	cfg := TokenConfig{Secret: []byte(strings.Repeat("z", MinSecretLen))}
	issuer, err := NewIssuer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	verifier, err := NewVerifier(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewService(NewMemStore(), BcryptHasher{Cost: bcrypt.MinCost}, issuer), verifier
}

func TestLoginAfterRegister(t *testing.T) {
	ctx := context.Background()
	svc, verifier := testService(t)
	user, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1", Role: "student"})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, PublicUser{ID: 1, Name: "A", Email: "a@x.com", Role: Student}, user)

	session, err := svc.Login(ctx, LoginInput{Email: "A@X.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, user, session.User)
	require.WithinDuration(t, time.Now().Add(DefaultTokenTTL), session.ExpiresAt, time.Minute)
	id, err := verifier.Verify(session.Token)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, Identity{UserID: user.ID, Role: Student}, id)

	_, err = svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials got %v", err)
	}
	_, err = svc.Login(ctx, LoginInput{Email: "nouser@x.com", Password: "x"})
	var nf UserNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected UserNotFound got %v", err)
	}
}

func TestRegisterIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, _ := testService(t)
	_, err := svc.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@X.com", Password: "pw", Role: "lecturer"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.Register(ctx, RegisterInput{Name: "Bob 2", Email: "BOB@x.com", Password: "pw", Role: "student"})
	var dup DuplicateEmail
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateEmail got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := testService(t)
	for _, in := range []RegisterInput{
		{Email: "a@x.com", Password: "pw", Role: "pl"},
		{Name: "  ", Email: "a@x.com", Password: "pw", Role: "pl"},
		{Name: "A", Password: "pw", Role: "pl"},
		{Name: "A", Email: "a@x.com", Role: "pl"},
		{Name: "A", Email: "a@x.com", Password: "pw"},
	} {
		_, err := svc.Register(ctx, in)
		require.Equal(t, BadRequest{Reason: "Missing required fields"}, err, "input %+v", in)
	}
	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "pw", Role: "admin"})
	require.Equal(t, BadRequest{Reason: "Invalid role"}, err)

	_, err = svc.Login(ctx, LoginInput{Email: "a@x.com"})
	require.Equal(t, BadRequest{Reason: "Email and password required"}, err)
}

func TestMemStoreNeverReturnsPlaintext(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	svc := NewService(store, BcryptHasher{Cost: bcrypt.MinCost}, nil)
	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1", Role: "prl"})
	if err != nil {
		t.Fatal(err)
	}
	stored, err := store.FindUserByEmail(ctx, "A@x.COM")
	if err != nil {
		t.Fatal(err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "secret1" {
		t.Fatalf("unexpected password hash %q", stored.PasswordHash)
	}
	require.Equal(t, "a@x.com", stored.Email)
}
