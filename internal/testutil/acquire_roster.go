package testutil

import (
	"context"
	"os"
	"path/filepath"

	"github.com/andrebq/faculty/auth"
	"github.com/andrebq/faculty/roster"
	"golang.org/x/crypto/bcrypt"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// AcquireRoster opens a fresh sqlite roster inside a temporary directory,
// the returned func closes it and removes the directory.
func AcquireRoster(ctx context.Context, t TestLog, name string) (*roster.Control, func()) {
	dir, err := os.MkdirTemp("", "faculty-tests")
	if err != nil {
		t.Fatal(err)
	}
	ctl, err := roster.Open(ctx, filepath.Join(dir, name+".db"))
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	return ctl, func() {
		err := ctl.Close()
		if err != nil {
			t.Log("unable to close roster", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}

// CreateUser registers a user directly on the store, hashing password
// with the cheapest bcrypt cost.
func CreateUser(ctx context.Context, t TestLog, store auth.CredentialStore, name, email, password string, role auth.Role) auth.PublicUser {
	hash, err := auth.BcryptHasher{Cost: bcrypt.MinCost}.Hash(password)
	if err != nil {
		t.Fatal(err)
	}
	u, err := store.CreateUser(ctx, auth.StoredUser{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		t.Fatal(err)
	}
	return u.Public()
}
