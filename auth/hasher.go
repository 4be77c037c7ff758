package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

type (
	Hasher interface {
		Hash(plaintext string) (string, error)
		Verify(plaintext, hash string) (bool, error)
	}

	BcryptHasher struct {
		Cost int
	}

	Argon2idHasher struct {
		Time    uint32
		Memory  uint32
		Threads uint8
		KeyLen  uint32
		SaltLen int

		// Rand defaults to crypto/rand.Reader
		Rand io.Reader
	}

	// MultiHasher hashes new passwords with Primary but is able to verify
	// any hash produced by a known algorithm.
	MultiHasher struct {
		Primary Hasher
		Bcrypt  Hasher
		Argon2  Hasher
	}
)

const (
	DefaultBcryptCost = 10
	argon2idPrefix    = "$argon2id$"
)

var (
	errUnknownHash = errors.New("auth: unknown password hash format")
)

// NewHasher returns a MultiHasher whose primary algorithm is kind
// (bcrypt or argon2id).
func NewHasher(kind string, bcryptCost int) (*MultiHasher, error) {
	if bcryptCost == 0 {
		bcryptCost = DefaultBcryptCost
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("auth: bcrypt cost %v out of range [%v, %v]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	bc := BcryptHasher{Cost: bcryptCost}
	a2 := DefaultArgon2id()
	m := &MultiHasher{Bcrypt: bc, Argon2: a2}
	switch kind {
	case "", "bcrypt":
		m.Primary = bc
	case "argon2id":
		m.Primary = a2
	default:
		return nil, fmt.Errorf("auth: unknown hasher %q, expecting bcrypt or argon2id", kind)
	}
	return m, nil
}

func (b BcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) == 0 {
		return "", ErrEmptyPassword
	}
	cost := b.Cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	buf, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", BadRequest{Reason: "Password too long"}
	} else if err != nil {
		return "", fmt.Errorf("unable to hash password, cause %w", err)
	}
	return string(buf), nil
}

func (b BcryptHasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("unable to verify bcrypt hash, cause %w", err)
	}
}

// DefaultArgon2id uses the RFC 9106 second recommended option (64 MiB, 3 passes).
func DefaultArgon2id() Argon2idHasher {
	threads := runtime.NumCPU() / 2
	if threads < 1 {
		threads = 1
	} else if threads > 4 {
		threads = 4
	}
	return Argon2idHasher{
		Time:    3,
		Memory:  64 * 1024,
		Threads: uint8(threads),
		KeyLen:  32,
		SaltLen: 16,
	}
}

func (a Argon2idHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) == 0 {
		return "", ErrEmptyPassword
	}
	rnd := a.Rand
	if rnd == nil {
		rnd = rand.Reader
	}
	salt := make([]byte, a.SaltLen)
	_, err := io.ReadFull(rnd, salt)
	if err != nil {
		return "", fmt.Errorf("unable to generate salt, cause %w", err)
	}
	key := argon2.IDKey([]byte(plaintext), salt, a.Time, a.Memory, a.Threads, a.KeyLen)
	return fmt.Sprintf("%vv=%d$m=%d,t=%d,p=%d$%v$%v", argon2idPrefix, argon2.Version, a.Memory, a.Time, a.Threads,
		base64.RawStdEncoding.EncodeToString(salt), base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify uses the parameters embedded in hash, not the ones from a.
func (a Argon2idHasher) Verify(plaintext, hash string) (bool, error) {
	parts := strings.Split(hash, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, errUnknownHash
	}
	var version int
	_, err := fmt.Sscanf(parts[2], "v=%d", &version)
	if err != nil || version != argon2.Version {
		return false, fmt.Errorf("auth: unsupported argon2id version %q", parts[2])
	}
	var memory, time uint32
	var threads uint8
	_, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads)
	if err != nil {
		return false, fmt.Errorf("unable to parse argon2id parameters, cause %w", err)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("unable to decode argon2id salt, cause %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("unable to decode argon2id key, cause %w", err)
	}
	actual := argon2.IDKey([]byte(plaintext), salt, time, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(actual, expected) == 1, nil
}

func (m *MultiHasher) Hash(plaintext string) (string, error) {
	return m.Primary.Hash(plaintext)
}

func (m *MultiHasher) Verify(plaintext, hash string) (bool, error) {
	switch {
	case strings.HasPrefix(hash, argon2idPrefix):
		return m.Argon2.Verify(plaintext, hash)
	case strings.HasPrefix(hash, "$2a$"), strings.HasPrefix(hash, "$2b$"), strings.HasPrefix(hash, "$2y$"):
		return m.Bcrypt.Verify(plaintext, hash)
	}
	return false, errUnknownHash
}
