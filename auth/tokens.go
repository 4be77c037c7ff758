package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type (
	TokenConfig struct {
		Secret []byte
		// TTL defaults to DefaultTokenTTL
		TTL    time.Duration
		Issuer string
		// Now defaults to time.Now
		Now func() time.Time
	}

	Identity struct {
		UserID int64 `json:"id"`
		Role   Role  `json:"role"`
	}

	Issuer struct {
		cfg TokenConfig
	}

	Verifier struct {
		cfg    TokenConfig
		cache  *TokenCache
		parser *jwt.Parser
	}

	claims struct {
		Role Role `json:"role"`
		jwt.RegisteredClaims
	}
)

const (
	DefaultTokenTTL = 7 * 24 * time.Hour
)

func (c TokenConfig) withDefaults() (TokenConfig, error) {
	if len(c.Secret) < MinSecretLen {
		return c, ErrWeakSecret
	}
	if c.TTL == 0 {
		c.TTL = DefaultTokenTTL
	} else if c.TTL < 0 {
		return c, fmt.Errorf("auth: token ttl must be positive, got %v", c.TTL)
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c, nil
}

func NewIssuer(cfg TokenConfig) (*Issuer, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Issuer{cfg: cfg}, nil
}

// Issue signs a token for the given user, the returned time is the moment
// the token stops being accepted.
func (i *Issuer) Issue(userID int64, role Role) (string, time.Time, error) {
	if !role.Valid() {
		return "", time.Time{}, InvalidRole{Value: string(role)}
	}
	now := i.cfg.Now()
	exp := now.Add(i.cfg.TTL)
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tk.SignedString(i.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("unable to sign token, cause %w", err)
	}
	return signed, exp.Truncate(time.Second), nil
}

// NewVerifier returns a verifier using the same secret as the issuer,
// cache might be nil.
func NewVerifier(cfg TokenConfig, cache *TokenCache) (*Verifier, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(cfg.Now),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &Verifier{
		cfg:    cfg,
		cache:  cache,
		parser: jwt.NewParser(opts...),
	}, nil
}

func (v *Verifier) Verify(token string) (Identity, error) {
	if v.cache != nil {
		id, exp, found := v.cache.lookup(token)
		if found {
			if !v.cfg.Now().Before(exp) {
				return Identity{}, ErrExpired
			}
			return id, nil
		}
	}
	var c claims
	_, err := v.parser.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return v.cfg.Secret, nil
	})
	if err != nil {
		return Identity{}, v.classify(token, err)
	}
	id, err := c.identity()
	if err != nil {
		return Identity{}, err
	}
	if v.cache != nil {
		v.cache.save(token, id, c.ExpiresAt.Time)
	}
	return id, nil
}

func (v *Verifier) classify(token string, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenMalformed):
		// header and claims must decode, otherwise nothing about the
		// signature can be said
		unverified, _, uerr := v.parser.ParseUnverified(token, &claims{})
		if uerr != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if alg := unverified.Method.Alg(); alg != jwt.SigningMethodHS256.Alg() {
			return fmt.Errorf("%w: unexpected signing method %v", ErrMalformed, alg)
		}
		return ErrInvalidSignature
	}
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}

func (c *claims) identity() (Identity, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: invalid subject %q", ErrMalformed, c.Subject)
	}
	if !c.Role.Valid() {
		return Identity{}, fmt.Errorf("%w: invalid role %q", ErrMalformed, c.Role)
	}
	return Identity{UserID: id, Role: c.Role}, nil
}

// Authorize allows the request only when the identity has exactly the
// required role.
func Authorize(id Identity, required Role) error {
	if id.Role != required {
		return ErrAccessDenied
	}
	return nil
}
