// Package portal wires the store, the credential core and the http
// handlers of faculty into a single http.Handler.
package portal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/andrebq/faculty/auth"
	authapi "github.com/andrebq/faculty/auth/api"
	"github.com/andrebq/faculty/roster"
	rosterapi "github.com/andrebq/faculty/roster/api"
)

type (
	Options struct {
		DSN    string
		Secret []byte

		TokenTTL      time.Duration
		TokenCacheTTL time.Duration
		// DisableTokenCache makes every request verify its token from scratch
		DisableTokenCache bool

		Hasher     string
		BcryptCost int
	}

	Portal struct {
		Roster  *roster.Control
		Service *auth.Service
		Realm   *authapi.SecurityRealm

		cache *auth.TokenCache
	}
)

// Open validates opts, connects to the database and prepares the auth
// core. Nothing is left open when an error is returned.
func Open(ctx context.Context, opts Options) (*Portal, error) {
	tokens := auth.TokenConfig{Secret: opts.Secret, TTL: opts.TokenTTL, Issuer: "faculty"}
	issuer, err := auth.NewIssuer(tokens)
	if err != nil {
		return nil, err
	}
	hasher, err := auth.NewHasher(opts.Hasher, opts.BcryptCost)
	if err != nil {
		return nil, err
	}
	var cache *auth.TokenCache
	if !opts.DisableTokenCache {
		cache, err = auth.NewTokenCache(ctx, opts.TokenCacheTTL)
		if err != nil {
			return nil, err
		}
	}
	verifier, err := auth.NewVerifier(tokens, cache)
	if err != nil {
		closeCache(cache)
		return nil, err
	}
	ctl, err := roster.Open(ctx, opts.DSN)
	if err != nil {
		closeCache(cache)
		return nil, err
	}
	return &Portal{
		Roster:  ctl,
		Service: auth.NewService(ctl, hasher, issuer),
		Realm:   authapi.NewRealm(verifier),
		cache:   cache,
	}, nil
}

func closeCache(c *auth.TokenCache) {
	if c != nil {
		c.Close()
	}
}

func (p *Portal) Close() error {
	closeCache(p.cache)
	return p.Roster.Close()
}

// AsHandler routes /api/auth/ to the credential endpoints and everything
// else to the roster.
func (p *Portal) AsHandler(ctx context.Context) (http.Handler, error) {
	authHandler, err := authapi.AsHandler(ctx, p.Service, p.Realm)
	if err != nil {
		return nil, fmt.Errorf("unable to build auth handler, cause %w", err)
	}
	rosterHandler, err := rosterapi.AsHandler(ctx, p.Roster, p.Realm)
	if err != nil {
		return nil, fmt.Errorf("unable to build roster handler, cause %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/api/auth/", authHandler)
	mux.Handle("/", rosterHandler)
	return mux, nil
}
