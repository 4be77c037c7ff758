package api

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/andrebq/faculty/auth"
	"github.com/andrebq/faculty/internal/logutil"
	"github.com/andrebq/faculty/internal/respond"
)

type (
	SecurityRealm struct {
		verifier *auth.Verifier
	}

	key byte
)

var (
	bearerTokenRE = regexp.MustCompile(`^Bearer ([^\s]+)$`)

	identityKey = key(1)
)

func NewRealm(verifier *auth.Verifier) *SecurityRealm {
	return &SecurityRealm{
		verifier: verifier,
	}
}

// IdentityFromContext returns the identity attached by Authenticate.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Authenticate rejects requests without a valid bearer token, otherwise
// the verified identity is made available to sensitive handlers.
func (s *SecurityRealm) Authenticate(sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logutil.GetOrDefault(r.Context())
		groups := bearerTokenRE.FindStringSubmatch(r.Header.Get("Authorization"))
		if len(groups) == 0 {
			respond.Message(w, r, http.StatusUnauthorized, "Missing token")
			return
		}
		id, err := s.verifier.Verify(groups[1])
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrExpired):
			respond.Message(w, r, http.StatusUnauthorized, "Token expired")
			return
		default:
			log.Warn().Err(err).Msg("Rejected bearer token")
			respond.Message(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}
		ctx := logutil.WithLogger(r.Context(), log.With().Int64("user.id", id.UserID).Str("user.role", id.Role.String()).Logger())
		sensitive.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
	})
}

// RequireRole only lets through requests whose identity has exactly role,
// it must run after Authenticate.
func RequireRole(role auth.Role, sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			respond.Message(w, r, http.StatusUnauthorized, "Missing token")
			return
		}
		if err := auth.Authorize(id, role); err != nil {
			respond.Message(w, r, http.StatusForbidden, "Access denied")
			return
		}
		sensitive.ServeHTTP(w, r)
	})
}

func (s *SecurityRealm) Protect(role auth.Role, sensitive http.Handler) http.Handler {
	return s.Authenticate(RequireRole(role, sensitive))
}
