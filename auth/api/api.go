package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/andrebq/faculty/auth"
	"github.com/andrebq/faculty/internal/respond"
	"github.com/julienschmidt/httprouter"
)

type (
	registerResponse struct {
		Message string          `json:"message"`
		User    auth.PublicUser `json:"user"`
	}

	loginResponse struct {
		Message string          `json:"message"`
		Token   string          `json:"token"`
		User    auth.PublicUser `json:"user"`
	}
)

// AsHandler exposes registration, login and the identity of the caller
// under /api/auth.
func AsHandler(ctx context.Context, svc *auth.Service, realm *SecurityRealm) (http.Handler, error) {
	router := httprouter.New()
	router.HandlerFunc("POST", "/api/auth/register", register(svc))
	router.HandlerFunc("POST", "/api/auth/login", login(svc))
	router.Handler("GET", "/api/auth/me", realm.Authenticate(http.HandlerFunc(me)))
	return router, nil
}

func register(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in auth.RegisterInput
		if err := respond.Decode(w, r, &in); err != nil {
			respond.Message(w, r, http.StatusBadRequest, "Invalid request body")
			return
		}
		user, err := svc.Register(r.Context(), in)
		var br auth.BadRequest
		var dup auth.DuplicateEmail
		switch {
		case err == nil:
			respond.JSON(w, r, http.StatusCreated, registerResponse{Message: "Registration successful", User: user})
		case errors.As(err, &br):
			respond.Message(w, r, http.StatusBadRequest, br.Reason)
		case errors.As(err, &dup):
			respond.Message(w, r, http.StatusConflict, "Email already registered")
		default:
			respond.Internal(w, r, err, "Server error during registration")
		}
	}
}

func login(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in auth.LoginInput
		if err := respond.Decode(w, r, &in); err != nil {
			respond.Message(w, r, http.StatusBadRequest, "Invalid request body")
			return
		}
		session, err := svc.Login(r.Context(), in)
		var br auth.BadRequest
		var nf auth.UserNotFound
		switch {
		case err == nil:
			respond.JSON(w, r, http.StatusOK, loginResponse{Message: "Login successful", Token: session.Token, User: session.User})
		case errors.As(err, &br):
			respond.Message(w, r, http.StatusBadRequest, br.Reason)
		case errors.As(err, &nf):
			respond.Message(w, r, http.StatusNotFound, "User not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			respond.Message(w, r, http.StatusUnauthorized, "Invalid credentials")
		default:
			respond.Internal(w, r, err, "Server error during login")
		}
	}
}

func me(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	respond.JSON(w, r, http.StatusOK, id)
}
