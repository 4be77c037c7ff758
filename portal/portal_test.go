package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrebq/faculty/auth"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

func openTestPortal(ctx context.Context, t *testing.T) (*Portal, http.Handler) {
	dir, err := os.MkdirTemp("", "faculty-portal")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	p, err := Open(ctx, Options{
		DSN:        filepath.Join(dir, "portal.db"),
		Secret:     []byte(strings.Repeat("p", auth.MinSecretLen)),
		BcryptCost: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { p.Close() })
	h, err := p.AsHandler(ctx)
	if err != nil {
		t.Fatal(err)
	}
	return p, h
}

func TestOpenRequiresSecret(t *testing.T) {
	_, err := Open(context.Background(), Options{DSN: filepath.Join(t.TempDir(), "x.db")})
	if !errors.Is(err, auth.ErrWeakSecret) {
		t.Fatalf("expected ErrWeakSecret got %v", err)
	}
}

func TestRegisterLoginAndUseRoleRoutes(t *testing.T) {
	ctx := context.Background()
	_, h := openTestPortal(ctx, t)

	for _, body := range []string{
		`{"name":"A","email":"a@x.com","password":"secret1","role":"student"}`,
		`{"name":"L","email":"l@x.com","password":"secret2","role":"lecturer"}`,
	} {
		apitest.New().Handler(h).Post("/api/auth/register").JSON(body).Expect(t).
			Status(http.StatusCreated).
			End()
	}
	apitest.New().Handler(h).Post("/api/auth/register").
		JSON(`{"name":"A2","email":"A@X.COM","password":"secret1","role":"student"}`).
		Expect(t).
		Status(http.StatusConflict).
		End()

	studentToken := login(t, h, "A@X.com", "secret1")
	lecturerToken := login(t, h, "l@x.com", "secret2")

	apitest.New().Handler(h).Get("/api/lecturer/classes").
		Header("Authorization", "Bearer "+studentToken).
		Expect(t).
		Status(http.StatusForbidden).
		Body(`{"message":"Access denied"}`).
		End()
	apitest.New().Handler(h).Post("/api/lecturer/report").
		Header("Authorization", "Bearer "+lecturerToken).
		JSON(`{"course":"Networks","topic":"TCP"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()
	apitest.New().Handler(h).Get("/api/student/reports").
		Header("Authorization", "Bearer "+studentToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$[0].lecturer_name`, "L")).
		End()
	apitest.New().Handler(h).Get("/").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.status`, "ok")).
		End()
}

func login(t *testing.T, h http.Handler, email, password string) string {
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login of %v failed with %v: %v", email, rec.Code, rec.Body.String())
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	return res.Token
}
