package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/andrebq/faculty/auth"
	authapi "github.com/andrebq/faculty/auth/api"
	"github.com/andrebq/faculty/internal/testutil"
	"github.com/andrebq/faculty/roster"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

type (
	fixture struct {
		handler http.Handler
		ctl     *roster.Control
		issuer  *auth.Issuer

		pl, prl, lena, leo, sam auth.PublicUser
	}
)

func newFixture(ctx context.Context, t *testing.T) (*fixture, func()) {
	ctl, cleanup := testutil.AcquireRoster(ctx, t, "api")
	cfg := auth.TokenConfig{Secret: []byte(strings.Repeat("r", auth.MinSecretLen))}
	issuer, err := auth.NewIssuer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	verifier, err := auth.NewVerifier(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	handler, err := AsHandler(ctx, ctl, authapi.NewRealm(verifier))
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{
		handler: handler,
		ctl:     ctl,
		issuer:  issuer,
		pl:      testutil.CreateUser(ctx, t, ctl, "Paula", "paula@x.com", "pw", auth.PL),
		prl:     testutil.CreateUser(ctx, t, ctl, "Pedro", "pedro@x.com", "pw", auth.PRL),
		lena:    testutil.CreateUser(ctx, t, ctl, "Lena", "lena@x.com", "pw", auth.Lecturer),
		leo:     testutil.CreateUser(ctx, t, ctl, "Leo", "leo@x.com", "pw", auth.Lecturer),
		sam:     testutil.CreateUser(ctx, t, ctl, "Sam", "sam@x.com", "pw", auth.Student),
	}, cleanup
}

func (f *fixture) bearer(t *testing.T, u auth.PublicUser) string {
	token, _, err := f.issuer.Issue(u.ID, u.Role)
	if err != nil {
		t.Fatal(err)
	}
	return fmt.Sprintf("Bearer %v", token)
}

func (f *fixture) as(t *testing.T, u auth.PublicUser) *apitest.APITest {
	return apitest.New().
		Handler(f.handler).
		Intercept(func(r *http.Request) {
			r.Header.Set("Authorization", f.bearer(t, u))
		})
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	f, cleanup := newFixture(ctx, t)
	defer cleanup()
	apitest.New().
		Handler(f.handler).
		Get("/").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.status`, "ok")).
		Assert(jsonpath.Present(`$.time`)).
		End()
}

func TestRoleGroups(t *testing.T) {
	ctx := context.Background()
	f, cleanup := newFixture(ctx, t)
	defer cleanup()

	apitest.New().Handler(f.handler).Get("/api/pl/courses").Expect(t).
		Status(http.StatusUnauthorized).
		End()
	for _, path := range []string{"/api/student/reports", "/api/prl/reports", "/api/pl/reports"} {
		f.as(t, f.lena).Get(path).Expect(t).
			Status(http.StatusForbidden).
			Body(`{"message":"Access denied"}`).
			End()
	}
	// roles do not inherit from each other
	f.as(t, f.pl).Get("/api/lecturer/classes").Expect(t).
		Status(http.StatusForbidden).
		End()
	f.as(t, f.sam).Get("/api/student/reports").Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()
}

func TestLecturerReportsAndStudentRatings(t *testing.T) {
	ctx := context.Background()
	f, cleanup := newFixture(ctx, t)
	defer cleanup()

	f.as(t, f.lena).Post("/api/lecturer/report").
		JSON(`{"course":"Networks","topic":"TCP","comments":"good"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal(`$.lecturer_id`, float64(f.lena.ID))).
		Assert(jsonpath.Equal(`$.topic`, "TCP")).
		End()
	f.as(t, f.lena).Post("/api/lecturer/report").
		JSON(`{"topic":"no course"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"Missing required fields"}`).
		End()

	f.as(t, f.sam).Get("/api/student/reports").Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 1)).
		Assert(jsonpath.Equal(`$[0].lecturer_name`, "Lena")).
		End()

	// student id comes from the token, not from the body
	f.as(t, f.sam).Post("/api/student/rate").
		JSON(fmt.Sprintf(`{"student_id":%v,"lecturer_id":%v,"course":"Networks","rating":4,"feedback":"nice"}`, f.leo.ID, f.lena.ID)).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal(`$.student_id`, float64(f.sam.ID))).
		Assert(jsonpath.Equal(`$.rating`, float64(4))).
		End()
	f.as(t, f.sam).Post("/api/student/rate").
		JSON(fmt.Sprintf(`{"lecturer_id":%v,"course":"Networks"}`, f.lena.ID)).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"Missing required fields"}`).
		End()
	f.as(t, f.sam).Post("/api/student/rate").
		JSON(fmt.Sprintf(`{"lecturer_id":%v,"course":"Networks","rating":9}`, f.lena.ID)).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"Rating must be between 1 and 5"}`).
		End()
	f.as(t, f.sam).Post("/api/student/rate").
		JSON(fmt.Sprintf(`{"lecturer_id":%v,"course":"Networks","rating":3}`, f.sam.ID)).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"Unknown lecturer"}`).
		End()

	f.as(t, f.lena).Get(fmt.Sprintf("/api/lecturer/ratings/%v", f.lena.ID)).Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 1)).
		Assert(jsonpath.Equal(`$[0].student_name`, "Sam")).
		End()
	f.as(t, f.lena).Get(fmt.Sprintf("/api/lecturer/reports/%v", f.lena.ID)).Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 1)).
		End()
	f.as(t, f.lena).Get(fmt.Sprintf("/api/lecturer/ratings/%v", f.leo.ID)).Expect(t).
		Status(http.StatusForbidden).
		End()
	f.as(t, f.lena).Get("/api/lecturer/reports/abc").Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"Invalid id"}`).
		End()

	f.as(t, f.pl).Get("/api/pl/ratings").Expect(t).
		Status(http.StatusOK).
		Body(fmt.Sprintf(`[{"lecturer_id":%v,"lecturer_name":"Lena","avg_rating":4,"total":1}]`, f.lena.ID)).
		End()
}

func TestPRLFeedback(t *testing.T) {
	ctx := context.Background()
	f, cleanup := newFixture(ctx, t)
	defer cleanup()
	rep, err := f.ctl.CreateReport(ctx, roster.NewReport{LecturerID: f.leo.ID, Course: "Math", Topic: "Sets"})
	if err != nil {
		t.Fatal(err)
	}

	f.as(t, f.prl).Post(fmt.Sprintf("/api/prl/reports/%v/feedback", rep.ID)).
		JSON(`{"feedback":"add more examples"}`).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"message":"Feedback added successfully"}`).
		End()
	f.as(t, f.prl).Post("/api/prl/reports/999/feedback").
		JSON(`{"feedback":"x"}`).
		Expect(t).
		Status(http.StatusNotFound).
		Body(`{"error":"Report not found"}`).
		End()
	f.as(t, f.prl).Get("/api/prl/reports").Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$[0].feedback`, "add more examples")).
		End()
	f.as(t, f.prl).Get("/api/prl/ratings").Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()
}

func TestPLCoursesClassesAndForms(t *testing.T) {
	ctx := context.Background()
	f, cleanup := newFixture(ctx, t)
	defer cleanup()

	f.as(t, f.pl).Post("/api/pl/courses").
		JSON(`{"name":"Networks","code":"NET101","description":"intro"}`).
		Expect(t).
		Status(http.StatusCreated).
		Body(`{"id":1,"name":"Networks","code":"NET101","description":"intro","lecturer_id":null}`).
		End()
	f.as(t, f.pl).Post("/api/pl/courses/1/assign").
		JSON(fmt.Sprintf(`{"lecturer_id":%v}`, f.sam.ID)).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"Unknown lecturer"}`).
		End()
	f.as(t, f.pl).Post("/api/pl/courses/1/assign").
		JSON(fmt.Sprintf(`{"lecturer_id":%v}`, f.lena.ID)).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"message":"Lecturer assigned successfully"}`).
		End()
	f.as(t, f.prl).Get("/api/prl/courses").Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$[0].lecturer_name`, "Lena")).
		End()
	f.as(t, f.pl).Put("/api/pl/courses/1").
		JSON(`{"name":"Computer Networks"}`).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"message":"Course updated successfully"}`).
		End()
	f.as(t, f.pl).Put("/api/pl/courses/2").
		JSON(`{"name":"Nope"}`).
		Expect(t).
		Status(http.StatusNotFound).
		Body(`{"error":"Course not found"}`).
		End()

	f.as(t, f.pl).Get("/api/pl/lectures").Expect(t).
		Status(http.StatusOK).
		Body(fmt.Sprintf(`[{"id":%v,"name":"Lena"},{"id":%v,"name":"Leo"}]`, f.lena.ID, f.leo.ID)).
		End()

	f.as(t, f.pl).Post("/api/pl/lecturer-form").
		JSON(fmt.Sprintf(`{"lecturer_id":%v,"course_id":1}`, f.lena.ID)).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"Missing required fields"}`).
		End()
	f.as(t, f.pl).Post("/api/pl/lecturer-form").
		JSON(fmt.Sprintf(`{"lecturer_id":%v,"course_id":1,"topic":"Routing","week":"6","present":28,"registered":30}`, f.lena.ID)).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal(`$.topic`, "Routing")).
		Assert(jsonpath.Equal(`$.present`, float64(28))).
		End()
	f.as(t, f.pl).Get(fmt.Sprintf("/api/pl/lecturer-form/%v", f.lena.ID)).Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 1)).
		End()

	f.as(t, f.pl).Delete("/api/pl/courses/1").Expect(t).
		Status(http.StatusOK).
		Body(`{"message":"Course deleted"}`).
		End()

	f.as(t, f.pl).Post("/api/pl/classes").
		JSON(`{"name":"BSc IT 1","schedule":"Mon 08:00"}`).
		Expect(t).
		Status(http.StatusCreated).
		Body(`{"id":1,"name":"BSc IT 1","schedule":"Mon 08:00","venue":""}`).
		End()
	f.as(t, f.pl).Put("/api/pl/classes/1").
		JSON(`{"name":"BSc IT 1A","schedule":"Tue 08:00"}`).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"message":"Class updated"}`).
		End()
	f.as(t, f.lena).Get("/api/lecturer/classes").Expect(t).
		Status(http.StatusOK).
		Body(`[{"id":1,"class_name":"BSc IT 1A","schedule":"Tue 08:00"}]`).
		End()
	f.as(t, f.pl).Delete("/api/pl/classes/1").Expect(t).
		Status(http.StatusOK).
		Body(`{"message":"Class deleted"}`).
		End()
	f.as(t, f.pl).Delete("/api/pl/classes/1").Expect(t).
		Status(http.StatusNotFound).
		Body(`{"error":"Class not found"}`).
		End()
	f.as(t, f.pl).Get("/api/pl/classes").Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()
}

func TestExportReports(t *testing.T) {
	ctx := context.Background()
	f, cleanup := newFixture(ctx, t)
	defer cleanup()
	_, err := f.ctl.CreateReport(ctx, roster.NewReport{LecturerID: f.leo.ID, Course: "Math", Topic: "Sets"})
	if err != nil {
		t.Fatal(err)
	}

	apitest.New().Handler(f.handler).Get("/api/export/reports").Expect(t).
		Status(http.StatusUnauthorized).
		End()
	f.as(t, f.sam).Get("/api/export/reports").Expect(t).
		Status(http.StatusOK).
		Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet").
		Header("Content-Disposition", "attachment; filename=reports.xlsx").
		End()
	f.as(t, f.pl).Get("/api/export/reports").Query("format", "pdf").Expect(t).
		Status(http.StatusOK).
		Header("Content-Type", "application/pdf").
		Header("Content-Disposition", "attachment; filename=reports.pdf").
		End()
	f.as(t, f.pl).Get("/api/export/reports").Query("format", "csv").Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"Unsupported export format"}`).
		End()
}
