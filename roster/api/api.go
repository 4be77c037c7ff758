package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/andrebq/faculty/auth"
	authapi "github.com/andrebq/faculty/auth/api"
	"github.com/andrebq/faculty/internal/respond"
	"github.com/andrebq/faculty/roster"
	"github.com/julienschmidt/httprouter"
)

type (
	handlers struct {
		ctl *roster.Control
	}
)

// AsHandler exposes the roster under /api/{student,lecturer,prl,pl}, each
// group restricted to the role of the same name, plus /api/export for any
// authenticated user and a public health check at /.
func AsHandler(ctx context.Context, ctl *roster.Control, realm *authapi.SecurityRealm) (http.Handler, error) {
	h := handlers{ctl: ctl}
	router := httprouter.New()
	gate := func(role auth.Role) func(string, string, http.HandlerFunc) {
		return func(method, path string, fn http.HandlerFunc) {
			router.Handler(method, fmt.Sprintf("/api/%v%v", role, path), realm.Protect(role, fn))
		}
	}

	student := gate(auth.Student)
	student("GET", "/reports", h.listReports)
	student("POST", "/rate", h.rate)

	lecturer := gate(auth.Lecturer)
	lecturer("POST", "/report", h.createReport)
	lecturer("GET", "/ratings/:lecturerId", h.ownRatings)
	lecturer("GET", "/reports/:lecturerId", h.ownReports)
	lecturer("GET", "/classes", h.lecturerClasses)

	prl := gate(auth.PRL)
	prl("GET", "/courses", h.listCourses)
	prl("GET", "/reports", h.listReports)
	prl("POST", "/reports/:id/feedback", h.addFeedback)
	prl("GET", "/classes", h.listClasses)
	prl("GET", "/ratings", h.listRatings)

	pl := gate(auth.PL)
	pl("GET", "/courses", h.listCourses)
	pl("POST", "/courses", h.createCourse)
	pl("PUT", "/courses/:id", h.updateCourse)
	pl("DELETE", "/courses/:id", h.deleteCourse)
	pl("POST", "/courses/:id/assign", h.assignLecturer)
	pl("GET", "/lectures", h.listLecturers)
	pl("GET", "/reports", h.listReports)
	pl("GET", "/classes", h.listClasses)
	pl("POST", "/classes", h.createClass)
	pl("PUT", "/classes/:id", h.updateClass)
	pl("DELETE", "/classes/:id", h.deleteClass)
	pl("GET", "/ratings", h.ratingSummaries)
	pl("GET", "/lecturer-form/:lecturerId", h.listLecturerForms)
	pl("POST", "/lecturer-form", h.createLecturerForm)

	router.Handler("GET", "/api/export/reports", realm.Authenticate(http.HandlerFunc(h.exportReports)))
	router.HandlerFunc("GET", "/", h.health)
	return router, nil
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	val := httprouter.ParamsFromContext(r.Context()).ByName(name)
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, r, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func caller(r *http.Request) auth.Identity {
	// routes are always behind Authenticate
	id, _ := authapi.IdentityFromContext(r.Context())
	return id
}

func decode(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := respond.Decode(w, r, out); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func missingFields(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, http.StatusBadRequest, "Missing required fields")
}

// fail translates store errors, msg is only used for unexpected errors.
func fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var nf roster.NotFound
	var rating roster.InvalidRating
	var lecturer roster.InvalidLecturer
	switch {
	case errors.As(err, &nf):
		respond.Error(w, r, http.StatusNotFound, fmt.Sprintf("%v%v not found", strings.ToUpper(nf.Kind[:1]), nf.Kind[1:]))
	case errors.As(err, &rating):
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("Rating must be between %v and %v", roster.MinRating, roster.MaxRating))
	case errors.As(err, &lecturer):
		respond.Error(w, r, http.StatusBadRequest, "Unknown lecturer")
	default:
		respond.Internal(w, r, err, msg)
	}
}

func (h handlers) health(w http.ResponseWriter, r *http.Request) {
	now, err := h.ctl.Now(r.Context())
	if err != nil {
		respond.Internal(w, r, err, "Database unavailable")
		return
	}
	respond.JSON(w, r, http.StatusOK, struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}{"ok", now})
}

func (h handlers) listReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.ctl.ListReports(r.Context())
	if err != nil {
		fail(w, r, err, "Unable to list reports")
		return
	}
	respond.JSON(w, r, http.StatusOK, reports)
}

func (h handlers) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.ctl.ListCourses(r.Context())
	if err != nil {
		fail(w, r, err, "Unable to list courses")
		return
	}
	respond.JSON(w, r, http.StatusOK, courses)
}

func (h handlers) listClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.ctl.ListClasses(r.Context(), roster.Descending)
	if err != nil {
		fail(w, r, err, "Unable to list classes")
		return
	}
	respond.JSON(w, r, http.StatusOK, classes)
}
