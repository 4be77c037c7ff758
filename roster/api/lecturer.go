package api

import (
	"net/http"
	"strings"

	"github.com/andrebq/faculty/internal/respond"
	"github.com/andrebq/faculty/roster"
)

type (
	lecturerClass struct {
		ID        int64  `json:"id"`
		ClassName string `json:"class_name"`
		Schedule  string `json:"schedule"`
	}
)

func (h handlers) createReport(w http.ResponseWriter, r *http.Request) {
	var in roster.NewReport
	if !decode(w, r, &in) {
		return
	}
	in.Course = strings.TrimSpace(in.Course)
	if in.Course == "" {
		missingFields(w, r)
		return
	}
	in.LecturerID = caller(r).UserID
	rep, err := h.ctl.CreateReport(r.Context(), in)
	if err != nil {
		fail(w, r, err, "Unable to create report")
		return
	}
	respond.JSON(w, r, http.StatusCreated, rep)
}

// ownLecturer reads :lecturerId and makes sure lecturers only look at
// their own data.
func ownLecturer(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pathID(w, r, "lecturerId")
	if !ok {
		return 0, false
	}
	if id != caller(r).UserID {
		respond.Message(w, r, http.StatusForbidden, "Access denied")
		return 0, false
	}
	return id, true
}

func (h handlers) ownRatings(w http.ResponseWriter, r *http.Request) {
	id, ok := ownLecturer(w, r)
	if !ok {
		return
	}
	ratings, err := h.ctl.ListRatingsByLecturer(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Unable to list ratings")
		return
	}
	respond.JSON(w, r, http.StatusOK, ratings)
}

func (h handlers) ownReports(w http.ResponseWriter, r *http.Request) {
	id, ok := ownLecturer(w, r)
	if !ok {
		return
	}
	reports, err := h.ctl.ListReportsByLecturer(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Unable to list reports")
		return
	}
	respond.JSON(w, r, http.StatusOK, reports)
}

func (h handlers) lecturerClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.ctl.ListClasses(r.Context(), roster.Ascending)
	if err != nil {
		fail(w, r, err, "Unable to list classes")
		return
	}
	out := make([]lecturerClass, len(classes))
	for i, c := range classes {
		out[i] = lecturerClass{ID: c.ID, ClassName: c.Name, Schedule: c.Schedule}
	}
	respond.JSON(w, r, http.StatusOK, out)
}
