package api

import (
	"net/http"
	"strings"

	"github.com/andrebq/faculty/internal/respond"
	"github.com/andrebq/faculty/roster"
)

// rate stores a rating on behalf of the calling student.
func (h handlers) rate(w http.ResponseWriter, r *http.Request) {
	var in roster.NewRating
	if !decode(w, r, &in) {
		return
	}
	in.Course = strings.TrimSpace(in.Course)
	if in.LecturerID == 0 || in.Course == "" || in.Rating == 0 {
		missingFields(w, r)
		return
	}
	in.StudentID = caller(r).UserID
	rating, err := h.ctl.CreateRating(r.Context(), in)
	if err != nil {
		fail(w, r, err, "Unable to submit rating")
		return
	}
	respond.JSON(w, r, http.StatusCreated, rating)
}
