package api

import (
	"net/http"
	"strings"

	"github.com/andrebq/faculty/internal/respond"
)

func (h handlers) addFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		Feedback string `json:"feedback"`
	}
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Feedback) == "" {
		missingFields(w, r)
		return
	}
	err := h.ctl.AddReportFeedback(r.Context(), id, in.Feedback)
	if err != nil {
		fail(w, r, err, "Unable to add feedback")
		return
	}
	respond.Message(w, r, http.StatusOK, "Feedback added successfully")
}

func (h handlers) listRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.ctl.ListRatings(r.Context())
	if err != nil {
		fail(w, r, err, "Unable to list ratings")
		return
	}
	respond.JSON(w, r, http.StatusOK, ratings)
}
