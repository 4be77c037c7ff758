package api

import (
	"net/http"
	"strings"

	"github.com/andrebq/faculty/internal/respond"
	"github.com/andrebq/faculty/roster"
)

func (h handlers) createCourse(w http.ResponseWriter, r *http.Request) {
	var in roster.NewCourse
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		missingFields(w, r)
		return
	}
	co, err := h.ctl.CreateCourse(r.Context(), in)
	if err != nil {
		fail(w, r, err, "Unable to create course")
		return
	}
	respond.JSON(w, r, http.StatusCreated, co)
}

func (h handlers) updateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in roster.NewCourse
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		missingFields(w, r)
		return
	}
	err := h.ctl.UpdateCourse(r.Context(), id, in)
	if err != nil {
		fail(w, r, err, "Unable to update course")
		return
	}
	respond.Message(w, r, http.StatusOK, "Course updated successfully")
}

func (h handlers) deleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	err := h.ctl.DeleteCourse(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Unable to delete course")
		return
	}
	respond.Message(w, r, http.StatusOK, "Course deleted")
}

func (h handlers) assignLecturer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		LecturerID int64 `json:"lecturer_id"`
	}
	if !decode(w, r, &in) {
		return
	}
	if in.LecturerID == 0 {
		missingFields(w, r)
		return
	}
	err := h.ctl.AssignLecturer(r.Context(), id, in.LecturerID)
	if err != nil {
		fail(w, r, err, "Unable to assign lecturer")
		return
	}
	respond.Message(w, r, http.StatusOK, "Lecturer assigned successfully")
}

func (h handlers) listLecturers(w http.ResponseWriter, r *http.Request) {
	lecturers, err := h.ctl.ListLecturers(r.Context())
	if err != nil {
		fail(w, r, err, "Unable to list lecturers")
		return
	}
	respond.JSON(w, r, http.StatusOK, lecturers)
}

func (h handlers) createClass(w http.ResponseWriter, r *http.Request) {
	var in roster.NewClass
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		missingFields(w, r)
		return
	}
	cl, err := h.ctl.CreateClass(r.Context(), in)
	if err != nil {
		fail(w, r, err, "Unable to create class")
		return
	}
	respond.JSON(w, r, http.StatusCreated, cl)
}

func (h handlers) updateClass(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in roster.NewClass
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		missingFields(w, r)
		return
	}
	err := h.ctl.UpdateClass(r.Context(), id, in)
	if err != nil {
		fail(w, r, err, "Unable to update class")
		return
	}
	respond.Message(w, r, http.StatusOK, "Class updated")
}

func (h handlers) deleteClass(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	err := h.ctl.DeleteClass(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Unable to delete class")
		return
	}
	respond.Message(w, r, http.StatusOK, "Class deleted")
}

func (h handlers) ratingSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.ctl.RatingSummaries(r.Context())
	if err != nil {
		fail(w, r, err, "Unable to summarize ratings")
		return
	}
	respond.JSON(w, r, http.StatusOK, summaries)
}

func (h handlers) listLecturerForms(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "lecturerId")
	if !ok {
		return
	}
	forms, err := h.ctl.ListLecturerForms(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Unable to list lecturer forms")
		return
	}
	respond.JSON(w, r, http.StatusOK, forms)
}

func (h handlers) createLecturerForm(w http.ResponseWriter, r *http.Request) {
	var in roster.LecturerForm
	if !decode(w, r, &in) {
		return
	}
	in.Topic = strings.TrimSpace(in.Topic)
	if in.LecturerID == 0 || in.CourseID == 0 || in.Topic == "" {
		missingFields(w, r)
		return
	}
	form, err := h.ctl.CreateLecturerForm(r.Context(), in)
	if err != nil {
		fail(w, r, err, "Unable to store lecturer form")
		return
	}
	respond.JSON(w, r, http.StatusCreated, form)
}
