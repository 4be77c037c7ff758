package roster

import "time"

type (
	Lecturer struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	Course struct {
		ID           int64  `json:"id"`
		Name         string `json:"name"`
		Code         string `json:"code"`
		Description  string `json:"description"`
		LecturerID   *int64 `json:"lecturer_id"`
		LecturerName string `json:"lecturer_name,omitempty"`
	}

	NewCourse struct {
		Name        string `json:"name"`
		Code        string `json:"code"`
		Description string `json:"description"`
	}

	Class struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Schedule string `json:"schedule"`
		Venue    string `json:"venue"`
	}

	NewClass struct {
		Name     string `json:"name"`
		Schedule string `json:"schedule"`
		Venue    string `json:"venue"`
	}

	Report struct {
		ID           int64     `json:"id"`
		LecturerID   int64     `json:"lecturer_id"`
		LecturerName string    `json:"lecturer_name,omitempty"`
		CourseID     *int64    `json:"course_id"`
		Course       string    `json:"course"`
		CourseName   string    `json:"course_name,omitempty"`
		Topic        string    `json:"topic"`
		Comments     string    `json:"comments"`
		Feedback     string    `json:"feedback"`
		CreatedAt    time.Time `json:"created_at"`
	}

	NewReport struct {
		LecturerID int64  `json:"-"`
		CourseID   *int64 `json:"course_id"`
		Course     string `json:"course"`
		Topic      string `json:"topic"`
		Comments   string `json:"comments"`
	}

	Rating struct {
		ID          int64     `json:"id"`
		StudentID   int64     `json:"student_id"`
		StudentName string    `json:"student_name,omitempty"`
		LecturerID  int64     `json:"lecturer_id"`
		Course      string    `json:"course"`
		Rating      int       `json:"rating"`
		Feedback    string    `json:"feedback"`
		CreatedAt   time.Time `json:"created_at"`
	}

	NewRating struct {
		StudentID  int64  `json:"-"`
		LecturerID int64  `json:"lecturer_id"`
		Course     string `json:"course"`
		Rating     int    `json:"rating"`
		Feedback   string `json:"feedback"`
	}

	RatingSummary struct {
		LecturerID   int64   `json:"lecturer_id"`
		LecturerName string  `json:"lecturer_name"`
		AvgRating    float64 `json:"avg_rating"`
		Total        int64   `json:"total"`
	}

	// LecturerForm is the weekly lecture report a PL files for a lecturer.
	LecturerForm struct {
		ID              int64     `json:"id"`
		LecturerID      int64     `json:"lecturer_id"`
		CourseID        int64     `json:"course_id"`
		Topic           string    `json:"topic"`
		Comments        string    `json:"comments"`
		Faculty         string    `json:"faculty"`
		ClassName       string    `json:"class_name"`
		Week            string    `json:"week"`
		LectureDate     string    `json:"lecture_date"`
		Venue           string    `json:"venue"`
		LectureTime     string    `json:"lecture_time"`
		Present         int       `json:"present"`
		Registered      int       `json:"registered"`
		Outcomes        string    `json:"outcomes"`
		Recommendations string    `json:"recommendations"`
		CreatedAt       time.Time `json:"created_at"`
	}

	// ExportRow is the flattened report used by spreadsheet and pdf exports.
	ExportRow struct {
		ID           int64
		Course       string
		Topic        string
		Comments     string
		LecturerName string
	}
)

const (
	MinRating = 1
	MaxRating = 5
)
