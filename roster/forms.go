package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func (c *Control) CreateLecturerForm(ctx context.Context, f LecturerForm) (LecturerForm, error) {
	err := c.checkLecturer(ctx, f.LecturerID)
	if err != nil {
		return LecturerForm{}, err
	}
	f.CreatedAt = time.Now().UTC()
	err = c.db.QueryRowContext(ctx, `insert into lecturer_forms
	(lecturer_id, course_id, topic, comments, faculty, class_name, week, lecture_date,
	venue, lecture_time, present, registered, outcomes, recommendations, created_at)
	values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) returning id`,
		f.LecturerID, f.CourseID, f.Topic, f.Comments, f.Faculty, f.ClassName, f.Week, f.LectureDate,
		f.Venue, f.LectureTime, f.Present, f.Registered, f.Outcomes, f.Recommendations, f.CreatedAt).Scan(&f.ID)
	if isForeignKeyViolation(err) {
		return LecturerForm{}, NotFound{Kind: "course", ID: f.CourseID}
	} else if err != nil {
		return LecturerForm{}, fmt.Errorf("unable to store lecturer form for %v, cause %w", f.LecturerID, err)
	}
	return f, nil
}

func (c *Control) ListLecturerForms(ctx context.Context, lecturerID int64) ([]LecturerForm, error) {
	out := []LecturerForm{}
	err := c.queryRows(ctx, `select id, lecturer_id, course_id, topic, comments, faculty, class_name, week, lecture_date,
	venue, lecture_time, present, registered, outcomes, recommendations, created_at
	from lecturer_forms where lecturer_id = $1 order by id desc`, func(r *sql.Rows) error {
		var f LecturerForm
		err := r.Scan(&f.ID, &f.LecturerID, &f.CourseID, &f.Topic, &f.Comments, &f.Faculty, &f.ClassName, &f.Week,
			&f.LectureDate, &f.Venue, &f.LectureTime, &f.Present, &f.Registered, &f.Outcomes, &f.Recommendations, &f.CreatedAt)
		out = append(out, f)
		return err
	}, lecturerID)
	if err != nil {
		return nil, fmt.Errorf("unable to list lecturer forms of %v, cause %w", lecturerID, err)
	}
	return out, nil
}
