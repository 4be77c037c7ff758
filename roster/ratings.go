package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateRating stores a student rating, the rated user must be a lecturer.
func (c *Control) CreateRating(ctx context.Context, in NewRating) (Rating, error) {
	if in.Rating < MinRating || in.Rating > MaxRating {
		return Rating{}, InvalidRating{Value: in.Rating}
	}
	err := c.checkLecturer(ctx, in.LecturerID)
	if err != nil {
		return Rating{}, err
	}
	rt := Rating{
		StudentID:  in.StudentID,
		LecturerID: in.LecturerID,
		Course:     in.Course,
		Rating:     in.Rating,
		Feedback:   in.Feedback,
		CreatedAt:  time.Now().UTC(),
	}
	err = c.db.QueryRowContext(ctx, `insert into ratings (student_id, lecturer_id, course, rating, feedback, created_at)
	values ($1, $2, $3, $4, $5, $6) returning id`,
		in.StudentID, in.LecturerID, in.Course, in.Rating, in.Feedback, rt.CreatedAt).Scan(&rt.ID)
	if err != nil {
		return Rating{}, fmt.Errorf("unable to store rating from student %v, cause %w", in.StudentID, err)
	}
	return rt, nil
}

func (c *Control) listRatings(ctx context.Context, query string, args ...interface{}) ([]Rating, error) {
	out := []Rating{}
	err := c.queryRows(ctx, query, func(r *sql.Rows) error {
		var rt Rating
		err := r.Scan(&rt.ID, &rt.StudentID, &rt.StudentName, &rt.LecturerID, &rt.Course, &rt.Rating, &rt.Feedback, &rt.CreatedAt)
		out = append(out, rt)
		return err
	}, args...)
	if err != nil {
		return nil, fmt.Errorf("unable to list ratings, cause %w", err)
	}
	return out, nil
}

func (c *Control) ListRatings(ctx context.Context) ([]Rating, error) {
	return c.listRatings(ctx, `select r.id, r.student_id, coalesce(u.name, ''), r.lecturer_id, r.course, r.rating, r.feedback, r.created_at
	from ratings r
	left join users u on r.student_id = u.id
	order by r.id desc`)
}

func (c *Control) ListRatingsByLecturer(ctx context.Context, lecturerID int64) ([]Rating, error) {
	return c.listRatings(ctx, `select r.id, r.student_id, coalesce(u.name, ''), r.lecturer_id, r.course, r.rating, r.feedback, r.created_at
	from ratings r
	left join users u on r.student_id = u.id
	where r.lecturer_id = $1
	order by r.id desc`, lecturerID)
}

// RatingSummaries averages ratings per lecturer, rounded to two decimals.
func (c *Control) RatingSummaries(ctx context.Context) ([]RatingSummary, error) {
	out := []RatingSummary{}
	err := c.queryRows(ctx, `select r.lecturer_id, coalesce(u.name, ''),
		cast(round(avg(r.rating), 2) as double precision), count(*)
	from ratings r
	left join users u on r.lecturer_id = u.id
	group by r.lecturer_id, u.name
	order by r.lecturer_id asc`, func(r *sql.Rows) error {
		var s RatingSummary
		err := r.Scan(&s.LecturerID, &s.LecturerName, &s.AvgRating, &s.Total)
		out = append(out, s)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("unable to summarize ratings, cause %w", err)
	}
	return out, nil
}
