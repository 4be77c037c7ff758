package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	reportColumns = `r.id, r.lecturer_id, coalesce(u.name, ''), r.course_id, r.course, coalesce(c.name, ''),
	r.topic, r.comments, r.feedback, r.created_at
	from reports r
	left join users u on r.lecturer_id = u.id
	left join courses c on r.course_id = c.id`
)

func scanReport(r *sql.Rows) (Report, error) {
	var rep Report
	var course sql.NullInt64
	err := r.Scan(&rep.ID, &rep.LecturerID, &rep.LecturerName, &course, &rep.Course, &rep.CourseName,
		&rep.Topic, &rep.Comments, &rep.Feedback, &rep.CreatedAt)
	if course.Valid {
		rep.CourseID = &course.Int64
	}
	return rep, err
}

func (c *Control) CreateReport(ctx context.Context, in NewReport) (Report, error) {
	rep := Report{
		LecturerID: in.LecturerID,
		CourseID:   in.CourseID,
		Course:     in.Course,
		Topic:      in.Topic,
		Comments:   in.Comments,
		CreatedAt:  time.Now().UTC(),
	}
	var course sql.NullInt64
	if in.CourseID != nil {
		course = sql.NullInt64{Int64: *in.CourseID, Valid: true}
	}
	err := c.db.QueryRowContext(ctx, `insert into reports (lecturer_id, course_id, course, topic, comments, created_at)
	values ($1, $2, $3, $4, $5, $6) returning id`,
		in.LecturerID, course, in.Course, in.Topic, in.Comments, rep.CreatedAt).Scan(&rep.ID)
	if isForeignKeyViolation(err) && in.CourseID != nil {
		return Report{}, NotFound{Kind: "course", ID: *in.CourseID}
	} else if err != nil {
		return Report{}, fmt.Errorf("unable to create report for lecturer %v, cause %w", in.LecturerID, err)
	}
	return rep, nil
}

func (c *Control) listReports(ctx context.Context, query string, args ...interface{}) ([]Report, error) {
	out := []Report{}
	err := c.queryRows(ctx, query, func(r *sql.Rows) error {
		rep, err := scanReport(r)
		out = append(out, rep)
		return err
	}, args...)
	if err != nil {
		return nil, fmt.Errorf("unable to list reports, cause %w", err)
	}
	return out, nil
}

// ListReports returns every report, newest first.
func (c *Control) ListReports(ctx context.Context) ([]Report, error) {
	return c.listReports(ctx, `select `+reportColumns+` order by r.id desc`)
}

func (c *Control) ListReportsByLecturer(ctx context.Context, lecturerID int64) ([]Report, error) {
	return c.listReports(ctx, `select `+reportColumns+` where r.lecturer_id = $1 order by r.id desc`, lecturerID)
}

func (c *Control) AddReportFeedback(ctx context.Context, id int64, feedback string) error {
	return c.execOne(ctx, "report", id, `update reports set feedback = $1 where id = $2`, feedback, id)
}

func (c *Control) ExportRows(ctx context.Context) ([]ExportRow, error) {
	var out []ExportRow
	err := c.queryRows(ctx, `select r.id, r.course, r.topic, r.comments, coalesce(u.name, '')
	from reports r
	left join users u on r.lecturer_id = u.id
	order by r.id desc`, func(r *sql.Rows) error {
		var row ExportRow
		err := r.Scan(&row.ID, &row.Course, &row.Topic, &row.Comments, &row.LecturerName)
		out = append(out, row)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("unable to load reports for export, cause %w", err)
	}
	return out, nil
}
