package roster

import (
	"context"
	"database/sql"
	"fmt"
)

func (c *Control) ListCourses(ctx context.Context) ([]Course, error) {
	out := []Course{}
	err := c.queryRows(ctx, `select c.id, c.name, c.code, c.description, c.lecturer_id, coalesce(u.name, '')
	from courses c
	left join users u on c.lecturer_id = u.id
	order by c.id desc`, func(r *sql.Rows) error {
		var co Course
		var lecturer sql.NullInt64
		err := r.Scan(&co.ID, &co.Name, &co.Code, &co.Description, &lecturer, &co.LecturerName)
		if lecturer.Valid {
			co.LecturerID = &lecturer.Int64
		}
		out = append(out, co)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list courses, cause %w", err)
	}
	return out, nil
}

func (c *Control) CreateCourse(ctx context.Context, in NewCourse) (Course, error) {
	co := Course{Name: in.Name, Code: in.Code, Description: in.Description}
	err := c.db.QueryRowContext(ctx, `insert into courses (name, code, description) values ($1, $2, $3) returning id`,
		in.Name, in.Code, in.Description).Scan(&co.ID)
	if err != nil {
		return Course{}, fmt.Errorf("unable to create course %v, cause %w", in.Name, err)
	}
	return co, nil
}

func (c *Control) UpdateCourse(ctx context.Context, id int64, in NewCourse) error {
	return c.execOne(ctx, "course", id, `update courses set name = $1, code = $2, description = $3 where id = $4`,
		in.Name, in.Code, in.Description, id)
}

func (c *Control) DeleteCourse(ctx context.Context, id int64) error {
	return c.execOne(ctx, "course", id, `delete from courses where id = $1`, id)
}

// AssignLecturer makes lecturerID responsible for the course, the user must
// have the lecturer role.
func (c *Control) AssignLecturer(ctx context.Context, courseID, lecturerID int64) error {
	err := c.checkLecturer(ctx, lecturerID)
	if err != nil {
		return err
	}
	return c.execOne(ctx, "course", courseID, `update courses set lecturer_id = $1 where id = $2`, lecturerID, courseID)
}
