package roster

import (
	"context"
	"database/sql"
	"fmt"
)

type (
	Order bool
)

const (
	Ascending  = Order(true)
	Descending = Order(false)
)

func (c *Control) ListClasses(ctx context.Context, order Order) ([]Class, error) {
	query := `select id, name, schedule, venue from classes order by id desc`
	if order == Ascending {
		query = `select id, name, schedule, venue from classes order by id asc`
	}
	out := []Class{}
	err := c.queryRows(ctx, query, func(r *sql.Rows) error {
		var cl Class
		err := r.Scan(&cl.ID, &cl.Name, &cl.Schedule, &cl.Venue)
		out = append(out, cl)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list classes, cause %w", err)
	}
	return out, nil
}

func (c *Control) CreateClass(ctx context.Context, in NewClass) (Class, error) {
	cl := Class{Name: in.Name, Schedule: in.Schedule, Venue: in.Venue}
	err := c.db.QueryRowContext(ctx, `insert into classes (name, schedule, venue) values ($1, $2, $3) returning id`,
		in.Name, in.Schedule, in.Venue).Scan(&cl.ID)
	if err != nil {
		return Class{}, fmt.Errorf("unable to create class %v, cause %w", in.Name, err)
	}
	return cl, nil
}

func (c *Control) UpdateClass(ctx context.Context, id int64, in NewClass) error {
	return c.execOne(ctx, "class", id, `update classes set name = $1, schedule = $2, venue = $3 where id = $4`,
		in.Name, in.Schedule, in.Venue, id)
}

func (c *Control) DeleteClass(ctx context.Context, id int64) error {
	return c.execOne(ctx, "class", id, `delete from classes where id = $1`, id)
}
