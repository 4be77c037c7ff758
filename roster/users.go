package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andrebq/faculty/auth"
)

var _ auth.CredentialStore = (*Control)(nil)

// CreateUser inserts u, relying on the unique email_key column to reject
// emails that differ only in case.
func (c *Control) CreateUser(ctx context.Context, u auth.StoredUser) (auth.StoredUser, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	err := c.db.QueryRowContext(ctx, `insert into users (name, email, email_key, password_hash, role, created_at)
	values ($1, $2, $3, $4, $5, $6) returning id`,
		u.Name, u.Email, auth.EmailKey(u.Email), u.PasswordHash, string(u.Role), u.CreatedAt).Scan(&u.ID)
	if isUniqueViolation(err) {
		return auth.StoredUser{}, auth.DuplicateEmail{Email: u.Email}
	} else if err != nil {
		return auth.StoredUser{}, fmt.Errorf("unable to create user %v, cause %w", u.Email, err)
	}
	return u, nil
}

func (c *Control) FindUserByEmail(ctx context.Context, email string) (auth.StoredUser, error) {
	var u auth.StoredUser
	var role string
	err := c.db.QueryRowContext(ctx, `select id, name, email, password_hash, role, created_at
	from users where email_key = $1`, auth.EmailKey(email)).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.StoredUser{}, auth.UserNotFound{Email: email}
	} else if err != nil {
		return auth.StoredUser{}, fmt.Errorf("unable to find user %v, cause %w", email, err)
	}
	u.Role = auth.Role(role)
	return u, nil
}

func (c *Control) ListLecturers(ctx context.Context) ([]Lecturer, error) {
	out := []Lecturer{}
	err := c.queryRows(ctx, `select id, name from users where role = $1 order by id asc`, func(r *sql.Rows) error {
		var l Lecturer
		err := r.Scan(&l.ID, &l.Name)
		out = append(out, l)
		return err
	}, string(auth.Lecturer))
	if err != nil {
		return nil, fmt.Errorf("unable to list lecturers, cause %w", err)
	}
	return out, nil
}

func (c *Control) checkLecturer(ctx context.Context, id int64) error {
	var role string
	err := c.db.QueryRowContext(ctx, `select role from users where id = $1`, id).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return InvalidLecturer{ID: id}
	} else if err != nil {
		return fmt.Errorf("unable to lookup user %v, cause %w", id, err)
	}
	if auth.Role(role) != auth.Lecturer {
		return InvalidLecturer{ID: id}
	}
	return nil
}
