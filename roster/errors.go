package roster

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

type (
	NotFound struct {
		Kind string
		ID   int64
	}

	InvalidRating struct {
		Value int
	}

	InvalidLecturer struct {
		ID int64
	}
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func (n NotFound) Error() string {
	return fmt.Sprintf("%v %v not found", n.Kind, n.ID)
}

func (i InvalidRating) Error() string {
	return fmt.Sprintf("rating must be between %v and %v, got %v", MinRating, MaxRating, i.Value)
}

func (i InvalidLecturer) Error() string {
	return fmt.Sprintf("user %v is not a lecturer", i.ID)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return false
}
