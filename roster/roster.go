// Package roster is the relational store behind faculty: users, courses,
// classes, lecture reports, student ratings and lecturer forms.
//
// The same queries run on sqlite (a file path DSN) and postgres
// (a postgres:// url). Schema changes are applied on Open.
package roster

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrebq/faculty/internal/logutil"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

type (
	Control struct {
		db      *sql.DB
		dialect dialect
	}

	dialect struct {
		name       string
		driver     string
		goose      goose.Dialect
		migrations string
	}
)

//go:embed migrations
var migrationsFS embed.FS

var (
	sqliteDialect   = dialect{name: "sqlite", driver: "sqlite3", goose: goose.DialectSQLite3, migrations: "migrations/sqlite"}
	postgresDialect = dialect{name: "postgres", driver: "pgx", goose: goose.DialectPostgres, migrations: "migrations/postgres"}
)

func dialectFor(dsn string) dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgresDialect
	}
	return sqliteDialect
}

func openDatabase(ctx context.Context, d dialect, dsn string) (*sql.DB, error) {
	connstr := dsn
	if d == sqliteDialect {
		err := os.MkdirAll(filepath.Dir(dsn), 0755)
		if err != nil {
			return nil, fmt.Errorf("unable to create directory to store %v, cause %w", dsn, err)
		}
		connstr = fmt.Sprintf("file:%v?_journal=wal&_fk=true&_busy_timeout=5000&mode=rwc", dsn)
	}
	conn, err := sql.Open(d.driver, connstr)
	if err != nil {
		return nil, fmt.Errorf("unable to open %v database, cause %w", d.name, err)
	}
	if d == sqliteDialect {
		// a single writer avoids SQLITE_BUSY under concurrent requests
		conn.SetMaxOpenConns(1)
	}
	err = conn.PingContext(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to ping %v database, cause %w", d.name, err)
	}
	return conn, nil
}

// Open connects to dsn and applies pending migrations.
func Open(ctx context.Context, dsn string) (*Control, error) {
	d := dialectFor(dsn)
	conn, err := openDatabase(ctx, d, dsn)
	if err != nil {
		return nil, err
	}
	c := &Control{db: conn, dialect: d}
	err = c.migrate(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to migrate %v database, cause %w", d.name, err)
	}
	return c, nil
}

func (c *Control) migrate(ctx context.Context) error {
	log := logutil.GetOrDefault(ctx)
	fsys, err := fs.Sub(migrationsFS, c.dialect.migrations)
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(c.dialect.goose, c.db, fsys)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		log.Info().Int64("version", r.Source.Version).Dur("duration", r.Duration).Msg("Applied migration")
	}
	return nil
}

func (c *Control) Close() error {
	return c.db.Close()
}

// Now returns the database clock, used as a liveness probe.
func (c *Control) Now(ctx context.Context) (string, error) {
	var now string
	err := c.db.QueryRowContext(ctx, `select CURRENT_TIMESTAMP`).Scan(&now)
	if err != nil {
		return "", fmt.Errorf("unable to query database time, cause %w", err)
	}
	return now, nil
}

func (c *Control) queryRows(ctx context.Context, query string, scan func(*sql.Rows) error, args ...interface{}) error {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		err = scan(rows)
		if err != nil {
			return err
		}
	}
	return rows.Err()
}

func (c *Control) execOne(ctx context.Context, kind string, id int64, query string, args ...interface{}) error {
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unable to update %v %v, cause %w", kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to update %v %v, cause %w", kind, id, err)
	} else if n == 0 {
		return NotFound{Kind: kind, ID: id}
	}
	return nil
}
