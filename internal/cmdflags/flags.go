package cmdflags

import (
	"time"

	"github.com/andrebq/faculty/auth"
	"github.com/urfave/cli/v2"
)

const (
	DefaultDatabase = "faculty.db"
)

func Database(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = DefaultDatabase
	}
	return &cli.StringFlag{
		Name:        "db",
		Aliases:     []string{"database"},
		Usage:       "Path to a sqlite database or a postgres:// connection url",
		EnvVars:     []string{"FACULTY_DB"},
		Value:       *out,
		Destination: out,
	}
}

func SecretEnvVar(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = auth.SecretEnvVar
	}
	return &cli.StringFlag{
		Name:        "secret-envvar-name",
		Usage:       "Name of the environment variable that holds the token signing secret. The secret itself should not be passed as an argument",
		Value:       *out,
		Destination: out,
	}
}

func TokenTTL(out *time.Duration) cli.Flag {
	if *out == 0 {
		*out = auth.DefaultTokenTTL
	}
	return &cli.DurationFlag{
		Name:        "token-ttl",
		Usage:       "How long issued tokens remain valid",
		Value:       *out,
		Destination: out,
	}
}

func TokenCacheTTL(out *time.Duration) cli.Flag {
	if *out == 0 {
		*out = auth.DefaultTokenCacheTTL
	}
	return &cli.DurationFlag{
		Name:        "token-cache-ttl",
		Usage:       "How long a verified token is remembered in memory (never beyond its expiration)",
		Value:       *out,
		Destination: out,
	}
}

func Hasher(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = "bcrypt"
	}
	return &cli.StringFlag{
		Name:        "hasher",
		Usage:       "Password hashing algorithm for new passwords (bcrypt or argon2id)",
		Value:       *out,
		Destination: out,
	}
}

func BcryptCost(out *int) cli.Flag {
	if *out == 0 {
		*out = auth.DefaultBcryptCost
	}
	return &cli.IntFlag{
		Name:        "bcrypt-cost",
		Usage:       "Work factor used when hashing with bcrypt",
		Value:       *out,
		Destination: out,
	}
}
