package users

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/andrebq/faculty/auth"
	"github.com/andrebq/faculty/internal/cmdflags"
	"github.com/andrebq/faculty/roster"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage the users stored in the faculty database",
		Subcommands: []*cli.Command{
			registerCmd(),
			lecturersCmd(),
		},
	}
}

func registerCmd() *cli.Command {
	var dsn string
	var name, email, role string
	var hasher string
	var bcryptCost int
	return &cli.Command{
		Name:  "register",
		Usage: "Register a new user (password is read from stdin)",
		Flags: []cli.Flag{
			cmdflags.Database(&dsn),
			&cli.StringFlag{
				Name:        "name",
				Usage:       "Display name of the user",
				Destination: &name,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "email",
				Aliases:     []string{"e"},
				Usage:       "Email used to login",
				Destination: &email,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "role",
				Usage:       "One of student, lecturer, prl or pl",
				Destination: &role,
				Required:    true,
			},
			cmdflags.Hasher(&hasher),
			cmdflags.BcryptCost(&bcryptCost),
		},
		Action: func(ctx *cli.Context) error {
			password, err := readPassword(os.Stdin)
			if err != nil {
				return err
			}
			h, err := auth.NewHasher(hasher, bcryptCost)
			if err != nil {
				return err
			}
			ctl, err := roster.Open(ctx.Context, dsn)
			if err != nil {
				return err
			}
			defer ctl.Close()
			// registration never issues tokens
			svc := auth.NewService(ctl, h, nil)
			user, err := svc.Register(ctx.Context, auth.RegisterInput{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     role,
			})
			if err != nil {
				return err
			}
			return json.NewEncoder(ctx.App.Writer).Encode(user)
		},
	}
}

var errMissingPassword = errors.New("missing password from stdin")

// readPassword returns the first line of r. Only the line terminator is
// removed, spaces are part of the password.
func readPassword(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if sc.Err() != nil {
			return "", sc.Err()
		}
		return "", errMissingPassword
	}
	password := strings.TrimRight(sc.Text(), "\r\n")
	if len(password) == 0 {
		return "", errMissingPassword
	}
	return password, nil
}

func lecturersCmd() *cli.Command {
	var dsn string
	return &cli.Command{
		Name:  "lecturers",
		Usage: "List users with the lecturer role",
		Flags: []cli.Flag{
			cmdflags.Database(&dsn),
		},
		Action: func(ctx *cli.Context) error {
			ctl, err := roster.Open(ctx.Context, dsn)
			if err != nil {
				return err
			}
			defer ctl.Close()
			lecturers, err := ctl.ListLecturers(ctx.Context)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(ctx.App.Writer)
			for _, l := range lecturers {
				err = enc.Encode(l)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
