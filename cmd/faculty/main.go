package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/andrebq/faculty/cmd/faculty/export"
	"github.com/andrebq/faculty/cmd/faculty/serve"
	"github.com/andrebq/faculty/cmd/faculty/users"
	"github.com/andrebq/faculty/internal/logutil"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	logLevel := "info"
	app := &cli.App{
		Name:  "faculty",
		Usage: "Lecture reports, ratings and course management for faculties",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Minimum level to log (trace, debug, info, warn, error)",
				Value:       logLevel,
				Destination: &logLevel,
			},
		},
		Before: func(ctx *cli.Context) error {
			return logutil.SetLevel(logLevel)
		},
		Commands: []*cli.Command{
			serve.Cmd(),
			users.Cmd(),
			export.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}
