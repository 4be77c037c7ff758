package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrebq/faculty/export"
	"github.com/andrebq/faculty/internal/cmdflags"
	"github.com/andrebq/faculty/roster"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export data from the faculty database to files",
		Subcommands: []*cli.Command{
			reportsCmd(),
		},
	}
}

func reportsCmd() *cli.Command {
	var dsn string
	var out string
	var format string
	return &cli.Command{
		Name:  "reports",
		Usage: "Write every lecture report to a spreadsheet or pdf",
		Flags: []cli.Flag{
			cmdflags.Database(&dsn),
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "Output file, the format is taken from its extension unless --format is given",
				Value:       "reports.xlsx",
				Destination: &out,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "xlsx or pdf",
				Destination: &format,
			},
		},
		Action: func(ctx *cli.Context) error {
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(out), ".")
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			ctl, err := roster.Open(ctx.Context, dsn)
			if err != nil {
				return err
			}
			defer ctl.Close()
			rows, err := ctl.ExportRows(ctx.Context)
			if err != nil {
				return err
			}
			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("unable to create %v, cause %w", out, err)
			}
			err = export.Write(file, f, rows)
			if cerr := file.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("unable to export reports to %v, cause %w", out, err)
			}
			log.Info().Str("file", out).Int("reports", len(rows)).Msg("Reports exported")
			return nil
		},
	}
}
