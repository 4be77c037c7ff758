package serve

import (
	"os"
	"time"

	"github.com/andrebq/faculty/auth"
	"github.com/andrebq/faculty/internal/cmdflags"
	"github.com/andrebq/faculty/internal/httpserver"
	"github.com/andrebq/faculty/portal"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:5000"
	var dsn string
	var secretEnvVar string
	var tokenTTL, tokenCacheTTL time.Duration
	var noTokenCache bool
	var hasher string
	var bcryptCost int
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the faculty http api",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "bind",
				Usage:       "Address to bind the http api",
				Value:       bindAddr,
				Destination: &bindAddr,
			},
			cmdflags.Database(&dsn),
			cmdflags.SecretEnvVar(&secretEnvVar),
			cmdflags.TokenTTL(&tokenTTL),
			cmdflags.TokenCacheTTL(&tokenCacheTTL),
			&cli.BoolFlag{
				Name:        "no-token-cache",
				Usage:       "Verify every token from scratch instead of remembering recent ones",
				Destination: &noTokenCache,
			},
			cmdflags.Hasher(&hasher),
			cmdflags.BcryptCost(&bcryptCost),
		},
		Action: func(ctx *cli.Context) error {
			secret, err := auth.SecretFromEnv(secretEnvVar, os.Getenv, os.Setenv)
			if err != nil {
				return err
			}
			p, err := portal.Open(ctx.Context, portal.Options{
				DSN:               dsn,
				Secret:            secret,
				TokenTTL:          tokenTTL,
				TokenCacheTTL:     tokenCacheTTL,
				DisableTokenCache: noTokenCache,
				Hasher:            hasher,
				BcryptCost:        bcryptCost,
			})
			if err != nil {
				return err
			}
			defer p.Close()
			handler, err := p.AsHandler(ctx.Context)
			if err != nil {
				return err
			}
			log.Info().Str("hasher", hasher).Dur("token.ttl", tokenTTL).Msg("Authentication configured")
			return httpserver.Serve(ctx.Context, bindAddr, handler)
		},
	}
}
