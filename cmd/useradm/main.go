// Command useradm manages login accounts out of band: the HTTP API has no
// registration endpoint.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "useradm",
		Usage: "Manage solvely-pub login accounts",
		Commands: []*cli.Command{
			createCmd(),
			passwdCmd(),
			encryptCmd(),
			genSaltCmd(),
			auditTailCmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("useradm failed")
		os.Exit(1)
	}
}
