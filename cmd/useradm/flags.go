package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/iliyamo/solvely-pub/internal/database"
)

func dbFlags(opts *database.Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "db-user", EnvVars: []string{"DB_USER"}, Destination: &opts.User, Required: true},
		&cli.StringFlag{Name: "db-pass", EnvVars: []string{"DB_PASS"}, Destination: &opts.Password},
		&cli.StringFlag{Name: "db-host", EnvVars: []string{"DB_HOST"}, Destination: &opts.Host, Required: true},
		&cli.StringFlag{Name: "db-port", EnvVars: []string{"DB_PORT"}, Value: "3306", Destination: &opts.Port},
		&cli.StringFlag{Name: "db-name", EnvVars: []string{"DB_NAME"}, Destination: &opts.Name, Required: true},
	}
}

func openDB(ctx context.Context, opts database.Options) (*sql.DB, error) {
	db, err := database.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// readPassword reads the first line of r.  Passwords are never taken from
// flags so they stay out of shell history.
func readPassword(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("missing password from stdin")
	}
	pw := strings.TrimRight(sc.Text(), "\r")
	if pw == "" {
		return "", errors.New("missing password from stdin")
	}
	return pw, nil
}
