package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/iliyamo/solvely-pub/internal/database"
	"github.com/iliyamo/solvely-pub/internal/model"
	"github.com/iliyamo/solvely-pub/internal/repository"
	"github.com/iliyamo/solvely-pub/internal/utils"
)

type userStore interface {
	Create(ctx context.Context, u model.User) (uint64, error)
	UpdatePassword(ctx context.Context, username, pwd, salt string) error
}

// credentials returns a fresh salt and password encrypted under it, in the
// form the login flow compares against.
func credentials(password string) (pwd, salt string, err error) {
	salt, err = utils.GenerateSalt()
	if err != nil {
		return "", "", err
	}
	pwd, err = utils.EncryptAES(password, salt)
	if err != nil {
		return "", "", err
	}
	return pwd, salt, nil
}

func createUser(ctx context.Context, store userStore, username, email, password string) (uint64, error) {
	pwd, salt, err := credentials(password)
	if err != nil {
		return 0, err
	}
	return store.Create(ctx, model.User{Username: username, Email: email, Pwd: pwd, Salt: salt})
}

func resetPassword(ctx context.Context, store userStore, username, password string) error {
	pwd, salt, err := credentials(password)
	if err != nil {
		return err
	}
	return store.UpdatePassword(ctx, username, pwd, salt)
}

func createCmd() *cli.Command {
	var opts database.Options
	var username, email string
	return &cli.Command{
		Name:  "create",
		Usage: "Create a user (password is read from stdin)",
		Flags: append(dbFlags(&opts),
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Destination: &username, Required: true},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Destination: &email},
		),
		Action: func(c *cli.Context) error {
			password, err := readPassword(os.Stdin)
			if err != nil {
				return err
			}
			db, err := openDB(c.Context, opts)
			if err != nil {
				return err
			}
			defer db.Close()

			id, err := createUser(c.Context, repository.NewUserRepo(db), username, email, password)
			if err != nil {
				return fmt.Errorf("create %q: %w", username, err)
			}
			log.Info().Uint64("id", id).Str("username", username).Msg("user created")
			return nil
		},
	}
}

func passwdCmd() *cli.Command {
	var opts database.Options
	var username string
	return &cli.Command{
		Name:  "passwd",
		Usage: "Re-salt and replace a user's password (read from stdin)",
		Flags: append(dbFlags(&opts),
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Destination: &username, Required: true},
		),
		Action: func(c *cli.Context) error {
			password, err := readPassword(os.Stdin)
			if err != nil {
				return err
			}
			db, err := openDB(c.Context, opts)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := resetPassword(c.Context, repository.NewUserRepo(db), username, password); err != nil {
				return fmt.Errorf("passwd %q: %w", username, err)
			}
			log.Info().Str("username", username).Msg("password updated")
			return nil
		},
	}
}
