package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/iliyamo/solvely-pub/internal/utils"
)

func encryptCmd() *cli.Command {
	var key string
	var decrypt bool
	return &cli.Command{
		Name:      "encrypt",
		Usage:     "Encrypt (or with --decrypt, decrypt) the argument with the given key",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Destination: &key, Required: true},
			&cli.BoolFlag{Name: "decrypt", Aliases: []string{"d"}, Destination: &decrypt},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one argument", 2)
			}
			run := utils.EncryptAES
			if decrypt {
				run = utils.DecryptAES
			}
			out, err := run(c.Args().First(), key)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, out)
			return err
		},
	}
}

func genSaltCmd() *cli.Command {
	var key bool
	return &cli.Command{
		Name:  "gen-salt",
		Usage: "Print a new 32-hex salt (or with --key, a 16-hex key)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "key", Destination: &key},
		},
		Action: func(c *cli.Context) error {
			gen := utils.GenerateSalt
			if key {
				gen = utils.GenerateKey
			}
			out, err := gen()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, out)
			return err
		},
	}
}
