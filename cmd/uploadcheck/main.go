package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "uploadcheck",
		Usage: "Validate and classify files the way uploadkit checks uploads",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (console, json)",
				Value: "console",
			},
		},
		Commands: []*cli.Command{
			validateCommand,
			classifyCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("uploadcheck failed")
	}
}
