package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "playlists",
		Usage: "Playlist management API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file (overrides the environment)",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API (default)",
				Action: serve,
			},
			{
				Name:   "dump",
				Usage:  "Print every table as JSON",
				Action: dump,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal("application error", "err", err)
	}
}
