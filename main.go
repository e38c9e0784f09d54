package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/embedpack/internal/build"
	"github.com/dtnitsch/embedpack/internal/history"
)

func main() {
	app := &cli.App{
		Name:  "embedpack",
		Usage: "bundle an HTML page into a collision-safe, embeddable artifact set",
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "build one page (or every page under the pages directory with --all)",
				Action: build.BuildAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Usage:   "path to the input HTML page",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "output directory for the build artifacts",
					},
					&cli.StringFlag{
						Name:    "namespace",
						Aliases: []string{"n"},
						Usage:   "prefix applied to every id, class and selector (e.g. \"acme-\")",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "batch mode: build every subdirectory of the pages directory containing an index.html",
					},
					&cli.StringFlag{
						Name:  "pages-dir",
						Usage: "batch-mode discovery root (default: pages)",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "list recent builds",
				Action: history.HistoryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum number of builds to list",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
