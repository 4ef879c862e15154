package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dtnitsch/sitegen/internal/build"
	"github.com/dtnitsch/sitegen/internal/history"
	"github.com/dtnitsch/sitegen/internal/pipeline"
	"github.com/dtnitsch/sitegen/internal/qa"
	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/db"
	"github.com/urfave/cli/v2"
)

func main() {
	runFlags := append([]cli.Flag{
		&cli.StringFlag{
			Name:  "stylesheet",
			Value: models.DefaultStylesheet,
			Usage: "Stylesheet copied to the output root",
		},
		&cli.StringFlag{
			Name:  "images",
			Value: models.DefaultImagesDir,
			Usage: "Image directory copied to {output-dir}/images",
		},
		&cli.StringFlag{
			Name:  "history-db",
			Usage: "Record the run in this sqlite history ledger",
		},
	}, qaFlags()...)

	app := &cli.App{
		Name:  "sitegen",
		Usage: "Build a static marketing site and verify the emitted tree",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config file",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Value: models.DefaultOutputDir,
				Usage: "Root directory of the generated site",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Value: models.DefaultBaseURL,
				Usage: "Absolute site URL used for canonical links, sitemap.xml and robots.txt",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: models.DefaultWorkerCount,
				Usage: "Number of concurrent render and parse workers",
			},
			&cli.StringFlag{
				Name:  "content",
				Usage: "Content YAML file (default: built-in site content)",
			},
		},
		Action: pipeline.RunAction,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Build the site, stage assets, run QA and write the report",
				Flags:  runFlags,
				Action: pipeline.RunAction,
			},
			{
				Name:   "build",
				Usage:  "Build the site without running QA",
				Action: build.BuildAction,
			},
			{
				Name:   "qa",
				Usage:  "Verify an existing output tree and write the report",
				Flags:  qaFlags(),
				Action: qa.QAAction,
			},
			{
				Name:  "history",
				Usage: "Show recorded runs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "history-db",
						Usage: "History ledger path (default: " + db.DefaultDBName + ")",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "Number of runs to list",
					},
					&cli.StringFlag{
						Name:  "run",
						Usage: "Show the findings of a run id (or 'latest')",
					},
					&cli.BoolFlag{
						Name:  "diff",
						Usage: "Show pages that changed between the last two runs",
					},
				},
				Action: history.HistoryAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func qaFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "thin-threshold",
			Value: models.DefaultThinThreshold,
			Usage: "Minimum visible-text characters before a page counts as thin (must be positive)",
		},
		&cli.BoolFlag{
			Name:  "language-check",
			Usage: "Compare each page's declared lang with the detected language of its main text",
		},
	}
}
