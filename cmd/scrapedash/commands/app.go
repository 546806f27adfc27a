package commands

import (
	"github.com/urfave/cli/v3"

	"scrapedash/internal/entity"
)

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "path to an env file",
		Value: ".env",
	}
}

// NewApp builds the scrapedash command tree.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:  "scrapedash",
		Usage: "Google Maps scraping dashboard backed by the Apify platform",

		// queries such as "cafes in Austin, TX" contain commas
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP JSON API",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "listen address (overrides HTTP_ADDR)",
					},
				},
				Action: ServeAction,
			},
			{
				Name:  "scrape",
				Usage: "Start a scrape run",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringSliceFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "search query; repeat the flag or put one query per line",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "places per query (1..500)",
						Value: entity.DefaultMaxResults,
					},
					&cli.BoolFlag{
						Name:  "wait",
						Usage: "follow the run until it finishes",
					},
				},
				Action: ScrapeAction,
			},
			{
				Name:  "runs",
				Usage: "Inspect actor runs",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List runs, newest first",
						Flags:  []cli.Flag{envFlag()},
						Action: RunsListAction,
					},
					{
						Name:   "last",
						Usage:  "Show the most recent run",
						Flags:  []cli.Flag{envFlag()},
						Action: RunsLastAction,
					},
					{
						Name:  "watch",
						Usage: "Follow a run until it reaches a final status",
						Flags: []cli.Flag{
							envFlag(),
							&cli.StringFlag{
								Name:  "run",
								Usage: "run id (default: whatever run is last)",
							},
						},
						Action: RunsWatchAction,
					},
				},
			},
			{
				Name:  "datasets",
				Usage: "Preview and export scraped data",
				Commands: []*cli.Command{
					{
						Name:  "preview",
						Usage: "Render the first records of a dataset",
						Flags: []cli.Flag{
							envFlag(),
							&cli.StringFlag{
								Name:  "dataset",
								Usage: "dataset id (default: the last run's dataset)",
							},
							&cli.IntFlag{
								Name:  "limit",
								Usage: "records to show (default PREVIEW_LIMIT)",
							},
						},
						Action: DatasetsPreviewAction,
					},
					{
						Name:  "export-url",
						Usage: "Print a download link for a dataset",
						Flags: []cli.Flag{
							envFlag(),
							&cli.StringFlag{
								Name:     "dataset",
								Usage:    "dataset id",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "format",
								Usage: "json, csv, xlsx or xml",
								Value: string(entity.ExportJSON),
							},
						},
						Action: DatasetsExportURLAction,
					},
				},
			},
		},
	}
}
