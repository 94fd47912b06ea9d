package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pagelens/pagelens/internal/analyze"
	"github.com/pagelens/pagelens/internal/corpus"
	"github.com/pagelens/pagelens/internal/history"
	"github.com/pagelens/pagelens/internal/serve"
)

const version = "0.4.0"

func main() {
	app := &cli.App{
		Name:    "pagelens",
		Usage:   "score web page content quality and find similar pages",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config file (default: pagelens.yaml when present)",
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "quality model artifact (overrides config)",
			},
			&cli.StringFlag{
				Name:  "corpus-features",
				Usage: "reference corpus features CSV (overrides config)",
			},
			&cli.StringFlag{
				Name:  "corpus-content",
				Usage: "reference corpus content CSV (overrides config)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "history database path (overrides config)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: json (default) or yaml",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "log errors only",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Fetch URLs, score their content quality, and list similar corpus pages",
				Action: analyze.AnalyzeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "single URL to analyze",
					},
					&cli.StringFlag{
						Name:  "urls",
						Usage: "comma-separated URLs to analyze as a batch",
					},
					&cli.StringFlag{
						Name:  "html",
						Usage: "local HTML file to analyze as --url instead of fetching",
					},
					&cli.IntFlag{
						Name:  "top-n",
						Usage: "similar pages to report per URL (overrides config)",
					},
					&cli.StringFlag{
						Name:  "extract-mode",
						Usage: "content extraction: heuristic, readability, or auto (overrides config)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "concurrent fetch workers for batch runs (overrides config)",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "skip recording results in the history database",
					},
					&cli.StringFlag{
						Name:  "fields",
						Usage: "comma-separated report fields to keep in the output",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "directory to export per-page reports plus a run summary",
					},
					&cli.BoolFlag{
						Name:  "force-fetch",
						Usage: "refetch even when the local HTML cache has the page",
					},
				},
			},
			{
				Name:   "quickstart",
				Usage:  "Print setup steps and ready-to-run examples",
				Action: analyze.QuickstartAction,
			},
			{
				Name:   "serve",
				Usage:  "Run the analysis HTTP API",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "listen address (overrides config)",
					},
				},
			},
			{
				Name:  "corpus",
				Usage: "Inspect the reference corpus",
				Subcommands: []*cli.Command{
					{
						Name:   "stats",
						Usage:  "Page count, averages, and quality distribution",
						Action: corpus.StatsAction,
					},
					{
						Name:   "check",
						Usage:  "Integrity checks; exits 1 when the dataset has problems",
						Action: corpus.CheckAction,
					},
					{
						Name:   "keywords",
						Usage:  "Most common terms across all corpus pages",
						Action: corpus.KeywordsAction,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "top",
								Value: 25,
								Usage: "number of terms to report",
							},
						},
					},
				},
			},
			{
				Name:  "history",
				Usage: "Browse recorded analyses",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "Recent analyses, newest first",
						Action: history.ListAction,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
								Usage: "maximum rows to show (0 = all)",
							},
						},
					},
					{
						Name:      "show",
						Usage:     "One stored report, similar pages included",
						ArgsUsage: "[analysis-id]",
						Action:    history.ShowAction,
					},
					{
						Name:   "summary",
						Usage:  "Totals and quality distribution across all analyses",
						Action: history.SummaryAction,
					},
					{
						Name:   "prune",
						Usage:  "Delete analyses older than a given age",
						Action: history.PruneAction,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "older-than",
								Required: true,
								Usage:    "age cutoff as a Go duration, e.g. 720h",
							},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
