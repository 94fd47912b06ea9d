package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pagelens/pagelens/internal/common"
	"github.com/pagelens/pagelens/models"
	"github.com/pagelens/pagelens/pkg/analytics"
	"github.com/pagelens/pagelens/pkg/analyzer"
	"github.com/pagelens/pagelens/pkg/classifier"
	"github.com/pagelens/pagelens/pkg/corpus"
	"github.com/pagelens/pagelens/pkg/db"
	"github.com/pagelens/pagelens/pkg/help"
	"github.com/pagelens/pagelens/pkg/manifest"
	"github.com/pagelens/pagelens/pkg/storage"
	"github.com/urfave/cli/v2"
)

// statsTermCount caps the aggregated term list in batch stats and run
// summaries.
const statsTermCount = 25

func AnalyzeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	cfg, err := common.LoadConfig(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if c.IsSet("top-n") {
		cfg.Similarity.TopN = c.Int("top-n")
	}
	if c.IsSet("extract-mode") {
		cfg.ExtractMode = c.String("extract-mode")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	urls := collectURLs(c)
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No URLs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  pagelens analyze --url "https://example.com/post"`)
		fmt.Fprintln(os.Stderr, `  pagelens analyze --urls "https://a.example/x,https://b.example/y"`)
		fmt.Fprintln(os.Stderr, `  pagelens analyze --url "https://example.com/post" --html saved.html`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: pagelens analyze --help")
		os.Exit(1)
	}

	htmlPath := c.String("html")
	if htmlPath != "" && len(urls) != 1 {
		fmt.Fprintln(os.Stderr, "Error: --html analyzes exactly one --url")
		os.Exit(1)
	}

	// Fail fast on malformed URLs before loading anything heavy.
	normalized, invalid := common.NormalizeAndValidateURLs(urls)
	if len(invalid) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d URL(s) are malformed (even after cleanup):\n", len(invalid))
		for _, badURL := range invalid {
			fmt.Fprintf(os.Stderr, "  - %s\n", badURL)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Note: URLs are auto-cleaned (whitespace trimmed, trailing punctuation removed, markdown links extracted)")
		fmt.Fprintln(os.Stderr, "      Spaces in URLs must be pre-encoded as %20.")
		os.Exit(1)
	}

	model, err := classifier.Load(cfg.ModelPath)
	if err != nil {
		logger.Error("failed to load model artifact", "path", cfg.ModelPath, "error", err, "hint", help.SetupHint)
		os.Exit(2)
	}
	corp, err := corpus.Load(cfg.Corpus.FeaturesPath, cfg.Corpus.ContentPath)
	if err != nil {
		logger.Error("failed to load reference corpus", "error", err, "hint", help.SetupHint)
		os.Exit(2)
	}
	logger.Info("resources loaded", "model_trees", len(model.Trees), "corpus_pages", corp.Len())

	a := analyzer.New(cfg, model, corp, logger)

	var reports []*models.Report
	if htmlPath != "" {
		data, err := os.ReadFile(htmlPath)
		if err != nil {
			logger.Error("failed to read HTML file", "path", htmlPath, "error", err)
			os.Exit(2)
		}
		reports = []*models.Report{a.AnalyzeHTML(models.AnalyzeRequest{URL: normalized[0]}, data)}
	} else {
		base := models.AnalyzeRequest{ForceFetch: c.Bool("force-fetch")}
		reports = a.AnalyzeBatch(context.Background(), analyzer.Requests(normalized, base), cfg.Workers)
	}

	if cfg.History.Path != "" && !c.Bool("no-history") {
		recordHistory(logger, cfg.History.Path, reports)
	}

	if outDir := c.String("out"); outDir != "" {
		if err := exportReports(logger, outDir, reports); err != nil {
			logger.Error("failed to export reports", "dir", outDir, "error", err)
			os.Exit(2)
		}
	}

	failed := analyzer.CountFailed(reports)
	if err := printReports(c, reports, failed, startTime); err != nil {
		logger.Error("failed to write output", "error", err)
		os.Exit(2)
	}

	if failed == len(reports) {
		os.Exit(2)
	}
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

// QuickstartAction prints the setup and usage reference.
func QuickstartAction(c *cli.Context) error {
	fmt.Print(help.QuickStartYAML)
	return nil
}

func collectURLs(c *cli.Context) []string {
	var urls []string
	if c.IsSet("url") {
		urls = append(urls, c.String("url"))
	}
	if c.IsSet("urls") {
		for _, u := range strings.Split(c.String("urls"), ",") {
			if strings.TrimSpace(u) != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

// exportReports writes one JSON file per successful report, plus a run
// summary indexing every result including the failures.
func exportReports(logger *slog.Logger, dir string, reports []*models.Report) error {
	store, err := storage.NewStorage(dir)
	if err != nil {
		return err
	}

	paths := make([]string, len(reports))
	for i, r := range reports {
		if r.Failed() {
			continue
		}
		path, err := store.SaveJSON(storage.ReportFilename(r.URL, r.CreatedAt), r)
		if err != nil {
			return fmt.Errorf("saving report for %s: %w", r.URL, err)
		}
		paths[i] = path
	}

	summaryPath, err := manifest.Write(store, manifest.Build(reports, paths))
	if err != nil {
		return fmt.Errorf("writing run summary: %w", err)
	}

	logger.Info("exported reports", "dir", store.Dir(), "summary", summaryPath)
	return nil
}

// recordHistory is best-effort: a broken history database must not
// fail an analysis that already completed.
func recordHistory(logger *slog.Logger, path string, reports []*models.Report) {
	database, err := db.Open(path)
	if err != nil {
		logger.Warn("failed to open history database", "path", path, "error", err)
		return
	}
	defer database.Close()

	for _, r := range reports {
		if err := database.InsertReport(r); err != nil {
			logger.Warn("failed to record analysis", "url", r.URL, "error", err)
		}
	}
}

// printReports writes a bare report for single-URL runs and the batch
// envelope otherwise, honoring --fields and --format.
func printReports(c *cli.Context, reports []*models.Report, failed int, startTime time.Time) error {
	fields := c.String("fields")
	format := c.String("format")

	if len(reports) == 1 {
		var out interface{} = reports[0]
		if fields != "" {
			out = common.FilterReportFields(reports[0], fields)
		}
		return common.WriteOutput(out, format)
	}

	results := make([]interface{}, len(reports))
	var termLists [][]models.TermCount
	for i, r := range reports {
		if fields != "" {
			results[i] = common.FilterReportFields(r, fields)
		} else {
			results[i] = r
		}
		if !r.Failed() {
			termLists = append(termLists, r.TopTerms)
		}
	}

	status := models.StatusSuccess
	switch {
	case failed == len(reports):
		status = models.StatusFailed
	case failed > 0:
		status = "partial_failure"
	}

	return common.WriteOutput(BatchOutput{
		Status:  status,
		Results: results,
		Stats: Stats{
			TotalURLs:        len(reports),
			Successful:       len(reports) - failed,
			Failed:           failed,
			TotalTimeSeconds: time.Since(startTime).Seconds(),
			TopTerms:         analytics.TopTerms(analytics.SumTermCounts(termLists...), statsTermCount),
		},
	}, format)
}
