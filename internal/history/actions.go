package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pagelens/pagelens/internal/common"
	"github.com/pagelens/pagelens/pkg/db"
	"github.com/urfave/cli/v2"
)

// ListAction prints recent analyses, newest first. The default table
// view is for humans; --format json|yaml emits the raw summaries.
func ListAction(c *cli.Context) error {
	database, err := openHistory(c)
	if err != nil {
		return err
	}
	defer database.Close()

	analyses, err := database.ListAnalyses(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	format := strings.ToLower(c.String("format"))
	if format == "json" || format == "yaml" {
		return common.WriteOutput(analyses, format)
	}

	if len(analyses) == 0 {
		fmt.Println("No analyses recorded yet")
		fmt.Println("\nTip: Run 'pagelens analyze --url \"...\"' to record one")
		return nil
	}

	fmt.Printf("%-36s %-20s %-8s %-8s %-7s %s\n",
		"ID", "Created", "Status", "Quality", "Words", "URL")
	fmt.Println(strings.Repeat("-", 110))

	for _, a := range analyses {
		quality := string(a.Quality)
		if quality == "" {
			quality = "-"
		}
		fmt.Printf("%-36s %-20s %-8s %-8s %-7d %s\n",
			a.ID,
			a.CreatedAt.Format("2006-01-02 15:04:05"),
			a.Status,
			quality,
			a.WordCount,
			a.URL,
		)
	}

	fmt.Printf("\nTotal: %d analyses\n", len(analyses))
	fmt.Printf("\nTip: Use 'pagelens history show <id>' to see the full report\n")

	return nil
}

// ShowAction prints one stored report, similar pages included. With
// no argument it shows the most recent analysis.
func ShowAction(c *cli.Context) error {
	database, err := openHistory(c)
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := analysisIDOrLatest(c, database)
	if err != nil {
		return err
	}

	report, err := database.GetAnalysis(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("no analysis with ID %s\nTip: 'pagelens history list' shows recorded IDs", id)
		}
		return fmt.Errorf("failed to load analysis: %w", err)
	}

	return common.WriteOutput(report, c.String("format"))
}

// SummaryAction prints history-wide aggregates: total analyses and
// the quality distribution of the successful ones.
func SummaryAction(c *cli.Context) error {
	database, err := openHistory(c)
	if err != nil {
		return err
	}
	defer database.Close()

	total, err := database.CountAnalyses()
	if err != nil {
		return fmt.Errorf("failed to count analyses: %w", err)
	}
	breakdown, err := database.QualityBreakdown()
	if err != nil {
		return fmt.Errorf("failed to compute quality breakdown: %w", err)
	}

	out := struct {
		TotalAnalyses int            `json:"total_analyses" yaml:"total_analyses"`
		QualityCounts map[string]int `json:"quality_counts" yaml:"quality_counts"`
	}{
		TotalAnalyses: total,
		QualityCounts: make(map[string]int, len(breakdown)),
	}
	for label, n := range breakdown {
		out.QualityCounts[string(label)] = n
	}

	return common.WriteOutput(out, c.String("format"))
}

// PruneAction deletes analyses older than the given age. Similar
// pages cascade with their analysis.
func PruneAction(c *cli.Context) error {
	age, err := time.ParseDuration(c.String("older-than"))
	if err != nil {
		return fmt.Errorf("invalid --older-than duration: %w", err)
	}
	if age <= 0 {
		return fmt.Errorf("--older-than must be positive, got %s", age)
	}

	database, err := openHistory(c)
	if err != nil {
		return err
	}
	defer database.Close()

	deleted, err := database.DeleteOlderThan(age)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	fmt.Printf("Deleted %d analyses older than %s\n", deleted, age)
	return nil
}

func openHistory(c *cli.Context) (*db.DB, error) {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.History.Path == "" {
		return nil, fmt.Errorf("history is disabled (history.path is empty); pass --db or set history.path")
	}

	database, err := db.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return database, nil
}

// analysisIDOrLatest returns the ID argument, or the most recent
// analysis when none is given.
func analysisIDOrLatest(c *cli.Context, database *db.DB) (string, error) {
	if c.NArg() > 0 {
		return c.Args().First(), nil
	}

	latest, err := database.ListAnalyses(1)
	if err != nil {
		return "", fmt.Errorf("failed to find latest analysis: %w", err)
	}
	if len(latest) == 0 {
		return "", fmt.Errorf("no analyses recorded yet. Run 'pagelens analyze --url \"...\"' first")
	}
	return latest[0].ID, nil
}
