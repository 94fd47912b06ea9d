package corpus

import (
	"fmt"
	"os"

	"github.com/pagelens/pagelens/internal/common"
	"github.com/pagelens/pagelens/pkg/corpus"
	"github.com/pagelens/pagelens/pkg/help"
	"github.com/urfave/cli/v2"
)

// StatsAction prints corpus-wide aggregates: page count, average
// word count, and the quality label distribution.
func StatsAction(c *cli.Context) error {
	corp, err := loadCorpus(c)
	if err != nil {
		return err
	}
	return common.WriteOutput(corp.Stats(), c.String("format"))
}

// CheckAction runs dataset integrity checks and exits non-zero when
// any problem is found, so it can gate corpus updates in CI.
func CheckAction(c *cli.Context) error {
	corp, err := loadCorpus(c)
	if err != nil {
		return err
	}

	check := corp.Check()
	if err := common.WriteOutput(check, c.String("format")); err != nil {
		return err
	}

	if check.MissingBody > 0 || len(check.DuplicateURLs) > 0 || len(check.UnknownLabels) > 0 {
		os.Exit(1)
	}
	return nil
}

// KeywordsAction prints the most common terms across all corpus bodies.
func KeywordsAction(c *cli.Context) error {
	top := c.Int("top")
	if top < 1 {
		return fmt.Errorf("--top must be >= 1, got %d", top)
	}

	corp, err := loadCorpus(c)
	if err != nil {
		return err
	}
	return common.WriteOutput(corp.Keywords(top), c.String("format"))
}

func loadCorpus(c *cli.Context) (*corpus.Corpus, error) {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	corp, err := corpus.Load(cfg.Corpus.FeaturesPath, cfg.Corpus.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference corpus: %w\nHint: %s", err, help.SetupHint)
	}
	return corp, nil
}
