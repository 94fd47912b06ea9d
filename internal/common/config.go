package common

import (
	"github.com/pagelens/pagelens/models"
	"github.com/urfave/cli/v2"
)

// LoadConfig resolves the runtime configuration: the YAML file first,
// then the global flag overrides every command shares.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("model") {
		cfg.ModelPath = c.String("model")
	}
	if c.IsSet("corpus-features") {
		cfg.Corpus.FeaturesPath = c.String("corpus-features")
	}
	if c.IsSet("corpus-content") {
		cfg.Corpus.ContentPath = c.String("corpus-content")
	}
	if c.IsSet("db") {
		cfg.History.Path = c.String("db")
	}
	return cfg, nil
}
