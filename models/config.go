// Package models defines the data types shared across the pipeline.
package models

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where LoadConfig looks when no path is given.
const DefaultConfigPath = "pagelens.yaml"

// Config is the full runtime configuration. Every field has a default;
// a missing config file is not an error.
type Config struct {
	LogLevel    string           `yaml:"log_level"`
	ModelPath   string           `yaml:"model_path"`
	Corpus      CorpusConfig     `yaml:"corpus"`
	Fetch       FetchConfig      `yaml:"fetch"`
	Similarity  SimilarityConfig `yaml:"similarity"`
	ExtractMode string           `yaml:"extract_mode"`
	History     HistoryConfig    `yaml:"history"`
	Server      ServerConfig     `yaml:"server"`
	Workers     int              `yaml:"workers"`
}

// CorpusConfig locates the two reference dataset files.
type CorpusConfig struct {
	FeaturesPath string `yaml:"features_path"`
	ContentPath  string `yaml:"content_path"`
}

// FetchConfig holds HTTP fetch settings. An empty CacheDir disables
// the local HTML cache.
type FetchConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	DelayMS        int    `yaml:"delay_ms"`
	MinBodyBytes   int    `yaml:"min_body_bytes"`
	UserAgent      string `yaml:"user_agent"`
	CacheDir       string `yaml:"cache_dir"`
	CacheTTLHours  int    `yaml:"cache_ttl_hours"`
}

// Timeout returns the fetch timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// Delay returns the courtesy delay as a duration.
func (f FetchConfig) Delay() time.Duration {
	return time.Duration(f.DelayMS) * time.Millisecond
}

// CacheTTL returns how long cached HTML stays fresh.
func (f FetchConfig) CacheTTL() time.Duration {
	return time.Duration(f.CacheTTLHours) * time.Hour
}

// SimilarityConfig tunes the similar-page ranking.
// The weights must sum to 1.
type SimilarityConfig struct {
	TopN            int     `yaml:"top_n"`
	Cutoff          float64 `yaml:"cutoff"`
	WordCountWeight float64 `yaml:"word_count_weight"`
	KeywordWeight   float64 `yaml:"keyword_weight"`
}

// HistoryConfig locates the analysis history database.
// An empty path disables history recording.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr                string `yaml:"addr"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		ModelPath: "model.json",
		Corpus: CorpusConfig{
			FeaturesPath: "data/page_features.csv",
			ContentPath:  "data/page_content.csv",
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 15,
			DelayMS:        1000,
			MinBodyBytes:   1000,
			CacheTTLHours:  24,
		},
		Similarity: SimilarityConfig{
			TopN:            5,
			Cutoff:          0.3,
			WordCountWeight: 0.6,
			KeywordWeight:   0.4,
		},
		ExtractMode: string(ExtractModeHeuristic),
		History: HistoryConfig{
			Path: "pagelens.db",
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 60,
		},
		Workers: 4,
	}
}

// LoadConfig reads a YAML config file and applies defaults for omitted
// fields. An empty path means DefaultConfigPath; a missing file yields
// the defaults. The result is validated.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Similarity.TopN < 1 {
		return fmt.Errorf("similarity.top_n must be >= 1, got %d", c.Similarity.TopN)
	}
	if c.Similarity.Cutoff < 0 || c.Similarity.Cutoff >= 1 {
		return fmt.Errorf("similarity.cutoff must be in [0, 1), got %v", c.Similarity.Cutoff)
	}
	sum := c.Similarity.WordCountWeight + c.Similarity.KeywordWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("similarity weights must sum to 1, got %v", sum)
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be positive, got %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.DelayMS < 0 {
		return fmt.Errorf("fetch.delay_ms must not be negative, got %d", c.Fetch.DelayMS)
	}
	if c.Fetch.MinBodyBytes < 0 {
		return fmt.Errorf("fetch.min_body_bytes must not be negative, got %d", c.Fetch.MinBodyBytes)
	}
	if c.Fetch.CacheDir != "" && c.Fetch.CacheTTLHours < 1 {
		return fmt.Errorf("fetch.cache_ttl_hours must be >= 1 when the cache is enabled, got %d", c.Fetch.CacheTTLHours)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if _, err := ParseExtractMode(c.ExtractMode); err != nil {
		return err
	}
	return nil
}
