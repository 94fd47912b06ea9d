// Package analyzer wires the pipeline together: fetch, extract,
// feature computation, quality classification and similar-page
// ranking. An Analyzer holds the process-lifetime resources (model,
// corpus, HTTP fetcher) and is safe for concurrent use.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pagelens/pagelens/internal/common"
	"github.com/pagelens/pagelens/models"
	"github.com/pagelens/pagelens/pkg/analytics"
	"github.com/pagelens/pagelens/pkg/caching"
	"github.com/pagelens/pagelens/pkg/classifier"
	"github.com/pagelens/pagelens/pkg/corpus"
	"github.com/pagelens/pagelens/pkg/extractor"
	"github.com/pagelens/pagelens/pkg/features"
	"github.com/pagelens/pagelens/pkg/fetcher"
	"github.com/pagelens/pagelens/pkg/similarity"
)

// topTermCount caps the term frequency list carried on each report.
const topTermCount = 10

// errNoContent marks a page whose HTML yielded no visible text at all.
var errNoContent = errors.New("no readable content extracted")

// Analyzer runs the full pipeline for one URL at a time. The model
// and corpus are loaded once at startup and never mutated afterwards.
type Analyzer struct {
	cfg       *models.Config
	fetcher   *fetcher.Fetcher
	extractor *extractor.Extractor
	model     *classifier.Model
	corpus    *corpus.Corpus
	cache     *caching.Cache // nil when fetch.cache_dir is unset
	mode      models.ExtractMode
	params    similarity.Params
	logger    *slog.Logger
}

// New builds an Analyzer around already-loaded resources.
func New(cfg *models.Config, model *classifier.Model, corp *corpus.Corpus, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}

	// An explicit zero in the config disables the small-body floor;
	// the fetcher reserves negative values for that.
	minBody := cfg.Fetch.MinBodyBytes
	if minBody == 0 {
		minBody = -1
	}

	mode, err := models.ParseExtractMode(cfg.ExtractMode)
	if err != nil {
		// Validated configs never get here.
		mode = models.ExtractModeHeuristic
	}

	var cache *caching.Cache
	if cfg.Fetch.CacheDir != "" {
		cache = caching.NewCache(cfg.Fetch.CacheDir, cfg.Fetch.CacheTTL())
	}

	return &Analyzer{
		cfg: cfg,
		fetcher: fetcher.NewFetcher(fetcher.Options{
			Timeout:      cfg.Fetch.Timeout(),
			Delay:        cfg.Fetch.Delay(),
			MinBodyBytes: minBody,
			UserAgent:    cfg.Fetch.UserAgent,
		}),
		extractor: &extractor.Extractor{},
		model:     model,
		corpus:    corp,
		cache:     cache,
		mode:      mode,
		params: similarity.Params{
			WordCountWeight: cfg.Similarity.WordCountWeight,
			KeywordWeight:   cfg.Similarity.KeywordWeight,
			Cutoff:          cfg.Similarity.Cutoff,
		},
		logger: logger,
	}
}

// Analyze fetches one URL and runs the pipeline on its HTML. A failed
// fetch still yields a report: status failed, word count zero, and a
// user-facing reason instead of a raw error chain.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalyzeRequest) *models.Report {
	start := time.Now()
	url := common.NormalizeURL(req.URL)

	if a.cache != nil && !req.ForceFetch {
		if html, ok := a.cache.Get(url); ok {
			a.logger.Debug("cache hit", "url", url, "bytes", len(html))
			report := a.analyzeHTML(url, html, req, start)
			report.Cached = true
			return report
		}
	}

	html, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		a.logger.Error("fetch failed", "url", url, "error", err)
		return a.failedReport(url, models.ErrorTypeFetch, err, fetcher.Reason(err), start)
	}
	a.logger.Debug("fetched page", "url", url, "bytes", len(html))

	if a.cache != nil {
		if err := a.cache.Set(url, html); err != nil {
			a.logger.Warn("cache write failed", "url", url, "error", err)
		}
	}

	return a.analyzeHTML(url, html, req, start)
}

// AnalyzeHTML runs the pipeline on HTML the caller already has.
// Offline callers (local files, tests) use it to skip the network
// entirely.
func (a *Analyzer) AnalyzeHTML(req models.AnalyzeRequest, html []byte) *models.Report {
	return a.analyzeHTML(common.NormalizeURL(req.URL), html, req, time.Now())
}

func (a *Analyzer) analyzeHTML(url string, html []byte, req models.AnalyzeRequest, start time.Time) *models.Report {
	mode := a.mode
	if req.Mode != "" {
		mode = req.Mode
	}
	topN := a.cfg.Similarity.TopN
	if req.TopN > 0 {
		topN = req.TopN
	}

	page := a.extractor.ExtractWithMode(url, html, mode)
	if strings.TrimSpace(page.BodyText) == "" {
		a.logger.Warn("no readable content", "url", url, "bytes", len(html))
		report := a.failedReport(url, models.ErrorTypeExtract,
			errNoContent, "page has no readable content", start)
		report.Title = page.Title
		report.ContentHash = common.ContentHash(html)
		return report
	}

	fs := features.Compute(page.BodyText, page.WordCount)

	report := &models.Report{
		ID:          uuid.NewString(),
		URL:         url,
		Status:      models.StatusSuccess,
		Title:       page.Title,
		WordCount:   page.WordCount,
		Preview:     page.Preview(),
		Features:    &fs,
		Quality:     a.model.Predict(fs),
		Language:    features.DetectLanguage(page.BodyText),
		ContentHash: common.ContentHash(html),
		TopTerms:    analytics.TopTerms(analytics.WordFrequency(page.BodyText), topTermCount),
		Similar:     similarity.Rank(page, a.corpus.Entries(), topN, a.params),
		DurationMS:  time.Since(start).Milliseconds(),
		CreatedAt:   time.Now().UTC(),
	}

	a.logger.Debug("analyzed page",
		"url", url,
		"word_count", report.WordCount,
		"quality", report.Quality,
		"similar", len(report.Similar),
		"duration_ms", report.DurationMS)
	return report
}

// failedReport is the zero-content sentinel: word count stays 0 so
// downstream consumers can tell "could not analyze" from a real page.
func (a *Analyzer) failedReport(url, errorType string, err error, reason string, start time.Time) *models.Report {
	return &models.Report{
		ID:         uuid.NewString(),
		URL:        url,
		Status:     models.StatusFailed,
		Error:      err.Error(),
		ErrorType:  errorType,
		Reason:     reason,
		DurationMS: time.Since(start).Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
}
