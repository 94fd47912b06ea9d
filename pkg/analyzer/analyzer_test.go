package analyzer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pagelens/pagelens/internal/common"
	"github.com/pagelens/pagelens/models"
	"github.com/pagelens/pagelens/pkg/classifier"
	"github.com/pagelens/pagelens/pkg/corpus"
)

// testSentence has nine words; six survive the stopword filter
// (golang channels concurrent pipelines reason simple).
const testSentence = "Golang channels make concurrent pipelines simple to reason about."

const sentenceWords = 9

// articleHTML builds a page whose <article> clears the extraction
// threshold. Newlines between paragraphs keep adjacent sentences from
// fusing into one token when the element text is flattened.
func articleHTML(title string, repeats int) string {
	var b strings.Builder
	b.WriteString("<html><head><title>" + title + "</title></head><body><article>\n")
	for i := 0; i < repeats; i++ {
		b.WriteString("<p>" + testSentence + "</p>\n")
	}
	b.WriteString("</article></body></html>")
	return b.String()
}

// testModel is a single constant leaf voting Medium, so quality
// assertions don't depend on feature values.
func testModel() *classifier.Model {
	leaf := classifier.Tree{
		ChildrenLeft:  []int{-1},
		ChildrenRight: []int{-1},
		Feature:       []int{-2},
		Threshold:     []float64{-2},
		Value:         [][]float64{{0, 1, 0}},
	}
	return &classifier.Model{
		ModelType:    "random_forest",
		FeatureNames: classifier.RequiredFeatures,
		Classes:      []models.QualityLabel{models.QualityLow, models.QualityMedium, models.QualityHigh},
		Trees:        []classifier.Tree{leaf},
	}
}

func testConfig() *models.Config {
	cfg := models.DefaultConfig()
	cfg.Fetch.TimeoutSeconds = 5
	cfg.Fetch.DelayMS = 0 // no courtesy wait between test requests
	return cfg
}

func newTestAnalyzer(cfg *models.Config, entries []models.CorpusEntry) *Analyzer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, testModel(), corpus.FromEntries(entries), logger)
}

func TestAnalyze_Success(t *testing.T) {
	html := articleHTML("Go Concurrency Patterns", 40)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	defer ts.Close()

	a := newTestAnalyzer(testConfig(), nil)
	report := a.Analyze(context.Background(), models.AnalyzeRequest{URL: ts.URL})

	if report.Failed() {
		t.Fatalf("Analyze() status = %q (%s), want success", report.Status, report.Error)
	}
	if report.ID == "" {
		t.Error("Analyze() report has no ID")
	}
	if report.Title != "Go Concurrency Patterns" {
		t.Errorf("Title = %q", report.Title)
	}
	if want := 40 * sentenceWords; report.WordCount != want {
		t.Errorf("WordCount = %d, want %d", report.WordCount, want)
	}
	if report.Features == nil {
		t.Fatal("Analyze() report has no features")
	}
	if !report.Features.IsThin {
		t.Errorf("IsThin = false for %d words, want true", report.WordCount)
	}
	if report.Quality != models.QualityMedium {
		t.Errorf("Quality = %q, want Medium from the constant model", report.Quality)
	}
	if report.Language != "en" {
		t.Errorf("Language = %q, want en", report.Language)
	}
	if want := common.ContentHash([]byte(html)); report.ContentHash != want {
		t.Errorf("ContentHash = %q, want hash of served HTML", report.ContentHash)
	}
	if report.Preview == "" || len(report.Preview) > models.PreviewLength {
		t.Errorf("Preview length = %d, want 1..%d", len(report.Preview), models.PreviewLength)
	}
	if report.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestAnalyze_TopTermsSkipStopwords(t *testing.T) {
	a := newTestAnalyzer(testConfig(), nil)
	report := a.AnalyzeHTML(models.AnalyzeRequest{URL: "example.com/terms"}, []byte(articleHTML("t", 40)))

	if len(report.TopTerms) != 6 {
		t.Fatalf("TopTerms has %d entries, want 6: %v", len(report.TopTerms), report.TopTerms)
	}
	// All counts tie at 40, so terms come back alphabetically.
	first := report.TopTerms[0]
	if first.Term != "channels" || first.Count != 40 {
		t.Errorf("TopTerms[0] = %+v, want {channels 40}", first)
	}
	for _, tc := range report.TopTerms {
		if tc.Term == "make" || tc.Term == "about" {
			t.Errorf("stopword %q leaked into top terms", tc.Term)
		}
	}
}

func TestAnalyze_FetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	a := newTestAnalyzer(testConfig(), nil)
	report := a.Analyze(context.Background(), models.AnalyzeRequest{URL: ts.URL})

	if !report.Failed() {
		t.Fatalf("Analyze() status = %q, want failed", report.Status)
	}
	if report.ErrorType != models.ErrorTypeFetch {
		t.Errorf("ErrorType = %q, want %q", report.ErrorType, models.ErrorTypeFetch)
	}
	if report.Reason != "server returned an error status" {
		t.Errorf("Reason = %q", report.Reason)
	}
	if report.WordCount != 0 {
		t.Errorf("WordCount = %d on failed analysis, want 0", report.WordCount)
	}
	if report.Features != nil {
		t.Errorf("Features = %+v on failed analysis, want nil", report.Features)
	}
	if report.ID == "" {
		t.Error("failed report has no ID")
	}
}

func TestAnalyze_SmallBodyTreatedAsBlocked(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 500)))
	}))
	defer ts.Close()

	a := newTestAnalyzer(testConfig(), nil)
	report := a.Analyze(context.Background(), models.AnalyzeRequest{URL: ts.URL})

	if !report.Failed() {
		t.Fatalf("Analyze() status = %q, want failed for 500-byte body", report.Status)
	}
	if report.Reason != "page appears blocked or is a placeholder" {
		t.Errorf("Reason = %q", report.Reason)
	}
}

func TestAnalyzeHTML_RanksSimilarPages(t *testing.T) {
	html := articleHTML("target", 40)
	wordCount := 40 * sentenceWords
	entries := []models.CorpusEntry{
		// Same URL as the target: never a result, however similar.
		{URL: "https://example.com/target", BodyText: testSentence, WordCount: wordCount, QualityLabel: models.QualityHigh},
		// Same vocabulary and word count: perfect match.
		{URL: "https://example.com/twin", BodyText: testSentence, WordCount: wordCount, QualityLabel: models.QualityHigh},
		// Nothing in common and far off in length: below the cutoff.
		{URL: "https://example.com/finance", BodyText: "quarterly revenue forecast spreadsheet", WordCount: 40, QualityLabel: models.QualityLow},
	}

	a := newTestAnalyzer(testConfig(), entries)
	report := a.AnalyzeHTML(models.AnalyzeRequest{URL: "example.com/target"}, []byte(html))

	if report.Failed() {
		t.Fatalf("AnalyzeHTML() status = %q (%s)", report.Status, report.Error)
	}
	if len(report.Similar) != 1 {
		t.Fatalf("Similar has %d entries, want 1: %+v", len(report.Similar), report.Similar)
	}
	match := report.Similar[0]
	if match.URL != "https://example.com/twin" {
		t.Errorf("Similar[0].URL = %q, want the twin page", match.URL)
	}
	if diff := match.Similarity - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Similarity = %v, want 1.0", match.Similarity)
	}
	if match.Quality != models.QualityHigh {
		t.Errorf("Similar[0].Quality = %q, want High", match.Quality)
	}
}

func TestAnalyzeHTML_TopNOverride(t *testing.T) {
	wordCount := 40 * sentenceWords
	entries := []models.CorpusEntry{
		{URL: "https://example.com/a", BodyText: testSentence, WordCount: wordCount},
		{URL: "https://example.com/b", BodyText: testSentence, WordCount: wordCount},
	}

	a := newTestAnalyzer(testConfig(), entries)
	req := models.AnalyzeRequest{URL: "example.com/target", TopN: 1}
	report := a.AnalyzeHTML(req, []byte(articleHTML("t", 40)))

	if len(report.Similar) != 1 {
		t.Fatalf("Similar has %d entries with top_n=1, want 1", len(report.Similar))
	}
	if report.Similar[0].URL != "https://example.com/a" {
		t.Errorf("Similar[0].URL = %q, want first corpus row on equal scores", report.Similar[0].URL)
	}
}

func TestAnalyzeHTML_NoReadableContent(t *testing.T) {
	html := "<html><head></head><body><script>var a = 1;</script></body></html>"

	a := newTestAnalyzer(testConfig(), nil)
	report := a.AnalyzeHTML(models.AnalyzeRequest{URL: "example.com/empty"}, []byte(html))

	if !report.Failed() {
		t.Fatalf("AnalyzeHTML() status = %q, want failed for script-only page", report.Status)
	}
	if report.ErrorType != models.ErrorTypeExtract {
		t.Errorf("ErrorType = %q, want %q", report.ErrorType, models.ErrorTypeExtract)
	}
	if report.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", report.WordCount)
	}
	if report.ContentHash == "" {
		t.Error("ContentHash missing; the bytes were fetched even if unreadable")
	}
}

func TestAnalyzeBatch_PreservesInputOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML("ok", 40)))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	urls := []string{ts.URL + "/ok", ts.URL + "/missing", ts.URL + "/ok"}

	a := newTestAnalyzer(testConfig(), nil)
	reports := a.AnalyzeBatch(context.Background(), Requests(urls, models.AnalyzeRequest{}), 2)

	if len(reports) != 3 {
		t.Fatalf("AnalyzeBatch() returned %d reports, want 3", len(reports))
	}
	for i, url := range urls {
		if reports[i].URL != url {
			t.Errorf("reports[%d].URL = %q, want %q", i, reports[i].URL, url)
		}
	}
	if reports[0].Failed() || reports[2].Failed() {
		t.Error("healthy URLs failed")
	}
	if !reports[1].Failed() {
		t.Error("404 URL did not fail")
	}
	if got := CountFailed(reports); got != 1 {
		t.Errorf("CountFailed() = %d, want 1", got)
	}
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	a := newTestAnalyzer(testConfig(), nil)
	if reports := a.AnalyzeBatch(context.Background(), nil, 4); reports != nil {
		t.Errorf("AnalyzeBatch(nil) = %v, want nil", reports)
	}
}

func TestAnalyze_CacheSkipsSecondFetch(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(articleHTML("cached", 40)))
	}))
	defer ts.Close()

	cfg := testConfig()
	cfg.Fetch.CacheDir = t.TempDir()
	cfg.Fetch.CacheTTLHours = 1

	a := newTestAnalyzer(cfg, nil)

	first := a.Analyze(context.Background(), models.AnalyzeRequest{URL: ts.URL})
	if first.Failed() {
		t.Fatalf("first Analyze() failed: %s", first.Error)
	}
	if first.Cached {
		t.Error("first report marked cached, want a live fetch")
	}

	second := a.Analyze(context.Background(), models.AnalyzeRequest{URL: ts.URL})
	if !second.Cached {
		t.Error("second report not marked cached")
	}
	if hits != 1 {
		t.Errorf("server saw %d requests, want 1", hits)
	}
	if second.ContentHash != first.ContentHash {
		t.Errorf("cached ContentHash = %q, want %q", second.ContentHash, first.ContentHash)
	}

	forced := a.Analyze(context.Background(), models.AnalyzeRequest{URL: ts.URL, ForceFetch: true})
	if forced.Cached {
		t.Error("force_fetch report marked cached")
	}
	if hits != 2 {
		t.Errorf("server saw %d requests after force_fetch, want 2", hits)
	}
}
