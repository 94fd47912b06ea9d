// Package corpus loads the reference datasets used for similarity
// ranking and corpus reporting.
//
// Two CSV files form the corpus: a features table (url, word_count,
// quality_label) and a content table (url, body_text). Content is
// left-joined onto features by URL, so every features row becomes an
// entry even when no body text was captured for it.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pagelens/pagelens/models"
)

// Required dataset columns. Extra columns are tolerated and ignored.
var (
	featureColumns = []string{"url", "word_count", "quality_label"}
	contentColumns = []string{"url", "body_text"}
)

// Corpus is the in-memory reference corpus. It is loaded once at
// startup and read-only afterwards, so it is safe to share across
// concurrent analyses.
type Corpus struct {
	entries []models.CorpusEntry
	byURL   map[string]int
}

// Load reads both datasets and joins them. An unreadable file, a
// missing required column or a malformed row is a load error; callers
// must not continue with a partial corpus.
func Load(featuresPath, contentPath string) (*Corpus, error) {
	entries, err := loadFeatures(featuresPath)
	if err != nil {
		return nil, err
	}

	bodies, err := loadContent(contentPath)
	if err != nil {
		return nil, err
	}

	byURL := make(map[string]int, len(entries))
	for i := range entries {
		entries[i].BodyText = bodies[entries[i].URL]
		if _, dup := byURL[entries[i].URL]; !dup {
			byURL[entries[i].URL] = i
		}
	}

	return &Corpus{entries: entries, byURL: byURL}, nil
}

// FromEntries builds a corpus from already-joined rows, bypassing the
// CSV loader. Callers that assemble entries programmatically use this.
func FromEntries(entries []models.CorpusEntry) *Corpus {
	copied := append([]models.CorpusEntry(nil), entries...)
	byURL := make(map[string]int, len(copied))
	for i := range copied {
		if _, dup := byURL[copied[i].URL]; !dup {
			byURL[copied[i].URL] = i
		}
	}
	return &Corpus{entries: copied, byURL: byURL}
}

// Entries returns the joined rows in dataset order. The slice is
// shared; callers must treat it as read-only.
func (c *Corpus) Entries() []models.CorpusEntry {
	return c.entries
}

func (c *Corpus) Len() int {
	return len(c.entries)
}

// Entry looks up a row by exact URL. When the features dataset
// repeats a URL, the first row wins.
func (c *Corpus) Entry(url string) (models.CorpusEntry, bool) {
	i, ok := c.byURL[url]
	if !ok {
		return models.CorpusEntry{}, false
	}
	return c.entries[i], true
}

func loadFeatures(path string) ([]models.CorpusEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open features dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	cols, err := headerIndex(r, featureColumns)
	if err != nil {
		return nil, fmt.Errorf("features dataset %s: %w", path, err)
	}

	var entries []models.CorpusEntry
	for row := 1; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("features dataset %s row %d: %w", path, row, err)
		}

		rawCount := strings.TrimSpace(record[cols["word_count"]])
		wc, err := strconv.Atoi(rawCount)
		if err != nil {
			return nil, fmt.Errorf("features dataset %s row %d: invalid word_count %q", path, row, rawCount)
		}

		entries = append(entries, models.CorpusEntry{
			URL:          strings.TrimSpace(record[cols["url"]]),
			WordCount:    wc,
			QualityLabel: models.QualityLabel(strings.TrimSpace(record[cols["quality_label"]])),
		})
	}
	return entries, nil
}

func loadContent(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open content dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	cols, err := headerIndex(r, contentColumns)
	if err != nil {
		return nil, fmt.Errorf("content dataset %s: %w", path, err)
	}

	bodies := make(map[string]string)
	for row := 1; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("content dataset %s row %d: %w", path, row, err)
		}

		url := strings.TrimSpace(record[cols["url"]])
		// First occurrence wins when a URL appears twice.
		if _, ok := bodies[url]; !ok {
			bodies[url] = record[cols["body_text"]]
		}
	}
	return bodies, nil
}

// headerIndex reads the header row and maps lower-cased column names
// to their positions, requiring every listed column to be present.
func headerIndex(r *csv.Reader, required []string) (map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}
