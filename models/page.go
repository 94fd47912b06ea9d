package models

import "strings"

// PreviewLength caps the body text excerpt carried in reports.
const PreviewLength = 1000

// QualityLabel is a categorical content quality rating.
type QualityLabel string

const (
	QualityLow    QualityLabel = "Low"
	QualityMedium QualityLabel = "Medium"
	QualityHigh   QualityLabel = "High"

	// QualityUnknown marks corpus rows with no recorded label.
	QualityUnknown QualityLabel = "Unknown"
)

// KnownLabels lists the labels a classifier may emit, in canonical order.
var KnownLabels = []QualityLabel{QualityLow, QualityMedium, QualityHigh}

// Valid reports whether the label is one a classifier may emit.
func (q QualityLabel) Valid() bool {
	for _, l := range KnownLabels {
		if q == l {
			return true
		}
	}
	return false
}

// Page holds the extracted text content of a single web page.
// Pages are ephemeral: built per analysis, never persisted whole.
type Page struct {
	URL       string `json:"url" yaml:"url"`
	Title     string `json:"title" yaml:"title"`
	BodyText  string `json:"body_text" yaml:"body_text"`
	WordCount int    `json:"word_count" yaml:"word_count"`
}

// Preview returns the first PreviewLength characters of the body text.
func (p *Page) Preview() string {
	if len(p.BodyText) <= PreviewLength {
		return p.BodyText
	}
	return strings.TrimSpace(p.BodyText[:PreviewLength])
}

// FeatureSet holds the textual metrics derived from a page.
// WordCount, SentenceCount and Readability feed the classifier;
// the rest are display signals.
type FeatureSet struct {
	WordCount        int     `json:"word_count" yaml:"word_count"`
	SentenceCount    int     `json:"sentence_count" yaml:"sentence_count"`
	Readability      float64 `json:"flesch_reading_ease" yaml:"flesch_reading_ease"`
	IsThin           bool    `json:"is_thin" yaml:"is_thin"`
	ReadabilityLevel string  `json:"readability_level,omitempty" yaml:"readability_level,omitempty"`
	AvgSentenceLen   float64 `json:"avg_sentence_length" yaml:"avg_sentence_length"`
	ContentDepth     string  `json:"content_depth,omitempty" yaml:"content_depth,omitempty"`
}

// SimilarityResult is one ranked match against the reference corpus.
type SimilarityResult struct {
	URL        string       `json:"url" yaml:"url"`
	Similarity float64      `json:"similarity" yaml:"similarity"`
	WordCount  int          `json:"word_count" yaml:"word_count"`
	Quality    QualityLabel `json:"quality" yaml:"quality"`
}

// TermCount pairs a term with its occurrence count.
type TermCount struct {
	Term  string `json:"term" yaml:"term"`
	Count int    `json:"count" yaml:"count"`
}
