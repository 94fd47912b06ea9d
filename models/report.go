package models

import "time"

// Report statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Error types attached to failed reports.
const (
	ErrorTypeFetch   = "fetch_error"
	ErrorTypeExtract = "extract_error"
)

// Report is the full outcome of analyzing one URL.
// A failed fetch still produces a report: word_count 0 is the
// universal "could not analyze" signal, with Reason explaining why.
// Cached marks reports built from locally cached HTML.
type Report struct {
	ID          string             `json:"id" yaml:"id"`
	URL         string             `json:"url" yaml:"url"`
	Status      string             `json:"status" yaml:"status"`
	Error       string             `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType   string             `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	Reason      string             `json:"reason,omitempty" yaml:"reason,omitempty"`
	Title       string             `json:"title,omitempty" yaml:"title,omitempty"`
	Cached      bool               `json:"cached,omitempty" yaml:"cached,omitempty"`
	WordCount   int                `json:"word_count" yaml:"word_count"`
	Preview     string             `json:"preview,omitempty" yaml:"preview,omitempty"`
	Features    *FeatureSet        `json:"features,omitempty" yaml:"features,omitempty"`
	Quality     QualityLabel       `json:"quality,omitempty" yaml:"quality,omitempty"`
	Language    string             `json:"language,omitempty" yaml:"language,omitempty"`
	ContentHash string             `json:"content_hash,omitempty" yaml:"content_hash,omitempty"`
	TopTerms    []TermCount        `json:"top_terms,omitempty" yaml:"top_terms,omitempty"`
	Similar     []SimilarityResult `json:"similar_pages,omitempty" yaml:"similar_pages,omitempty"`
	DurationMS  int64              `json:"duration_ms" yaml:"duration_ms"`
	CreatedAt   time.Time          `json:"created_at" yaml:"created_at"`
}

// Failed reports whether the analysis could not be performed.
func (r *Report) Failed() bool {
	return r.Status == StatusFailed
}
