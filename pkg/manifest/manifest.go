// Package manifest summarizes an exported batch of analyses into one
// index file, so a results directory can be scanned without opening
// every report.
package manifest

import "github.com/pagelens/pagelens/models"

// Summary is the batch index written next to exported reports.
type Summary struct {
	GeneratedAt    string             `json:"generated_at"`
	TotalURLs      int                `json:"total_urls"`
	Successful     int                `json:"successful"`
	Failed         int                `json:"failed"`
	AggregateTerms []models.TermCount `json:"aggregate_terms,omitempty"`
	Results        []PageSummary      `json:"results"`
}

// PageSummary is one report's line in the index: enough to decide
// whether the full report file is worth opening.
type PageSummary struct {
	URL          string              `json:"url"`
	FilePath     string              `json:"file_path,omitempty"`
	Status       string              `json:"status"`
	ErrorType    string              `json:"error_type,omitempty"`
	Reason       string              `json:"reason,omitempty"`
	Title        string              `json:"title,omitempty"`
	WordCount    int                 `json:"word_count,omitempty"`
	Quality      models.QualityLabel `json:"quality,omitempty"`
	IsThin       bool                `json:"is_thin,omitempty"`
	SimilarPages int                 `json:"similar_pages,omitempty"`
}
