package analyze

import "github.com/pagelens/pagelens/models"

// Stats summarizes a batch run for the output envelope. TopTerms
// aggregates term frequencies across every successful report.
type Stats struct {
	TotalURLs        int                `json:"total_urls" yaml:"total_urls"`
	Successful       int                `json:"successful" yaml:"successful"`
	Failed           int                `json:"failed" yaml:"failed"`
	TotalTimeSeconds float64            `json:"total_time_seconds" yaml:"total_time_seconds"`
	TopTerms         []models.TermCount `json:"top_terms,omitempty" yaml:"top_terms,omitempty"`
}

// BatchOutput is the envelope printed for multi-URL runs. Results are
// full reports, or field-filtered maps when --fields is set.
type BatchOutput struct {
	Status  string        `json:"status" yaml:"status"`
	Results []interface{} `json:"results" yaml:"results"`
	Stats   Stats         `json:"stats" yaml:"stats"`
}
