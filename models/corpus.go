package models

// CorpusEntry is one indexed page from the reference datasets:
// a features row joined with its extracted body text by URL.
// Entries are read-only once loaded.
type CorpusEntry struct {
	URL          string       `json:"url" yaml:"url"`
	BodyText     string       `json:"-" yaml:"-"`
	WordCount    int          `json:"word_count" yaml:"word_count"`
	QualityLabel QualityLabel `json:"quality_label" yaml:"quality_label"`
}

// Quality returns the entry's label, or Unknown when none was recorded.
func (e *CorpusEntry) Quality() QualityLabel {
	if e.QualityLabel == "" {
		return QualityUnknown
	}
	return e.QualityLabel
}

// CorpusStats is an overview of the reference corpus.
type CorpusStats struct {
	TotalPages    int                  `json:"total_pages" yaml:"total_pages"`
	AvgWordCount  float64              `json:"avg_word_count" yaml:"avg_word_count"`
	CommonQuality QualityLabel         `json:"most_common_quality" yaml:"most_common_quality"`
	QualityCounts map[QualityLabel]int `json:"quality_counts" yaml:"quality_counts"`
}

// CorpusCheck reports dataset integrity findings.
type CorpusCheck struct {
	TotalRows     int      `json:"total_rows" yaml:"total_rows"`
	MissingBody   int      `json:"rows_missing_body" yaml:"rows_missing_body"`
	DuplicateURLs []string `json:"duplicate_urls,omitempty" yaml:"duplicate_urls,omitempty"`
	UnknownLabels []string `json:"unknown_labels,omitempty" yaml:"unknown_labels,omitempty"`
}
