package models

// AnalyzeRequest describes a single analysis to perform.
// Zero values fall back to configured defaults.
type AnalyzeRequest struct {
	URL  string      `json:"url" yaml:"url"`
	TopN int         `json:"top_n,omitempty" yaml:"top_n,omitempty"`
	Mode ExtractMode `json:"extract_mode,omitempty" yaml:"extract_mode,omitempty"`

	// ForceFetch skips the local HTML cache and refetches the page.
	ForceFetch bool `json:"force_fetch,omitempty" yaml:"force_fetch,omitempty"`
}
