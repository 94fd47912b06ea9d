package corpus

import (
	"github.com/pagelens/pagelens/models"
	"github.com/pagelens/pagelens/pkg/analytics"
)

// Keywords aggregates term frequencies across every corpus body and
// returns the n most common terms. Rows without body text contribute
// nothing.
func (c *Corpus) Keywords(n int) []models.TermCount {
	freqs := make([]map[string]int, 0, len(c.entries))
	for i := range c.entries {
		if c.entries[i].BodyText == "" {
			continue
		}
		freqs = append(freqs, analytics.WordFrequency(c.entries[i].BodyText))
	}
	return analytics.TopTerms(analytics.Merge(freqs...), n)
}
