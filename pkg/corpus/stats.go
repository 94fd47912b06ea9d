package corpus

import (
	"sort"
	"strings"

	"github.com/pagelens/pagelens/models"
)

// Stats summarizes the loaded corpus.
func (c *Corpus) Stats() models.CorpusStats {
	stats := models.CorpusStats{
		TotalPages:    len(c.entries),
		CommonQuality: models.QualityUnknown,
		QualityCounts: make(map[models.QualityLabel]int),
	}
	if len(c.entries) == 0 {
		return stats
	}

	totalWords := 0
	for i := range c.entries {
		totalWords += c.entries[i].WordCount
		stats.QualityCounts[c.entries[i].Quality()]++
	}
	stats.AvgWordCount = float64(totalWords) / float64(len(c.entries))

	// Ties resolve in label declaration order.
	best := 0
	for _, label := range append(append([]models.QualityLabel{}, models.KnownLabels...), models.QualityUnknown) {
		if n := stats.QualityCounts[label]; n > best {
			best = n
			stats.CommonQuality = label
		}
	}
	return stats
}

// Check scans the loaded datasets for integrity problems worth
// surfacing before a corpus is trusted for ranking.
func (c *Corpus) Check() models.CorpusCheck {
	check := models.CorpusCheck{TotalRows: len(c.entries)}

	seen := make(map[string]int, len(c.entries))
	unknown := make(map[string]bool)

	for i := range c.entries {
		e := &c.entries[i]
		if strings.TrimSpace(e.BodyText) == "" {
			check.MissingBody++
		}

		seen[e.URL]++
		if seen[e.URL] == 2 {
			check.DuplicateURLs = append(check.DuplicateURLs, e.URL)
		}

		if e.QualityLabel != "" && !e.QualityLabel.Valid() {
			unknown[string(e.QualityLabel)] = true
		}
	}

	for label := range unknown {
		check.UnknownLabels = append(check.UnknownLabels, label)
	}
	sort.Strings(check.UnknownLabels)
	return check
}
