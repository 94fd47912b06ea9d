// Package similarity ranks reference corpus pages against a target
// page by blending word-count proximity with vocabulary overlap.
package similarity

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pagelens/pagelens/models"
)

// Default score blend and inclusion cutoff.
const (
	DefaultWordCountWeight = 0.6
	DefaultKeywordWeight   = 0.4
	DefaultCutoff          = 0.3
)

// keywordPattern matches alphabetic tokens of length >= 4.
var keywordPattern = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

// Params tune the combined score. Weights must sum to 1 so that a row
// identical to the target scores exactly 1.0.
type Params struct {
	WordCountWeight float64 `json:"word_count_weight" yaml:"word_count_weight"`
	KeywordWeight   float64 `json:"keyword_weight" yaml:"keyword_weight"`
	Cutoff          float64 `json:"cutoff" yaml:"cutoff"`
}

func DefaultParams() Params {
	return Params{
		WordCountWeight: DefaultWordCountWeight,
		KeywordWeight:   DefaultKeywordWeight,
		Cutoff:          DefaultCutoff,
	}
}

// Rank scores every corpus row against the target page and returns up
// to topN results, most similar first. The target's own corpus row and
// rows with no stored body text are skipped, and rows scoring at or
// below the cutoff are dropped entirely rather than ranked low.
func Rank(target *models.Page, entries []models.CorpusEntry, topN int, p Params) []models.SimilarityResult {
	if target == nil || strings.TrimSpace(target.BodyText) == "" || topN <= 0 {
		return nil
	}

	targetTokens := tokenize(target.BodyText)

	results := make([]models.SimilarityResult, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		if entry.URL == target.URL || strings.TrimSpace(entry.BodyText) == "" {
			continue
		}

		score := p.WordCountWeight*wordCountSimilarity(target.WordCount, entry.WordCount) +
			p.KeywordWeight*jaccard(targetTokens, tokenize(entry.BodyText))
		if score <= p.Cutoff {
			continue
		}

		results = append(results, models.SimilarityResult{
			URL:        entry.URL,
			Similarity: score,
			WordCount:  entry.WordCount,
			Quality:    entry.Quality(),
		})
	}

	// Stable sort keeps corpus order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topN {
		results = results[:topN]
	}
	return results
}

// wordCountSimilarity is 1.0 when the counts match and decays linearly
// toward 0 as they diverge.
func wordCountSimilarity(target, row int) float64 {
	denom := target
	if row > denom {
		denom = row
	}
	if denom < 1 {
		denom = 1
	}

	diff := target - row
	if diff < 0 {
		diff = -diff
	}
	return 1 - float64(diff)/float64(denom)
}

func tokenize(text string) map[string]struct{} {
	words := keywordPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// jaccard is intersection size over union size, 0 when either set is
// empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(a)+len(b)-inter)
}
