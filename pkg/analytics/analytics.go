// Package analytics computes term frequencies over extracted page
// text. Reports use it for their top-terms section; batch runs merge
// per-page frequencies before ranking.
package analytics

import (
	"sort"
	"strings"

	"github.com/pagelens/pagelens/models"
)

// minTermLength drops the fragments left over once surrounding
// punctuation is trimmed.
const minTermLength = 3

// stopwords are skipped during frequency analysis: function words,
// contractions, and the navigation vocabulary that headers and
// footers leak into extracted text.
var stopwords = buildStopwords(`
	a about above across after afterwards again against all almost alone
	along already also although always am among amongst amount an and
	another any anyhow anyone anything anyway anywhere are around as at
	back be became because become becomes becoming been before beforehand
	behind being below beside besides between beyond both but by can
	cannot could did do does doing done down during each either else
	elsewhere enough entirely especially etc even ever every everyone
	everything everywhere few for former formerly from further had has
	have having he hence her here hereafter hereby herein hereupon hers
	herself him himself his how however i if in indeed into is it its
	itself just keep last latter latterly least less let like likely made
	make many may maybe me meanwhile might mine more moreover most mostly
	much must my myself neither never nevertheless next no nobody none
	noone nor not nothing now nowhere of off often on once one only onto
	or other others otherwise our ours ourselves out over own part per
	perhaps please put rather re same see seem seemed seeming seems
	several she should since so some somehow someone something sometime
	sometimes somewhere still such take than that the their theirs them
	themselves then thence there thereafter thereby therefore therein
	thereupon these they this those through throughout thru thus to
	together too toward towards under until up upon us use very via was
	we well were what whatever when whence whenever where whereafter
	whereas whereby wherein whereupon wherever whether which while
	whither who whoever whose why with within without would yet you your
	yours yourself yourselves

	ain't aren't can't couldn't didn't doesn't don't hadn't hasn't
	haven't he'd he'll he's here's i'd i'll i'm i've isn't it'll it's
	let's mustn't shan't she'd she'll she's shouldn't that'll that's
	there's they'd they'll they're they've wasn't we'd we'll we're we've
	weren't what's when's where's who'd who'll who's won't wouldn't you'd
	you'll you're you've

	click clickable clicked clicking button link menu redirect redirected
	redirecting page pages website site home homepage search searched
	searching load loads loaded loading
`)

func buildStopwords(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether a word is filtered from frequency
// analysis.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// WordFrequency counts content terms in text. Tokens are lowercased
// and stripped of surrounding punctuation; stopwords and tokens
// shorter than minTermLength are dropped.
func WordFrequency(text string) map[string]int {
	freq := make(map[string]int)
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		term := strings.TrimFunc(raw, func(r rune) bool {
			return (r < 'a' || r > 'z') && (r < '0' || r > '9')
		})
		if len(term) < minTermLength {
			continue
		}
		if _, skip := stopwords[term]; skip {
			continue
		}
		freq[term]++
	}
	return freq
}

// Merge sums any number of frequency maps into one. Batch runs use it
// to aggregate terms across every fetched page.
func Merge(maps ...map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, m := range maps {
		for term, count := range m {
			merged[term] += count
		}
	}
	return merged
}

// SumTermCounts folds ranked term lists back into one frequency map,
// summing counts for terms that several lists share.
func SumTermCounts(lists ...[]models.TermCount) map[string]int {
	merged := make(map[string]int)
	for _, list := range lists {
		for _, tc := range list {
			merged[tc.Term] += tc.Count
		}
	}
	return merged
}

// TopTerms ranks a frequency map and returns up to n terms, most
// frequent first. Ties order alphabetically so output is stable.
func TopTerms(freq map[string]int, n int) []models.TermCount {
	if n <= 0 || len(freq) == 0 {
		return nil
	}

	terms := make([]models.TermCount, 0, len(freq))
	for term, count := range freq {
		terms = append(terms, models.TermCount{Term: term, Count: count})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})

	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
