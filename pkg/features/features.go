// Package features derives the textual metrics a page is judged by:
// sentence count, Flesch Reading Ease, thin-content flag, and the
// display buckets built on top of them.
package features

import (
	"regexp"
	"strings"

	"github.com/pagelens/pagelens/models"
)

const (
	// ThinContentThreshold is the word count below which a page is
	// considered thin.
	ThinContentThreshold = 500

	// minWordsForReadability guards the Flesch formula, which is
	// unstable on very short text.
	minWordsForReadability = 10

	// comprehensiveThreshold is the word count above which content
	// depth is reported as comprehensive.
	comprehensiveThreshold = 2000
)

// Readability level buckets.
const (
	LevelEasy      = "Easy"
	LevelModerate  = "Moderate"
	LevelComplex   = "Complex"
	LevelVeryShort = "Very Short"
)

// Content depth buckets.
const (
	DepthComprehensive = "Comprehensive"
	DepthStandard      = "Standard"
)

var sentenceTerminators = regexp.MustCompile(`[.!?]+`)

// Compute derives the full feature set from extracted body text and
// its word count. Degenerate input yields zero values; Compute never
// fails.
func Compute(bodyText string, wordCount int) models.FeatureSet {
	fs := models.FeatureSet{
		WordCount:     wordCount,
		SentenceCount: SentenceCount(bodyText),
		Readability:   FleschReadingEase(bodyText),
		IsThin:        wordCount < ThinContentThreshold,
	}

	if len(strings.Fields(bodyText)) <= minWordsForReadability {
		fs.ReadabilityLevel = LevelVeryShort
	} else {
		fs.ReadabilityLevel = readabilityLevel(fs.Readability)
	}

	sentences := fs.SentenceCount
	if sentences < 1 {
		sentences = 1
	}
	fs.AvgSentenceLen = float64(wordCount) / float64(sentences)

	if wordCount > comprehensiveThreshold {
		fs.ContentDepth = DepthComprehensive
	} else {
		fs.ContentDepth = DepthStandard
	}
	return fs
}

// SentenceCount counts runs of sentence terminators (. ! ?).
func SentenceCount(text string) int {
	if text == "" {
		return 0
	}
	return len(sentenceTerminators.FindAllString(text, -1))
}

// FleschReadingEase computes the standard readability score:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
// Text of ten words or fewer scores 0.
func FleschReadingEase(text string) float64 {
	words := strings.Fields(text)
	if len(words) <= minWordsForReadability {
		return 0
	}

	sentences := SentenceCount(text)
	if sentences < 1 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	return 206.835 -
		1.015*(float64(len(words))/float64(sentences)) -
		84.6*(float64(syllables)/float64(len(words)))
}

// CountSyllables estimates syllables with a vowel-group heuristic:
// each run of vowels counts once, a trailing silent e is dropped, and
// every word counts at least one.
func CountSyllables(word string) int {
	w := strings.TrimFunc(strings.ToLower(word), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	if w == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range w {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}

	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// readabilityLevel buckets a Flesch score for display.
func readabilityLevel(score float64) string {
	switch {
	case score > 60:
		return LevelEasy
	case score > 30:
		return LevelModerate
	default:
		return LevelComplex
	}
}
