package features

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// UndeterminedLanguage is reported when detection is inconclusive.
const UndeterminedLanguage = "und"

// languageSampleBytes caps how much text the detector sees; accuracy
// plateaus well below this and detection cost grows with input size.
const languageSampleBytes = 4000

// detectionLanguages is the candidate set. A small set keeps the
// embedded lingua models cheap while covering the traffic this tool
// actually sees.
var detectionLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
}

// The detector is built lazily: loading the language models is
// expensive and offline paths (corpus stats, history) never need it.
var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectLanguage returns the ISO 639-1 code of the text's most likely
// language, or "und" when the text is too short or detection fails.
func DetectLanguage(text string) string {
	if len(strings.Fields(text)) < 5 {
		return UndeterminedLanguage
	}
	if len(text) > languageSampleBytes {
		text = text[:languageSampleBytes]
	}

	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectionLanguages...).
			Build()
	})

	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return UndeterminedLanguage
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
