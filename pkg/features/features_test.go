package features

import (
	"strings"
	"testing"
)

func TestFleschReadingEase_ShortTextScoresZero(t *testing.T) {
	tests := []string{
		"",
		"five words are not enough.",
		"this sentence has exactly ten words in it right here.", // 10 words: still too short
	}

	for _, text := range tests {
		if got := FleschReadingEase(text); got != 0 {
			t.Errorf("FleschReadingEase(%q) = %v, want 0", text, got)
		}
	}
}

func TestFleschReadingEase_SimpleTextScoresHigh(t *testing.T) {
	text := "The cat sat on the mat. The dog ran to the park. It was a good day for all of us."
	got := FleschReadingEase(text)
	if got < 60 {
		t.Errorf("FleschReadingEase(simple text) = %v, want > 60", got)
	}
}

func TestFleschReadingEase_DenseTextScoresLow(t *testing.T) {
	text := strings.Repeat("Extraordinarily sophisticated considerations regarding contemporary implementation characteristics. ", 3)
	got := FleschReadingEase(text)
	if got > 30 {
		t.Errorf("FleschReadingEase(dense text) = %v, want <= 30", got)
	}
}

func TestSentenceCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"no terminator at all", 0},
		{"One. Two! Three?", 3},
		{"Wait... what?! Really.", 3}, // terminator runs count once
		{"a.b.c", 2},
	}

	for _, tt := range tests {
		if got := SentenceCount(tt.text); got != tt.want {
			t.Errorf("SentenceCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"purple", 2},
		{"make", 1},    // silent e
		{"table", 2},   // -le keeps the final syllable
		{"readable", 3},
		{"the", 1}, // never below one
		{"a", 1},
		{"42", 1}, // no letters at all
	}

	for _, tt := range tests {
		if got := CountSyllables(tt.word); got != tt.want {
			t.Errorf("CountSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestCompute_ThinBoundary(t *testing.T) {
	// The threshold is exactly 500: 499 is thin, 500 is not.
	if fs := Compute("text", 499); !fs.IsThin {
		t.Error("Compute(_, 499).IsThin = false, want true")
	}
	if fs := Compute("text", 500); fs.IsThin {
		t.Error("Compute(_, 500).IsThin = true, want false")
	}
	if fs := Compute("", 0); !fs.IsThin {
		t.Error("Compute(_, 0).IsThin = false, want true")
	}
}

func TestCompute_ContentDepth(t *testing.T) {
	if fs := Compute("text", 2000); fs.ContentDepth != DepthStandard {
		t.Errorf("ContentDepth at 2000 words = %q, want %q", fs.ContentDepth, DepthStandard)
	}
	if fs := Compute("text", 2001); fs.ContentDepth != DepthComprehensive {
		t.Errorf("ContentDepth at 2001 words = %q, want %q", fs.ContentDepth, DepthComprehensive)
	}
}

func TestCompute_ReadabilityLevels(t *testing.T) {
	easy := "The cat sat on the mat. The dog ran to the park. It was a good day for all of us."
	if fs := Compute(easy, len(strings.Fields(easy))); fs.ReadabilityLevel != LevelEasy {
		t.Errorf("ReadabilityLevel(easy) = %q, want %q", fs.ReadabilityLevel, LevelEasy)
	}

	dense := strings.Repeat("Extraordinarily sophisticated considerations regarding contemporary implementation characteristics. ", 3)
	if fs := Compute(dense, len(strings.Fields(dense))); fs.ReadabilityLevel != LevelComplex {
		t.Errorf("ReadabilityLevel(dense) = %q, want %q", fs.ReadabilityLevel, LevelComplex)
	}

	if fs := Compute("too short to score.", 4); fs.ReadabilityLevel != LevelVeryShort {
		t.Errorf("ReadabilityLevel(short) = %q, want %q", fs.ReadabilityLevel, LevelVeryShort)
	}
}

func TestCompute_AvgSentenceLen(t *testing.T) {
	fs := Compute("One two three. Four five six.", 6)
	if fs.AvgSentenceLen != 3 {
		t.Errorf("AvgSentenceLen = %v, want 3", fs.AvgSentenceLen)
	}

	// No terminators: the divisor floors at one sentence.
	fs = Compute("one two three", 3)
	if fs.AvgSentenceLen != 3 {
		t.Errorf("AvgSentenceLen with no terminators = %v, want 3", fs.AvgSentenceLen)
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	fs := Compute("", 0)

	if fs.SentenceCount != 0 {
		t.Errorf("SentenceCount = %d, want 0", fs.SentenceCount)
	}
	if fs.Readability != 0 {
		t.Errorf("Readability = %v, want 0", fs.Readability)
	}
	if !fs.IsThin {
		t.Error("IsThin = false, want true")
	}
}

func TestDetectLanguage(t *testing.T) {
	english := "The quick brown fox jumps over the lazy dog while the sun sets behind the rolling hills of the countryside."
	if got := DetectLanguage(english); got != "en" {
		t.Errorf("DetectLanguage(english) = %q, want %q", got, "en")
	}

	spanish := "El rápido zorro marrón salta sobre el perro perezoso mientras el sol se pone detrás de las colinas del campo."
	if got := DetectLanguage(spanish); got != "es" {
		t.Errorf("DetectLanguage(spanish) = %q, want %q", got, "es")
	}

	if got := DetectLanguage(""); got != UndeterminedLanguage {
		t.Errorf("DetectLanguage(empty) = %q, want %q", got, UndeterminedLanguage)
	}
	if got := DetectLanguage("ok"); got != UndeterminedLanguage {
		t.Errorf("DetectLanguage(tiny) = %q, want %q", got, UndeterminedLanguage)
	}
}
