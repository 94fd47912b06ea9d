package models

import (
	"strings"
	"testing"
)

func TestPagePreview(t *testing.T) {
	short := &Page{BodyText: "a short body"}
	if got := short.Preview(); got != "a short body" {
		t.Errorf("Preview() = %q, want full body", got)
	}

	long := &Page{BodyText: strings.Repeat("word ", 400)} // 2000 chars
	got := long.Preview()
	if len(got) > PreviewLength {
		t.Errorf("Preview() length = %d, want <= %d", len(got), PreviewLength)
	}
	if !strings.HasPrefix(long.BodyText, got) {
		t.Error("Preview() is not a prefix of the body text")
	}
}

func TestQualityLabelValid(t *testing.T) {
	for _, l := range KnownLabels {
		if !l.Valid() {
			t.Errorf("Valid() = false for known label %q", l)
		}
	}
	if QualityUnknown.Valid() {
		t.Error("Valid() = true for Unknown, want false")
	}
	if QualityLabel("Great").Valid() {
		t.Error(`Valid() = true for "Great", want false`)
	}
}
