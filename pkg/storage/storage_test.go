package storage

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

func TestSaveJSON_WritesIndentedFile(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage() error = %v", err)
	}

	path, err := s.SaveJSON("report.json", map[string]int{"word_count": 42})
	if err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var got map[string]int
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	if got["word_count"] != 42 {
		t.Errorf("word_count = %d, want 42", got["word_count"])
	}
}

func TestReportFilename(t *testing.T) {
	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com", "example_com-2026-03-14.json"},
		{"https://example.com/blog/post.html", "example_com-blog-post_html-2026-03-14.json"},
		{"https://sub.example.co.uk/a/b/", "sub_example_co_uk-a-b-2026-03-14.json"},
	}

	for _, tt := range tests {
		if got := ReportFilename(tt.url, day); got != tt.want {
			t.Errorf("ReportFilename(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestReportFilename_PathKeepsSameHostPagesApart(t *testing.T) {
	day := time.Now()
	a := ReportFilename("https://github.com/cli/cli", day)
	b := ReportFilename("https://github.com/urfave/cli", day)
	if a == b {
		t.Errorf("filenames collide for distinct paths: %q", a)
	}
}

func TestReportFilename_NoFilesystemHostiles(t *testing.T) {
	got := ReportFilename("https://example.com/search?q=seo tips&page=2", time.Now())
	if strings.ContainsAny(got, ":?&= #%") {
		t.Errorf("filename %q contains filesystem-hostile characters", got)
	}
	if strings.Contains(got, "/") {
		t.Errorf("filename %q contains a path separator", got)
	}
}
