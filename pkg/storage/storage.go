// Package storage writes analysis artifacts (per-page reports, batch
// manifests) as JSON files under a base directory.
package storage

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage saves JSON documents under one base directory.
type Storage struct {
	baseDir string
}

// NewStorage prepares the base directory and returns a store rooted
// there.
func NewStorage(baseDir string) (*Storage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Storage{baseDir: baseDir}, nil
}

// Dir returns the base directory.
func (s *Storage) Dir() string {
	return s.baseDir
}

// SaveJSON marshals v with indentation and writes it to name inside
// the base directory, returning the full path.
func (s *Storage) SaveJSON(name string, v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}
	return path, nil
}

// ReportFilename derives a filesystem-friendly report name from a URL
// and a date. Host and path both contribute, so pages that share a
// host (or a path tail) do not collide.
func ReportFilename(rawURL string, t time.Time) string {
	day := t.Format("2006-01-02")

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		safe := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
		safe = strings.ReplaceAll(safe, "/", "_")
		return fmt.Sprintf("%s-%s.json", sanitize(safe), day)
	}

	host := strings.ReplaceAll(parsed.Host, ".", "_")

	path := strings.Trim(parsed.Path, "/")
	path = strings.ReplaceAll(path, "/", "-")
	path = strings.ReplaceAll(path, ".", "_")

	base := host
	if path != "" {
		base = host + "-" + path
	}
	return fmt.Sprintf("%s-%s.json", sanitize(base), day)
}

// sanitize strips the few characters that remain hostile to
// filesystems after the URL rewrite above.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '?', '&', '=', '#', '%', ' ':
			return '_'
		}
		return r
	}, name)
}
