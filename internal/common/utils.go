package common

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// NormalizeURL cleans up a user-supplied URL and prepends https://
// when no scheme is present. The fetcher requires a schemed URL.
func NormalizeURL(rawURL string) string {
	cleaned := SanitizeURL(rawURL)
	if cleaned == "" {
		return ""
	}
	if !strings.HasPrefix(cleaned, "http://") && !strings.HasPrefix(cleaned, "https://") {
		cleaned = "https://" + cleaned
	}
	return cleaned
}

// SanitizeURL performs basic cleanup on URLs to handle common
// copy-paste issues: surrounding whitespace, markdown link syntax,
// stray punctuation.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// Extract URL from markdown link format: [text](url) -> url
	markdownLinkPattern := regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	trailingChars := []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}

	leadingChars := []string{"(", "[", "<", "\"", "'"}
	for _, char := range leadingChars {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// urlPattern accepts http(s) URLs with a plausible domain. Literal
// spaces must be pre-encoded as %20.
var urlPattern = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:[0-9]+)?(/[^\s]*)?$`)

// ValidateURL reports whether a normalized URL is fetchable.
func ValidateURL(normalized string) error {
	if normalized == "" {
		return fmt.Errorf("empty URL")
	}
	if strings.Contains(normalized, " ") {
		return fmt.Errorf("URL contains unencoded spaces: %s", normalized)
	}
	if !urlPattern.MatchString(normalized) {
		return fmt.Errorf("malformed URL: %s", normalized)
	}
	parsed, err := url.Parse(normalized)
	if err != nil {
		return fmt.Errorf("unparseable URL %s: %w", normalized, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL has no host: %s", normalized)
	}
	if strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
		return fmt.Errorf("invalid characters in host: %s", parsed.Host)
	}
	return nil
}

// NormalizeAndValidateURLs normalizes all URLs and splits them into
// fetchable and invalid sets. Invalid entries keep their original form
// so errors point at what the user typed.
func NormalizeAndValidateURLs(urls []string) (normalized []string, invalid []string) {
	normalized = make([]string, 0, len(urls))
	for _, rawURL := range urls {
		cleaned := NormalizeURL(rawURL)
		if err := ValidateURL(cleaned); err != nil {
			invalid = append(invalid, rawURL)
			continue
		}
		normalized = append(normalized, cleaned)
	}
	return normalized, invalid
}

// ContentHash computes the SHA256 hash of content as a hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// FilterReportFields projects a report onto the requested top-level
// JSON fields. An empty field list returns all fields.
func FilterReportFields(report interface{}, fieldsStr string) map[string]interface{} {
	full := structToMap(report)
	if fieldsStr == "" {
		return full
	}

	include := make(map[string]bool)
	for _, f := range strings.Split(fieldsStr, ",") {
		include[strings.TrimSpace(f)] = true
	}

	filtered := make(map[string]interface{})
	for key, value := range full {
		if include[key] {
			filtered[key] = value
		}
	}
	return filtered
}

// structToMap converts a struct to map[string]interface{} via JSON tags.
func structToMap(obj interface{}) map[string]interface{} {
	data, _ := json.Marshal(obj)
	var result map[string]interface{}
	_ = json.Unmarshal(data, &result)
	return result
}
