package models

import "fmt"

// ExtractMode selects the content extraction strategy.
type ExtractMode string

const (
	// ExtractModeHeuristic walks the ordered selector chain (default).
	ExtractModeHeuristic   ExtractMode = "heuristic"
	ExtractModeReadability ExtractMode = "readability" // article extraction
	ExtractModeAuto        ExtractMode = "auto"        // chain first, readability rescue
)

// ParseExtractMode resolves a flag or config value to an ExtractMode.
// An empty string means the default heuristic chain.
func ParseExtractMode(s string) (ExtractMode, error) {
	switch ExtractMode(s) {
	case "", ExtractModeHeuristic:
		return ExtractModeHeuristic, nil
	case ExtractModeReadability:
		return ExtractModeReadability, nil
	case ExtractModeAuto:
		return ExtractModeAuto, nil
	}
	return "", fmt.Errorf("unknown extract mode %q (valid: heuristic, readability, auto)", s)
}
