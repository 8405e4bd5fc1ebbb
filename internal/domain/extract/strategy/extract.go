package strategy

import "strings"

// Strategy is one parsing family. Implementations must be pure: same lines
// in, same candidates out.
type Strategy interface {
	Name() string
	Extract(lines []string) []Candidate
}

// Ordered returns the strategy chain in its fixed order, tightest first.
func Ordered() []Strategy {
	return []Strategy{Tabular{}, Formatted{}, Advanced{}, Fallback{}, Numeric{}}
}

// ExtractAll runs every strategy over the cleaned text and unions the
// results. Overlap between strategies is expected; the parse-time
// deduplicator reconciles it downstream.
func ExtractAll(text string) []Candidate {
	lines := strings.Split(text, "\n")
	var out []Candidate
	for _, s := range Ordered() {
		out = append(out, s.Extract(lines)...)
	}
	return out
}
