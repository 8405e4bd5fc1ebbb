package strategy

import "regexp"

// Fallback applies loose date-then-amount patterns with minimal structural
// assumptions, for lines the tighter families rejected.
type Fallback struct{}

func (Fallback) Name() string { return "fallback" }

var fallbackPatterns = []*regexp.Regexp{
	// Date anywhere near the start, amount at the end.
	regexp.MustCompile(`^\s*(\d{1,2}/\d{1,2}(?:/\d{2,4})?)\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})\s*$`),
	regexp.MustCompile(`^\s*(\d{4}-\d{1,2}-\d{1,2})\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})\s*$`),
	// Textual dates: Mar 5, 2024 Merchant 12.34
	regexp.MustCompile(`^\s*([A-Z][a-z]{2,8}\s+\d{1,2},?\s+\d{4})\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})\s*$`),
	// Amount first, date trailing: MERCHANT 12.34 01/15
	regexp.MustCompile(`^\s*(.+?)\s+(-?\$?[\d,]+\.\d{2})\s+(\d{1,2}/\d{1,2}(?:/\d{2,4})?)\s*$`),
}

func (f Fallback) Extract(lines []string) []Candidate {
	var out []Candidate
	for li, line := range lines {
		if ShouldSkip(line) {
			continue
		}
		for i, re := range fallbackPatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			date, desc, amount := m[1], m[2], m[3]
			if i == 3 { // amount-first form
				desc, amount, date = m[1], m[2], m[3]
			}
			if c, ok := newCandidate(f.Name(), date, desc, amount, line, li); ok {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
