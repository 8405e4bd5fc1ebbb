package strategy

import (
	"regexp"
	"strings"
)

// skipPatterns exclude non-transactional statement furniture from every
// strategy: headers, footers, summary totals, addresses and boilerplate.
var skipPatterns = []*regexp.Regexp{
	// Statement headers and footers
	regexp.MustCompile(`(?i)^\s*(account|statement)\s+(number|summary|period|date)`),
	regexp.MustCompile(`(?i)^\s*page\s+\d+(\s+of\s+\d+)?\s*$`),
	regexp.MustCompile(`^\s*\d{1,3}\s*$`), // standalone page numbers
	regexp.MustCompile(`(?i)continued\s+on\s+(the\s+)?next\s+page`),
	regexp.MustCompile(`(?i)member\s+fdic`),
	regexp.MustCompile(`(?i)^\s*p\.?o\.?\s+box\s+\d+`),
	regexp.MustCompile(`(?i)^\s*\d+\s+[a-z]+\s+(street|st|avenue|ave|road|rd|blvd|drive|dr|lane|ln)\b`),

	// Balance and summary lines
	regexp.MustCompile(`(?i)(beginning|ending|opening|closing|previous|new)\s+balance`),
	regexp.MustCompile(`(?i)^\s*total\s+(deposits|withdrawals|purchases|payments|credits|fees|for)`),
	regexp.MustCompile(`(?i)minimum\s+payment\s+(due|warning)`),
	regexp.MustCompile(`(?i)payment\s+due\s+date`),
	regexp.MustCompile(`(?i)(available|current)\s+(credit|balance)`),
	regexp.MustCompile(`(?i)credit\s+(limit|line)`),

	// APR, rewards and cash-advance boilerplate
	regexp.MustCompile(`(?i)annual\s+percentage\s+rate`),
	// Uppercase only: "Apr" the month must survive.
	regexp.MustCompile(`\bAPR\b`),
	regexp.MustCompile(`(?i)interest\s+charge(d)?\s+(calculation|on)`),
	regexp.MustCompile(`(?i)(rewards?|points|cash\s*back)\s+(summary|earned|balance|program)`),
	regexp.MustCompile(`(?i)cash\s+advance(s)?\b`),
	regexp.MustCompile(`(?i)late\s+payment\s+warning`),
	regexp.MustCompile(`(?i)questions\??\s+call`),
	regexp.MustCompile(`(?i)important\s+(information|notices?)`),
}

// headerKeywords flag column-header rows: a line matching two or more of
// these, or any one of them together with "date", is never a transaction.
var headerKeywords = []string{
	"description", "amount", "balance", "debit", "credit",
	"transaction", "reference", "posting", "merchant", "withdrawal", "deposit",
}

// ShouldSkip reports whether a line is excluded from all strategies.
func ShouldSkip(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	for _, re := range skipPatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}

	lower := strings.ToLower(trimmed)
	keywordHits := 0
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			keywordHits++
		}
	}
	if keywordHits >= 2 {
		return true
	}
	if keywordHits >= 1 && strings.Contains(lower, "date") {
		return true
	}
	return false
}
