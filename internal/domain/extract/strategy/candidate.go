// Package strategy carves (date, description, amount) candidates out of
// cleaned statement text. Strategies run in a fixed order and their results
// are unioned, never short-circuited: each family catches malformed lines
// the others miss, and downstream deduplication reconciles the overlap.
package strategy

import (
	"strings"
	"time"

	"github.com/finsight/finsight/internal/domain/extract/normalize"
)

// Candidate is a tentative transaction extracted from one source line,
// before classification and categorization.
type Candidate struct {
	Date        time.Time
	Description string
	Amount      float64 // Signed, as printed on the statement
	Line        string  // Source line, for cross-strategy reconciliation
	LineIndex   int     // Position of Line in the cleaned document
	Strategy    string
}

// minDescriptionLen rejects matches whose description is too short to be a
// merchant or memo.
const minDescriptionLen = 3

// newCandidate validates and normalizes one raw triple. Returns false when
// the date or amount fail normalization or the description is unusable.
func newCandidate(strategyName, rawDate, rawDesc, rawAmount, line string, lineIdx int) (Candidate, bool) {
	desc := strings.TrimSpace(rawDesc)
	if len(desc) < minDescriptionLen {
		return Candidate{}, false
	}
	date, ok := normalize.ParseDate(rawDate)
	if !ok {
		return Candidate{}, false
	}
	amount, ok := normalize.ParseAmount(rawAmount)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{
		Date:        date,
		Description: collapseSpaces(desc),
		Amount:      amount,
		Line:        line,
		LineIndex:   lineIdx,
		Strategy:    strategyName,
	}, true
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
