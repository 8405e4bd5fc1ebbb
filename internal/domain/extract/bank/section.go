package bank

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/finsight/finsight/internal/domain/classify"
	"github.com/finsight/finsight/internal/domain/extract/strategy"
	"github.com/finsight/finsight/internal/domain/transactions"
)

// Section is the statement region a line was printed under.
type Section string

const (
	SectionNone     Section = ""
	SectionCredits  Section = "credits"
	SectionExpenses Section = "expenses"
)

var (
	creditsHeaderRe = regexp.MustCompile(`(?i)payments?\s+and\s+other\s+credits|payments?/credits|credits\s+and\s+adjustments`)
	expensesHeaderRe = regexp.MustCompile(`(?i)purchases\s+and\s+adjustments|purchases?\s*$|transactions\s*$|new\s+charges|standard\s+purchases`)
)

// Entry is a parsed candidate together with its resolved direction.
type Entry struct {
	Candidate strategy.Candidate
	Type      transactions.Type

	// CategoryHint forces the category when the section already decided it,
	// as with refunds inside a credits section. Empty means no opinion.
	CategoryHint string
}

// Extract runs the dual-pass walk over a statement. The section-aware pass
// carries header state through the document so card-issuer credit sections
// classify as income and purchase sections as expense; the comprehensive
// pass catches transactions printed outside any recognized section. The two
// passes reconcile on a date, rounded amount, and normalized description
// key, with the section-aware entry winning.
func Extract(text string, tag Tag) []Entry {
	lines := strings.Split(text, "\n")
	sectionOf := walkSections(lines, tag)

	candidates := strategy.ExtractAll(text)

	// Two reconciliation keys: the source line collapses the same line
	// matched by several strategies (the tightest strategy ran first and
	// wins), and the date+amount+description key collapses the same
	// transaction printed in more than one place of the statement.
	seenLine := make(map[string]int)
	seenDesc := make(map[string]int)
	var entries []Entry
	for _, cand := range candidates {
		section := SectionNone
		if cand.LineIndex >= 0 && cand.LineIndex < len(sectionOf) {
			section = sectionOf[cand.LineIndex]
		}
		entry, keep := resolve(cand, section)
		if !keep {
			continue
		}
		lineKey := lineReconcileKey(cand)
		descKey := reconcileKey(cand)
		if _, dup := seenLine[lineKey]; dup {
			continue
		}
		if _, dup := seenDesc[descKey]; dup {
			continue
		}
		seenLine[lineKey] = len(entries)
		seenDesc[descKey] = len(entries)
		entries = append(entries, entry)
	}
	return entries
}

// walkSections maps each line position to the section active when it was
// printed, so a line repeated verbatim in two sections keeps both readings.
// Section tracking only applies to card-issuer formats; bank checking
// statements rely on amount signs instead.
func walkSections(lines []string, tag Tag) []Section {
	sections := make([]Section, len(lines))
	if !tag.IsCardIssuer() {
		return sections
	}
	current := SectionNone
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case creditsHeaderRe.MatchString(trimmed):
			current = SectionCredits
		case expensesHeaderRe.MatchString(trimmed):
			current = SectionExpenses
		}
		sections[i] = current
	}
	return sections
}

// resolve decides an entry's direction from its section, falling back to
// sign and description classification outside any section. Bill payments in
// a credits section are balance transfers and are dropped outright.
func resolve(cand strategy.Candidate, section Section) (Entry, bool) {
	if classify.IsNonSpendingArtifact(cand.Description) {
		return Entry{}, false
	}
	// Bill payments are transfers between the user's own accounts, never
	// income or spending, no matter which section printed them.
	if classify.IsCreditCardBillPayment(cand.Description) {
		return Entry{}, false
	}
	switch section {
	case SectionCredits:
		return Entry{
			Candidate:    cand,
			Type:         transactions.TypeIncome,
			CategoryHint: transactions.CategoryRefunds,
		}, true
	case SectionExpenses:
		return Entry{Candidate: cand, Type: transactions.TypeExpense}, true
	default:
		return Entry{Candidate: cand, Type: classify.Type(cand.Amount, cand.Description)}, true
	}
}

func reconcileKey(cand strategy.Candidate) string {
	cents := int64(math.Round(math.Abs(cand.Amount) * 100))
	return fmt.Sprintf("%s|%d|%s", cand.Date.Format("2006-01-02"), cents, normalizeDescription(cand.Description))
}

func lineReconcileKey(cand strategy.Candidate) string {
	cents := int64(math.Round(math.Abs(cand.Amount) * 100))
	return fmt.Sprintf("%s|%d|%s", cand.Date.Format("2006-01-02"), cents, strings.TrimSpace(cand.Line))
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9 ]+`)

func normalizeDescription(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
