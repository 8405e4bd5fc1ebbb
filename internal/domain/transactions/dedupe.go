package transactions

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// StrictKey identifies a transaction by exact date, amount, description, and
// type. Parse-time deduplication uses it to drop lines that several parsing
// strategies matched identically.
func StrictKey(t Transaction) string {
	cents := int64(math.Round(t.Amount * 100))
	return fmt.Sprintf("%s|%d|%s|%s", t.Date.Format("2006-01-02"), cents, strings.TrimSpace(t.Description), t.Type)
}

// DedupeStrict removes exact duplicates, keeping first occurrence order.
func DedupeStrict(txs []Transaction) []Transaction {
	seen := make(map[string]struct{}, len(txs))
	out := txs[:0:0]
	for _, t := range txs {
		key := StrictKey(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

const (
	ingestSimilarityThreshold = 0.80
	ingestAmountTolerance     = 0.01
)

var tokenSplitRe = regexp.MustCompile(`[^a-z0-9]+`)

// descriptionTokens extracts the significant words of a description. Words of
// two characters or fewer carry no matching signal and are excluded.
func descriptionTokens(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range tokenSplitRe.Split(strings.ToLower(s), -1) {
		if len(tok) > 2 {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}

// jaccard computes set similarity of two token sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// IsIngestDuplicate reports whether candidate duplicates existing under the
// relaxed ingestion rule: dates within one calendar day, amounts within a
// cent, same type, and descriptions whose significant-word sets overlap at
// or above the similarity threshold. The relaxed rule absorbs OCR wobble
// and posting-date drift in re-uploaded statements.
func IsIngestDuplicate(candidate, existing Transaction) bool {
	if dayDistance(candidate.Date, existing.Date) > 1 {
		return false
	}
	if math.Abs(candidate.Amount-existing.Amount) > ingestAmountTolerance+1e-9 {
		return false
	}
	if candidate.Type != existing.Type {
		return false
	}
	a := descriptionTokens(candidate.Description)
	b := descriptionTokens(existing.Description)
	if len(a) == 0 && len(b) == 0 {
		return strings.EqualFold(strings.TrimSpace(candidate.Description), strings.TrimSpace(existing.Description))
	}
	return jaccard(a, b) >= ingestSimilarityThreshold
}

func dayDistance(a, b time.Time) int {
	truncate := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	d := truncate(a).Sub(truncate(b)) / (24 * time.Hour)
	if d < 0 {
		d = -d
	}
	return int(d)
}
