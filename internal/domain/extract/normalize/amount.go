// Package normalize parses the numeric and date tokens carved out of
// statement lines, repairing the OCR corruption patterns the cleaner
// could not fix without positional context.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/finsight/finsight/internal/domain/extract/textclean"
)

var (
	europeanAmountRe = regexp.MustCompile(`^\d{1,3}(\.\d{3})+,\d{2}$`)
	bareIntRe        = regexp.MustCompile(`^\d+$`)

	amountGarbles = textclean.DefaultTables().AmountLiterals
)

// ParseAmount converts a raw amount token to a signed dollar value.
// Returns false when the token is not a usable amount, including when it
// parses to exactly zero: zero-amount rows are never transactions.
func ParseAmount(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	if fixed, ok := amountGarbles[s]; ok {
		s = fixed
	}

	// Strip currency symbols and inner whitespace.
	s = strings.NewReplacer("$", "", " ", "", " ", "", "\t", "").Replace(s)

	negative := false
	for len(s) > 0 {
		switch s[0] {
		case '-':
			negative = true
			s = s[1:]
			continue
		case '+':
			s = s[1:]
			continue
		}
		break
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.Trim(s, "()")
	}

	if europeanAmountRe.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	// Reconstruct a missing decimal point from digit count: statements
	// print cents, so a bare "1234" almost always means 12.34.
	if bareIntRe.MatchString(s) {
		switch {
		case len(s) <= 2:
			s = "0." + pad2(s)
		default:
			s = s[:len(s)-2] + "." + s[len(s)-2:]
		}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	if negative {
		value = -value
	}
	if value == 0 {
		return 0, false
	}
	return value, true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
