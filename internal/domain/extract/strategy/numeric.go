package strategy

import (
	"regexp"
	"strings"
)

// Numeric is the last resort: any line carrying both a date-shaped and an
// amount-shaped token becomes a candidate, with the text remainder as the
// description. It exists for OCR output too mangled for structural parsing.
type Numeric struct{}

func (Numeric) Name() string { return "numeric" }

var (
	dateTokenRe   = regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b|\b\d{4}-\d{1,2}-\d{1,2}\b`)
	amountTokenRe = regexp.MustCompile(`-?\$?\d{1,3}(?:,\d{3})*\.\d{2}\b|-?\$\d+\b`)
)

func (n Numeric) Extract(lines []string) []Candidate {
	var out []Candidate
	for i, line := range lines {
		if ShouldSkip(line) {
			continue
		}
		dateTok := dateTokenRe.FindString(line)
		if dateTok == "" {
			continue
		}
		// Take the last amount-shaped token: statements print the amount
		// after reference numbers, not before.
		amounts := amountTokenRe.FindAllString(line, -1)
		if len(amounts) == 0 {
			continue
		}
		amountTok := amounts[len(amounts)-1]

		desc := strings.Replace(line, dateTok, " ", 1)
		desc = replaceLast(desc, amountTok, " ")
		if c, ok := newCandidate(n.Name(), dateTok, desc, amountTok, line, i); ok {
			out = append(out, c)
		}
	}
	return out
}

func replaceLast(s, old, new string) string {
	idx := strings.LastIndex(s, old)
	if idx < 0 {
		return s
	}
	return s[:idx] + new + s[idx+len(old):]
}
