package strategy

import "regexp"

// Formatted targets the card-statement layout that prints a transaction
// date, a posting date, the merchant, reference and account digits and the
// amount on one line. Progressively looser patterns pick up lines where
// OCR dropped one of the structured fields.
type Formatted struct{}

func (Formatted) Name() string { return "formatted" }

var (
	// TransDate PostDate Description RefNum AcctNum Amount
	twoDateRefRe = regexp.MustCompile(
		`^(\d{2}/\d{2})\s+\d{2}/\d{2}\s+(.+?)\s+(\d{4})\s+(\d{4})\s+(-?\$?[\d,]+\.?\d*)\s*$`)

	// TransDate PostDate Description Amount (reference digits lost)
	twoDateRe = regexp.MustCompile(
		`^(\d{2}/\d{2})\s+\d{2}/\d{2}\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})\s*$`)

	// Date Description RefNum Amount
	oneDateRefRe = regexp.MustCompile(
		`^(\d{2}/\d{2}(?:/\d{2,4})?)\s+(.+?)\s+(\d{4})\s+(-?\$?[\d,]+\.\d{2})\s*$`)

	// Date Description Amount
	oneDateRe = regexp.MustCompile(
		`^(\d{2}/\d{2}(?:/\d{2,4})?)\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})\s*$`)
)

func (f Formatted) Extract(lines []string) []Candidate {
	var out []Candidate
	for i, line := range lines {
		if ShouldSkip(line) {
			continue
		}
		if c, ok := f.matchLine(line, i); ok {
			out = append(out, c)
		}
	}
	return out
}

func (f Formatted) matchLine(line string, idx int) (Candidate, bool) {
	if m := twoDateRefRe.FindStringSubmatch(line); m != nil {
		return newCandidate(f.Name(), m[1], m[2], m[5], line, idx)
	}
	if m := twoDateRe.FindStringSubmatch(line); m != nil {
		return newCandidate(f.Name(), m[1], m[2], m[3], line, idx)
	}
	if m := oneDateRefRe.FindStringSubmatch(line); m != nil {
		return newCandidate(f.Name(), m[1], m[2], m[4], line, idx)
	}
	if m := oneDateRe.FindStringSubmatch(line); m != nil {
		return newCandidate(f.Name(), m[1], m[2], m[3], line, idx)
	}
	return Candidate{}, false
}
