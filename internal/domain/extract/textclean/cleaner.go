// Package textclean repairs OCR noise in raw statement text before any
// line parsing runs. Every stage is a pure best-effort transform that
// preserves line structure; nothing here can fail.
package textclean

import (
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Cleaner applies the ordered correction stages over raw extracted text.
type Cleaner struct {
	tables *Tables
}

// NewCleaner creates a cleaner with the given correction tables.
// Pass nil to use DefaultTables.
func NewCleaner(tables *Tables) *Cleaner {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Cleaner{tables: tables}
}

var (
	leadingSymbolRe  = regexp.MustCompile(`[+*#@]+(\d)`)
	decimalCommaRe   = regexp.MustCompile(`(\d),(\d{2})(\D|$)`)
	bareIntTailRe    = regexp.MustCompile(`(^|\s)(\d{2,5})\s*$`)
	multiSpaceRe     = regexp.MustCompile(`[ \t]{2,}`)
	controlRe        = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	dashVariants     = strings.NewReplacer("‐", "-", "‑", "-", "‒", "-", "–", "-", "—", "-", "―", "-", "−", "-")
	quoteVariants    = strings.NewReplacer("‘", "'", "’", "'", "“", `"`, "”", `"`)
)

// Clean runs all correction stages in order and returns text with the same
// line structure, corrected in place.
func (c *Cleaner) Clean(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = c.fixCharacterConfusions(line)
		line = c.fixDateLiterals(line)
		line = c.canonicalizeMerchants(line)
		line = stripAmountSymbols(line)
		line = c.fixAmountLiterals(line)
		line = c.reconstructDecimal(line)
		line = normalizeLine(line)
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// fixCharacterConfusions repairs the classic digit/letter confusions, but
// only where the confused rune touches a digit so words stay intact.
func (c *Cleaner) fixCharacterConfusions(line string) string {
	runes := []rune(line)
	out := make([]rune, len(runes))
	copy(out, runes)

	isDigit := func(i int) bool {
		return i >= 0 && i < len(runes) && runes[i] >= '0' && runes[i] <= '9'
	}

	for i, r := range runes {
		if !isDigit(i-1) && !isDigit(i+1) {
			continue
		}
		switch r {
		case 'O', 'o':
			out[i] = '0'
		case 'l', 'I', '|':
			out[i] = '1'
		case 'S':
			out[i] = '5'
		case 'B':
			out[i] = '8'
		}
	}
	return string(out)
}

// fixDateLiterals substitutes the fixed table of known corrupted date
// fragments. Runs after character repair to catch combinations the
// single-character pass cannot reach.
func (c *Cleaner) fixDateLiterals(line string) string {
	for garbled, fixed := range c.tables.DateLiterals {
		if strings.Contains(line, garbled) {
			line = strings.ReplaceAll(line, garbled, fixed)
		}
	}
	return line
}

// canonicalizeMerchants rewrites known merchant garbles, then runs a
// conservative fuzzy pass: an uppercase token within edit distance 1 of a
// canonical merchant name is assumed to be that merchant.
func (c *Cleaner) canonicalizeMerchants(line string) string {
	upper := strings.ToUpper(line)
	for garbled, fixed := range c.tables.Merchants {
		if idx := strings.Index(upper, garbled); idx >= 0 {
			line = line[:idx] + fixed + line[idx+len(garbled):]
			upper = strings.ToUpper(line)
		}
	}

	fields := strings.Fields(line)
	changed := false
	for i, f := range fields {
		token := strings.ToUpper(strings.Trim(f, ".,*"))
		if len(token) < 6 || containsDigit(token) {
			continue
		}
		for _, canonical := range c.tables.CanonicalMerchants {
			if token == canonical {
				break
			}
			if abs(len(token)-len(canonical)) <= 1 && fuzzy.LevenshteinDistance(token, canonical) == 1 {
				fields[i] = canonical
				changed = true
				break
			}
		}
	}
	if changed {
		return strings.Join(fields, " ")
	}
	return line
}

// stripAmountSymbols removes stray OCR symbols around amounts and converts
// European decimal commas to points.
func stripAmountSymbols(line string) string {
	line = strings.ReplaceAll(line, "=", " ")
	line = leadingSymbolRe.ReplaceAllString(line, "$1")
	line = decimalCommaRe.ReplaceAllString(line, "$1.$2$3")
	return line
}

// fixAmountLiterals substitutes whole garbled tokens known to represent a
// specific numeric value.
func (c *Cleaner) fixAmountLiterals(line string) string {
	fields := strings.Fields(line)
	changed := false
	for i, f := range fields {
		if fixed, ok := c.tables.AmountLiterals[f]; ok {
			fields[i] = fixed
			changed = true
		}
	}
	if changed {
		return strings.Join(fields, " ")
	}
	return line
}

// reconstructDecimal reinterprets a bare trailing integer token as
// dollars+cents when its last two digits are a common cents value.
// Restricted to the final token of a line, where statement amounts live;
// mid-line reference numbers are left alone.
func (c *Cleaner) reconstructDecimal(line string) string {
	m := bareIntTailRe.FindStringSubmatchIndex(line)
	if m == nil {
		return line
	}
	token := line[m[4]:m[5]]
	if len(token) < 3 {
		return line
	}
	cents := token[len(token)-2:]
	if !c.tables.CentsAllowlist[cents] {
		return line
	}
	dollars := token[:len(token)-2]
	return line[:m[4]] + dollars + "." + cents + line[m[5]:]
}

// normalizeLine strips control characters, unifies dash and quote variants
// and collapses runs of whitespace.
func normalizeLine(line string) string {
	line = controlRe.ReplaceAllString(line, "")
	line = dashVariants.Replace(line)
	line = quoteVariants.Replace(line)
	line = multiSpaceRe.ReplaceAllString(line, "  ")
	return strings.TrimRight(line, " \t")
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
