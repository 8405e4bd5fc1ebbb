package strategy

import "regexp"

// Advanced matches transaction-mechanism lines: ACH pulls, POS purchases,
// ATM withdrawals, wires, direct deposits and numbered checks. These carry
// their own layout quirks that the structural patterns miss.
type Advanced struct{}

func (Advanced) Name() string { return "advanced" }

type mechanismPattern struct {
	re *regexp.Regexp
	// Submatch indices for date, description and amount.
	date, desc, amount int
}

var mechanismPatterns = []mechanismPattern{
	// 01/15 ACH DEBIT COMPANY PAYROLL 1,234.56
	{regexp.MustCompile(`^(\d{2}/\d{2}(?:/\d{2,4})?)\s+(ACH\s+(?:DEBIT|CREDIT|WEB|PPD)\s+.+?)\s+(-?\$?[\d,]+\.\d{2})\s*$`), 1, 2, 3},
	// 01/15 POS PURCHASE MERCHANT 12.34
	{regexp.MustCompile(`^(\d{2}/\d{2}(?:/\d{2,4})?)\s+(POS\s+(?:PURCHASE|DEBIT|WITHDRAWAL)?\s*.+?)\s+(-?\$?[\d,]+\.\d{2})\s*$`), 1, 2, 3},
	// 01/15 ATM WITHDRAWAL #1234 MAIN ST 100.00
	{regexp.MustCompile(`^(\d{2}/\d{2}(?:/\d{2,4})?)\s+(ATM\s+(?:WITHDRAWAL|DEPOSIT)\s*.+?)\s+(-?\$?[\d,]+\.\d{2})\s*$`), 1, 2, 3},
	// 01/15 WIRE TRANSFER OUT BENEFICIARY 5,000.00
	{regexp.MustCompile(`^(\d{2}/\d{2}(?:/\d{2,4})?)\s+(WIRE\s+(?:TRANSFER|OUT|IN)\s*.+?)\s+(-?\$?[\d,]+\.\d{2})\s*$`), 1, 2, 3},
	// 01/15 DIRECT DEPOSIT EMPLOYER PAYROLL 2,500.00
	{regexp.MustCompile(`^(\d{2}/\d{2}(?:/\d{2,4})?)\s+(DIRECT\s+DEP(?:OSIT)?\s*.+?)\s+(-?\$?[\d,]+\.\d{2})\s*$`), 1, 2, 3},
	// CHECK 1234 01/15 250.00  /  01/15 CHECK #1234 250.00
	{regexp.MustCompile(`^(?:CHECK|CHK)\s*#?(\d{3,5})\s+(\d{2}/\d{2}(?:/\d{2,4})?)\s+(-?\$?[\d,]+\.\d{2})\s*$`), 2, 1, 3},
	{regexp.MustCompile(`^(\d{2}/\d{2}(?:/\d{2,4})?)\s+((?:CHECK|CHK)\s*#?\d{3,5})\s+(-?\$?[\d,]+\.\d{2})\s*$`), 1, 2, 3},
}

func (a Advanced) Extract(lines []string) []Candidate {
	var out []Candidate
	for i, line := range lines {
		if ShouldSkip(line) {
			continue
		}
		for _, p := range mechanismPatterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			desc := m[p.desc]
			if p.desc == 1 {
				desc = "CHECK " + desc
			}
			if c, ok := newCandidate(a.Name(), m[p.date], desc, m[p.amount], line, i); ok {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
