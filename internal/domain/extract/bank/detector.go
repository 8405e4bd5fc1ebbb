// Package bank identifies which institution produced a statement and walks
// the card-statement section structure so credits and purchases classify
// correctly even when the printed sign convention is inverted.
package bank

import "strings"

// Tag names a detected statement format.
type Tag string

const (
	BankOfAmerica Tag = "bank_of_america"
	Chase         Tag = "chase"
	WellsFargo    Tag = "wells_fargo"
	CapitalOne    Tag = "capital_one"
	Citi          Tag = "citi"
	Discover      Tag = "discover"
	Amex          Tag = "amex"
	Generic       Tag = "generic"
)

// signature is an ordered detection entry. More specific names come first so
// "Bank of America" wins before a generic "bank" ever could.
type signature struct {
	tag     Tag
	needles []string
}

var signatures = []signature{
	{BankOfAmerica, []string{"bank of america", "bankofamerica.com", "bofa"}},
	{WellsFargo, []string{"wells fargo", "wellsfargo.com"}},
	{CapitalOne, []string{"capital one", "capitalone.com"}},
	{Amex, []string{"american express", "americanexpress.com", "amex"}},
	{Chase, []string{"chase.com", "jpmorgan chase", "chase card services", "chase bank"}},
	{Citi, []string{"citibank", "citi.com", "citicards"}},
	{Discover, []string{"discover card", "discover.com", "discover it"}},
}

// Identify scans the statement text for institution signatures in order of
// specificity and falls back to Generic.
func Identify(text string) Tag {
	lower := strings.ToLower(text)
	for _, sig := range signatures {
		for _, needle := range sig.needles {
			if strings.Contains(lower, needle) {
				return sig.tag
			}
		}
	}
	return Generic
}

// IsCardIssuer reports whether the format uses credit-card section headers,
// which flips the meaning of positive amounts to purchases.
func (t Tag) IsCardIssuer() bool {
	switch t {
	case BankOfAmerica, CapitalOne, Citi, Discover, Amex, Chase:
		return true
	}
	return false
}
