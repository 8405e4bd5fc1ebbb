package textclean

// Tables holds the pluggable correction tables consulted by Clean. The
// defaults are curated from statements that went through consumer OCR;
// callers with their own garble inventory can swap any table out.
type Tables struct {
	// DateLiterals maps known OCR-garbled date fragments to corrected
	// MM/DD text. This is an explicit allowlist, not a general rule.
	DateLiterals map[string]string

	// Merchants maps garbled or noisy substrings to canonical merchant
	// and institution names.
	Merchants map[string]string

	// CanonicalMerchants lists clean merchant names used by the
	// conservative fuzzy repair pass.
	CanonicalMerchants []string

	// AmountLiterals maps short garbled tokens to the numeric text they
	// are known to represent.
	AmountLiterals map[string]string

	// CentsAllowlist contains two-digit cent values common enough that a
	// bare integer token ending in one of them is reinterpreted as
	// dollars+cents. Kept deliberately small: this stage trades recall
	// for precision.
	CentsAllowlist map[string]bool
}

// DefaultTables returns the built-in correction tables.
func DefaultTables() *Tables {
	return &Tables{
		DateLiterals: map[string]string{
			"O6/O3": "06/03",
			"O6/O4": "06/04",
			"O5/1O": "05/10",
			"l2/O1": "12/01",
			"l1/3O": "11/30",
			"O1/l5": "01/15",
			"1O/O7": "10/07",
			"O9/2l": "09/21",
		},
		Merchants: map[string]string{
			"BANK 0F AMERICA":  "BANK OF AMERICA",
			"BANK OF AMERLCA":  "BANK OF AMERICA",
			"WELLS FARG0":      "WELLS FARGO",
			"STARBUCK5":        "STARBUCKS",
			"AMAZ0N":           "AMAZON",
			"WALMART SUPERCTR": "WALMART",
			"MCD0NALD":         "MCDONALD",
			"TARGET T-":        "TARGET ",
			"C0STCO":           "COSTCO",
			"CHEVR0N":          "CHEVRON",
			"FABLETLCS":        "FABLETICS",
		},
		CanonicalMerchants: []string{
			"STARBUCKS", "AMAZON", "WALMART", "TARGET", "COSTCO",
			"MCDONALDS", "CHEVRON", "SHELL", "NETFLIX", "SPOTIFY",
			"FABLETICS", "SAFEWAY", "WHOLE FOODS", "TRADER JOES",
		},
		AmountLiterals: map[string]string{
			"Z.OO": "2.00",
			"S.OO": "5.00",
			"B.OO": "8.00",
			"l.OO": "1.00",
			"IZ.5O": "12.50",
			"ZS.OO": "25.00",
		},
		CentsAllowlist: map[string]bool{
			"00": true, "25": true, "49": true, "50": true,
			"75": true, "95": true, "98": true, "99": true,
		},
	}
}
