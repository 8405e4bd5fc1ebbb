// Package transactions defines the core transaction entity, the process-wide
// store that owns the collection, and the two deduplication passes.
package transactions

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Type is the monetary direction of a transaction.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Source records how a transaction entered the store.
type Source string

const (
	SourceUpload Source = "upload"
	SourceManual Source = "manual"
)

// Category defaults per type.
const (
	CategoryOther       = "Other"
	CategoryOtherIncome = "Other Income"
	CategoryRefunds     = "Refunds"
)

// ExpenseCategories is the fixed spending category set.
var ExpenseCategories = []string{
	"Food & Dining",
	"Groceries",
	"Shopping",
	"Transportation",
	"Gas & Fuel",
	"Entertainment",
	"Bills & Utilities",
	"Health & Fitness",
	"Travel",
	"Education",
	"Personal Care",
	"Home Improvement",
	"Fees & Charges",
	"Subscriptions",
	CategoryOther,
}

// IncomeCategories is the fixed income category set.
var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investment",
	"Interest",
	CategoryRefunds,
	"Cashback",
	CategoryOtherIncome,
}

// CategoriesFor returns the category list associated with a type.
func CategoriesFor(t Type) []string {
	if t == TypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// ValidCategory reports whether category belongs to the list for t.
func ValidCategory(t Type, category string) bool {
	for _, c := range CategoriesFor(t) {
		if c == category {
			return true
		}
	}
	return false
}

// Transaction is one normalized financial movement at day granularity.
type Transaction struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"` // Non-negative magnitude
	Type        Type      `json:"type"`
	Category    string    `json:"category"`
	Source      Source    `json:"source"`

	// OriginalAmount preserves the signed value as printed in the source;
	// its sign convention varies by statement polarity.
	OriginalAmount *float64 `json:"originalAmount,omitempty"`

	// Confidence, when set, grades how trustworthy the extraction was.
	Confidence *float64 `json:"confidence,omitempty"`
}

var (
	ErrZeroAmount      = errors.New("transaction amount must be greater than zero")
	ErrInvalidDate     = errors.New("transaction date is not a valid calendar date")
	ErrInvalidCategory = errors.New("category does not belong to the transaction type")
	ErrInvalidType     = errors.New("transaction type must be income or expense")
)

// New constructs a validated transaction. The amount is the absolute value
// of originalAmount; zero amounts and invalid dates fail construction, and
// the category must belong to the type's category list.
func New(date time.Time, description string, originalAmount float64, t Type, category string, source Source) (Transaction, error) {
	if t != TypeIncome && t != TypeExpense {
		return Transaction{}, ErrInvalidType
	}
	magnitude := math.Abs(originalAmount)
	if magnitude == 0 || math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return Transaction{}, ErrZeroAmount
	}
	if date.IsZero() {
		return Transaction{}, ErrInvalidDate
	}
	if !ValidCategory(t, category) {
		return Transaction{}, fmt.Errorf("%w: %q is not a %s category", ErrInvalidCategory, category, t)
	}
	orig := originalAmount
	return Transaction{
		ID:             uuid.New(),
		Date:           date,
		Description:    description,
		Amount:         magnitude,
		Type:           t,
		Category:       category,
		Source:         source,
		OriginalAmount: &orig,
	}, nil
}
