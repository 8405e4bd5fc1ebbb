// Package money provides cent-safe financial arithmetic for US dollar amounts.
// It wraps go-money for safe arithmetic and shopspring/decimal for precise
// float conversion, so that aggregation never accumulates binary float error.
package money

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD is the only currency the statement pipeline handles.
const USD = "USD"

// Money represents a US dollar value held as integer cents.
type Money struct {
	m *money.Money
}

// New creates a Money value from integer cents.
func New(cents int64) *Money {
	return &Money{m: money.New(cents, USD)}
}

// FromFloat converts a float dollar amount to Money, rounding to the
// nearest cent via decimal arithmetic.
func FromFloat(amount float64) *Money {
	cents := decimal.NewFromFloat(amount).Mul(decimal.New(1, 2)).Round(0).IntPart()
	return New(cents)
}

// Zero returns a zero dollar value.
func Zero() *Money {
	return New(0)
}

// Cents returns the amount in cents.
func (m *Money) Cents() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Float returns the amount in dollars as a float64.
func (m *Money) Float() float64 {
	f, _ := decimal.New(m.Cents(), -2).Float64()
	return f
}

// IsZero returns true if the amount is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// IsNegative returns true if the amount is below zero.
func (m *Money) IsNegative() bool {
	return m != nil && m.m != nil && m.m.IsNegative()
}

// Abs returns the absolute value.
func (m *Money) Abs() *Money {
	if m == nil || m.m == nil {
		return Zero()
	}
	return &Money{m: m.m.Absolute()}
}

// Negate returns the negated value.
func (m *Money) Negate() *Money {
	if m == nil || m.m == nil {
		return Zero()
	}
	return &Money{m: m.m.Negative()}
}

// Add returns m + other. Same-currency by construction, so it cannot fail.
func (m *Money) Add(other *Money) *Money {
	if m == nil || m.m == nil {
		return other
	}
	if other == nil || other.m == nil {
		return m
	}
	result, err := m.m.Add(other.m)
	if err != nil {
		// Unreachable: both sides are USD.
		panic(err)
	}
	return &Money{m: result}
}

// Subtract returns m - other.
func (m *Money) Subtract(other *Money) *Money {
	return m.Add(other.Negate())
}

// Compare returns -1, 0 or 1 as m is less than, equal to or greater than other.
func (m *Money) Compare(other *Money) int {
	c, err := m.m.Compare(other.m)
	if err != nil {
		panic(err)
	}
	return c
}

// Format renders the amount as "$1,234.56".
func (m *Money) Format() string {
	if m == nil || m.m == nil {
		return "$0.00"
	}
	return m.m.Display()
}

// String implements fmt.Stringer.
func (m *Money) String() string {
	return m.Format()
}

// GoString aids debugging output in tests.
func (m *Money) GoString() string {
	return fmt.Sprintf("money.New(%d)", m.Cents())
}
