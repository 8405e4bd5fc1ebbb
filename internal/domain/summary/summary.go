// Package summary aggregates the transaction collection into the headline
// financial figures: totals, the current calendar month, the 19th-to-19th
// billing cycle, a six month trend, and top spending categories.
package summary

import (
	"sort"
	"time"

	"github.com/finsight/finsight/internal/domain/transactions"
	"github.com/finsight/finsight/pkg/money"
)

// Summary is the computed financial picture at a point in time.
type Summary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	TotalSpending float64 `json:"totalSpending"`
	NetBalance    float64 `json:"netBalance"`

	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`

	// LastMonthExpenses covers the previous full calendar month.
	LastMonthExpenses float64 `json:"lastMonthExpenses"`

	// ActualSpending covers the billing cycle running from the 19th.
	ActualSpending float64 `json:"actualSpending"`

	DebitCardBalance *float64 `json:"debitCardBalance,omitempty"`

	SpendingTrend []MonthSpending `json:"spendingTrend"`
	TopCategories []CategoryTotal `json:"topCategories"`
}

// MonthSpending is one month of the trend series.
type MonthSpending struct {
	Month    string  `json:"month"` // "Jan 2026"
	Expenses float64 `json:"expenses"`
}

// CategoryTotal ranks one expense category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

const (
	billingCycleDay = 19
	trendMonths     = 6
	topCategories   = 5
)

// isRefund reports whether income offsets earlier spending rather than
// being new money.
func isRefund(tx transactions.Transaction) bool {
	return tx.Type == transactions.TypeIncome && tx.Category == transactions.CategoryRefunds
}

// Compute aggregates the collection. All accumulation happens in integer
// cents. Refunds reduce net expenses but count toward gross spending
// turnover, so a $10 spend refunded $3 reports $7 of expenses and $13 of
// spending.
func Compute(txs []transactions.Transaction, debitBalance *float64, now time.Time) Summary {
	s := Summary{DebitCardBalance: debitBalance}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	cycleStart := billingCycleStart(now)
	trendStart := monthStart.AddDate(0, -(trendMonths - 1), 0)

	income := money.Zero()
	expenses := money.Zero()
	refunds := money.Zero()
	monthIncome := money.Zero()
	monthExpenses := money.Zero()
	monthRefunds := money.Zero()
	lastMonthExpenses := money.Zero()
	lastMonthRefunds := money.Zero()
	cycleSpending := money.Zero()
	byCategory := make(map[string]*money.Money)
	trend := make(map[string]*money.Money)

	for _, tx := range txs {
		amount := money.FromFloat(tx.Amount)
		inMonth := !tx.Date.Before(monthStart) && tx.Date.Before(monthEnd)
		inLastMonth := !tx.Date.Before(lastMonthStart) && tx.Date.Before(monthStart)
		switch {
		case isRefund(tx):
			refunds = refunds.Add(amount)
			if inMonth {
				monthRefunds = monthRefunds.Add(amount)
			}
			if inLastMonth {
				lastMonthRefunds = lastMonthRefunds.Add(amount)
			}
		case tx.Type == transactions.TypeIncome:
			income = income.Add(amount)
			if inMonth {
				monthIncome = monthIncome.Add(amount)
			}
		default:
			expenses = expenses.Add(amount)
			byCategory[tx.Category] = byCategory[tx.Category].Add(amount)
			if inMonth {
				monthExpenses = monthExpenses.Add(amount)
			}
			if inLastMonth {
				lastMonthExpenses = lastMonthExpenses.Add(amount)
			}
			if !tx.Date.Before(cycleStart) && !tx.Date.After(now) {
				cycleSpending = cycleSpending.Add(amount)
			}
			if !tx.Date.Before(trendStart) {
				label := tx.Date.Format("Jan 2006")
				trend[label] = trend[label].Add(amount)
			}
		}
	}

	s.TotalIncome = income.Float()
	s.TotalExpenses = expenses.Subtract(refunds).Float()
	s.TotalSpending = expenses.Add(refunds).Float()
	s.NetBalance = income.Subtract(expenses.Subtract(refunds)).Float()
	s.MonthlyIncome = monthIncome.Float()
	s.MonthlyExpenses = monthExpenses.Subtract(monthRefunds).Float()
	s.LastMonthExpenses = lastMonthExpenses.Subtract(lastMonthRefunds).Float()
	s.ActualSpending = cycleSpending.Float()

	for i := 0; i < trendMonths; i++ {
		label := trendStart.AddDate(0, i, 0).Format("Jan 2006")
		s.SpendingTrend = append(s.SpendingTrend, MonthSpending{
			Month:    label,
			Expenses: trend[label].Float(),
		})
	}

	for cat, total := range byCategory {
		s.TopCategories = append(s.TopCategories, CategoryTotal{Category: cat, Total: total.Float()})
	}
	sort.Slice(s.TopCategories, func(i, j int) bool {
		if s.TopCategories[i].Total != s.TopCategories[j].Total {
			return s.TopCategories[i].Total > s.TopCategories[j].Total
		}
		return s.TopCategories[i].Category < s.TopCategories[j].Category
	})
	if len(s.TopCategories) > topCategories {
		s.TopCategories = s.TopCategories[:topCategories]
	}
	return s
}

// billingCycleStart returns the most recent 19th on or before now.
func billingCycleStart(now time.Time) time.Time {
	if now.Day() >= billingCycleDay {
		return time.Date(now.Year(), now.Month(), billingCycleDay, 0, 0, 0, 0, now.Location())
	}
	return time.Date(now.Year(), now.Month(), billingCycleDay, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
}
