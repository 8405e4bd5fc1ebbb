// Package classify decides the direction of a parsed line: income, expense,
// or a non-spending artifact that should never become a transaction.
package classify

import (
	"strings"

	"github.com/finsight/finsight/internal/domain/transactions"
)

// refundPhrases mark credits of money previously spent. They override an
// explicit negative sign on card statements where refunds print negative.
var refundPhrases = []string{
	"refund",
	"return",
	"reversal",
	"cashback",
	"cash back",
	"rebate",
	"credit adjustment",
	"merchandise credit",
	"statement credit",
	"chargeback",
}

// incomePhrases strongly indicate money coming in.
var incomePhrases = []string{
	"payroll",
	"direct dep",
	"direct deposit",
	"salary",
	"paycheck",
	"interest paid",
	"interest earned",
	"dividend",
	"deposit from",
	"ach credit",
	"transfer in",
	"tax refund",
	"bonus payment",
	"reimbursement",
	"payment from",
}

// expensePhrases force the expense direction when present, overriding sign.
var expensePhrases = []string{
	"payment to",
	"purchase at",
	"atm withdrawal",
	"pos purchase",
	"pos debit",
	"debit card purchase",
	"check card",
}

// billPaymentPhrases identify payments against a card balance. These move
// money between the user's own accounts and are not income or spending.
var billPaymentPhrases = []string{
	"payment - thank you",
	"payment thank you",
	"online payment thank you",
	"autopay payment",
	"automatic payment",
	"payment received",
	"online pymt",
	"epay payment",
	"e-payment received",
	"card payment received",
	// "Payment From CHK 9192 Conf#..." style transfers out of checking.
	"payment from chk",
	"payment from sav",
}

// artifactPhrases are statement bookkeeping lines, not movements of money.
var artifactPhrases = []string{
	"beginning balance",
	"ending balance",
	"previous balance",
	"new balance",
	"balance forward",
	"statement balance",
	"minimum payment due",
	"total fees charged",
	"total interest charged",
	"annual percentage rate",
	"credit limit",
	"available credit",
	"rewards balance",
	"points earned",
	"points balance",
}

func containsAny(description string, phrases []string) bool {
	d := strings.ToLower(description)
	for _, p := range phrases {
		if strings.Contains(d, p) {
			return true
		}
	}
	return false
}

// IsReturnOrRefund reports whether the description marks a refund, return,
// or cashback credit.
func IsReturnOrRefund(description string) bool {
	return containsAny(description, refundPhrases)
}

// IsCreditCardBillPayment reports whether the line is a payment toward a
// card balance rather than real income or spending.
func IsCreditCardBillPayment(description string) bool {
	return containsAny(description, billPaymentPhrases)
}

// IsNonSpendingArtifact reports whether the line is statement bookkeeping
// such as a balance, limit, or rewards summary.
func IsNonSpendingArtifact(description string) bool {
	return containsAny(description, artifactPhrases)
}

// Type classifies a signed amount and its description. Strong income and
// expense phrases decide unconditionally, in that order, regardless of sign;
// only then does the sign rule apply: negative amounts are expenses unless
// the description is a refund credit. Everything else defaults to expense,
// which matches how card statements print purchases as positive figures.
func Type(amount float64, description string) transactions.Type {
	if containsAny(description, incomePhrases) {
		return transactions.TypeIncome
	}
	if containsAny(description, expensePhrases) {
		return transactions.TypeExpense
	}
	if IsReturnOrRefund(description) {
		return transactions.TypeIncome
	}
	// Remaining positives are card purchases, remaining negatives are debits.
	return transactions.TypeExpense
}
