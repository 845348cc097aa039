package models

import "strings"

// BillingBasis is how often a fixed-amount expense is billed.
type BillingBasis string

const (
	BasisMonthly     BillingBasis = "monthly"
	BasisAnnual      BillingBasis = "annual"
	BasisPerTurnover BillingBasis = "per_turnover"
)

// ParseBillingBasis maps a stored frequency onto a basis. "per_stay" is an
// alias of per_turnover. Unknown values are returned as-is and treated as
// monthly by the normalizer.
func ParseBillingBasis(s string) BillingBasis {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly":
		return BasisMonthly
	case "annual":
		return BasisAnnual
	case "per_turnover", "per_stay":
		return BasisPerTurnover
	default:
		return BillingBasis(s)
	}
}

// ExpenseItem is one recurring operating cost. It is either a
// PercentageOfRevenue or a FixedAmount.
type ExpenseItem interface {
	isExpenseItem()
}

// PercentageOfRevenue is a cost expressed as a whole-number percent of
// annual gross revenue. It has no billing basis.
type PercentageOfRevenue struct {
	Pct float64
}

// FixedAmount is a dollar cost billed on Basis.
type FixedAmount struct {
	Amount float64
	Basis  BillingBasis
}

func (PercentageOfRevenue) isExpenseItem() {}
func (FixedAmount) isExpenseItem()         {}

// NewExpenseItem builds an ExpenseItem from the stored (amount, frequency,
// is_percentage) triple.
func NewExpenseItem(amount float64, frequency string, isPercentage bool) ExpenseItem {
	if isPercentage {
		return PercentageOfRevenue{Pct: amount}
	}
	return FixedAmount{Amount: amount, Basis: ParseBillingBasis(frequency)}
}
