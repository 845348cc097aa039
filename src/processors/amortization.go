// backend/src/processors/amortization.go
package processors

import (
	"math"

	"github.com/strscout/backend/src/models"
)

// MonthlyPrincipalAndInterest is the level payment of a fixed-rate, fully
// amortizing loan. annualRatePct is a whole-number percent.
func MonthlyPrincipalAndInterest(principal, annualRatePct float64, years int) float64 {
	if principal <= 0 || years <= 0 {
		return 0
	}
	n := float64(years * 12)
	if annualRatePct <= 0 {
		return principal / n
	}
	r := annualRatePct / 100 / 12
	factor := math.Pow(1+r, n)
	return principal * r * factor / (factor - 1)
}

// RemainingBalance is the outstanding principal after monthsPaid payments.
// Zero-rate loans pay down in a straight line and stop at zero. The
// amortizing formula is applied as-is past the term, where it turns
// negative. A loan without a term has no balance.
func RemainingBalance(principal, annualRatePct float64, totalMonths, monthsPaid int) float64 {
	if totalMonths <= 0 {
		return 0
	}
	if principal <= 0 || annualRatePct <= 0 {
		return math.Max(0, principal-(principal/float64(totalMonths))*float64(monthsPaid))
	}
	r := annualRatePct / 100 / 12
	full := math.Pow(1+r, float64(totalMonths))
	paid := math.Pow(1+r, float64(monthsPaid))
	return principal * (full - paid) / (full - 1)
}

// Mortgage summarizes a loan over its whole term.
func Mortgage(req models.MortgageRequest) models.MortgageResult {
	payment := MonthlyPrincipalAndInterest(req.Principal, req.InterestRate, req.LoanTermYears)
	if payment == 0 {
		return models.MortgageResult{}
	}
	totalPaid := payment * float64(req.LoanTermYears*12)
	return models.MortgageResult{
		MonthlyPayment: payment,
		TotalPaid:      totalPaid,
		TotalInterest:  totalPaid - req.Principal,
	}
}
