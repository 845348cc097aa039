// backend/src/processors/expense_normalizer.go
package processors

import (
	"math"

	"github.com/strscout/backend/src/models"
)

const (
	minNightlyRateForTurnovers = 1
	minStayNightsForTurnovers  = 3
)

// NormalizeToAnnual converts one expense into annual dollars.
func NormalizeToAnnual(item models.ExpenseItem, annualRevenue, nightlyRate, avgStayNights float64) float64 {
	switch e := item.(type) {
	case models.PercentageOfRevenue:
		return e.Pct / 100 * annualRevenue
	case models.FixedAmount:
		switch e.Basis {
		case models.BasisAnnual:
			return e.Amount
		case models.BasisPerTurnover:
			return e.Amount * TurnoversPerYear(annualRevenue, nightlyRate, avgStayNights)
		default:
			// monthly, and anything unrecognized
			return e.Amount * 12
		}
	default:
		return 0
	}
}

// TurnoversPerYear estimates guest checkouts from revenue: nights booked
// divided by nights per stay.
func TurnoversPerYear(annualRevenue, nightlyRate, avgStayNights float64) float64 {
	nightsBooked := annualRevenue / math.Max(nightlyRate, minNightlyRateForTurnovers)
	return nightsBooked / math.Max(avgStayNights, minStayNightsForTurnovers)
}

// SumAnnualExpenses normalizes and adds every expense.
func SumAnnualExpenses(items []models.ExpenseItem, annualRevenue, nightlyRate, avgStayNights float64) float64 {
	var total float64
	for _, item := range items {
		total += NormalizeToAnnual(item, annualRevenue, nightlyRate, avgStayNights)
	}
	return total
}
