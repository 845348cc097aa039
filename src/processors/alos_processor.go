// backend/src/processors/alos_processor.go
package processors

import "github.com/strscout/backend/src/models"

const (
	DefaultAlosMin = 2
	DefaultAlosMax = 14
	// MaxAlosNights bounds every sweep, whatever range is requested.
	MaxAlosNights = 30

	// A margin gain under one percentage point per extra night marks the sweet spot.
	sweetSpotMarginGain = 0.01
)

func DefaultAlosRange() models.AlosRange {
	return models.AlosRange{Min: DefaultAlosMin, Max: DefaultAlosMax}
}

// CalculateAlosSensitivity sweeps average length of stay over alosRange,
// holding nights booked, revenue and debt service constant. Only
// per-turnover costs move with the stay length. A zero range means the
// default 2..14. The range is clamped to 1..MaxAlosNights.
func CalculateAlosSensitivity(income models.IncomeAssumption, expenses []models.ExpenseItem, basis models.AlosBasis, alosRange models.AlosRange) []models.AlosDataPoint {
	if alosRange == (models.AlosRange{}) {
		alosRange = DefaultAlosRange()
	}
	if alosRange.Min < 1 {
		alosRange.Min = 1
	}
	if alosRange.Max > MaxAlosNights {
		alosRange.Max = MaxAlosNights
	}

	nightsBooked := 365 * income.OccupancyPct / 100

	perStayCost := perStayCostTotal(expenses)
	var fixedAnnual float64
	for _, item := range expenses {
		if isPerTurnover(item) {
			continue
		}
		fixedAnnual += NormalizeToAnnual(item, basis.AnnualRevenue, income.NightlyRate, income.AvgStayNights)
	}

	var points []models.AlosDataPoint
	for alos := alosRange.Min; alos <= alosRange.Max; alos++ {
		stays := nightsBooked / float64(alos)
		perStayAnnual := perStayCost * stays
		total := fixedAnnual + perStayAnnual
		noi := basis.AnnualRevenue - total

		pt := models.AlosDataPoint{
			Alos:                alos,
			StaysPerYear:        stays,
			PerStayCostsAnnual:  perStayAnnual,
			FixedExpensesAnnual: fixedAnnual,
			TotalExpenses:       total,
			Revenue:             basis.AnnualRevenue,
			NOI:                 noi,
			CashFlow:            noi - basis.AnnualDebtService,
		}
		if basis.AnnualRevenue > 0 {
			pt.NOIMargin = noi / basis.AnnualRevenue
			pt.PerStayCostPct = perStayAnnual / basis.AnnualRevenue
		}
		points = append(points, pt)
	}
	return points
}

// FindSweetSpot returns the first stay length whose NOI margin improves on
// the previous point by less than one percentage point, or nil.
func FindSweetSpot(points []models.AlosDataPoint) *int {
	for i := 1; i < len(points); i++ {
		if points[i].NOIMargin-points[i-1].NOIMargin < sweetSpotMarginGain {
			alos := points[i].Alos
			return &alos
		}
	}
	return nil
}

// FindBreakEvenAlos returns the shortest stay with non-negative cash flow, or nil.
func FindBreakEvenAlos(points []models.AlosDataPoint) *int {
	for _, pt := range points {
		if pt.CashFlow >= 0 {
			alos := pt.Alos
			return &alos
		}
	}
	return nil
}

// SensitivityScore is the average NOI change per extra night of stay.
func SensitivityScore(points []models.AlosDataPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	return (points[len(points)-1].NOI - points[0].NOI) / float64(len(points)-1)
}

func isPerTurnover(item models.ExpenseItem) bool {
	f, ok := item.(models.FixedAmount)
	return ok && f.Basis == models.BasisPerTurnover
}

// perStayCostTotal is the cost of one turnover, summed over all
// per-turnover items.
func perStayCostTotal(expenses []models.ExpenseItem) float64 {
	var total float64
	for _, item := range expenses {
		if isPerTurnover(item) {
			total += item.(models.FixedAmount).Amount
		}
	}
	return total
}

// HasPerStayExpenses reports whether NOI moves with the stay length, that is
// whether the per-turnover costs add up to anything other than zero.
func HasPerStayExpenses(expenses []models.ExpenseItem) bool {
	return perStayCostTotal(expenses) != 0
}

// SummarizeAlos computes the indicators. Without per-stay costs the margin
// curve is flat, so no sweet spot is reported.
func SummarizeAlos(points []models.AlosDataPoint, expenses []models.ExpenseItem) models.AlosSummary {
	summary := models.AlosSummary{
		HasPerStayCosts:  HasPerStayExpenses(expenses),
		BreakEvenAlos:    FindBreakEvenAlos(points),
		SensitivityScore: SensitivityScore(points),
	}
	if summary.HasPerStayCosts {
		summary.SweetSpot = FindSweetSpot(points)
	}
	return summary
}
