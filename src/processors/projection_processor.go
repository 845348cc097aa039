// backend/src/processors/projection_processor.go
package processors

import (
	"math"

	"github.com/strscout/backend/src/models"
)

const (
	AnnualAppreciationRate  = 0.03
	AnnualExpenseGrowthRate = 0.02
	AnnualRevenueGrowthRate = 0.03
	ProjectionYears         = 10
)

// ProjectionBasis is the year-one position the projection grows from.
type ProjectionBasis struct {
	PurchasePrice     float64
	AnnualRevenue     float64
	AnnualExpenses    float64
	AnnualDebtService float64
	LoanAmount        float64
	InterestRate      float64
	LoanTermYears     int
	IsCashPurchase    bool
	TotalCashInvested float64
}

type Projection struct {
	Points           []models.YearProjectionPoint
	TenYearNetReturn float64
	CAGR             float64
}

// ProjectTenYears grows revenue and expenses at fixed rates, holds debt
// service flat and tracks equity as appreciation plus principal paydown.
func ProjectTenYears(b ProjectionBasis) Projection {
	points := make([]models.YearProjectionPoint, 0, ProjectionYears)
	var cumulative float64

	for y := 1; y <= ProjectionYears; y++ {
		revenue := b.AnnualRevenue * math.Pow(1+AnnualRevenueGrowthRate, float64(y-1))
		expenses := b.AnnualExpenses * math.Pow(1+AnnualExpenseGrowthRate, float64(y-1))
		noi := revenue - expenses
		cashFlow := noi - b.AnnualDebtService
		cumulative += cashFlow

		value := b.PurchasePrice * math.Pow(1+AnnualAppreciationRate, float64(y))
		var balance float64
		if !b.IsCashPurchase {
			balance = RemainingBalance(b.LoanAmount, b.InterestRate, b.LoanTermYears*12, y*12)
		}

		points = append(points, models.YearProjectionPoint{
			Year:               y,
			Revenue:            revenue,
			Expenses:           expenses,
			NOI:                noi,
			DebtService:        b.AnnualDebtService,
			CashFlow:           cashFlow,
			PropertyValue:      value,
			Equity:             value - balance,
			CumulativeCashFlow: cumulative,
		})
	}

	last := points[len(points)-1]
	netReturn := last.CumulativeCashFlow + last.Equity - b.TotalCashInvested

	return Projection{
		Points:           points,
		TenYearNetReturn: netReturn,
		CAGR:             compoundAnnualGrowth(b.TotalCashInvested, b.TotalCashInvested+netReturn, ProjectionYears),
	}
}

// compoundAnnualGrowth is 0 unless both ends are positive.
func compoundAnnualGrowth(start, end float64, years int) float64 {
	if start <= 0 || end <= 0 {
		return 0
	}
	return math.Pow(end/start, 1/float64(years)) - 1
}
