// backend/src/processors/metrics_processor.go
package processors

import (
	"math"

	"github.com/strscout/backend/src/models"
)

// Revenue uses a 30-day month. Output compatibility depends on it.
const daysPerMonth = 30

type metricsProcessorImpl struct{}

func NewMetricsProcessor() MetricsProcessor {
	return &metricsProcessorImpl{}
}

func (p *metricsProcessorImpl) Calculate(input models.CalculationInput) models.CalculationResult {
	return Calculate(input)
}

func (p *metricsProcessorImpl) AnalyzeAlos(input models.CalculationInput, result models.CalculationResult, alosRange models.AlosRange) models.AlosAnalysis {
	points := CalculateAlosSensitivity(input.Income, input.Expenses, models.AlosBasis{
		AnnualRevenue:     result.AnnualRevenue,
		AnnualDebtService: result.AnnualDebtService,
	}, alosRange)
	return models.AlosAnalysis{
		Points:  points,
		Summary: SummarizeAlos(points, input.Expenses),
	}
}

// Calculate derives the single-year figures, the ratios and the ten-year
// projection. It never fails: degenerate inputs yield 0 or +Inf.
func Calculate(input models.CalculationInput) models.CalculationResult {
	acq := input.Acquisition
	fin := input.Financing
	inc := input.Income

	monthlyRevenue := inc.NightlyRate * daysPerMonth * (inc.OccupancyPct / 100)
	annualRevenue := monthlyRevenue * 12

	var downPayment, loanAmount, monthlyPI float64
	if fin.IsCashPurchase {
		downPayment = acq.PurchasePrice
	} else {
		downPayment = acq.PurchasePrice * fin.DownPaymentPct / 100
		loanAmount = acq.PurchasePrice - downPayment
		monthlyPI = MonthlyPrincipalAndInterest(loanAmount, fin.InterestRate, fin.LoanTermYears)
	}
	annualDebtService := monthlyPI * 12

	annualExpenses := SumAnnualExpenses(input.Expenses, annualRevenue, inc.NightlyRate, inc.AvgStayNights)

	noi := annualRevenue - annualExpenses
	totalCashInvested := downPayment + acq.ClosingCosts + acq.Renovation
	annualCashFlow := noi - annualDebtService

	res := models.CalculationResult{
		MonthlyRevenue:    monthlyRevenue,
		AnnualRevenue:     annualRevenue,
		AnnualExpenses:    annualExpenses,
		NOI:               noi,
		MonthlyPI:         monthlyPI,
		AnnualDebtService: annualDebtService,
		MonthlyCashFlow:   annualCashFlow / 12,
		AnnualCashFlow:    annualCashFlow,
		TotalCashInvested: totalCashInvested,
		LoanAmount:        loanAmount,
		DownPayment:       downPayment,
		DSCR:              debtServiceCoverage(noi, annualDebtService),
		PricePerDoor:      acq.PurchasePrice,
	}

	if totalCashInvested > 0 {
		res.CashOnCash = annualCashFlow / totalCashInvested
	}
	if acq.PurchasePrice > 0 {
		res.GrossYield = annualRevenue / acq.PurchasePrice
		res.CapRate = noi / acq.PurchasePrice
	}
	if inc.NightlyRate > 0 {
		res.BreakEvenOccupancy = (annualExpenses + annualDebtService) / (inc.NightlyRate * 365)
	}
	if annualRevenue > 0 {
		res.GrossRentMultiplier = acq.PurchasePrice / annualRevenue
	}
	if input.UnitCount > 0 {
		res.PricePerDoor = acq.PurchasePrice / float64(input.UnitCount)
	}

	projection := ProjectTenYears(ProjectionBasis{
		PurchasePrice:     acq.PurchasePrice,
		AnnualRevenue:     annualRevenue,
		AnnualExpenses:    annualExpenses,
		AnnualDebtService: annualDebtService,
		LoanAmount:        loanAmount,
		InterestRate:      fin.InterestRate,
		LoanTermYears:     fin.LoanTermYears,
		IsCashPurchase:    fin.IsCashPurchase,
		TotalCashInvested: totalCashInvested,
	})
	res.Projections = projection.Points
	res.TenYearNetReturn = projection.TenYearNetReturn
	res.CAGR = projection.CAGR

	return res
}

func debtServiceCoverage(noi, annualDebtService float64) models.Coverage {
	switch {
	case annualDebtService > 0:
		return models.Coverage(noi / annualDebtService)
	case noi > 0:
		return models.Coverage(math.Inf(1))
	default:
		return 0
	}
}
