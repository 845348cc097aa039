// backend/src/models/calculation.go
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// AcquisitionCost is the one-time money spent to acquire the property.
type AcquisitionCost struct {
	PurchasePrice float64 `json:"purchase_price"`
	ClosingCosts  float64 `json:"closing_costs"`
	Renovation    float64 `json:"renovation"`
}

// FinancingTerms describes a fixed-rate, fully amortizing loan.
// InterestRate is a whole-number percent (7 means 7%). When IsCashPurchase
// is set the other fields are ignored.
type FinancingTerms struct {
	DownPaymentPct float64 `json:"down_payment_pct"`
	InterestRate   float64 `json:"interest_rate"`
	LoanTermYears  int     `json:"loan_term_years"`
	IsCashPurchase bool    `json:"is_cash_purchase"`
}

type IncomeAssumption struct {
	NightlyRate   float64 `json:"nightly_rate"`
	OccupancyPct  float64 `json:"occupancy_pct"`
	AvgStayNights float64 `json:"avg_stay_nights"`
}

// CalculationInput is everything the metrics engine needs for one property.
type CalculationInput struct {
	Acquisition AcquisitionCost
	Financing   FinancingTerms
	Income      IncomeAssumption
	Expenses    []ExpenseItem
	UnitCount   int
}

// Coverage is a ratio that may be unbounded. +Inf is written to JSON as
// null and null is read back as +Inf.
type Coverage float64

func (c Coverage) MarshalJSON() ([]byte, error) {
	f := float64(c)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

func (c *Coverage) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = Coverage(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = Coverage(f)
	return nil
}

// IsUnbounded reports whether the ratio has no finite value.
func (c Coverage) IsUnbounded() bool {
	return math.IsInf(float64(c), 1)
}

type YearProjectionPoint struct {
	Year               int     `json:"year"`
	Revenue            float64 `json:"revenue"`
	Expenses           float64 `json:"expenses"`
	NOI                float64 `json:"noi"`
	DebtService        float64 `json:"debt_service"`
	CashFlow           float64 `json:"cash_flow"`
	PropertyValue      float64 `json:"property_value"`
	Equity             float64 `json:"equity"`
	CumulativeCashFlow float64 `json:"cumulative_cash_flow"`
}

// CalculationResult holds the single-year figures, the derived ratios and
// the ten-year projection. Ratios are fractions (0.08 is 8%).
type CalculationResult struct {
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	AnnualRevenue     float64 `json:"annual_revenue"`
	AnnualExpenses    float64 `json:"annual_expenses"`
	NOI               float64 `json:"noi"`
	MonthlyPI         float64 `json:"monthly_pi"`
	AnnualDebtService float64 `json:"annual_debt_service"`
	MonthlyCashFlow   float64 `json:"monthly_cash_flow"`
	AnnualCashFlow    float64 `json:"annual_cash_flow"`
	TotalCashInvested float64 `json:"total_cash_invested"`
	LoanAmount        float64 `json:"loan_amount"`
	DownPayment       float64 `json:"down_payment"`

	CashOnCash          float64  `json:"cash_on_cash"`
	GrossYield          float64  `json:"gross_yield"`
	CapRate             float64  `json:"cap_rate"`
	DSCR                Coverage `json:"dscr"`
	BreakEvenOccupancy  float64  `json:"break_even_occupancy"`
	GrossRentMultiplier float64  `json:"gross_rent_multiplier"`
	PricePerDoor        float64  `json:"price_per_door"`

	Projections      []YearProjectionPoint `json:"projections"`
	TenYearNetReturn float64               `json:"ten_year_net_return"`
	CAGR             float64               `json:"cagr"`
}

// AlosDataPoint is the economics of the property at one average length of stay.
type AlosDataPoint struct {
	Alos                int     `json:"alos"`
	StaysPerYear        float64 `json:"stays_per_year"`
	PerStayCostsAnnual  float64 `json:"per_stay_costs_annual"`
	FixedExpensesAnnual float64 `json:"fixed_expenses_annual"`
	TotalExpenses       float64 `json:"total_expenses"`
	Revenue             float64 `json:"revenue"`
	NOI                 float64 `json:"noi"`
	NOIMargin           float64 `json:"noi_margin"`
	CashFlow            float64 `json:"cash_flow"`
	PerStayCostPct      float64 `json:"per_stay_cost_pct"`
}

// AlosRange is an inclusive range of integer stay lengths. The upper
// bound of 30 matches processors.MaxAlosNights.
type AlosRange struct {
	Min int `json:"min" validate:"min=1,max=30"`
	Max int `json:"max" validate:"min=1,max=30,gtefield=Min"`
}

// AlosBasis carries the single-year figures the sweep holds constant.
type AlosBasis struct {
	AnnualRevenue     float64
	AnnualDebtService float64
}

type AlosSummary struct {
	HasPerStayCosts  bool    `json:"has_per_stay_costs"`
	SweetSpot        *int    `json:"sweet_spot"`
	BreakEvenAlos    *int    `json:"break_even_alos"`
	SensitivityScore float64 `json:"sensitivity_score"`
}

type AlosAnalysis struct {
	Points  []AlosDataPoint `json:"points"`
	Summary AlosSummary     `json:"summary"`
}

// ExpenseEntry is the wire form of an ExpenseItem. Any frequency is
// accepted; ones the engine does not know are billed monthly.
type ExpenseEntry struct {
	Amount       float64 `json:"amount"`
	Frequency    string  `json:"frequency" validate:"max=50"`
	IsPercentage bool    `json:"is_percentage"`
}

// CalculationRequest is a self-contained calculation input as read from a
// request body or the command line.
type CalculationRequest struct {
	Acquisition AcquisitionCost  `json:"acquisition"`
	Financing   FinancingTerms   `json:"financing"`
	Income      IncomeAssumption `json:"income"`
	Expenses    []ExpenseEntry   `json:"expenses" validate:"dive"`
	UnitCount   int              `json:"unit_count"`
	AlosRange   *AlosRange       `json:"alos_range,omitempty"`
}

func (r CalculationRequest) Input() CalculationInput {
	items := make([]ExpenseItem, 0, len(r.Expenses))
	for _, e := range r.Expenses {
		items = append(items, NewExpenseItem(e.Amount, e.Frequency, e.IsPercentage))
	}
	return CalculationInput{
		Acquisition: r.Acquisition,
		Financing:   r.Financing,
		Income:      r.Income,
		Expenses:    items,
		UnitCount:   r.UnitCount,
	}
}

type MortgageRequest struct {
	Principal     float64 `json:"principal"`
	InterestRate  float64 `json:"interest_rate"`
	LoanTermYears int     `json:"loan_term_years"`
}

type MortgageResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPaid      float64 `json:"total_paid"`
	TotalInterest  float64 `json:"total_interest"`
}
