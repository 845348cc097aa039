package models

// ComparisonEntry is one property of a comparison request. Exactly one of
// Result and Error is set.
type ComparisonEntry struct {
	PropertyID int64              `json:"property_id"`
	Result     *CalculationResult `json:"result,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// SummaryMetrics is the subset of a CalculationResult shown on the dashboard.
type SummaryMetrics struct {
	MonthlyRevenue    float64  `json:"monthly_revenue"`
	MonthlyCashFlow   float64  `json:"monthly_cash_flow"`
	CashOnCash        float64  `json:"cash_on_cash"`
	CapRate           float64  `json:"cap_rate"`
	DSCR              Coverage `json:"dscr"`
	NOI               float64  `json:"noi"`
	TotalCashInvested float64  `json:"total_cash_invested"`
}

func NewSummaryMetrics(r CalculationResult) *SummaryMetrics {
	return &SummaryMetrics{
		MonthlyRevenue:    r.MonthlyRevenue,
		MonthlyCashFlow:   r.MonthlyCashFlow,
		CashOnCash:        r.CashOnCash,
		CapRate:           r.CapRate,
		DSCR:              r.DSCR,
		NOI:               r.NOI,
		TotalCashInvested: r.TotalCashInvested,
	}
}

type PropertySummary struct {
	Property
	Metrics *SummaryMetrics `json:"metrics"`
}

// PortfolioTotals aggregates every property that produced metrics.
type PortfolioTotals struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalCashFlow float64 `json:"total_cash_flow"`
	TotalNOI      float64 `json:"total_noi"`
	TotalInvested float64 `json:"total_invested"`
	PropertyCount int     `json:"property_count"`
	CashOnCash    float64 `json:"cash_on_cash"`
}

type Dashboard struct {
	Portfolio  PortfolioTotals   `json:"portfolio"`
	Properties []PropertySummary `json:"properties"`
}
