// backend/src/models/property.go
package models

import "time"

const (
	DefaultPropertyType = "single_family"
	DefaultStatus       = "analyzing"
)

type Property struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required,max=255"`
	Address      string    `json:"address" validate:"max=255"`
	City         string    `json:"city" validate:"max=100"`
	State        string    `json:"state" validate:"max=100"`
	Zip          string    `json:"zip" validate:"max=20"`
	PropertyType string    `json:"property_type" validate:"max=50"`
	UnitCount    int       `json:"unit_count"`
	Status       string    `json:"status" validate:"max=50"`
	Notes        string    `json:"notes" validate:"max=4096"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PropertyUpdate is a partial update. Nil fields keep their stored value.
type PropertyUpdate struct {
	Name         *string `json:"name" validate:"omitnil,min=1,max=255"`
	Address      *string `json:"address" validate:"omitnil,max=255"`
	City         *string `json:"city" validate:"omitnil,max=100"`
	State        *string `json:"state" validate:"omitnil,max=100"`
	Zip          *string `json:"zip" validate:"omitnil,max=20"`
	PropertyType *string `json:"property_type" validate:"omitnil,max=50"`
	UnitCount    *int    `json:"unit_count"`
	Status       *string `json:"status" validate:"omitnil,max=50"`
	Notes        *string `json:"notes" validate:"omitnil,max=4096"`
}

// AcquisitionCostsRecord is the stored acquisition row of a property.
type AcquisitionCostsRecord struct {
	PropertyID int64 `json:"property_id"`
	AcquisitionCost
	UpdatedAt time.Time `json:"updated_at"`
}

type AcquisitionCostsUpdate struct {
	PurchasePrice *float64 `json:"purchase_price"`
	ClosingCosts  *float64 `json:"closing_costs"`
	Renovation    *float64 `json:"renovation"`
}

type FinancingRecord struct {
	PropertyID int64 `json:"property_id"`
	FinancingTerms
	UpdatedAt time.Time `json:"updated_at"`
}

type FinancingUpdate struct {
	DownPaymentPct *float64 `json:"down_payment_pct"`
	InterestRate   *float64 `json:"interest_rate"`
	LoanTermYears  *int     `json:"loan_term_years"`
	IsCashPurchase *bool    `json:"is_cash_purchase"`
}

type RentalIncomeRecord struct {
	PropertyID int64 `json:"property_id"`
	IncomeAssumption
	UpdatedAt time.Time `json:"updated_at"`
}

type RentalIncomeUpdate struct {
	NightlyRate   *float64 `json:"nightly_rate"`
	OccupancyPct  *float64 `json:"occupancy_pct"`
	AvgStayNights *float64 `json:"avg_stay_nights"`
}

// OperatingExpense is a stored expense row. Frequency is ignored when
// IsPercentage is set.
type OperatingExpense struct {
	ID           int64     `json:"id"`
	PropertyID   int64     `json:"property_id"`
	Category     string    `json:"category" validate:"required,max=100"`
	Label        string    `json:"label" validate:"required,max=255"`
	Amount       float64   `json:"amount"`
	Frequency    string    `json:"frequency" validate:"omitempty,oneof=monthly annual per_turnover per_stay"`
	IsPercentage bool      `json:"is_percentage"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Item converts the stored row into the calculation's expense type.
func (e OperatingExpense) Item() ExpenseItem {
	return NewExpenseItem(e.Amount, e.Frequency, e.IsPercentage)
}

type OperatingExpenseUpdate struct {
	Category     *string  `json:"category" validate:"omitnil,min=1,max=100"`
	Label        *string  `json:"label" validate:"omitnil,min=1,max=255"`
	Amount       *float64 `json:"amount"`
	Frequency    *string  `json:"frequency" validate:"omitnil,oneof=monthly annual per_turnover per_stay"`
	IsPercentage *bool    `json:"is_percentage"`
}

// DefaultFinancing and DefaultIncome are used when a property has no stored row.
var (
	DefaultFinancing = FinancingTerms{DownPaymentPct: 20, InterestRate: 7, LoanTermYears: 30, IsCashPurchase: false}
	DefaultIncome    = IncomeAssumption{NightlyRate: 0, OccupancyPct: 65, AvgStayNights: 3}
)
