// backend/src/services/interfaces.go
package services

import (
	"context"
	"errors"

	"github.com/strscout/backend/src/models"
)

// Define common service errors
var (
	ErrNotFound            = errors.New("not found")
	ErrDatabaseUnavailable = errors.New("database not available")
)

// PropertyService owns property records and assembles calculation inputs.
type PropertyService interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
	CreateProperty(ctx context.Context, p *models.Property) error
	GetProperty(ctx context.Context, id int64) (*models.Property, error)
	UpdateProperty(ctx context.Context, id int64, u models.PropertyUpdate) (*models.Property, error)
	DeleteProperty(ctx context.Context, id int64) error

	GetAcquisitionCosts(ctx context.Context, propertyID int64) (*models.AcquisitionCostsRecord, error)
	UpdateAcquisitionCosts(ctx context.Context, propertyID int64, u models.AcquisitionCostsUpdate) (*models.AcquisitionCostsRecord, error)
	GetFinancing(ctx context.Context, propertyID int64) (*models.FinancingRecord, error)
	UpdateFinancing(ctx context.Context, propertyID int64, u models.FinancingUpdate) (*models.FinancingRecord, error)
	GetRentalIncome(ctx context.Context, propertyID int64) (*models.RentalIncomeRecord, error)
	UpdateRentalIncome(ctx context.Context, propertyID int64, u models.RentalIncomeUpdate) (*models.RentalIncomeRecord, error)

	ListExpenses(ctx context.Context, propertyID int64) ([]models.OperatingExpense, error)
	CreateExpense(ctx context.Context, e *models.OperatingExpense) error
	UpdateExpense(ctx context.Context, propertyID, expenseID int64, u models.OperatingExpenseUpdate) (*models.OperatingExpense, error)
	DeleteExpense(ctx context.Context, propertyID, expenseID int64) error

	// GetCalculationInput fills missing financial rows with the baseline
	// defaults. It returns ErrNotFound for an unknown property.
	GetCalculationInput(ctx context.Context, propertyID int64) (*models.CalculationInput, error)
}

// CalculationService runs the metrics engine over stored properties.
type CalculationService interface {
	Calculate(ctx context.Context, propertyID int64) (*models.CalculationResult, error)
	AnalyzeAlos(ctx context.Context, propertyID int64, alosRange models.AlosRange) (*models.AlosAnalysis, error)
	Compare(ctx context.Context, propertyIDs []int64) ([]models.ComparisonEntry, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
}

// ResultCache stores calculation results by key. Failures are logged by
// the implementation and surface as misses.
type ResultCache interface {
	Get(ctx context.Context, key string) (*models.CalculationResult, bool)
	Set(ctx context.Context, key string, result *models.CalculationResult)
	Delete(ctx context.Context, key string)
}
