package services

import (
	"context"

	"github.com/strscout/backend/src/models"
	"github.com/stretchr/testify/mock"
)

type mockPropertyService struct {
	mock.Mock
}

func (m *mockPropertyService) ListProperties(ctx context.Context) ([]models.Property, error) {
	args := m.Called(ctx)
	props, _ := args.Get(0).([]models.Property)
	return props, args.Error(1)
}

func (m *mockPropertyService) CreateProperty(ctx context.Context, p *models.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPropertyService) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

func (m *mockPropertyService) UpdateProperty(ctx context.Context, id int64, u models.PropertyUpdate) (*models.Property, error) {
	args := m.Called(ctx, id, u)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

func (m *mockPropertyService) DeleteProperty(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPropertyService) GetAcquisitionCosts(ctx context.Context, propertyID int64) (*models.AcquisitionCostsRecord, error) {
	args := m.Called(ctx, propertyID)
	r, _ := args.Get(0).(*models.AcquisitionCostsRecord)
	return r, args.Error(1)
}

func (m *mockPropertyService) UpdateAcquisitionCosts(ctx context.Context, propertyID int64, u models.AcquisitionCostsUpdate) (*models.AcquisitionCostsRecord, error) {
	args := m.Called(ctx, propertyID, u)
	r, _ := args.Get(0).(*models.AcquisitionCostsRecord)
	return r, args.Error(1)
}

func (m *mockPropertyService) GetFinancing(ctx context.Context, propertyID int64) (*models.FinancingRecord, error) {
	args := m.Called(ctx, propertyID)
	r, _ := args.Get(0).(*models.FinancingRecord)
	return r, args.Error(1)
}

func (m *mockPropertyService) UpdateFinancing(ctx context.Context, propertyID int64, u models.FinancingUpdate) (*models.FinancingRecord, error) {
	args := m.Called(ctx, propertyID, u)
	r, _ := args.Get(0).(*models.FinancingRecord)
	return r, args.Error(1)
}

func (m *mockPropertyService) GetRentalIncome(ctx context.Context, propertyID int64) (*models.RentalIncomeRecord, error) {
	args := m.Called(ctx, propertyID)
	r, _ := args.Get(0).(*models.RentalIncomeRecord)
	return r, args.Error(1)
}

func (m *mockPropertyService) UpdateRentalIncome(ctx context.Context, propertyID int64, u models.RentalIncomeUpdate) (*models.RentalIncomeRecord, error) {
	args := m.Called(ctx, propertyID, u)
	r, _ := args.Get(0).(*models.RentalIncomeRecord)
	return r, args.Error(1)
}

func (m *mockPropertyService) ListExpenses(ctx context.Context, propertyID int64) ([]models.OperatingExpense, error) {
	args := m.Called(ctx, propertyID)
	e, _ := args.Get(0).([]models.OperatingExpense)
	return e, args.Error(1)
}

func (m *mockPropertyService) CreateExpense(ctx context.Context, e *models.OperatingExpense) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockPropertyService) UpdateExpense(ctx context.Context, propertyID, expenseID int64, u models.OperatingExpenseUpdate) (*models.OperatingExpense, error) {
	args := m.Called(ctx, propertyID, expenseID, u)
	e, _ := args.Get(0).(*models.OperatingExpense)
	return e, args.Error(1)
}

func (m *mockPropertyService) DeleteExpense(ctx context.Context, propertyID, expenseID int64) error {
	return m.Called(ctx, propertyID, expenseID).Error(0)
}

func (m *mockPropertyService) GetCalculationInput(ctx context.Context, propertyID int64) (*models.CalculationInput, error) {
	args := m.Called(ctx, propertyID)
	in, _ := args.Get(0).(*models.CalculationInput)
	return in, args.Error(1)
}
