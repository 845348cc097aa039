package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/strscout/backend/src/logger"
	"github.com/strscout/backend/src/model"
	"github.com/strscout/backend/src/models"
)

type propertyServiceImpl struct {
	db          *sql.DB
	resultCache ResultCache
}

func NewPropertyService(db *sql.DB, resultCache ResultCache) PropertyService {
	return &propertyServiceImpl{db: db, resultCache: resultCache}
}

// notFound maps a missing row onto ErrNotFound.
func notFound(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
	}
	return fmt.Errorf("%s %d: %w", what, id, err)
}

func (s *propertyServiceImpl) checkDB() error {
	if s.db == nil {
		return ErrDatabaseUnavailable
	}
	return nil
}

// invalidate drops the cached result of a property after any write to it.
func (s *propertyServiceImpl) invalidate(ctx context.Context, propertyID int64) {
	if s.resultCache != nil {
		s.resultCache.Delete(ctx, calculationCacheKey(propertyID))
	}
}

func (s *propertyServiceImpl) ListProperties(ctx context.Context) ([]models.Property, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	properties, err := model.ListProperties(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return properties, nil
}

func (s *propertyServiceImpl) CreateProperty(ctx context.Context, p *models.Property) error {
	if err := s.checkDB(); err != nil {
		return err
	}
	if err := model.CreateProperty(ctx, s.db, p); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Property created", "propertyID", p.ID, "name", p.Name)
	return nil
}

func (s *propertyServiceImpl) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	p, err := model.GetPropertyByID(ctx, s.db, id)
	if err != nil {
		return nil, notFound(err, "property", id)
	}
	return p, nil
}

func (s *propertyServiceImpl) UpdateProperty(ctx context.Context, id int64, u models.PropertyUpdate) (*models.Property, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	p, err := model.UpdateProperty(ctx, s.db, id, u)
	if err != nil {
		return nil, notFound(err, "property", id)
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *propertyServiceImpl) DeleteProperty(ctx context.Context, id int64) error {
	if err := s.checkDB(); err != nil {
		return err
	}
	deleted, err := model.DeleteProperty(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("delete property %d: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("%w: property %d", ErrNotFound, id)
	}
	s.invalidate(ctx, id)
	logger.FromContext(ctx).Info("Property deleted", "propertyID", id)
	return nil
}

func (s *propertyServiceImpl) GetAcquisitionCosts(ctx context.Context, propertyID int64) (*models.AcquisitionCostsRecord, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	r, err := model.GetAcquisitionCosts(ctx, s.db, propertyID)
	if err != nil {
		return nil, notFound(err, "acquisition costs for property", propertyID)
	}
	return r, nil
}

func (s *propertyServiceImpl) UpdateAcquisitionCosts(ctx context.Context, propertyID int64, u models.AcquisitionCostsUpdate) (*models.AcquisitionCostsRecord, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	r, err := model.UpdateAcquisitionCosts(ctx, s.db, propertyID, u)
	if err != nil {
		return nil, notFound(err, "acquisition costs for property", propertyID)
	}
	s.invalidate(ctx, propertyID)
	return r, nil
}

func (s *propertyServiceImpl) GetFinancing(ctx context.Context, propertyID int64) (*models.FinancingRecord, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	r, err := model.GetFinancing(ctx, s.db, propertyID)
	if err != nil {
		return nil, notFound(err, "financing for property", propertyID)
	}
	return r, nil
}

func (s *propertyServiceImpl) UpdateFinancing(ctx context.Context, propertyID int64, u models.FinancingUpdate) (*models.FinancingRecord, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	r, err := model.UpdateFinancing(ctx, s.db, propertyID, u)
	if err != nil {
		return nil, notFound(err, "financing for property", propertyID)
	}
	s.invalidate(ctx, propertyID)
	return r, nil
}

func (s *propertyServiceImpl) GetRentalIncome(ctx context.Context, propertyID int64) (*models.RentalIncomeRecord, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	r, err := model.GetRentalIncome(ctx, s.db, propertyID)
	if err != nil {
		return nil, notFound(err, "rental income for property", propertyID)
	}
	return r, nil
}

func (s *propertyServiceImpl) UpdateRentalIncome(ctx context.Context, propertyID int64, u models.RentalIncomeUpdate) (*models.RentalIncomeRecord, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	r, err := model.UpdateRentalIncome(ctx, s.db, propertyID, u)
	if err != nil {
		return nil, notFound(err, "rental income for property", propertyID)
	}
	s.invalidate(ctx, propertyID)
	return r, nil
}

func (s *propertyServiceImpl) ListExpenses(ctx context.Context, propertyID int64) ([]models.OperatingExpense, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	expenses, err := model.ListExpenses(ctx, s.db, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list expenses for property %d: %w", propertyID, err)
	}
	return expenses, nil
}

func (s *propertyServiceImpl) CreateExpense(ctx context.Context, e *models.OperatingExpense) error {
	if err := s.checkDB(); err != nil {
		return err
	}
	if _, err := model.GetPropertyByID(ctx, s.db, e.PropertyID); err != nil {
		return notFound(err, "property", e.PropertyID)
	}
	if err := model.CreateExpense(ctx, s.db, e); err != nil {
		return err
	}
	s.invalidate(ctx, e.PropertyID)
	return nil
}

func (s *propertyServiceImpl) UpdateExpense(ctx context.Context, propertyID, expenseID int64, u models.OperatingExpenseUpdate) (*models.OperatingExpense, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	e, err := model.UpdateExpense(ctx, s.db, propertyID, expenseID, u)
	if err != nil {
		return nil, notFound(err, "expense", expenseID)
	}
	s.invalidate(ctx, propertyID)
	return e, nil
}

func (s *propertyServiceImpl) DeleteExpense(ctx context.Context, propertyID, expenseID int64) error {
	if err := s.checkDB(); err != nil {
		return err
	}
	deleted, err := model.DeleteExpense(ctx, s.db, propertyID, expenseID)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", expenseID, err)
	}
	if !deleted {
		return fmt.Errorf("%w: expense %d", ErrNotFound, expenseID)
	}
	s.invalidate(ctx, propertyID)
	return nil
}

func (s *propertyServiceImpl) GetCalculationInput(ctx context.Context, propertyID int64) (*models.CalculationInput, error) {
	if err := s.checkDB(); err != nil {
		return nil, err
	}
	prop, err := model.GetPropertyByID(ctx, s.db, propertyID)
	if err != nil {
		return nil, notFound(err, "property", propertyID)
	}

	input := &models.CalculationInput{
		Financing: models.DefaultFinancing,
		Income:    models.DefaultIncome,
		UnitCount: prop.UnitCount,
	}

	acq, err := model.GetAcquisitionCosts(ctx, s.db, propertyID)
	switch {
	case err == nil:
		input.Acquisition = acq.AcquisitionCost
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("load acquisition costs for property %d: %w", propertyID, err)
	}

	fin, err := model.GetFinancing(ctx, s.db, propertyID)
	switch {
	case err == nil:
		input.Financing = fin.FinancingTerms
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("load financing for property %d: %w", propertyID, err)
	}

	inc, err := model.GetRentalIncome(ctx, s.db, propertyID)
	switch {
	case err == nil:
		input.Income = inc.IncomeAssumption
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("load rental income for property %d: %w", propertyID, err)
	}

	expenses, err := model.ListExpenses(ctx, s.db, propertyID)
	if err != nil {
		return nil, fmt.Errorf("load expenses for property %d: %w", propertyID, err)
	}
	input.Expenses = make([]models.ExpenseItem, 0, len(expenses))
	for _, e := range expenses {
		input.Expenses = append(input.Expenses, e.Item())
	}

	return input, nil
}
