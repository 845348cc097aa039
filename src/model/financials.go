package model

import (
	"context"
	"database/sql"
	"time"

	"github.com/strscout/backend/src/database"
	"github.com/strscout/backend/src/models"
)

// The Get functions return sql.ErrNoRows when the property has no row; the
// Update functions do the same when there is nothing to update.

func GetAcquisitionCosts(ctx context.Context, db *sql.DB, propertyID int64) (*models.AcquisitionCostsRecord, error) {
	var r models.AcquisitionCostsRecord
	err := db.QueryRowContext(ctx, database.Rebind(`
	SELECT property_id, purchase_price, closing_costs, renovation, updated_at
	FROM acquisition_costs WHERE property_id = ?`), propertyID,
	).Scan(&r.PropertyID, &r.PurchasePrice, &r.ClosingCosts, &r.Renovation, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func UpdateAcquisitionCosts(ctx context.Context, db *sql.DB, propertyID int64, u models.AcquisitionCostsUpdate) (*models.AcquisitionCostsRecord, error) {
	res, err := db.ExecContext(ctx, database.Rebind(`
	UPDATE acquisition_costs
	SET purchase_price = COALESCE(?, purchase_price),
	    closing_costs = COALESCE(?, closing_costs),
	    renovation = COALESCE(?, renovation),
	    updated_at = ?
	WHERE property_id = ?`),
		u.PurchasePrice, u.ClosingCosts, u.Renovation, time.Now().UTC(), propertyID,
	)
	if err := requireAffected(res, err); err != nil {
		return nil, err
	}
	return GetAcquisitionCosts(ctx, db, propertyID)
}

func GetFinancing(ctx context.Context, db *sql.DB, propertyID int64) (*models.FinancingRecord, error) {
	var r models.FinancingRecord
	err := db.QueryRowContext(ctx, database.Rebind(`
	SELECT property_id, down_payment_pct, interest_rate, loan_term_years, is_cash_purchase, updated_at
	FROM financing WHERE property_id = ?`), propertyID,
	).Scan(&r.PropertyID, &r.DownPaymentPct, &r.InterestRate, &r.LoanTermYears, &r.IsCashPurchase, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func UpdateFinancing(ctx context.Context, db *sql.DB, propertyID int64, u models.FinancingUpdate) (*models.FinancingRecord, error) {
	res, err := db.ExecContext(ctx, database.Rebind(`
	UPDATE financing
	SET down_payment_pct = COALESCE(?, down_payment_pct),
	    interest_rate = COALESCE(?, interest_rate),
	    loan_term_years = COALESCE(?, loan_term_years),
	    is_cash_purchase = COALESCE(?, is_cash_purchase),
	    updated_at = ?
	WHERE property_id = ?`),
		u.DownPaymentPct, u.InterestRate, u.LoanTermYears, u.IsCashPurchase, time.Now().UTC(), propertyID,
	)
	if err := requireAffected(res, err); err != nil {
		return nil, err
	}
	return GetFinancing(ctx, db, propertyID)
}

func GetRentalIncome(ctx context.Context, db *sql.DB, propertyID int64) (*models.RentalIncomeRecord, error) {
	var r models.RentalIncomeRecord
	err := db.QueryRowContext(ctx, database.Rebind(`
	SELECT property_id, nightly_rate, occupancy_pct, avg_stay_nights, updated_at
	FROM rental_income WHERE property_id = ?`), propertyID,
	).Scan(&r.PropertyID, &r.NightlyRate, &r.OccupancyPct, &r.AvgStayNights, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func UpdateRentalIncome(ctx context.Context, db *sql.DB, propertyID int64, u models.RentalIncomeUpdate) (*models.RentalIncomeRecord, error) {
	res, err := db.ExecContext(ctx, database.Rebind(`
	UPDATE rental_income
	SET nightly_rate = COALESCE(?, nightly_rate),
	    occupancy_pct = COALESCE(?, occupancy_pct),
	    avg_stay_nights = COALESCE(?, avg_stay_nights),
	    updated_at = ?
	WHERE property_id = ?`),
		u.NightlyRate, u.OccupancyPct, u.AvgStayNights, time.Now().UTC(), propertyID,
	)
	if err := requireAffected(res, err); err != nil {
		return nil, err
	}
	return GetRentalIncome(ctx, db, propertyID)
}
