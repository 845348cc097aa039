package model

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/strscout/backend/src/database"
	"github.com/strscout/backend/src/models"
)

const expenseColumns = `id, property_id, category, label, amount, frequency, is_percentage, created_at, updated_at`

func scanExpense(row rowScanner) (*models.OperatingExpense, error) {
	var e models.OperatingExpense
	err := row.Scan(&e.ID, &e.PropertyID, &e.Category, &e.Label, &e.Amount, &e.Frequency,
		&e.IsPercentage, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListExpenses returns a property's expenses ordered by category, then label.
func ListExpenses(ctx context.Context, db *sql.DB, propertyID int64) ([]models.OperatingExpense, error) {
	rows, err := db.QueryContext(ctx, database.Rebind(`SELECT `+expenseColumns+`
	FROM operating_expenses WHERE property_id = ? ORDER BY category, label, id`), propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.OperatingExpense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func GetExpense(ctx context.Context, db *sql.DB, propertyID, expenseID int64) (*models.OperatingExpense, error) {
	row := db.QueryRowContext(ctx, database.Rebind(`SELECT `+expenseColumns+`
	FROM operating_expenses WHERE id = ? AND property_id = ?`), expenseID, propertyID)
	return scanExpense(row)
}

func CreateExpense(ctx context.Context, db *sql.DB, e *models.OperatingExpense) error {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Frequency == "" {
		e.Frequency = string(models.BasisMonthly)
	}

	err := db.QueryRowContext(ctx, database.Rebind(`
	INSERT INTO operating_expenses (property_id, category, label, amount, frequency, is_percentage, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id`),
		e.PropertyID, e.Category, e.Label, e.Amount, e.Frequency, e.IsPercentage, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func UpdateExpense(ctx context.Context, db *sql.DB, propertyID, expenseID int64, u models.OperatingExpenseUpdate) (*models.OperatingExpense, error) {
	res, err := db.ExecContext(ctx, database.Rebind(`
	UPDATE operating_expenses
	SET category = COALESCE(?, category),
	    label = COALESCE(?, label),
	    amount = COALESCE(?, amount),
	    frequency = COALESCE(?, frequency),
	    is_percentage = COALESCE(?, is_percentage),
	    updated_at = ?
	WHERE id = ? AND property_id = ?`),
		u.Category, u.Label, u.Amount, u.Frequency, u.IsPercentage, time.Now().UTC(), expenseID, propertyID,
	)
	if err := requireAffected(res, err); err != nil {
		return nil, err
	}
	return GetExpense(ctx, db, propertyID, expenseID)
}

func DeleteExpense(ctx context.Context, db *sql.DB, propertyID, expenseID int64) (bool, error) {
	res, err := db.ExecContext(ctx, database.Rebind(`DELETE FROM operating_expenses WHERE id = ? AND property_id = ?`), expenseID, propertyID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
