package model

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/strscout/backend/src/database"
	"github.com/strscout/backend/src/models"
)

const propertyColumns = `id, name, COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip, ''),
	property_type, unit_count, status, COALESCE(notes, ''), created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*models.Property, error) {
	var p models.Property
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.City, &p.State, &p.Zip,
		&p.PropertyType, &p.UnitCount, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProperty inserts the property together with its acquisition,
// financing and income rows at their column defaults.
func CreateProperty(ctx context.Context, db *sql.DB, p *models.Property) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.PropertyType == "" {
		p.PropertyType = models.DefaultPropertyType
	}
	if p.UnitCount == 0 {
		p.UnitCount = 1
	}
	if p.Status == "" {
		p.Status = models.DefaultStatus
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create property: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, database.Rebind(`
	INSERT INTO properties (name, address, city, state, zip, property_type, unit_count, status, notes, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id`),
		p.Name, nullIfEmpty(p.Address), nullIfEmpty(p.City), nullIfEmpty(p.State), nullIfEmpty(p.Zip),
		p.PropertyType, p.UnitCount, p.Status, nullIfEmpty(p.Notes), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}

	for _, table := range []string{"acquisition_costs", "financing", "rental_income"} {
		q := database.Rebind(fmt.Sprintf("INSERT INTO %s (property_id, created_at, updated_at) VALUES (?, ?, ?)", table))
		if _, err := tx.ExecContext(ctx, q, p.ID, now, now); err != nil {
			return fmt.Errorf("insert default %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create property: %w", err)
	}
	return nil
}

// GetPropertyByID returns sql.ErrNoRows when the property does not exist.
func GetPropertyByID(ctx context.Context, db *sql.DB, id int64) (*models.Property, error) {
	row := db.QueryRowContext(ctx, database.Rebind(`SELECT `+propertyColumns+` FROM properties WHERE id = ?`), id)
	return scanProperty(row)
}

// ListProperties returns all properties, newest first.
func ListProperties(ctx context.Context, db *sql.DB) ([]models.Property, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+propertyColumns+` FROM properties ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

// UpdateProperty applies the non-nil fields of u and returns the stored row.
func UpdateProperty(ctx context.Context, db *sql.DB, id int64, u models.PropertyUpdate) (*models.Property, error) {
	res, err := db.ExecContext(ctx, database.Rebind(`
	UPDATE properties
	SET name = COALESCE(?, name),
	    address = COALESCE(?, address),
	    city = COALESCE(?, city),
	    state = COALESCE(?, state),
	    zip = COALESCE(?, zip),
	    property_type = COALESCE(?, property_type),
	    unit_count = COALESCE(?, unit_count),
	    status = COALESCE(?, status),
	    notes = COALESCE(?, notes),
	    updated_at = ?
	WHERE id = ?`),
		u.Name, u.Address, u.City, u.State, u.Zip, u.PropertyType, u.UnitCount, u.Status, u.Notes,
		time.Now().UTC(), id,
	)
	if err := requireAffected(res, err); err != nil {
		return nil, err
	}
	return GetPropertyByID(ctx, db, id)
}

// DeleteProperty removes the property and everything attached to it. It
// reports whether a row was deleted.
func DeleteProperty(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	// Children first, so the result does not depend on foreign key enforcement.
	for _, table := range []string{"operating_expenses", "rental_income", "financing", "acquisition_costs"} {
		q := database.Rebind(fmt.Sprintf("DELETE FROM %s WHERE property_id = ?", table))
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return false, fmt.Errorf("delete %s: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, database.Rebind("DELETE FROM properties WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("delete property: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return n > 0, nil
}

// requireAffected turns an update that matched nothing into sql.ErrNoRows.
func requireAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
