package model

import (
	"context"
	"database/sql"
	"testing"

	"github.com/strscout/backend/src/database"
	"github.com/strscout/backend/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, database.DriverSQLite))
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }

func createProperty(t *testing.T, db *sql.DB, name string) *models.Property {
	t.Helper()
	p := &models.Property{Name: name, City: "Asheville", State: "NC"}
	require.NoError(t, CreateProperty(context.Background(), db, p))
	return p
}

func TestCreateProperty_Defaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := createProperty(t, db, "Mountain Cabin")
	require.NotZero(t, p.ID)

	got, err := GetPropertyByID(ctx, db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mountain Cabin", got.Name)
	assert.Equal(t, "Asheville", got.City)
	assert.Equal(t, "", got.Address)
	assert.Equal(t, models.DefaultPropertyType, got.PropertyType)
	assert.Equal(t, models.DefaultStatus, got.Status)
	assert.Equal(t, 1, got.UnitCount)
	assert.False(t, got.CreatedAt.IsZero())

	acq, err := GetAcquisitionCosts(ctx, db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AcquisitionCost{}, acq.AcquisitionCost)

	fin, err := GetFinancing(ctx, db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFinancing, fin.FinancingTerms)

	inc, err := GetRentalIncome(ctx, db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultIncome, inc.IncomeAssumption)
}

func TestGetPropertyByID_Missing(t *testing.T) {
	db := newTestDB(t)
	_, err := GetPropertyByID(context.Background(), db, 999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListProperties_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	empty, err := ListProperties(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	first := createProperty(t, db, "First")
	second := createProperty(t, db, "Second")

	list, err := ListProperties(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestUpdateProperty_Partial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := createProperty(t, db, "Lake House")

	got, err := UpdateProperty(ctx, db, p.ID, models.PropertyUpdate{UnitCount: ptr(3), Notes: ptr("duplex plus ADU")})
	require.NoError(t, err)
	assert.Equal(t, "Lake House", got.Name)
	assert.Equal(t, "Asheville", got.City)
	assert.Equal(t, 3, got.UnitCount)
	assert.Equal(t, "duplex plus ADU", got.Notes)

	_, err = UpdateProperty(ctx, db, 12345, models.PropertyUpdate{Name: ptr("x")})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteProperty_RemovesChildren(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := createProperty(t, db, "Beach Condo")
	require.NoError(t, CreateExpense(ctx, db, &models.OperatingExpense{PropertyID: p.ID, Category: "cleaning", Label: "Turnover clean", Amount: 75, Frequency: "per_turnover"}))

	deleted, err := DeleteProperty(ctx, db, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = GetFinancing(ctx, db, p.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	expenses, err := ListExpenses(ctx, db, p.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	deleted, err = DeleteProperty(ctx, db, p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUpdateFinancials_Partial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := createProperty(t, db, "Farmhouse")

	acq, err := UpdateAcquisitionCosts(ctx, db, p.ID, models.AcquisitionCostsUpdate{PurchasePrice: ptr(300000.0), ClosingCosts: ptr(9000.0)})
	require.NoError(t, err)
	assert.Equal(t, 300000.0, acq.PurchasePrice)
	assert.Equal(t, 9000.0, acq.ClosingCosts)
	assert.Equal(t, 0.0, acq.Renovation)

	fin, err := UpdateFinancing(ctx, db, p.ID, models.FinancingUpdate{IsCashPurchase: ptr(true)})
	require.NoError(t, err)
	assert.True(t, fin.IsCashPurchase)
	assert.Equal(t, 7.0, fin.InterestRate)
	assert.Equal(t, 30, fin.LoanTermYears)

	inc, err := UpdateRentalIncome(ctx, db, p.ID, models.RentalIncomeUpdate{NightlyRate: ptr(200.0), AvgStayNights: ptr(2.5)})
	require.NoError(t, err)
	assert.Equal(t, 200.0, inc.NightlyRate)
	assert.Equal(t, 65.0, inc.OccupancyPct)
	assert.Equal(t, 2.5, inc.AvgStayNights)

	_, err = UpdateFinancing(ctx, db, 4242, models.FinancingUpdate{InterestRate: ptr(6.0)})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestExpenses_CRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := createProperty(t, db, "Townhome")

	mgmt := &models.OperatingExpense{PropertyID: p.ID, Category: "management", Label: "Host fee", Amount: 20, IsPercentage: true}
	clean := &models.OperatingExpense{PropertyID: p.ID, Category: "cleaning", Label: "Turnover clean", Amount: 75, Frequency: "per_turnover"}
	require.NoError(t, CreateExpense(ctx, db, mgmt))
	require.NoError(t, CreateExpense(ctx, db, clean))
	assert.Equal(t, "monthly", mgmt.Frequency)

	list, err := ListExpenses(ctx, db, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "cleaning", list[0].Category)
	assert.True(t, list[1].IsPercentage)

	updated, err := UpdateExpense(ctx, db, p.ID, clean.ID, models.OperatingExpenseUpdate{Amount: ptr(90.0)})
	require.NoError(t, err)
	assert.Equal(t, 90.0, updated.Amount)
	assert.Equal(t, "per_turnover", updated.Frequency)

	_, err = UpdateExpense(ctx, db, p.ID+1, clean.ID, models.OperatingExpenseUpdate{Amount: ptr(1.0)})
	assert.ErrorIs(t, err, sql.ErrNoRows, "expense belongs to another property")

	deleted, err := DeleteExpense(ctx, db, p.ID, mgmt.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = DeleteExpense(ctx, db, p.ID, mgmt.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
