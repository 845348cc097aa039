package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/strscout/backend/src/database"
	"github.com/strscout/backend/src/models"
	"github.com/strscout/backend/src/processors"
	"github.com/strscout/backend/src/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, withDB bool) http.Handler {
	t.Helper()
	var health *HealthHandler
	props := services.NewPropertyService(nil, nil)
	cache := services.NewMemoryResultCache(time.Minute, time.Minute)

	if withDB {
		db, err := database.Open(database.DriverSQLite, ":memory:")
		require.NoError(t, err)
		require.NoError(t, database.RunMigrations(db, database.DriverSQLite))
		t.Cleanup(func() { db.Close() })
		props = services.NewPropertyService(db, cache)
		health = NewHealthHandler(db.Ping, database.DriverSQLite)
	} else {
		health = NewHealthHandler(nil, "")
	}

	processor := processors.NewMetricsProcessor()
	calc := services.NewCalculationService(props, processor, cache, 4)

	r := chi.NewRouter()
	r.Use(ContextualLoggerMiddleware)
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, health, NewPropertyHandler(props), NewCalculationHandler(calc, processor))
	})
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func createTestProperty(t *testing.T, h http.Handler, name string) models.Property {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/api/properties", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBody[models.Property](t, rr)
}

// workedScenario stores the reference property and returns its ID.
func workedScenario(t *testing.T, h http.Handler) int64 {
	t.Helper()
	p := createTestProperty(t, h, "Mountain Cabin")
	base := fmt.Sprintf("/api/properties/%d", p.ID)

	rr := doJSON(t, h, http.MethodPut, base+"/acquisition", map[string]any{
		"purchase_price": 300000, "closing_costs": 9000, "renovation": 15000,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = doJSON(t, h, http.MethodPut, base+"/income", map[string]any{"nightly_rate": 200})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	for _, e := range []map[string]any{
		{"category": "management", "label": "Manager", "amount": 500, "frequency": "monthly"},
		{"category": "insurance", "label": "Policy", "amount": 3600, "frequency": "annual"},
		{"category": "tax", "label": "Property tax", "amount": 4200, "frequency": "annual"},
		{"category": "cleaning", "label": "Turnover", "amount": 75, "frequency": "per_turnover"},
	} {
		rr = doJSON(t, h, http.MethodPost, base+"/expenses", e)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}
	return p.ID
}

func TestHealth(t *testing.T) {
	t.Run("with database", func(t *testing.T) {
		rr := doJSON(t, newTestRouter(t, true), http.MethodGet, "/api/health", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody[map[string]any](t, rr)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, true, body["database"])
		assert.Equal(t, "sqlite", body["db_type"])
	})

	t.Run("without database", func(t *testing.T) {
		rr := doJSON(t, newTestRouter(t, false), http.MethodGet, "/api/health", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody[map[string]any](t, rr)
		assert.Equal(t, false, body["database"])
	})
}

func TestDatabaseUnavailable(t *testing.T) {
	h := newTestRouter(t, false)
	for _, path := range []string{"/api/properties", "/api/properties/1/calculations", "/api/dashboard"} {
		rr := doJSON(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code, path)
		assert.Equal(t, "Database not available", decodeBody[map[string]string](t, rr)["error"])
	}

	// Stateless endpoints keep working.
	rr := doJSON(t, h, http.MethodPost, "/api/mortgage", map[string]any{"principal": 240000, "interest_rate": 7, "loan_term_years": 30})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPropertyCRUD(t *testing.T) {
	h := newTestRouter(t, true)

	rr := doJSON(t, h, http.MethodPost, "/api/properties", map[string]any{"city": "Asheville"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, http.MethodPost, "/api/properties", map[string]any{"name": "<b>Lake</b> House", "city": "Boone"})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeBody[models.Property](t, rr)
	assert.Equal(t, "Lake House", created.Name)
	assert.Equal(t, models.DefaultStatus, created.Status)
	path := fmt.Sprintf("/api/properties/%d", created.ID)

	rr = doJSON(t, h, http.MethodPut, path, map[string]any{"status": "under_contract"})
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decodeBody[models.Property](t, rr)
	assert.Equal(t, "under_contract", updated.Status)
	assert.Equal(t, "Boone", updated.City)

	rr = doJSON(t, h, http.MethodGet, "/api/properties", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]models.Property](t, rr), 1)

	rr = doJSON(t, h, http.MethodGet, path+"/financing", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	fin := decodeBody[models.FinancingRecord](t, rr)
	assert.Equal(t, models.DefaultFinancing, fin.FinancingTerms)

	rr = doJSON(t, h, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"deleted":true}`, rr.Body.String())

	rr = doJSON(t, h, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Property not found", decodeBody[map[string]string](t, rr)["error"])

	rr = doJSON(t, h, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/api/properties/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExpenseValidation(t *testing.T) {
	h := newTestRouter(t, true)
	p := createTestProperty(t, h, "Cabin")
	path := fmt.Sprintf("/api/properties/%d/expenses", p.ID)

	rr := doJSON(t, h, http.MethodPost, path, map[string]any{"category": "cleaning", "label": "Clean", "amount": 75, "frequency": "weekly"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, http.MethodPost, path, map[string]any{"amount": 75})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, http.MethodPost, "/api/properties/999/expenses", map[string]any{"category": "c", "label": "l", "amount": 1})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, h, http.MethodPost, path, map[string]any{"category": "cleaning", "label": "Clean", "amount": 75})
	require.Equal(t, http.StatusCreated, rr.Code)
	e := decodeBody[models.OperatingExpense](t, rr)
	assert.Equal(t, "monthly", e.Frequency)

	rr = doJSON(t, h, http.MethodPut, fmt.Sprintf("%s/%d", path, e.ID), map[string]any{"frequency": "per_stay"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "per_stay", decodeBody[models.OperatingExpense](t, rr).Frequency)

	rr = doJSON(t, h, http.MethodDelete, fmt.Sprintf("%s/%d", path, e.ID+100), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCalculations(t *testing.T) {
	h := newTestRouter(t, true)
	id := workedScenario(t, h)
	path := fmt.Sprintf("/api/properties/%d/calculations", id)

	rr := doJSON(t, h, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	result := decodeBody[models.CalculationResult](t, rr)
	assert.InDelta(t, 3900, result.MonthlyRevenue, 1e-6)
	assert.InDelta(t, 19650, result.AnnualExpenses, 1e-6)
	assert.InDelta(t, 84000, result.TotalCashInvested, 1e-6)
	assert.InDelta(t, 1596.73, result.MonthlyPI, 0.01)
	require.Len(t, result.Projections, 10)

	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	h.ServeHTTP(cached, req)
	assert.Equal(t, http.StatusNotModified, cached.Code)

	// A write invalidates the cached result and changes the ETag.
	rr = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/properties/%d/financing", id), map[string]any{"is_cash_purchase": true})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, h, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEqual(t, etag, rr.Header().Get("ETag"))
	allCash := decodeBody[map[string]any](t, rr)
	assert.Nil(t, allCash["dscr"])
	assert.Equal(t, 0.0, allCash["loan_amount"])

	rr = doJSON(t, h, http.MethodGet, "/api/properties/999/calculations", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAlos(t *testing.T) {
	h := newTestRouter(t, true)
	id := workedScenario(t, h)

	rr := doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/properties/%d/alos", id), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	analysis := decodeBody[models.AlosAnalysis](t, rr)
	require.Len(t, analysis.Points, 13)
	assert.Equal(t, 2, analysis.Points[0].Alos)
	assert.Equal(t, 14, analysis.Points[12].Alos)
	assert.True(t, analysis.Summary.HasPerStayCosts)

	rr = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/properties/%d/alos?min=3&max=5", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[models.AlosAnalysis](t, rr).Points, 3)

	rr = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/properties/%d/alos?min=x", id), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/properties/%d/alos?min=1&max=30", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[models.AlosAnalysis](t, rr).Points, 30)
}

func TestAlos_RangeOutOfBounds(t *testing.T) {
	h := newTestRouter(t, true)
	id := workedScenario(t, h)

	for _, query := range []string{
		"max=31",
		"max=5000000",
		"max=9223372036854775807",
		"min=0",
		"min=-3&max=4",
		"min=6&max=3",
		"min=31&max=40",
	} {
		t.Run(query, func(t *testing.T) {
			rr := doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/properties/%d/alos?%s", id, query), nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), "validation failed")
		})
	}
}

func TestCompareAndDashboard(t *testing.T) {
	h := newTestRouter(t, true)
	id := workedScenario(t, h)
	other := createTestProperty(t, h, "Empty Lot")

	rr := doJSON(t, h, http.MethodPost, "/api/compare", map[string]any{"property_ids": []int64{}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, http.MethodPost, "/api/compare", map[string]any{"property_ids": []int64{999, id}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	entries := decodeBody[[]models.ComparisonEntry](t, rr)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(999), entries[0].PropertyID)
	assert.Equal(t, "Not found", entries[0].Error)
	assert.Equal(t, id, entries[1].PropertyID)
	require.NotNil(t, entries[1].Result)
	assert.InDelta(t, 46800, entries[1].Result.AnnualRevenue, 1e-6)

	rr = doJSON(t, h, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	dash := decodeBody[models.Dashboard](t, rr)
	require.Len(t, dash.Properties, 2)
	assert.Equal(t, 2, dash.Portfolio.PropertyCount)
	assert.ElementsMatch(t, []int64{id, other.ID}, []int64{dash.Properties[0].ID, dash.Properties[1].ID})
	assert.InDelta(t, 46800, dash.Portfolio.TotalRevenue, 1e-6)
}

func TestStatelessCalculate(t *testing.T) {
	h := newTestRouter(t, false)
	body := map[string]any{
		"acquisition": map[string]any{"purchase_price": 300000, "closing_costs": 9000, "renovation": 15000},
		"financing":   map[string]any{"down_payment_pct": 20, "interest_rate": 7, "loan_term_years": 30},
		"income":      map[string]any{"nightly_rate": 200, "occupancy_pct": 65, "avg_stay_nights": 3},
		"expenses": []map[string]any{
			{"amount": 500, "frequency": "monthly"},
			{"amount": 3600, "frequency": "annual"},
			{"amount": 4200, "frequency": "annual"},
			{"amount": 75, "frequency": "per_stay"},
		},
		"unit_count": 1,
	}

	rr := doJSON(t, h, http.MethodPost, "/api/calculate", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	got := decodeBody[map[string]any](t, rr)
	assert.InDelta(t, 19650, got["annual_expenses"], 1e-6)
	assert.InDelta(t, 240000, got["loan_amount"], 1e-6)
	assert.NotContains(t, got, "alos")

	body["alos_range"] = map[string]any{"min": 2, "max": 4}
	rr = doJSON(t, h, http.MethodPost, "/api/calculate", body)
	require.Equal(t, http.StatusOK, rr.Code)
	var withAlos struct {
		Alos models.AlosAnalysis `json:"alos"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &withAlos))
	assert.Len(t, withAlos.Alos.Points, 3)

	body["alos_range"] = map[string]any{"min": 2, "max": 100}
	rr = doJSON(t, h, http.MethodPost, "/api/calculate", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	delete(body, "alos_range")

	// Unknown frequencies are billed monthly.
	body["expenses"] = []map[string]any{{"amount": 100, "frequency": "hourly"}}
	rr = doJSON(t, h, http.MethodPost, "/api/calculate", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.InDelta(t, 1200, decodeBody[map[string]any](t, rr)["annual_expenses"], 1e-6)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewBufferString("{not json"))
	bad := httptest.NewRecorder()
	h.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestMortgage(t *testing.T) {
	h := newTestRouter(t, false)
	rr := doJSON(t, h, http.MethodPost, "/api/mortgage", map[string]any{"principal": 240000, "interest_rate": 7, "loan_term_years": 30})
	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody[models.MortgageResult](t, rr)
	assert.InDelta(t, 1596.73, got.MonthlyPayment, 0.01)
	assert.InDelta(t, got.TotalPaid-240000, got.TotalInterest, 1e-6)
}
