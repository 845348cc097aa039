package processors

import (
	"testing"

	"github.com/strscout/backend/src/models"
	"github.com/stretchr/testify/assert"
)

func TestMonthlyPrincipalAndInterest(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     int
		want      float64
		delta     float64
	}{
		{"thirty year at 7%", 240000, 7, 30, 1596.73, 0.01},
		{"fifteen year at 6.5%", 200000, 6.5, 15, 1742.21, 0.01},
		{"zero rate is straight line", 120000, 0, 10, 1000, 0},
		{"negative rate is straight line", 120000, -1, 10, 1000, 0},
		{"zero principal", 0, 7, 30, 0, 0},
		{"negative principal", -5000, 7, 30, 0, 0},
		{"zero term", 240000, 7, 0, 0, 0},
		{"negative term", 240000, 7, -3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPrincipalAndInterest(tt.principal, tt.rate, tt.years)
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestRemainingBalance(t *testing.T) {
	t.Run("nothing paid leaves the full principal", func(t *testing.T) {
		assert.InDelta(t, 240000, RemainingBalance(240000, 7, 360, 0), 1e-6)
	})

	t.Run("fully paid leaves nothing", func(t *testing.T) {
		assert.InDelta(t, 0, RemainingBalance(240000, 7, 360, 360), 1e-6)
	})

	t.Run("balance declines with payments", func(t *testing.T) {
		prev := RemainingBalance(240000, 7, 360, 0)
		for k := 12; k <= 360; k += 12 {
			cur := RemainingBalance(240000, 7, 360, k)
			assert.Less(t, cur, prev, "month %d", k)
			prev = cur
		}
	})

	t.Run("ten years into a thirty year loan", func(t *testing.T) {
		// Early payments are mostly interest.
		bal := RemainingBalance(240000, 7, 360, 120)
		assert.InDelta(t, 205949.72, bal, 0.01)
	})

	t.Run("zero rate pays down in a straight line", func(t *testing.T) {
		assert.InDelta(t, 60000, RemainingBalance(120000, 0, 120, 60), 1e-9)
	})

	t.Run("straight line never goes negative", func(t *testing.T) {
		assert.Equal(t, 0.0, RemainingBalance(120000, 0, 120, 500))
		assert.Equal(t, 0.0, RemainingBalance(-100, 7, 120, 10))
	})

	t.Run("amortizing formula continues past the term", func(t *testing.T) {
		assert.InDelta(t, -128335.87, RemainingBalance(100000, 5, 60, 120), 0.01)
		assert.InDelta(t, -141762.53, RemainingBalance(100000, 7, 60, 120), 0.01)
	})

	t.Run("no term", func(t *testing.T) {
		assert.Equal(t, 0.0, RemainingBalance(100000, 5, 0, 12))
	})
}

func TestMortgage(t *testing.T) {
	got := Mortgage(models.MortgageRequest{Principal: 240000, InterestRate: 7, LoanTermYears: 30})
	assert.InDelta(t, 1596.73, got.MonthlyPayment, 0.01)
	assert.InDelta(t, 574821.36, got.TotalPaid, 0.01)
	assert.InDelta(t, 334821.36, got.TotalInterest, 0.01)

	zero := Mortgage(models.MortgageRequest{Principal: 120000, InterestRate: 0, LoanTermYears: 10})
	assert.InDelta(t, 120000, zero.TotalPaid, 1e-6)
	assert.InDelta(t, 0, zero.TotalInterest, 1e-6)

	assert.Equal(t, models.MortgageResult{}, Mortgage(models.MortgageRequest{Principal: 0, InterestRate: 7, LoanTermYears: 30}))
}
