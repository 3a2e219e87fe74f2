package burnrate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledger() []Expense {
	return []Expense{
		{ID: "1", Category: "Salaries & Benefits", Amount: 8000, Recurring: true},
		{ID: "2", Category: "Software & Tools", Amount: 1500, Recurring: true},
		{ID: "3", Category: "Office & Operations", Amount: 3000, Recurring: true},
		{ID: "4", Category: "Legal & Professional", Amount: 5000, Recurring: false},
	}
}

func TestMonthlyBurnCountsRecurringOnly(t *testing.T) {
	assert.Equal(t, 12500.0, MonthlyBurn(ledger()))
	assert.Equal(t, 0.0, MonthlyBurn(nil))
}

func TestAddingRecurringMarketingExpense(t *testing.T) {
	all := append(ledger(), Expense{ID: "5", Category: "Marketing", Amount: 2000, Recurring: true})
	assert.Equal(t, 14500.0, MonthlyBurn(all))

	before := CalculateRunway(290000, MonthlyBurn(ledger()))
	after := CalculateRunway(290000, MonthlyBurn(all))
	require.NotNil(t, before.Months)
	require.NotNil(t, after.Months)
	assert.Equal(t, int64(23), *before.Months)
	assert.Equal(t, int64(20), *after.Months)
}

func TestRunwayWithZeroBurnIsInfinite(t *testing.T) {
	r := CalculateRunway(100000, 0)
	assert.True(t, r.Infinite)
	assert.Nil(t, r.Months)

	r = CalculateRunway(0, 0)
	assert.True(t, r.Infinite)
}

func TestRunwayBeyondInt64IsInfinite(t *testing.T) {
	for _, c := range []struct{ cash, burn float64 }{
		{1e17, 0.01},
		{1e300, 1e-300},
		{math.MaxFloat64, 0.5},
	} {
		r := CalculateRunway(c.cash, c.burn)
		assert.True(t, r.Infinite, "%g/%g", c.cash, c.burn)
		assert.Nil(t, r.Months, "%g/%g", c.cash, c.burn)
	}

	// just below the limit still reports months
	r := CalculateRunway(1e18, 1)
	require.NotNil(t, r.Months)
	assert.Equal(t, int64(1e18), *r.Months)
}

func TestRunwayFloors(t *testing.T) {
	r := CalculateRunway(999, 1000)
	require.NotNil(t, r.Months)
	assert.Equal(t, int64(0), *r.Months)
	assert.False(t, r.Infinite)
}

func TestCategoryTotals(t *testing.T) {
	all := append(ledger(),
		Expense{Category: "Coffee", Amount: 500, Recurring: true},
		Expense{Category: "Software & Tools", Amount: 500, Recurring: true},
	)
	totals := CategoryTotals(all)
	require.Len(t, totals, 4)
	assert.Equal(t, "Salaries & Benefits", totals[0].Category)
	assert.Equal(t, 59, totals[0].PercentOfBurn) // 8000/13500
	assert.Equal(t, "Software & Tools", totals[1].Category)
	assert.Equal(t, 2000.0, totals[1].Amount)
	assert.Equal(t, "Coffee", totals[3].Category)

	var pct int
	for _, c := range totals {
		pct += c.PercentOfBurn
	}
	assert.InDelta(t, 100, pct, 2)
	assert.Empty(t, CategoryTotals(nil))
}

func TestSummarize(t *testing.T) {
	sum := Summarize(ledger(), 125000)
	assert.Equal(t, 12500.0, sum.MonthlyBurn)
	assert.Equal(t, 5000.0, sum.OneTimeTotal)
	assert.Equal(t, 3, sum.RecurringCount)
	require.NotNil(t, sum.Runway.Months)
	assert.Equal(t, int64(10), *sum.Runway.Months)
	assert.False(t, math.IsInf(sum.MonthlyBurn, 0))
}
