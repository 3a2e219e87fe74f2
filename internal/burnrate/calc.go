package burnrate

import "math"

// MonthlyBurn sums the amounts of recurring expenses.
func MonthlyBurn(all []Expense) float64 {
	var burn float64
	for _, e := range all {
		if e.Recurring {
			burn += e.Amount
		}
	}
	return burn
}

// CalculateRunway returns floor(cash/burn) months. A burn of zero (or less)
// never divides and reports an infinite runway instead, as does a quotient
// too large for an int64.
func CalculateRunway(cash, burn float64) Runway {
	if burn <= 0 {
		return Runway{Infinite: true}
	}
	q := math.Floor(cash / burn)
	if math.IsInf(q, 1) || q >= math.MaxInt64 {
		return Runway{Infinite: true}
	}
	months := int64(q)
	if months < 0 {
		months = 0
	}
	return Runway{Months: &months}
}

// CategoryTotals groups recurring spend by category. Known categories come
// first in their display order, free-text ones follow in order of appearance.
func CategoryTotals(all []Expense) []CategoryTotal {
	sums := make(map[string]float64)
	var extra []string
	known := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		known[c] = true
	}
	for _, e := range all {
		if !e.Recurring {
			continue
		}
		if _, seen := sums[e.Category]; !seen && !known[e.Category] {
			extra = append(extra, e.Category)
		}
		sums[e.Category] += e.Amount
	}

	burn := MonthlyBurn(all)
	out := []CategoryTotal{}
	for _, c := range append(append([]string{}, Categories...), extra...) {
		amount, ok := sums[c]
		if !ok {
			continue
		}
		pct := 0
		if burn > 0 {
			pct = int(math.Round(amount / burn * 100))
		}
		out = append(out, CategoryTotal{Category: c, Amount: amount, PercentOfBurn: pct})
	}
	return out
}

// Summarize computes every burn figure for a snapshot and a cash balance.
func Summarize(all []Expense, cash float64) Summary {
	sum := Summary{
		MonthlyBurn: MonthlyBurn(all),
		Expenses:    len(all),
		Cash:        cash,
		Categories:  CategoryTotals(all),
	}
	for _, e := range all {
		if e.Recurring {
			sum.RecurringCount++
		} else {
			sum.OneTimeTotal += e.Amount
		}
	}
	sum.Runway = CalculateRunway(cash, sum.MonthlyBurn)
	return sum
}
