package captable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table() []Stakeholder {
	return []Stakeholder{
		{ID: "1", Name: "Founder A", Shares: 4_000_000, Type: Common},
		{ID: "2", Name: "Founder B", Shares: 3_000_000, Type: Common},
		{ID: "3", Name: "Seed Fund", Shares: 2_000_000, Type: Preferred},
		{ID: "4", Name: "Option Pool", Shares: 1_000_000, Type: Options},
	}
}

func sumPct(hs []Holding) float64 {
	var s float64
	for _, h := range hs {
		s += h.Percentage
	}
	return s
}

func TestPercentagesOfExistingTable(t *testing.T) {
	hs := Percentages(table())
	require.Len(t, hs, 4)
	assert.Equal(t, 40.0, hs[0].Percentage)
	assert.Equal(t, 30.0, hs[1].Percentage)
	assert.Equal(t, 20.0, hs[2].Percentage)
	assert.Equal(t, 10.0, hs[3].Percentage)
}

func TestAddingInvestorDilutesEveryone(t *testing.T) {
	before := Percentages(table())
	after := Percentages(append(table(), Stakeholder{ID: "5", Name: "Investor X", Shares: 1_000_000, Type: Preferred}))

	require.Len(t, after, 5)
	assert.Equal(t, 9.09, after[4].Percentage)
	for i := range before {
		assert.Less(t, after[i].Percentage, before[i].Percentage, before[i].Name)
	}
	assert.InDelta(t, 100, sumPct(after), 0.05)
}

func TestPercentagesSumToHundredAfterRemovals(t *testing.T) {
	all := append(table(), Stakeholder{ID: "5", Shares: 333_333}, Stakeholder{ID: "6", Shares: 7})
	for len(all) > 0 {
		if TotalShares(all) > 0 {
			// each value is off by at most 0.005
			assert.InDelta(t, 100, sumPct(Percentages(all)), 0.005*float64(len(all)))
		}
		all = all[1:]
	}
}

func TestPercentagesWithNoShares(t *testing.T) {
	hs := Percentages([]Stakeholder{{ID: "1", Shares: 0}, {ID: "2", Shares: 0}})
	assert.Equal(t, 0.0, hs[0].Percentage)
	assert.Equal(t, 0.0, hs[1].Percentage)
	assert.Empty(t, Percentages(nil))
}

func TestFitsTotal(t *testing.T) {
	all := []Stakeholder{{ID: "a", Shares: math.MaxInt64 - 10}, {ID: "b", Shares: 5}}
	assert.True(t, FitsTotal(all, "", 5))
	assert.False(t, FitsTotal(all, "", 6))
	// b's current shares are not counted when b itself is rewritten
	assert.True(t, FitsTotal(all, "b", 10))
	assert.False(t, FitsTotal(all, "b", 11))
	assert.True(t, FitsTotal(nil, "", math.MaxInt64))
}

func TestSummarize(t *testing.T) {
	sum := Summarize(table(), 0)
	assert.Equal(t, int64(10_000_000), sum.TotalShares)
	assert.Equal(t, 4, sum.Stakeholders)
	assert.Equal(t, int64(7_000_000), sum.SharesByType[Common])
	assert.Equal(t, 1, sum.CountByType[Options])
	assert.Nil(t, sum.IssuedOfAuthorized)

	sum = Summarize(table(), 20_000_000)
	require.NotNil(t, sum.IssuedOfAuthorized)
	assert.Equal(t, 50.0, *sum.IssuedOfAuthorized)

	// rounded to a whole percent
	sum = Summarize(table(), 30_000_000)
	require.NotNil(t, sum.IssuedOfAuthorized)
	assert.Equal(t, 33.0, *sum.IssuedOfAuthorized)

	empty := Summarize(nil, 0)
	assert.Equal(t, int64(0), empty.SharesByType[Preferred])
}
