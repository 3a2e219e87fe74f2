package captable

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TotalShares sums the shares of every stakeholder.
func TotalShares(all []Stakeholder) int64 {
	var total int64
	for _, s := range all {
		total += s.Shares
	}
	return total
}

// FitsTotal reports whether the table total stays within int64 when the
// stakeholder skipID (empty for a new one) holds shares. Shares are >= 0.
func FitsTotal(all []Stakeholder, skipID string, shares int64) bool {
	total := shares
	for _, s := range all {
		if s.ID == skipID {
			continue
		}
		if s.Shares > math.MaxInt64-total {
			return false
		}
		total += s.Shares
	}
	return true
}

// Percentage returns shares/total*100 rounded to two decimals, or 0 for an
// empty table.
func Percentage(shares, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(shares) / float64(total) * 100)
}

// Percentages derives the holding of every stakeholder from one snapshot.
func Percentages(all []Stakeholder) []Holding {
	total := TotalShares(all)
	out := make([]Holding, len(all))
	for i, s := range all {
		out[i] = Holding{Stakeholder: s, Percentage: Percentage(s.Shares, total)}
	}
	return out
}

// Summarize computes the table aggregates. authorized <= 0 means no
// authorized share count is configured. The issued share of authorized is a
// whole percent.
func Summarize(all []Stakeholder, authorized int64) Summary {
	sum := Summary{
		TotalShares:  TotalShares(all),
		Stakeholders: len(all),
		SharesByType: make(map[ShareType]int64, len(ShareTypes)),
		CountByType:  make(map[ShareType]int, len(ShareTypes)),
	}
	for _, t := range ShareTypes {
		sum.SharesByType[t] = 0
		sum.CountByType[t] = 0
	}
	for _, s := range all {
		sum.SharesByType[s.Type] += s.Shares
		sum.CountByType[s.Type]++
	}
	if authorized > 0 {
		issued := math.Round(float64(sum.TotalShares) / float64(authorized) * 100)
		sum.AuthorizedShares = authorized
		sum.IssuedOfAuthorized = &issued
	}
	return sum
}
