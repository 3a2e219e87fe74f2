package roadmap

import (
	"math"
	"time"
)

// StatusForProgress maps a progress value to the status it implies.
func StatusForProgress(progress int) Status {
	switch {
	case progress >= 100:
		return Completed
	case progress <= 0:
		return NotStarted
	default:
		return InProgress
	}
}

// CompletionRate is round(completed/total*100), 0 for an empty roadmap.
func CompletionRate(all []Milestone) int {
	if len(all) == 0 {
		return 0
	}
	done := 0
	for _, m := range all {
		if m.Status == Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(all)) * 100))
}

// NextQuarterStart returns midnight of the first day of the quarter after
// the one containing now, in now's location.
func NextQuarterStart(now time.Time) time.Time {
	q := (int(now.Month()) - 1) / 3
	return time.Date(now.Year(), time.Month(q*3+4), 1, 0, 0, 0, 0, now.Location())
}

// DaysRemainingInQuarter counts the days left until the quarter ends,
// rounding a partial day up.
func DaysRemainingInQuarter(now time.Time) int {
	left := NextQuarterStart(now).Sub(now)
	return int(math.Ceil(left.Hours() / 24))
}

// Summarize computes the roadmap aggregates at now. Milestones past their due
// date that are not completed count as overdue.
func Summarize(all []Milestone, now time.Time) Summary {
	sum := Summary{
		Total:          len(all),
		ByStatus:       make(map[Status]int, len(Statuses)),
		CompletionRate: CompletionRate(all),
		QuarterEnd:     NextQuarterStart(now).AddDate(0, 0, -1).Format("2006-01-02"),
		DaysRemaining:  DaysRemainingInQuarter(now),
	}
	for _, s := range Statuses {
		sum.ByStatus[s] = 0
	}
	today := now.Format("2006-01-02")
	for _, m := range all {
		sum.ByStatus[m.Status]++
		// YYYY-MM-DD compares chronologically as a string
		if m.Status != Completed && m.DueDate != "" && m.DueDate < today {
			sum.Overdue++
		}
	}
	return sum
}
