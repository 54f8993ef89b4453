// Package stats computes goal streaks and aggregate figures over a user's
// whole drink history.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/limbo/drip/internal/hydration"
	"github.com/limbo/drip/pkg/entity"
)

// DayTotal is the effective hydration of a day record.
func DayTotal(rec *entity.DayRecord) float64 {
	if rec == nil {
		return 0
	}
	return hydration.EffectiveHydration(rec.Events)
}

// GoalMet reports whether a recorded day reached the goal stored with it.
func GoalMet(rec *entity.DayRecord) bool {
	return rec != nil && DayTotal(rec) >= rec.Goal
}

// SortedDates returns the history keys in ascending date order.
func SortedDates(history entity.History) []string {
	dates := make([]string, 0, len(history))
	for date := range history {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Streak counts today if its goal is met, then every directly preceding day
// that was logged and met its goal. A missing day ends the walk.
func Streak(history entity.History, today time.Time) int {
	streak := 0
	if GoalMet(history[today.Format(entity.DateLayout)]) {
		streak++
	}
	for day := today.AddDate(0, 0, -1); ; day = day.AddDate(0, 0, -1) {
		rec, ok := history[day.Format(entity.DateLayout)]
		if !ok || !GoalMet(rec) {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the longest run of goal-met records in date order.
// Records are compared by position, so unlogged calendar days in between do
// not break a run.
func LongestStreak(history entity.History) int {
	longest, current := 0, 0
	for _, date := range SortedDates(history) {
		if GoalMet(history[date]) {
			current++
			longest = max(longest, current)
		} else {
			current = 0
		}
	}
	return longest
}

func average(history entity.History, dates []string) float64 {
	if len(dates) == 0 {
		return 0
	}
	total := 0.0
	for _, date := range dates {
		total += DayTotal(history[date])
	}
	return total / float64(len(dates))
}

// Aggregate summarizes the whole history. The 7-day windows are the last
// seven records and the seven before them, in date order.
func Aggregate(history entity.History, today time.Time) entity.AggregateStats {
	dates := SortedDates(history)
	result := entity.AggregateStats{
		TotalDays:      len(dates),
		Trend:          entity.TrendStable,
		MostLoggedKind: MostLoggedKind(history),
		CurrentStreak:  Streak(history, today),
		LongestStreak:  LongestStreak(history),
	}

	total := 0.0
	for _, date := range dates {
		rec := history[date]
		result.TotalDrinks += len(rec.Events)
		total += DayTotal(rec)
		if GoalMet(rec) {
			result.DaysMetGoal++
		}
	}
	result.TotalHydration = math.Round(total)
	if len(dates) > 0 {
		result.AvgDaily = math.Round(total / float64(len(dates)))
		result.SuccessRate = math.Round(float64(result.DaysMetGoal) / float64(len(dates)) * 100)
	}

	last7 := dates[max(0, len(dates)-7):]
	prev7 := dates[max(0, len(dates)-14):max(0, len(dates)-7)]
	result.AvgLast7 = math.Round(average(history, last7))
	result.AvgPrevious7 = average(history, prev7)

	switch {
	case result.AvgLast7 > result.AvgPrevious7*1.1:
		result.Trend = entity.TrendUp
	case result.AvgLast7 < result.AvgPrevious7*0.9:
		result.Trend = entity.TrendDown
	}
	return result
}

// MostLoggedKind is the kind with the most events. Ties go to the
// lexicographically smallest kind; an empty history yields water.
func MostLoggedKind(history entity.History) entity.DrinkKind {
	counts := make(map[entity.DrinkKind]int)
	for _, rec := range history {
		for _, ev := range rec.Events {
			counts[ev.Kind]++
		}
	}
	best, bestCount := entity.DrinkWater, 0
	for kind, count := range counts {
		if count > bestCount || (count == bestCount && kind < best) {
			best, bestCount = kind, count
		}
	}
	return best
}

// Weekly returns the seven calendar days ending today. Days without a
// record report zero and fallbackGoal.
func Weekly(history entity.History, today time.Time, fallbackGoal float64) []entity.WeeklyPoint {
	points := make([]entity.WeeklyPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format(entity.DateLayout)
		point := entity.WeeklyPoint{
			Date:    key,
			Weekday: day.Format("Mon"),
			Goal:    fallbackGoal,
		}
		if rec, ok := history[key]; ok {
			point.Total = math.Round(DayTotal(rec))
			if rec.Goal > 0 {
				point.Goal = rec.Goal
			}
		}
		points = append(points, point)
	}
	return points
}

// Progress is the snapshot achievement predicates are evaluated against.
type Progress struct {
	// Raw volume, without hydration factors.
	TotalVolume   float64
	DaysMetGoal   int
	LoggedDays    int
	CurrentStreak int
	LongestStreak int
}

func ProgressOf(history entity.History, today time.Time) Progress {
	p := Progress{
		LoggedDays:    len(history),
		CurrentStreak: Streak(history, today),
		LongestStreak: LongestStreak(history),
	}
	for _, rec := range history {
		p.TotalVolume += hydration.RawVolume(rec.Events)
		if GoalMet(rec) {
			p.DaysMetGoal++
		}
	}
	return p
}
