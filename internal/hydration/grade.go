package hydration

import (
	"math"
	"sort"

	"github.com/limbo/drip/pkg/entity"
)

const (
	msPerHour = float64(60 * 60 * 1000)
	// Hours before this are treated as night for timing checks.
	earlyMorningHour = 6
)

func isLate(hour, bedtimeHour int) bool {
	return hour >= bedtimeHour || hour < earlyMorningHour
}

func sortedByTime(events []entity.DrinkEvent) []entity.DrinkEvent {
	sorted := make([]entity.DrinkEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// gapsMs returns gaps between consecutive sorted events in milliseconds.
func gapsMs(sorted []entity.DrinkEvent) []float64 {
	if len(sorted) < 2 {
		return nil
	}
	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, float64(sorted[i].CreatedAt.Sub(sorted[i-1].CreatedAt).Milliseconds()))
	}
	return gaps
}

// GradeDistribution compares Morning, Afternoon and Evening against their
// target share of goal. Night is ignored.
func GradeDistribution(periods []entity.TimePeriod, goal float64) entity.Grade {
	totalDeviation := 0.0
	for i := 0; i < 3 && i < len(periods); i++ {
		if goal <= 0 {
			continue
		}
		target := goal * periods[i].TargetPercentage / 100
		totalDeviation += math.Abs(periods[i].Actual-target) / goal
	}
	avg := totalDeviation / 3
	switch {
	case avg < 0.1:
		return entity.GradeA
	case avg < 0.2:
		return entity.GradeB
	case avg < 0.3:
		return entity.GradeC
	case avg < 0.4:
		return entity.GradeD
	}
	return entity.GradeF
}

// GradeSpacing grades the gaps between drinks. Fewer than two events is C.
func GradeSpacing(events []entity.DrinkEvent) entity.Grade {
	if len(events) < 2 {
		return entity.GradeC
	}
	gaps := gapsMs(sortedByTime(events))
	sum, maxGap := 0.0, gaps[0]
	for _, g := range gaps {
		sum += g
		if g > maxGap {
			maxGap = g
		}
	}
	avgHours := sum / float64(len(gaps)) / msPerHour
	maxHours := maxGap / msPerHour
	switch {
	case avgHours >= 1 && avgHours <= 2 && maxHours < 3:
		return entity.GradeA
	case avgHours <= 3 && maxHours < 4:
		return entity.GradeB
	case maxHours < 5:
		return entity.GradeC
	case maxHours < 7:
		return entity.GradeD
	}
	return entity.GradeF
}

// LateFraction is the share of raw volume drunk at or after bedtimeHour or
// before 06:00.
func LateFraction(events []entity.DrinkEvent, bedtimeHour int) float64 {
	late, total := 0.0, 0.0
	for _, ev := range events {
		total += ev.Volume
		if isLate(ev.CreatedAt.Hour(), bedtimeHour) {
			late += ev.Volume
		}
	}
	if total == 0 {
		return 0
	}
	return late / total
}

func GradeTiming(events []entity.DrinkEvent, bedtimeHour int) entity.Grade {
	fraction := LateFraction(events, bedtimeHour)
	switch {
	case fraction == 0:
		return entity.GradeA
	case fraction < 0.1:
		return entity.GradeB
	case fraction < 0.2:
		return entity.GradeC
	case fraction < 0.3:
		return entity.GradeD
	}
	return entity.GradeF
}

// OverallGrade weights distribution 40%, spacing and timing 30% each.
func OverallGrade(distribution, spacing, timing entity.Grade) entity.Grade {
	score := distribution.Score()*0.4 + spacing.Score()*0.3 + timing.Score()*0.3
	switch {
	case score >= 3.5:
		return entity.GradeA
	case score >= 2.5:
		return entity.GradeB
	case score >= 1.5:
		return entity.GradeC
	case score >= 0.5:
		return entity.GradeD
	}
	return entity.GradeF
}
