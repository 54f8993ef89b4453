package hydration

import (
	"fmt"
	"math"

	"github.com/limbo/drip/pkg/entity"
)

// Quality grades a day of drinking against goal and bedtimeHour.
func Quality(events []entity.DrinkEvent, goal float64, bedtimeHour int) entity.HydrationQuality {
	warnings := Warnings(events, bedtimeHour)
	periods := TimePeriods(events, goal)
	distribution := GradeDistribution(periods, goal)
	spacing := GradeSpacing(events)
	timing := GradeTiming(events, bedtimeHour)
	return entity.HydrationQuality{
		Overall:      OverallGrade(distribution, spacing, timing),
		Distribution: distribution,
		Spacing:      spacing,
		Timing:       timing,
		Warnings:     warnings,
		Insights:     Insights(periods, CaffeineTotal(events), distribution, spacing, timing),
	}
}

// Insights derives summary lines in a fixed order: best period,
// distribution, spacing, timing, caffeine.
func Insights(periods []entity.TimePeriod, caffeine float64, distribution, spacing, timing entity.Grade) []string {
	insights := make([]string, 0, 5)
	if len(periods) > 0 {
		best := periods[0]
		for _, p := range periods[1:] {
			if p.Actual > best.Actual {
				best = p
			}
		}
		if best.Actual > 0 {
			insights = append(insights, fmt.Sprintf("Best hydration: %s (%dml)", best.Name, int(math.Round(best.Actual))))
		}
	}

	switch distribution {
	case entity.GradeA:
		insights = append(insights, "Excellent distribution throughout the day!")
	case entity.GradeD, entity.GradeF:
		insights = append(insights, "Try spreading drinks more evenly across morning, afternoon, and evening")
	}

	switch spacing {
	case entity.GradeA:
		insights = append(insights, "Perfect spacing between drinks!")
	case entity.GradeD, entity.GradeF:
		insights = append(insights, "Aim to drink every 1-2 hours for optimal absorption")
	}

	switch timing {
	case entity.GradeA:
		insights = append(insights, "Great bedtime hydration habits!")
	case entity.GradeD, entity.GradeF:
		insights = append(insights, "Taper off drinks in the hours before bedtime")
	}

	if caffeine > 0 && caffeine < WarningCaffeineDaily {
		insights = append(insights, fmt.Sprintf("Moderate caffeine: %dmg (well balanced)", int(math.Round(caffeine))))
	}
	return insights
}
