package hydration

import (
	"fmt"
	"math"
	"time"

	"github.com/limbo/drip/pkg/entity"
)

const (
	HourlyAbsorptionLimit = 800.0
	RapidIntakeThreshold  = 500.0
	RapidIntakeWindow     = 15 * time.Minute
	MaxCaffeineDaily      = 400.0
	WarningCaffeineDaily  = 300.0
	LongGap               = 3 * time.Hour
)

// Warnings runs every check and concatenates the results in a fixed order:
// rapid intake, hourly overload, caffeine, bedtime, long gaps.
func Warnings(events []entity.DrinkEvent, bedtimeHour int) []entity.HydrationWarning {
	warnings := make([]entity.HydrationWarning, 0)
	warnings = append(warnings, CheckRapidIntake(events)...)
	warnings = append(warnings, CheckHourlyLimits(events)...)
	warnings = append(warnings, CheckCaffeine(events)...)
	warnings = append(warnings, CheckBedtime(events, bedtimeHour)...)
	warnings = append(warnings, CheckGaps(events)...)
	return warnings
}

// CheckRapidIntake opens a 15 minute window at each event. A window holding
// 500ml or more raw volume emits one warning, and the events it counted are
// skipped as window starts.
func CheckRapidIntake(events []entity.DrinkEvent) []entity.HydrationWarning {
	var warnings []entity.HydrationWarning
	sorted := sortedByTime(events)
	for i := 0; i < len(sorted); i++ {
		start := sorted[i].CreatedAt
		end := start.Add(RapidIntakeWindow)
		count, total := 0, 0.0
		for _, ev := range sorted {
			if !ev.CreatedAt.Before(start) && ev.CreatedAt.Before(end) {
				count++
				total += ev.Volume
			}
		}
		if total >= RapidIntakeThreshold {
			ts := start
			warnings = append(warnings, entity.HydrationWarning{
				Kind:     entity.WarningAbsorption,
				Severity: entity.SeverityWarning,
				Message: fmt.Sprintf(
					"Rapid intake detected (%sml in 15 min). Your body can only absorb ~800ml/hour effectively. Consider spacing drinks.",
					formatVolume(total),
				),
				Timestamp: &ts,
			})
			i += count - 1
		}
	}
	return warnings
}

// CheckHourlyLimits flags every hour of the day whose raw volume exceeds the
// absorption limit. Hours are reported in order of first appearance.
func CheckHourlyLimits(events []entity.DrinkEvent) []entity.HydrationWarning {
	type bucket struct {
		total float64
		first time.Time
	}
	buckets := make(map[int]*bucket)
	order := make([]int, 0)
	for _, ev := range events {
		hour := ev.CreatedAt.Hour()
		b, ok := buckets[hour]
		if !ok {
			b = &bucket{first: ev.CreatedAt}
			buckets[hour] = b
			order = append(order, hour)
		}
		b.total += ev.Volume
	}
	var warnings []entity.HydrationWarning
	for _, hour := range order {
		b := buckets[hour]
		if b.total <= HourlyAbsorptionLimit {
			continue
		}
		ts := b.first
		warnings = append(warnings, entity.HydrationWarning{
			Kind:     entity.WarningOverload,
			Severity: entity.SeverityInfo,
			Message: fmt.Sprintf(
				"%sml consumed during %d:00-%d:00. Body absorbs ~800ml/hour max. Excess may not be fully utilized.",
				formatVolume(b.total), hour, hour+1,
			),
			Timestamp: &ts,
		})
	}
	return warnings
}

func CheckCaffeine(events []entity.DrinkEvent) []entity.HydrationWarning {
	caffeine := CaffeineTotal(events)
	switch {
	case caffeine >= MaxCaffeineDaily:
		return []entity.HydrationWarning{{
			Kind:     entity.WarningCaffeine,
			Severity: entity.SeverityCritical,
			Message: fmt.Sprintf(
				"High caffeine intake (%dmg). FDA recommends max 400mg/day. Consider switching to water.",
				int(math.Round(caffeine)),
			),
		}}
	case caffeine >= WarningCaffeineDaily:
		return []entity.HydrationWarning{{
			Kind:     entity.WarningCaffeine,
			Severity: entity.SeverityWarning,
			Message: fmt.Sprintf(
				"Moderate caffeine intake (%dmg). Consider balancing with water for better hydration.",
				int(math.Round(caffeine)),
			),
		}}
	}
	return nil
}

// CheckBedtime emits a single warning with the summed volume of all late
// drinks.
func CheckBedtime(events []entity.DrinkEvent, bedtimeHour int) []entity.HydrationWarning {
	lateCount, lateVolume := 0, 0.0
	for _, ev := range events {
		if isLate(ev.CreatedAt.Hour(), bedtimeHour) {
			lateCount++
			lateVolume += ev.Volume
		}
	}
	if lateCount == 0 {
		return nil
	}
	return []entity.HydrationWarning{{
		Kind:     entity.WarningBedtime,
		Severity: entity.SeverityWarning,
		Message: fmt.Sprintf(
			"%sml consumed after %d:00. Late hydration may disrupt sleep due to bathroom trips.",
			formatVolume(lateVolume), bedtimeHour,
		),
	}}
}

// CheckGaps reports each gap longer than three hours, stamped with the
// drink that ended it.
func CheckGaps(events []entity.DrinkEvent) []entity.HydrationWarning {
	if len(events) < 2 {
		return nil
	}
	sorted := sortedByTime(events)
	var warnings []entity.HydrationWarning
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].CreatedAt.Sub(sorted[i-1].CreatedAt)
		if gap <= LongGap {
			continue
		}
		ts := sorted[i].CreatedAt
		warnings = append(warnings, entity.HydrationWarning{
			Kind:     entity.WarningGap,
			Severity: entity.SeverityInfo,
			Message: fmt.Sprintf(
				"%d-hour gap detected. Regular hydration throughout the day is more effective than playing catch-up.",
				int(math.Round(float64(gap.Milliseconds())/msPerHour)),
			),
			Timestamp: &ts,
		})
	}
	return warnings
}
