package hydration

import (
	"strconv"

	"github.com/limbo/drip/pkg/entity"
)

// EffectiveHydration sums volume scaled by each kind's hydration factor.
func EffectiveHydration(events []entity.DrinkEvent) float64 {
	total := 0.0
	for _, ev := range events {
		total += ev.Volume * Lookup(ev.Kind).HydrationFactor
	}
	return total
}

// CaffeineTotal returns the caffeine of all events in mg.
func CaffeineTotal(events []entity.DrinkEvent) float64 {
	total := 0.0
	for _, ev := range events {
		total += ev.Volume * Lookup(ev.Kind).CaffeinePerMl
	}
	return total
}

// RawVolume sums volumes without factors.
func RawVolume(events []entity.DrinkEvent) float64 {
	total := 0.0
	for _, ev := range events {
		total += ev.Volume
	}
	return total
}

func formatVolume(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
