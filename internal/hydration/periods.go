package hydration

import "github.com/limbo/drip/pkg/entity"

// Circadian periods with their target share of the daily goal. Night wraps
// midnight.
var periodTable = []entity.TimePeriod{
	{Name: "Morning", Start: 6, End: 12, TargetPercentage: 37.5},
	{Name: "Afternoon", Start: 12, End: 18, TargetPercentage: 37.5},
	{Name: "Evening", Start: 18, End: 22, TargetPercentage: 25},
	{Name: "Night", Start: 22, End: 6, TargetPercentage: 0},
}

func inPeriod(p entity.TimePeriod, hour int) bool {
	if p.Start < p.End {
		return hour >= p.Start && hour < p.End
	}
	if p.Start > p.End {
		return hour >= p.Start || hour < p.End
	}
	return false
}

// TimePeriods buckets effective volume by the hour of each event. Hours are
// read in the location carried by the event timestamp.
func TimePeriods(events []entity.DrinkEvent, goal float64) []entity.TimePeriod {
	periods := make([]entity.TimePeriod, len(periodTable))
	copy(periods, periodTable)
	for _, ev := range events {
		hour := ev.CreatedAt.Hour()
		effective := ev.Volume * Lookup(ev.Kind).HydrationFactor
		for i := range periods {
			if inPeriod(periods[i], hour) {
				periods[i].Actual += effective
			}
		}
	}
	return periods
}
