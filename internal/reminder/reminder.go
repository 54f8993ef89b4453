// Package reminder computes reminder hours and motivational copy from a
// user's history. Nothing here schedules or delivers notifications.
package reminder

import (
	"slices"
	"sort"
	"time"

	"github.com/limbo/drip/pkg/entity"
)

const (
	lookback      = 14 * 24 * time.Hour
	topHours      = 3
	maxReminders  = 5
	graceMinutes  = 5
	DefaultPeriod = 2 * time.Hour
)

var (
	regularHours = []int{8, 10, 12, 14, 16, 18, 20}
	defaultSmart = []int{9, 12, 15, 18}
)

type band struct {
	from, to int
	filler   int
}

var bands = []band{
	{from: 7, to: 10, filler: 9},
	{from: 14, to: 16, filler: 15},
	{from: 17, to: 19, filler: 18},
}

// Regular returns a reminder every two hours from 8 to 20.
func Regular() []int {
	return slices.Clone(regularHours)
}

// ActiveHours counts drinks per local hour over the last two weeks.
func ActiveHours(history entity.History, now time.Time) map[int]int {
	since := now.Add(-lookback)
	activity := make(map[int]int)
	for date, rec := range history {
		day, err := time.ParseInLocation(entity.DateLayout, date, now.Location())
		if err != nil || day.Before(since) {
			continue
		}
		for _, e := range rec.Events {
			activity[e.CreatedAt.Hour()]++
		}
	}
	return activity
}

// Smart picks the three busiest hours and fills uncovered morning,
// afternoon and evening bands, at most five hours in ascending order.
func Smart(history entity.History, now time.Time) []int {
	activity := ActiveHours(history, now)
	if len(activity) == 0 {
		return slices.Clone(defaultSmart)
	}

	hours := make([]int, 0, len(activity))
	for h := range activity {
		hours = append(hours, h)
	}
	// busiest first, earlier hour on ties
	sort.Slice(hours, func(i, j int) bool {
		if activity[hours[i]] != activity[hours[j]] {
			return activity[hours[i]] > activity[hours[j]]
		}
		return hours[i] < hours[j]
	})
	if len(hours) > topHours {
		hours = hours[:topHours]
	}

	for _, b := range bands {
		covered := slices.ContainsFunc(hours, func(h int) bool {
			return h >= b.from && h <= b.to
		})
		if !covered {
			hours = append(hours, b.filler)
		}
	}
	sort.Ints(hours)
	if len(hours) > maxReminders {
		hours = hours[:maxReminders]
	}
	return hours
}

// Next returns the next reminder instant after now. An hour still counts
// during its first five minutes. With no hour left today it wraps to the
// earliest hour tomorrow. ok is false for an empty schedule.
func Next(now time.Time, hours []int) (next time.Time, ok bool) {
	if len(hours) == 0 {
		return time.Time{}, false
	}
	sorted := slices.Clone(hours)
	sort.Ints(sorted)

	y, m, d := now.Date()
	for _, h := range sorted {
		if h > now.Hour() || (h == now.Hour() && now.Minute() < graceMinutes) {
			return time.Date(y, m, d, h, 0, 0, 0, now.Location()), true
		}
	}
	return time.Date(y, m, d+1, sorted[0], 0, 0, 0, now.Location()), true
}

// Due reports whether a reminder is warranted given the last drink time.
// A zero last means nothing was ever logged.
func Due(last, now time.Time, every time.Duration) bool {
	if last.IsZero() {
		return true
	}
	return now.Sub(last) >= every
}

func Motivation(percentage float64) string {
	switch {
	case percentage >= 100:
		return "Amazing! You've hit your goal! Keep it up!"
	case percentage >= 75:
		return "Almost there! Just a bit more to reach your goal!"
	case percentage >= 50:
		return "Great progress! You're halfway there!"
	case percentage >= 25:
		return "Good start! Let's keep the momentum going!"
	default:
		return "Time to hydrate! Your body will thank you!"
	}
}
