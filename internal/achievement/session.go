package achievement

import "time"

const earlyBirdHour = 8

// Snapshot is the state of the current day right after a change.
type Snapshot struct {
	Date        string
	Hydration   float64
	Goal        float64
	DrinksToday int
	Streak      int
	// Local wall clock of the change.
	At time.Time
}

func (s Snapshot) percentage() float64 {
	if s.Goal <= 0 {
		return 0
	}
	return s.Hydration / s.Goal * 100
}

// Session detects achievements that depend on a transition between two
// consecutive observations of the same user, not on history alone.
type Session struct {
	prev Snapshot
}

// NewSession starts a session from the state before the first observed
// change.
func NewSession(initial Snapshot) *Session {
	return &Session{prev: initial}
}

// Observe compares cur against the previous observation and returns the
// triggered ids. Results are candidates: callers still filter them through
// the unlocked set.
func (s *Session) Observe(cur Snapshot) []string {
	prev := s.prev
	if prev.Date != cur.Date {
		// new day, today's hydration starts from zero
		prev.Hydration = 0
		prev.Goal = cur.Goal
	}
	prevPct := 0.0
	if cur.Goal > 0 {
		prevPct = prev.Hydration / cur.Goal * 100
	}

	var ids []string
	if cur.Hydration > 0 && prev.Hydration == 0 && cur.DrinksToday == 1 {
		ids = append(ids, FirstDrink)
	}
	if cur.Goal > 0 && cur.Hydration >= cur.Goal && prev.Hydration < cur.Goal {
		ids = append(ids, GoalReached)
	}
	if cur.percentage() >= 150 && prevPct < 150 {
		ids = append(ids, HydrationMaster)
	}
	if cur.At.Hour() < earlyBirdHour && cur.DrinksToday > 0 && prev.Hydration == 0 {
		ids = append(ids, EarlyBird)
	}
	if cur.Streak >= 3 && prev.Streak < 3 {
		ids = append(ids, StreakStarter)
	}
	if cur.Streak >= 7 && prev.Streak < 7 {
		ids = append(ids, StreakLegend)
	}
	s.prev = cur
	return ids
}
