// Package achievement decides which milestones unlock. Evaluation is pure:
// callers own the unlocked set and persist it.
package achievement

import (
	"github.com/limbo/drip/internal/stats"
	"github.com/limbo/drip/pkg/entity"
)

const (
	FirstDrink       = "first_drink"
	GoalGetter       = "goal_getter"
	HydrationHero    = "hydration_hero"
	ConsistencyKing  = "consistency_king"
	WeekWarrior      = "week_warrior"
	DedicationMaster = "dedication_master"
	StreakStarter    = "streak_3"
	StreakLegend     = "streak_7"
	Volume10k        = "volume_10k"
	Volume50k        = "volume_50k"
	GoalReached      = "goal_reached"
	HydrationMaster  = "hydration_master"
	EarlyBird        = "early_bird"
)

// Definition pairs an achievement with its history predicate. Session-only
// achievements have a nil Predicate and unlock through Session.Observe.
type Definition struct {
	entity.Achievement
	Predicate func(p stats.Progress) bool
}

var definitions = []Definition{
	{
		Achievement: entity.Achievement{ID: FirstDrink, Title: "First Sip", Description: "Log your first drink. Your hydration journey begins!", Rarity: entity.RarityCommon},
		Predicate:   func(p stats.Progress) bool { return p.TotalVolume > 0 },
	},
	{
		Achievement: entity.Achievement{ID: GoalGetter, Title: "Goal Getter", Description: "Reach your daily goal 3 times", Rarity: entity.RarityCommon},
		Predicate:   func(p stats.Progress) bool { return p.DaysMetGoal >= 3 },
	},
	{
		Achievement: entity.Achievement{ID: WeekWarrior, Title: "Week Warrior", Description: "Log drinks for 7 days total", Rarity: entity.RarityRare},
		Predicate:   func(p stats.Progress) bool { return p.LoggedDays >= 7 },
	},
	{
		Achievement: entity.Achievement{ID: HydrationHero, Title: "Hydration Hero", Description: "Reach your goal 10 times", Rarity: entity.RarityRare},
		Predicate:   func(p stats.Progress) bool { return p.DaysMetGoal >= 10 },
	},
	{
		Achievement: entity.Achievement{ID: StreakStarter, Title: "Streak Starter", Description: "Maintain a 3-day streak", Rarity: entity.RarityRare},
		Predicate:   func(p stats.Progress) bool { return p.LongestStreak >= 3 },
	},
	{
		Achievement: entity.Achievement{ID: Volume10k, Title: "Ten Liter Club", Description: "Drink over 10,000ml total", Rarity: entity.RarityRare},
		Predicate:   func(p stats.Progress) bool { return p.TotalVolume >= 10000 },
	},
	{
		Achievement: entity.Achievement{ID: ConsistencyKing, Title: "Consistency King", Description: "Reach your goal 30 times", Rarity: entity.RarityEpic},
		Predicate:   func(p stats.Progress) bool { return p.DaysMetGoal >= 30 },
	},
	{
		Achievement: entity.Achievement{ID: StreakLegend, Title: "Streak Legend", Description: "Maintain a 7-day streak", Rarity: entity.RarityEpic},
		Predicate:   func(p stats.Progress) bool { return p.LongestStreak >= 7 },
	},
	{
		Achievement: entity.Achievement{ID: Volume50k, Title: "Hydration Champion", Description: "Drink over 50,000ml total", Rarity: entity.RarityLegendary},
		Predicate:   func(p stats.Progress) bool { return p.TotalVolume >= 50000 },
	},
	{
		Achievement: entity.Achievement{ID: DedicationMaster, Title: "Dedication Master", Description: "Log for 30 days total", Rarity: entity.RarityEpic},
		Predicate:   func(p stats.Progress) bool { return p.LoggedDays >= 30 },
	},
	{
		Achievement: entity.Achievement{ID: GoalReached, Title: "Goal Crusher", Description: "You reached your daily hydration goal!", Rarity: entity.RarityCommon},
	},
	{
		Achievement: entity.Achievement{ID: EarlyBird, Title: "Early Bird", Description: "Logged a drink before 8 AM. Great start!", Rarity: entity.RarityRare},
	},
	{
		Achievement: entity.Achievement{ID: HydrationMaster, Title: "Hydration Master", Description: "Exceeded your goal by 50%!", Rarity: entity.RarityLegendary},
	},
}

var byID = func() map[string]entity.Achievement {
	m := make(map[string]entity.Achievement, len(definitions))
	for _, d := range definitions {
		m[d.ID] = d.Achievement
	}
	return m
}()

func Definitions() []Definition {
	result := make([]Definition, len(definitions))
	copy(result, definitions)
	return result
}

func Lookup(id string) (entity.Achievement, bool) {
	a, ok := byID[id]
	return a, ok
}
