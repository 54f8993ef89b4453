package entity

import (
	"time"

	"github.com/google/uuid"
)

// Layout of DayRecord.Date keys. String comparison of keys orders days.
const DateLayout = "2006-01-02"

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

type DrinkKind string

const (
	DrinkWater  DrinkKind = "water"
	DrinkTea    DrinkKind = "tea"
	DrinkCoffee DrinkKind = "coffee"
	DrinkSoda   DrinkKind = "soda"
	DrinkJuice  DrinkKind = "juice"
	DrinkEnergy DrinkKind = "energy"
)

type DrinkEvent struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Volume    float64   `json:"volume"`
	Kind      DrinkKind `json:"kind"`
}

type DayRecord struct {
	Date   string       `json:"date"`
	Events []DrinkEvent `json:"events"`
	Goal   float64      `json:"goal"`
}

// History maps a date key to the day's record.
type History map[string]*DayRecord

type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "low"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
)

type Settings struct {
	DailyGoal        float64       `json:"daily_goal"`
	BedtimeHour      int           `json:"bedtime_hour"`
	RemindersEnabled bool          `json:"reminders_enabled"`
	SmartSchedule    bool          `json:"smart_schedule"`
	Name             string        `json:"name,omitempty"`
	ActivityLevel    ActivityLevel `json:"activity_level"`
	HasOnboarded     bool          `json:"has_onboarded"`
	Timezone         string        `json:"timezone"`
}

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Score maps a grade onto the 4..0 scale used for weighting.
func (g Grade) Score() float64 {
	switch g {
	case GradeA:
		return 4
	case GradeB:
		return 3
	case GradeC:
		return 2
	case GradeD:
		return 1
	}
	return 0
}

type TimePeriod struct {
	Name             string  `json:"name"`
	Start            int     `json:"start"`
	End              int     `json:"end"`
	TargetPercentage float64 `json:"target_percentage"`
	Actual           float64 `json:"actual"`
}

type WarningKind string

const (
	WarningAbsorption WarningKind = "absorption"
	WarningBedtime    WarningKind = "bedtime"
	WarningCaffeine   WarningKind = "caffeine"
	WarningGap        WarningKind = "gap"
	WarningOverload   WarningKind = "overload"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type HydrationWarning struct {
	Kind      WarningKind `json:"kind"`
	Severity  Severity    `json:"severity"`
	Message   string      `json:"message"`
	Timestamp *time.Time  `json:"timestamp,omitempty"`
}

type HydrationQuality struct {
	Overall      Grade              `json:"overall"`
	Distribution Grade              `json:"distribution"`
	Spacing      Grade              `json:"spacing"`
	Timing       Grade              `json:"timing"`
	Warnings     []HydrationWarning `json:"warnings"`
	Insights     []string           `json:"insights"`
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type AggregateStats struct {
	TotalDrinks    int       `json:"total_drinks"`
	DaysMetGoal    int       `json:"days_met_goal"`
	TotalDays      int       `json:"total_days"`
	TotalHydration float64   `json:"total_hydration"`
	AvgDaily       float64   `json:"avg_daily"`
	AvgLast7       float64   `json:"avg_last_7"`
	AvgPrevious7   float64   `json:"avg_previous_7"`
	Trend          Trend     `json:"trend"`
	MostLoggedKind DrinkKind `json:"most_logged_kind"`
	SuccessRate    float64   `json:"success_rate"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
}

type WeeklyPoint struct {
	Date    string  `json:"date"`
	Weekday string  `json:"weekday"`
	Total   float64 `json:"total"`
	Goal    float64 `json:"goal"`
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`
}
