package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/drip/internal/achievement"
	"github.com/limbo/drip/internal/hydration"
	"github.com/limbo/drip/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_service.go -package=mocks

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LogDrinkRequest struct {
	Volume float64          `json:"volume" validate:"gt=0,lte=5000"`
	Kind   entity.DrinkKind `json:"kind" validate:"required,drink_kind"`
}

type UpdateSettingsRequest struct {
	DailyGoal        float64              `json:"daily_goal" validate:"gt=0,lte=10000"`
	BedtimeHour      int                  `json:"bedtime_hour" validate:"min=0,max=23"`
	RemindersEnabled bool                 `json:"reminders_enabled"`
	SmartSchedule    bool                 `json:"smart_schedule"`
	Name             string               `json:"name" validate:"max=100"`
	ActivityLevel    entity.ActivityLevel `json:"activity_level" validate:"omitempty,oneof=low moderate high"`
	HasOnboarded     bool                 `json:"has_onboarded"`
	Timezone         string               `json:"timezone" validate:"omitempty,timezone"`
}

type LogDrinkResult struct {
	Drink    entity.DrinkEvent    `json:"drink"`
	Unlocked []entity.Achievement `json:"unlocked"`
}

type TodaySummary struct {
	Date       string                  `json:"date"`
	Goal       float64                 `json:"goal"`
	Hydration  float64                 `json:"hydration"`
	Caffeine   float64                 `json:"caffeine"`
	Percentage float64                 `json:"percentage"`
	Drinks     []entity.DrinkEvent     `json:"drinks"`
	Periods    []entity.TimePeriod     `json:"periods"`
	Quality    entity.HydrationQuality `json:"quality"`
	Guidance   hydration.Guidance      `json:"guidance"`
	Motivation string                  `json:"motivation"`
}

type ReminderSchedule struct {
	Enabled bool       `json:"enabled"`
	Smart   bool       `json:"smart"`
	Hours   []int      `json:"hours"`
	Next    *time.Time `json:"next,omitempty"`
	// Due is set when nothing was logged for the reminder period.
	Due bool `json:"due"`
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type SettingsServiceI interface {
	// Returns stored settings or defaults if user hasn't saved any
	Get(ctx context.Context, uid uuid.UUID) (*entity.Settings, error)
	// Validates and saves settings
	Update(ctx context.Context, uid uuid.UUID, req *UpdateSettingsRequest) (*entity.Settings, error)
}

type HydrationServiceI interface {
	// Logs drink now and unlocks achievements it causes
	LogDrink(ctx context.Context, uid uuid.UUID, req *LogDrinkRequest) (*LogDrinkResult, error)
	RemoveDrink(ctx context.Context, uid uuid.UUID, drinkID uuid.UUID) error
	// Changes daily goal for today and following days
	UpdateGoal(ctx context.Context, uid uuid.UUID, goal float64) error
	Today(ctx context.Context, uid uuid.UUID) (*TodaySummary, error)
	Stats(ctx context.Context, uid uuid.UUID) (*entity.AggregateStats, error)
	Weekly(ctx context.Context, uid uuid.UUID) ([]entity.WeeklyPoint, error)
	Achievements(ctx context.Context, uid uuid.UUID) ([]achievement.Status, error)
	// Pops oldest unlocked achievement not shown yet. Returns nil if there is none
	NextAchievement(ctx context.Context, uid uuid.UUID) (*entity.Achievement, error)
	Reminders(ctx context.Context, uid uuid.UUID) (*ReminderSchedule, error)
	ClearHistory(ctx context.Context, uid uuid.UUID) error
}
