package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/limbo/drip/internal/achievement"
	errorvalues "github.com/limbo/drip/internal/error_values"
	"github.com/limbo/drip/internal/metrics"
	repomocks "github.com/limbo/drip/internal/repository/mocks"
	"github.com/limbo/drip/internal/service"
	servicemocks "github.com/limbo/drip/internal/service/mocks"
	"github.com/limbo/drip/pkg/entity"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now       = time.Date(2025, time.June, 10, 7, 30, 0, 0, time.UTC)
	todayKey  = "2025-06-10"
	uid       = uuid.New()
	userPrefs = &entity.Settings{DailyGoal: 2000, BedtimeHour: 22, ActivityLevel: entity.ActivityModerate, Timezone: "UTC"}
)

type hydrationDeps struct {
	drinks       *repomocks.MockDrinksRepositoryI
	achievements *repomocks.MockAchievementsRepositoryI
	settings     *servicemocks.MockSettingsServiceI
	service      *service.HydrationService
}

func newHydrationDeps(t *testing.T) *hydrationDeps {
	ctrl := gomock.NewController(t)
	d := &hydrationDeps{
		drinks:       repomocks.NewMockDrinksRepositoryI(ctrl),
		achievements: repomocks.NewMockAchievementsRepositoryI(ctrl),
		settings:     servicemocks.NewMockSettingsServiceI(ctrl),
	}
	d.service = service.NewHydrationService(d.drinks, d.achievements, d.settings,
		service.WithClock(func() time.Time { return now }))
	return d
}

func waterAt(t time.Time, volume float64) entity.DrinkEvent {
	return entity.DrinkEvent{ID: uuid.New(), CreatedAt: t, Volume: volume, Kind: entity.DrinkWater}
}

func ids(achievements []entity.Achievement) []string {
	result := make([]string, 0, len(achievements))
	for _, a := range achievements {
		result = append(result, a.ID)
	}
	return result
}

func TestLogFirstDrink(t *testing.T) {
	d := newHydrationDeps(t)
	ctx := context.Background()
	d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
	d.drinks.EXPECT().GetHistory(gomock.Any(), uid).Return(entity.History{}, nil)
	d.achievements.EXPECT().ListUnlocked(gomock.Any(), uid).Return([]string{}, nil)
	d.drinks.EXPECT().AddDrink(gomock.Any(), uid, todayKey, 2000.0, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ string, _ float64, e *entity.DrinkEvent) error {
			assert.Equal(t, 250.0, e.Volume)
			assert.Equal(t, entity.DrinkWater, e.Kind)
			assert.True(t, now.Equal(e.CreatedAt))
			return nil
		})
	gomock.InOrder(
		d.achievements.EXPECT().Unlock(gomock.Any(), uid, achievement.FirstDrink).Return(true, nil),
		d.achievements.EXPECT().Unlock(gomock.Any(), uid, achievement.EarlyBird).Return(true, nil),
	)

	result, err := d.service.LogDrink(ctx, uid, &service.LogDrinkRequest{Volume: 250, Kind: entity.DrinkWater})
	require.NoError(t, err)
	assert.Equal(t, []string{achievement.FirstDrink, achievement.EarlyBird}, ids(result.Unlocked))

	// presentation queue drains oldest first
	next, err := d.service.NextAchievement(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, achievement.FirstDrink, next.ID)
	next, _ = d.service.NextAchievement(ctx, uid)
	require.NotNil(t, next)
	assert.Equal(t, achievement.EarlyBird, next.ID)
	next, err = d.service.NextAchievement(ctx, uid)
	assert.NoError(t, err)
	assert.Nil(t, next)
}

func TestLogDrinkAlreadyUnlocked(t *testing.T) {
	d := newHydrationDeps(t)
	d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
	d.drinks.EXPECT().GetHistory(gomock.Any(), uid).Return(entity.History{}, nil)
	d.achievements.EXPECT().ListUnlocked(gomock.Any(), uid).Return([]string{achievement.FirstDrink, achievement.EarlyBird}, nil)
	d.drinks.EXPECT().AddDrink(gomock.Any(), uid, todayKey, 2000.0, gomock.Any()).Return(nil)

	result, err := d.service.LogDrink(context.Background(), uid, &service.LogDrinkRequest{Volume: 250, Kind: entity.DrinkWater})
	require.NoError(t, err)
	assert.Empty(t, result.Unlocked)
}

func TestLogDrinkCrossesGoal(t *testing.T) {
	d := newHydrationDeps(t)
	history := entity.History{
		todayKey: {Date: todayKey, Goal: 2000, Events: []entity.DrinkEvent{
			waterAt(now.Add(-time.Hour), 1000),
			waterAt(now.Add(-30*time.Minute), 900),
		}},
	}
	d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
	d.drinks.EXPECT().GetHistory(gomock.Any(), uid).Return(history, nil)
	d.achievements.EXPECT().ListUnlocked(gomock.Any(), uid).Return([]string{achievement.FirstDrink}, nil)
	d.drinks.EXPECT().AddDrink(gomock.Any(), uid, todayKey, 2000.0, gomock.Any()).Return(nil)
	d.achievements.EXPECT().Unlock(gomock.Any(), uid, achievement.GoalReached).Return(true, nil)

	result, err := d.service.LogDrink(context.Background(), uid, &service.LogDrinkRequest{Volume: 250, Kind: entity.DrinkWater})
	require.NoError(t, err)
	assert.Equal(t, []string{achievement.GoalReached}, ids(result.Unlocked))
}

func TestLogDrinkUnlockedElsewhere(t *testing.T) {
	d := newHydrationDeps(t)
	d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
	d.drinks.EXPECT().GetHistory(gomock.Any(), uid).Return(entity.History{}, nil)
	d.achievements.EXPECT().ListUnlocked(gomock.Any(), uid).Return([]string{achievement.EarlyBird}, nil)
	d.drinks.EXPECT().AddDrink(gomock.Any(), uid, todayKey, 2000.0, gomock.Any()).Return(nil)
	d.achievements.EXPECT().Unlock(gomock.Any(), uid, achievement.FirstDrink).Return(false, nil)

	result, err := d.service.LogDrink(context.Background(), uid, &service.LogDrinkRequest{Volume: 250, Kind: entity.DrinkWater})
	require.NoError(t, err)
	assert.Empty(t, result.Unlocked)
	next, _ := d.service.NextAchievement(context.Background(), uid)
	assert.Nil(t, next)
}

func TestLogDrinkUnlockFailureKeepsDrink(t *testing.T) {
	d := newHydrationDeps(t)
	ctx := context.Background()
	d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
	d.drinks.EXPECT().GetHistory(gomock.Any(), uid).Return(entity.History{}, nil)
	d.achievements.EXPECT().ListUnlocked(gomock.Any(), uid).Return([]string{}, nil)
	d.drinks.EXPECT().AddDrink(gomock.Any(), uid, todayKey, 2000.0, gomock.Any()).Return(nil)
	gomock.InOrder(
		d.achievements.EXPECT().Unlock(gomock.Any(), uid, achievement.FirstDrink).Return(true, nil),
		d.achievements.EXPECT().Unlock(gomock.Any(), uid, achievement.EarlyBird).Return(false, errors.New("conn reset")),
	)

	result, err := d.service.LogDrink(ctx, uid, &service.LogDrinkRequest{Volume: 250, Kind: entity.DrinkWater})
	require.NoError(t, err)
	assert.Equal(t, 250.0, result.Drink.Volume)
	assert.Equal(t, []string{achievement.FirstDrink}, ids(result.Unlocked))

	next, err := d.service.NextAchievement(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, achievement.FirstDrink, next.ID)
	next, _ = d.service.NextAchievement(ctx, uid)
	assert.Nil(t, next)
}

func TestWarningsCountedOnce(t *testing.T) {
	d := newHydrationDeps(t)
	ctx := context.Background()
	absorption := metrics.WarningsRaised.WithLabelValues(string(entity.WarningAbsorption))
	before := testutil.ToFloat64(absorption)
	earlier := waterAt(now.Add(-5*time.Minute), 300)
	history := entity.History{
		todayKey: {Date: todayKey, Goal: 2000, Events: []entity.DrinkEvent{earlier}},
	}
	d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil).Times(2)
	d.drinks.EXPECT().GetHistory(gomock.Any(), uid).Return(history, nil)
	d.achievements.EXPECT().ListUnlocked(gomock.Any(), uid).Return([]string{achievement.FirstDrink, achievement.EarlyBird}, nil)
	d.drinks.EXPECT().AddDrink(gomock.Any(), uid, todayKey, 2000.0, gomock.Any()).Return(nil)

	// 600ml within 15 minutes
	_, err := d.service.LogDrink(ctx, uid, &service.LogDrinkRequest{Volume: 300, Kind: entity.DrinkWater})
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(absorption))

	d.drinks.EXPECT().GetDay(gomock.Any(), uid, todayKey).Return(&entity.DayRecord{
		Date:   todayKey,
		Goal:   2000,
		Events: []entity.DrinkEvent{earlier, waterAt(now, 300)},
	}, nil)
	summary, err := d.service.Today(ctx, uid)
	require.NoError(t, err)
	require.NotEmpty(t, summary.Quality.Warnings)
	assert.Equal(t, before+1, testutil.ToFloat64(absorption))
}

func TestLogDrinkValidation(t *testing.T) {
	d := newHydrationDeps(t)
	testCases := []struct {
		Desc string
		Req  service.LogDrinkRequest
	}{
		{Desc: "zero volume", Req: service.LogDrinkRequest{Volume: 0, Kind: entity.DrinkWater}},
		{Desc: "negative volume", Req: service.LogDrinkRequest{Volume: -100, Kind: entity.DrinkWater}},
		{Desc: "unknown kind", Req: service.LogDrinkRequest{Volume: 250, Kind: "beer"}},
		{Desc: "missing kind", Req: service.LogDrinkRequest{Volume: 250}},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			_, err := d.service.LogDrink(context.Background(), uid, &tc.Req)
			assert.ErrorIs(t, err, errorvalues.ErrInvalidDrink)
		})
	}
}

func TestLogDrinkRepositoryError(t *testing.T) {
	d := newHydrationDeps(t)
	d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
	d.drinks.EXPECT().GetHistory(gomock.Any(), uid).Return(entity.History{}, nil)
	d.achievements.EXPECT().ListUnlocked(gomock.Any(), uid).Return([]string{}, nil)
	d.drinks.EXPECT().AddDrink(gomock.Any(), uid, todayKey, 2000.0, gomock.Any()).Return(errors.New("db error"))

	_, err := d.service.LogDrink(context.Background(), uid, &service.LogDrinkRequest{Volume: 250, Kind: entity.DrinkTea})
	assert.Error(t, err)
}

func TestRemoveDrink(t *testing.T) {
	d := newHydrationDeps(t)
	id := uuid.New()
	d.drinks.EXPECT().DeleteDrink(gomock.Any(), uid, id).Return(nil)
	assert.NoError(t, d.service.RemoveDrink(context.Background(), uid, id))

	d.drinks.EXPECT().DeleteDrink(gomock.Any(), uid, id).Return(errorvalues.ErrDrinkNotFound)
	assert.ErrorIs(t, d.service.RemoveDrink(context.Background(), uid, id), errorvalues.ErrDrinkNotFound)
}

func TestUpdateGoal(t *testing.T) {
	t.Run("today recorded", func(t *testing.T) {
		d := newHydrationDeps(t)
		d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
		d.settings.EXPECT().Update(gomock.Any(), uid, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, req *service.UpdateSettingsRequest) (*entity.Settings, error) {
				assert.Equal(t, 3000.0, req.DailyGoal)
				assert.Equal(t, userPrefs.BedtimeHour, req.BedtimeHour)
				assert.Equal(t, userPrefs.Timezone, req.Timezone)
				return &entity.Settings{DailyGoal: 3000}, nil
			})
		d.drinks.EXPECT().UpdateDayGoal(gomock.Any(), uid, todayKey, 3000.0).Return(nil)
		assert.NoError(t, d.service.UpdateGoal(context.Background(), uid, 3000))
	})
	t.Run("nothing logged today", func(t *testing.T) {
		d := newHydrationDeps(t)
		d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
		d.settings.EXPECT().Update(gomock.Any(), uid, gomock.Any()).Return(&entity.Settings{DailyGoal: 3000}, nil)
		d.drinks.EXPECT().UpdateDayGoal(gomock.Any(), uid, todayKey, 3000.0).Return(errorvalues.ErrDayNotFound)
		assert.NoError(t, d.service.UpdateGoal(context.Background(), uid, 3000))
	})
	t.Run("invalid goal", func(t *testing.T) {
		d := newHydrationDeps(t)
		d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
		d.settings.EXPECT().Update(gomock.Any(), uid, gomock.Any()).Return(nil, errorvalues.ErrInvalidSettings)
		assert.ErrorIs(t, d.service.UpdateGoal(context.Background(), uid, -5), errorvalues.ErrInvalidSettings)
	})
}

func TestToday(t *testing.T) {
	t.Run("nothing logged", func(t *testing.T) {
		d := newHydrationDeps(t)
		d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
		d.drinks.EXPECT().GetDay(gomock.Any(), uid, todayKey).Return(nil, errorvalues.ErrDayNotFound)
		summary, err := d.service.Today(context.Background(), uid)
		require.NoError(t, err)
		assert.Equal(t, todayKey, summary.Date)
		assert.Equal(t, 2000.0, summary.Goal)
		assert.Equal(t, 0.0, summary.Hydration)
		assert.Equal(t, 0.0, summary.Percentage)
		assert.Equal(t, "Early Morning", summary.Guidance.Period)
		assert.Equal(t, "Time to hydrate! Your body will thank you!", summary.Motivation)
		assert.Empty(t, summary.Quality.Warnings)
	})
	t.Run("half way", func(t *testing.T) {
		d := newHydrationDeps(t)
		d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
		d.drinks.EXPECT().GetDay(gomock.Any(), uid, todayKey).Return(&entity.DayRecord{
			Date: todayKey,
			Goal: 2000,
			Events: []entity.DrinkEvent{
				waterAt(now.Add(-90*time.Minute), 500),
				{ID: uuid.New(), CreatedAt: now.Add(-time.Hour), Volume: 500, Kind: entity.DrinkCoffee},
			},
		}, nil)
		summary, err := d.service.Today(context.Background(), uid)
		require.NoError(t, err)
		// 500 + 500 * 0.85
		assert.Equal(t, 925.0, summary.Hydration)
		assert.Equal(t, 200.0, summary.Caffeine)
		assert.InDelta(t, 46.25, summary.Percentage, 1e-9)
		assert.Equal(t, "Good start! Let's keep the momentum going!", summary.Motivation)
		assert.Len(t, summary.Drinks, 2)
	})
	t.Run("settings error", func(t *testing.T) {
		d := newHydrationDeps(t)
		d.settings.EXPECT().Get(gomock.Any(), uid).Return(nil, errors.New("db error"))
		_, err := d.service.Today(context.Background(), uid)
		assert.Error(t, err)
	})
}

func TestStatsAndWeekly(t *testing.T) {
	d := newHydrationDeps(t)
	history := func() entity.History {
		return entity.History{
			todayKey:     {Date: todayKey, Goal: 2000, Events: []entity.DrinkEvent{waterAt(now, 2000)}},
			"2025-06-09": {Date: "2025-06-09", Goal: 2000, Events: []entity.DrinkEvent{waterAt(now.AddDate(0, 0, -1), 2500)}},
		}
	}
	d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil).Times(2)
	d.drinks.EXPECT().GetHistory(gomock.Any(), uid).DoAndReturn(func(context.Context, uuid.UUID) (entity.History, error) {
		return history(), nil
	}).Times(2)

	s, err := d.service.Stats(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.DaysMetGoal)
	assert.Equal(t, 100.0, s.SuccessRate)

	points, err := d.service.Weekly(context.Background(), uid)
	require.NoError(t, err)
	require.Len(t, points, 7)
	assert.Equal(t, todayKey, points[6].Date)
	assert.Equal(t, 2000.0, points[6].Total)
	assert.Equal(t, 2500.0, points[5].Total)
	assert.Equal(t, 2000.0, points[0].Goal)
}

func TestAchievementsList(t *testing.T) {
	d := newHydrationDeps(t)
	d.achievements.EXPECT().ListUnlocked(gomock.Any(), uid).Return([]string{achievement.Volume10k}, nil)
	statuses, err := d.service.Achievements(context.Background(), uid)
	require.NoError(t, err)
	assert.Len(t, statuses, len(achievement.Definitions()))
	for _, s := range statuses {
		assert.Equal(t, s.ID == achievement.Volume10k, s.Unlocked)
	}
}

func TestReminders(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		d := newHydrationDeps(t)
		d.settings.EXPECT().Get(gomock.Any(), uid).Return(userPrefs, nil)
		schedule, err := d.service.Reminders(context.Background(), uid)
		require.NoError(t, err)
		assert.False(t, schedule.Enabled)
		assert.Empty(t, schedule.Hours)
		assert.Nil(t, schedule.Next)
	})
	t.Run("regular", func(t *testing.T) {
		d := newHydrationDeps(t)
		prefs := *userPrefs
		prefs.RemindersEnabled = true
		d.settings.EXPECT().Get(gomock.Any(), uid).Return(&prefs, nil)
		d.drinks.EXPECT().GetHistory(gomock.Any(), uid).Return(entity.History{
			todayKey: {Date: todayKey, Goal: 2000, Events: []entity.DrinkEvent{waterAt(now.Add(-30*time.Minute), 300)}},
		}, nil)
		schedule, err := d.service.Reminders(context.Background(), uid)
		require.NoError(t, err)
		assert.Equal(t, []int{8, 10, 12, 14, 16, 18, 20}, schedule.Hours)
		require.NotNil(t, schedule.Next)
		assert.True(t, time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC).Equal(*schedule.Next))
		assert.False(t, schedule.Due)
	})
	t.Run("smart without data", func(t *testing.T) {
		d := newHydrationDeps(t)
		prefs := *userPrefs
		prefs.RemindersEnabled = true
		prefs.SmartSchedule = true
		d.settings.EXPECT().Get(gomock.Any(), uid).Return(&prefs, nil)
		d.drinks.EXPECT().GetHistory(gomock.Any(), uid).Return(entity.History{}, nil)
		schedule, err := d.service.Reminders(context.Background(), uid)
		require.NoError(t, err)
		assert.Equal(t, []int{9, 12, 15, 18}, schedule.Hours)
		assert.True(t, schedule.Due)
	})
}

func TestClearHistory(t *testing.T) {
	d := newHydrationDeps(t)
	d.drinks.EXPECT().Clear(gomock.Any(), uid).Return(nil)
	assert.NoError(t, d.service.ClearHistory(context.Background(), uid))

	d.drinks.EXPECT().Clear(gomock.Any(), uid).Return(errors.New("db error"))
	assert.Error(t, d.service.ClearHistory(context.Background(), uid))
}
