package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/drip/internal/achievement"
	errorvalues "github.com/limbo/drip/internal/error_values"
	"github.com/limbo/drip/internal/hydration"
	"github.com/limbo/drip/internal/metrics"
	"github.com/limbo/drip/internal/reminder"
	"github.com/limbo/drip/internal/repository"
	"github.com/limbo/drip/internal/stats"
	"github.com/limbo/drip/pkg/entity"
)

// userState is process-local: the last observation for session
// achievements and the queue of unlocks not presented yet.
type userState struct {
	mu      sync.Mutex
	session *achievement.Session
	queue   achievement.Queue
}

type HydrationService struct {
	drinks       repository.DrinksRepositoryI
	achievements repository.AchievementsRepositoryI
	settings     SettingsServiceI
	now          func() time.Time

	mu     sync.Mutex
	states map[uuid.UUID]*userState
}

type HydrationOption func(*HydrationService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) HydrationOption {
	return func(hs *HydrationService) {
		hs.now = now
	}
}

func NewHydrationService(
	drinksRepo repository.DrinksRepositoryI,
	achievementsRepo repository.AchievementsRepositoryI,
	settings SettingsServiceI,
	opts ...HydrationOption,
) *HydrationService {
	if drinksRepo == nil || achievementsRepo == nil || settings == nil {
		log.Fatal("on hydration service provided nil dependencies")
	}
	hs := &HydrationService{
		drinks:       drinksRepo,
		achievements: achievementsRepo,
		settings:     settings,
		now:          time.Now,
		states:       make(map[uuid.UUID]*userState),
	}
	for _, opt := range opts {
		opt(hs)
	}
	return hs
}

func (hs *HydrationService) state(uid uuid.UUID) *userState {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	st, ok := hs.states[uid]
	if !ok {
		st = &userState{}
		hs.states[uid] = st
	}
	return st
}

// localNow loads settings and returns the user's local wall clock.
func (hs *HydrationService) localNow(ctx context.Context, uid uuid.UUID) (*entity.Settings, time.Time, error) {
	settings, err := hs.settings.Get(ctx, uid)
	if err != nil {
		return nil, time.Time{}, err
	}
	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return settings, hs.now().In(loc), nil
}

func (hs *HydrationService) history(ctx context.Context, uid uuid.UUID, loc *time.Location) (entity.History, error) {
	history, err := hs.drinks.GetHistory(ctx, uid)
	if err != nil {
		return nil, errors.New("drinks repository error: " + err.Error())
	}
	for _, rec := range history {
		for i := range rec.Events {
			rec.Events[i].CreatedAt = rec.Events[i].CreatedAt.In(loc)
		}
	}
	return history, nil
}

func snapshot(history entity.History, goal float64, now time.Time) achievement.Snapshot {
	date := now.Format(entity.DateLayout)
	snap := achievement.Snapshot{
		Date:   date,
		Goal:   goal,
		Streak: stats.Streak(history, now),
		At:     now,
	}
	if rec, ok := history[date]; ok {
		snap.Goal = rec.Goal
		snap.Hydration = hydration.EffectiveHydration(rec.Events)
		snap.DrinksToday = len(rec.Events)
	}
	return snap
}

func (hs *HydrationService) LogDrink(ctx context.Context, uid uuid.UUID, req *LogDrinkRequest) (*LogDrinkResult, error) {
	if err := validate.Struct(*req); err != nil {
		return nil, validationError(errorvalues.ErrInvalidDrink, err)
	}
	settings, now, err := hs.localNow(ctx, uid)
	if err != nil {
		return nil, err
	}
	st := hs.state(uid)
	st.mu.Lock()
	defer st.mu.Unlock()

	history, err := hs.history(ctx, uid, now.Location())
	if err != nil {
		return nil, err
	}
	ids, err := hs.achievements.ListUnlocked(ctx, uid)
	if err != nil {
		return nil, errors.New("achievements repository error: " + err.Error())
	}
	unlocked := achievement.NewUnlockedSet(ids...)
	if st.session == nil {
		st.session = achievement.NewSession(snapshot(history, settings.DailyGoal, now))
	}

	date := now.Format(entity.DateLayout)
	event := entity.DrinkEvent{
		ID:        uuid.New(),
		CreatedAt: now,
		Volume:    req.Volume,
		Kind:      req.Kind,
	}
	err = hs.drinks.AddDrink(ctx, uid, date, settings.DailyGoal, &event)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("drinks repository error: " + err.Error())
	}
	metrics.DrinksLogged.WithLabelValues(string(event.Kind)).Inc()
	metrics.DrinkVolume.WithLabelValues(string(event.Kind)).Add(event.Volume)

	rec, ok := history[date]
	if !ok {
		rec = &entity.DayRecord{Date: date, Goal: settings.DailyGoal}
		history[date] = rec
	}
	warningsBefore := hydration.Warnings(rec.Events, settings.BedtimeHour)
	rec.Events = append(rec.Events, event)
	countRaised(warningsBefore, hydration.Warnings(rec.Events, settings.BedtimeHour))

	candidates := st.session.Observe(snapshot(history, settings.DailyGoal, now))
	candidates = append(candidates, achievement.Evaluate(stats.ProgressOf(history, now), unlocked)...)
	result := &LogDrinkResult{Drink: event, Unlocked: make([]entity.Achievement, 0)}
	for _, id := range candidates {
		if unlocked.Has(id) {
			continue
		}
		// the drink is stored already, a failed unlock must not fail the call
		isNew, err := hs.achievements.Unlock(ctx, uid, id)
		if err != nil {
			loggerFromCtx(ctx).Error("unlocking achievement error",
				slog.String("achievement", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		unlocked.Add(id)
		if !isNew {
			continue
		}
		a, _ := achievement.Lookup(id)
		result.Unlocked = append(result.Unlocked, a)
		st.queue.Push(a)
		metrics.AchievementsUnlocked.WithLabelValues(id).Inc()
	}
	return result, nil
}

// countRaised adds to WarningsRaised only the warnings a drink introduced,
// per kind.
func countRaised(before, after []entity.HydrationWarning) {
	counts := make(map[entity.WarningKind]int)
	for _, w := range after {
		counts[w.Kind]++
	}
	for _, w := range before {
		counts[w.Kind]--
	}
	for kind, n := range counts {
		if n > 0 {
			metrics.WarningsRaised.WithLabelValues(string(kind)).Add(float64(n))
		}
	}
}

func (hs *HydrationService) RemoveDrink(ctx context.Context, uid uuid.UUID, drinkID uuid.UUID) error {
	err := hs.drinks.DeleteDrink(ctx, uid, drinkID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDrinkNotFound) {
			return err
		}
		return errors.New("drinks repository error: " + err.Error())
	}
	metrics.DrinksRemoved.Inc()
	return nil
}

func (hs *HydrationService) UpdateGoal(ctx context.Context, uid uuid.UUID, goal float64) error {
	settings, now, err := hs.localNow(ctx, uid)
	if err != nil {
		return err
	}
	_, err = hs.settings.Update(ctx, uid, &UpdateSettingsRequest{
		DailyGoal:        goal,
		BedtimeHour:      settings.BedtimeHour,
		RemindersEnabled: settings.RemindersEnabled,
		SmartSchedule:    settings.SmartSchedule,
		Name:             settings.Name,
		ActivityLevel:    settings.ActivityLevel,
		HasOnboarded:     settings.HasOnboarded,
		Timezone:         settings.Timezone,
	})
	if err != nil {
		return err
	}
	// past days keep the goal they were logged against
	err = hs.drinks.UpdateDayGoal(ctx, uid, now.Format(entity.DateLayout), goal)
	if err != nil && !errors.Is(err, errorvalues.ErrDayNotFound) {
		return errors.New("drinks repository error: " + err.Error())
	}
	return nil
}

func (hs *HydrationService) Today(ctx context.Context, uid uuid.UUID) (*TodaySummary, error) {
	settings, now, err := hs.localNow(ctx, uid)
	if err != nil {
		return nil, err
	}
	date := now.Format(entity.DateLayout)
	rec, err := hs.drinks.GetDay(ctx, uid, date)
	if err != nil {
		if !errors.Is(err, errorvalues.ErrDayNotFound) {
			return nil, errors.New("drinks repository error: " + err.Error())
		}
		rec = &entity.DayRecord{Date: date, Goal: settings.DailyGoal, Events: make([]entity.DrinkEvent, 0)}
	}
	for i := range rec.Events {
		rec.Events[i].CreatedAt = rec.Events[i].CreatedAt.In(now.Location())
	}

	summary := &TodaySummary{
		Date:      date,
		Goal:      rec.Goal,
		Hydration: hydration.EffectiveHydration(rec.Events),
		Caffeine:  hydration.CaffeineTotal(rec.Events),
		Drinks:    rec.Events,
		Periods:   hydration.TimePeriods(rec.Events, rec.Goal),
		Quality:   hydration.Quality(rec.Events, rec.Goal, settings.BedtimeHour),
		Guidance:  hydration.GuidanceAt(now.Hour()),
	}
	if rec.Goal > 0 {
		summary.Percentage = summary.Hydration / rec.Goal * 100
	}
	summary.Motivation = reminder.Motivation(summary.Percentage)
	return summary, nil
}

func (hs *HydrationService) Stats(ctx context.Context, uid uuid.UUID) (*entity.AggregateStats, error) {
	_, now, err := hs.localNow(ctx, uid)
	if err != nil {
		return nil, err
	}
	history, err := hs.history(ctx, uid, now.Location())
	if err != nil {
		return nil, err
	}
	result := stats.Aggregate(history, now)
	return &result, nil
}

func (hs *HydrationService) Weekly(ctx context.Context, uid uuid.UUID) ([]entity.WeeklyPoint, error) {
	settings, now, err := hs.localNow(ctx, uid)
	if err != nil {
		return nil, err
	}
	history, err := hs.history(ctx, uid, now.Location())
	if err != nil {
		return nil, err
	}
	return stats.Weekly(history, now, settings.DailyGoal), nil
}

func (hs *HydrationService) Achievements(ctx context.Context, uid uuid.UUID) ([]achievement.Status, error) {
	ids, err := hs.achievements.ListUnlocked(ctx, uid)
	if err != nil {
		return nil, errors.New("achievements repository error: " + err.Error())
	}
	return achievement.Statuses(achievement.NewUnlockedSet(ids...)), nil
}

func (hs *HydrationService) NextAchievement(ctx context.Context, uid uuid.UUID) (*entity.Achievement, error) {
	st := hs.state(uid)
	st.mu.Lock()
	defer st.mu.Unlock()
	a, ok := st.queue.Pop()
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (hs *HydrationService) Reminders(ctx context.Context, uid uuid.UUID) (*ReminderSchedule, error) {
	settings, now, err := hs.localNow(ctx, uid)
	if err != nil {
		return nil, err
	}
	schedule := &ReminderSchedule{
		Enabled: settings.RemindersEnabled,
		Smart:   settings.SmartSchedule,
		Hours:   make([]int, 0),
	}
	if !settings.RemindersEnabled {
		return schedule, nil
	}
	history, err := hs.history(ctx, uid, now.Location())
	if err != nil {
		return nil, err
	}
	if settings.SmartSchedule {
		schedule.Hours = reminder.Smart(history, now)
	} else {
		schedule.Hours = reminder.Regular()
	}
	if next, ok := reminder.Next(now, schedule.Hours); ok {
		schedule.Next = &next
	}
	var last time.Time
	for _, rec := range history {
		for _, e := range rec.Events {
			if e.CreatedAt.After(last) {
				last = e.CreatedAt
			}
		}
	}
	schedule.Due = reminder.Due(last, now, reminder.DefaultPeriod)
	return schedule, nil
}

func (hs *HydrationService) ClearHistory(ctx context.Context, uid uuid.UUID) error {
	st := hs.state(uid)
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := hs.drinks.Clear(ctx, uid); err != nil {
		return errors.New("drinks repository error: " + err.Error())
	}
	// today's baseline is gone with the history
	st.session = nil
	return nil
}
