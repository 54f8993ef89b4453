package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/drip/internal/error_values"
	"github.com/limbo/drip/pkg/entity"
)

type SettingsRepository struct {
	conn PgConnection
}

func NewSettingsRepo(conn PgConnection) *SettingsRepository {
	mustPing(conn, "settingsRepo")
	return &SettingsRepository{
		conn: conn,
	}
}

func (sr *SettingsRepository) Get(ctx context.Context, uid uuid.UUID) (*entity.Settings, error) {
	var (
		s        entity.Settings
		activity string
	)
	row := sr.conn.QueryRow(ctx, `SELECT daily_goal, bedtime_hour, reminders_enabled, smart_schedule, display_name, activity_level, has_onboarded, timezone
		FROM settings WHERE user_id = $1;`, uid)
	err := row.Scan(&s.DailyGoal, &s.BedtimeHour, &s.RemindersEnabled, &s.SmartSchedule, &s.Name, &activity, &s.HasOnboarded, &s.Timezone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrSettingsNotFound
		}
		return nil, errors.New("getting settings error: " + err.Error())
	}
	s.ActivityLevel = entity.ActivityLevel(activity)
	return &s, nil
}

func (sr *SettingsRepository) Upsert(ctx context.Context, uid uuid.UUID, settings *entity.Settings) error {
	if settings == nil {
		return errors.New("settings are nil")
	}
	_, err := sr.conn.Exec(ctx, `INSERT INTO settings (user_id, daily_goal, bedtime_hour, reminders_enabled, smart_schedule, display_name, activity_level, has_onboarded, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET daily_goal = EXCLUDED.daily_goal, bedtime_hour = EXCLUDED.bedtime_hour,
		reminders_enabled = EXCLUDED.reminders_enabled, smart_schedule = EXCLUDED.smart_schedule, display_name = EXCLUDED.display_name,
		activity_level = EXCLUDED.activity_level, has_onboarded = EXCLUDED.has_onboarded, timezone = EXCLUDED.timezone, updated_at = NOW();`,
		uid,
		settings.DailyGoal,
		settings.BedtimeHour,
		settings.RemindersEnabled,
		settings.SmartSchedule,
		settings.Name,
		string(settings.ActivityLevel),
		settings.HasOnboarded,
		settings.Timezone,
	)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("saving settings error: " + err.Error())
	}
	return nil
}
