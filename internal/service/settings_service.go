package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/drip/internal/error_values"
	"github.com/limbo/drip/internal/repository"
	"github.com/limbo/drip/pkg/entity"
)

// Defaults are applied to users who never saved settings.
type Defaults struct {
	DailyGoal   float64
	BedtimeHour int
	Timezone    string
}

func (d Defaults) Settings() entity.Settings {
	return entity.Settings{
		DailyGoal:     d.DailyGoal,
		BedtimeHour:   d.BedtimeHour,
		ActivityLevel: entity.ActivityModerate,
		Timezone:      d.Timezone,
	}
}

type SettingsService struct {
	repo     repository.SettingsRepositoryI
	defaults Defaults
}

func NewSettingsService(settingsRepo repository.SettingsRepositoryI, defaults Defaults) *SettingsService {
	if settingsRepo == nil {
		log.Fatal("provided nil settingsRepo")
	}
	return &SettingsService{
		repo:     settingsRepo,
		defaults: defaults,
	}
}

func (ss *SettingsService) Get(ctx context.Context, uid uuid.UUID) (*entity.Settings, error) {
	settings, err := ss.repo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSettingsNotFound) {
			s := ss.defaults.Settings()
			return &s, nil
		}
		return nil, errors.New("settings repository error: " + err.Error())
	}
	if settings.Timezone == "" {
		settings.Timezone = ss.defaults.Timezone
	}
	return settings, nil
}

func (ss *SettingsService) Update(ctx context.Context, uid uuid.UUID, req *UpdateSettingsRequest) (*entity.Settings, error) {
	if err := validate.Struct(*req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				if fieldErr.Tag() == "timezone" {
					return nil, errors.Join(errorvalues.ErrInvalidSettings, errorvalues.ErrInvalidTimezone)
				}
			}
		}
		return nil, validationError(errorvalues.ErrInvalidSettings, err)
	}
	settings := entity.Settings{
		DailyGoal:        req.DailyGoal,
		BedtimeHour:      req.BedtimeHour,
		RemindersEnabled: req.RemindersEnabled,
		SmartSchedule:    req.SmartSchedule,
		Name:             req.Name,
		ActivityLevel:    req.ActivityLevel,
		HasOnboarded:     req.HasOnboarded,
		Timezone:         req.Timezone,
	}
	if settings.ActivityLevel == "" {
		settings.ActivityLevel = entity.ActivityModerate
	}
	if settings.Timezone == "" {
		settings.Timezone = ss.defaults.Timezone
	}
	err := ss.repo.Upsert(ctx, uid, &settings)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("settings repository error: " + err.Error())
	}
	return &settings, nil
}
