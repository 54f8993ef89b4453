package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/drip/internal/error_values"
	"github.com/limbo/drip/internal/repository/mocks"
	"github.com/limbo/drip/internal/service"
	"github.com/limbo/drip/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = service.Defaults{DailyGoal: 2500, BedtimeHour: 20, Timezone: "UTC"}

func TestGetSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepositoryI(ctrl)
	ss := service.NewSettingsService(repo, defaults)
	uid := uuid.New()
	ctx := context.Background()

	t.Run("defaults when nothing stored", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), uid).Return(nil, errorvalues.ErrSettingsNotFound)
		s, err := ss.Get(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, entity.Settings{
			DailyGoal:     2500,
			BedtimeHour:   20,
			ActivityLevel: entity.ActivityModerate,
			Timezone:      "UTC",
		}, *s)
	})
	t.Run("stored", func(t *testing.T) {
		stored := &entity.Settings{DailyGoal: 1800, BedtimeHour: 23, ActivityLevel: entity.ActivityLow}
		repo.EXPECT().Get(gomock.Any(), uid).Return(stored, nil)
		s, err := ss.Get(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, 1800.0, s.DailyGoal)
		assert.Equal(t, "UTC", s.Timezone)
	})
	t.Run("db error", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), uid).Return(nil, errors.New("db error"))
		_, err := ss.Get(ctx, uid)
		assert.Error(t, err)
	})
}

func TestUpdateSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepositoryI(ctrl)
	ss := service.NewSettingsService(repo, defaults)
	uid := uuid.New()
	ctx := context.Background()

	t.Run("saved with defaults filled", func(t *testing.T) {
		expected := &entity.Settings{
			DailyGoal:        3000,
			BedtimeHour:      22,
			RemindersEnabled: true,
			Name:             "Sam",
			ActivityLevel:    entity.ActivityModerate,
			Timezone:         "UTC",
		}
		repo.EXPECT().Upsert(gomock.Any(), uid, gomock.Eq(expected)).Return(nil)
		s, err := ss.Update(ctx, uid, &service.UpdateSettingsRequest{
			DailyGoal:        3000,
			BedtimeHour:      22,
			RemindersEnabled: true,
			Name:             "Sam",
		})
		require.NoError(t, err)
		assert.Equal(t, expected, s)
	})
	t.Run("unknown user", func(t *testing.T) {
		repo.EXPECT().Upsert(gomock.Any(), uid, gomock.Any()).Return(errorvalues.ErrUserNotFound)
		_, err := ss.Update(ctx, uid, &service.UpdateSettingsRequest{DailyGoal: 2000, BedtimeHour: 21})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})

	testCases := []struct {
		Desc     string
		Req      service.UpdateSettingsRequest
		Expected error
	}{
		{Desc: "zero goal", Req: service.UpdateSettingsRequest{DailyGoal: 0, BedtimeHour: 20}, Expected: errorvalues.ErrInvalidSettings},
		{Desc: "huge goal", Req: service.UpdateSettingsRequest{DailyGoal: 50000, BedtimeHour: 20}, Expected: errorvalues.ErrInvalidSettings},
		{Desc: "bedtime out of range", Req: service.UpdateSettingsRequest{DailyGoal: 2000, BedtimeHour: 24}, Expected: errorvalues.ErrInvalidSettings},
		{Desc: "unknown activity", Req: service.UpdateSettingsRequest{DailyGoal: 2000, BedtimeHour: 20, ActivityLevel: "extreme"}, Expected: errorvalues.ErrInvalidSettings},
		{Desc: "unknown timezone", Req: service.UpdateSettingsRequest{DailyGoal: 2000, BedtimeHour: 20, Timezone: "Nowhere/City"}, Expected: errorvalues.ErrInvalidTimezone},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			_, err := ss.Update(ctx, uid, &tc.Req)
			assert.ErrorIs(t, err, tc.Expected)
			assert.ErrorIs(t, err, errorvalues.ErrInvalidSettings)
		})
	}
}
