package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/drip/internal/error_values"
	"github.com/limbo/drip/internal/repository"
	"github.com/limbo/drip/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userID = uuid.New()

func TestAddDrink(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDrinksRepo(mock)
	event := entity.DrinkEvent{
		ID:        uuid.New(),
		CreatedAt: time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC),
		Volume:    250,
		Kind:      entity.DrinkTea,
	}
	date := "2025-03-14"
	dayQuery := regexp.QuoteMeta(`INSERT INTO day_records (user_id, day, goal) VALUES ($1, $2, $3) ON CONFLICT (user_id, day) DO NOTHING;`)
	eventQuery := regexp.QuoteMeta(`INSERT INTO drink_events (id, user_id, day, created_at, volume, kind) VALUES ($1, $2, $3, $4, $5, $6);`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(dayQuery).
			WithArgs(userID, date, 2500.0).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(eventQuery).
			WithArgs(event.ID, userID, date, event.CreatedAt, event.Volume, "tea").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()
		err := repo.AddDrink(ctx, userID, date, 2500, &event)
		assert.NoError(t, err)
	})
	t.Run("day exists", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(dayQuery).
			WithArgs(userID, date, 2500.0).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))
		mock.ExpectExec(eventQuery).
			WithArgs(event.ID, userID, date, event.CreatedAt, event.Volume, "tea").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()
		err := repo.AddDrink(ctx, userID, date, 2500, &event)
		assert.NoError(t, err)
	})
	t.Run("FK violation", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(dayQuery).
			WithArgs(userID, date, 2500.0).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		mock.ExpectRollback()
		err := repo.AddDrink(ctx, userID, date, 2500, &event)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("event insert error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(dayQuery).
			WithArgs(userID, date, 2500.0).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(eventQuery).
			WithArgs(event.ID, userID, date, event.CreatedAt, event.Volume, "tea").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()
		err := repo.AddDrink(ctx, userID, date, 2500, &event)
		assert.Error(t, err)
	})
	t.Run("begin error", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(errors.New("db error"))
		err := repo.AddDrink(ctx, userID, date, 2500, &event)
		assert.Error(t, err)
	})
	t.Run("nil event", func(t *testing.T) {
		err := repo.AddDrink(ctx, userID, date, 2500, nil)
		assert.Error(t, err)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDrink(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDrinksRepo(mock)
	id := uuid.New()
	query := regexp.QuoteMeta(`DELETE FROM drink_events WHERE id = $1 AND user_id = $2;`)
	ctx := context.Background()
	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(id, userID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, repo.DeleteDrink(ctx, userID, id))
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(id, userID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		assert.ErrorIs(t, repo.DeleteDrink(ctx, userID, id), errorvalues.ErrDrinkNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(id, userID).
			WillReturnError(errors.New("db error"))
		assert.Error(t, repo.DeleteDrink(ctx, userID, id))
	})
}

func TestGetDay(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDrinksRepo(mock)
	date := "2025-03-14"
	first := entity.DrinkEvent{ID: uuid.New(), CreatedAt: time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC), Volume: 300, Kind: entity.DrinkWater}
	second := entity.DrinkEvent{ID: uuid.New(), CreatedAt: time.Date(2025, time.March, 14, 11, 0, 0, 0, time.UTC), Volume: 200, Kind: entity.DrinkCoffee}
	goalQuery := regexp.QuoteMeta(`SELECT goal FROM day_records WHERE user_id = $1 AND day = $2;`)
	eventsQuery := regexp.QuoteMeta(`SELECT id, created_at, volume, kind FROM drink_events WHERE user_id = $1 AND day = $2 ORDER BY created_at;`)
	ctx := context.Background()
	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(goalQuery).
			WithArgs(userID, date).
			WillReturnRows(pgxmock.NewRows([]string{"goal"}).AddRow(2000.0))
		mock.ExpectQuery(eventsQuery).
			WithArgs(userID, date).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "volume", "kind"}).
				AddRow(first.ID, first.CreatedAt, first.Volume, "water").
				AddRow(second.ID, second.CreatedAt, second.Volume, "coffee"))
		rec, err := repo.GetDay(ctx, userID, date)
		require.NoError(t, err)
		assert.Equal(t, entity.DayRecord{
			Date:   date,
			Goal:   2000,
			Events: []entity.DrinkEvent{first, second},
		}, *rec)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(goalQuery).
			WithArgs(userID, date).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetDay(ctx, userID, date)
		assert.ErrorIs(t, err, errorvalues.ErrDayNotFound)
	})
	t.Run("events query error", func(t *testing.T) {
		mock.ExpectQuery(goalQuery).
			WithArgs(userID, date).
			WillReturnRows(pgxmock.NewRows([]string{"goal"}).AddRow(2000.0))
		mock.ExpectQuery(eventsQuery).
			WithArgs(userID, date).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetDay(ctx, userID, date)
		assert.Error(t, err)
	})
}

func TestGetHistory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDrinksRepo(mock)
	daysQuery := regexp.QuoteMeta(`SELECT day, goal FROM day_records WHERE user_id = $1;`)
	eventsQuery := regexp.QuoteMeta(`SELECT id, day, created_at, volume, kind FROM drink_events WHERE user_id = $1 ORDER BY created_at;`)
	ctx := context.Background()
	e1 := entity.DrinkEvent{ID: uuid.New(), CreatedAt: time.Date(2025, time.March, 13, 10, 0, 0, 0, time.UTC), Volume: 500, Kind: entity.DrinkWater}
	e2 := entity.DrinkEvent{ID: uuid.New(), CreatedAt: time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC), Volume: 250, Kind: entity.DrinkJuice}
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(daysQuery).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"day", "goal"}).
				AddRow("2025-03-13", 2000.0).
				AddRow("2025-03-14", 2500.0).
				AddRow("2025-03-15", 2500.0))
		mock.ExpectQuery(eventsQuery).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "day", "created_at", "volume", "kind"}).
				AddRow(e1.ID, "2025-03-13", e1.CreatedAt, e1.Volume, "water").
				AddRow(e2.ID, "2025-03-14", e2.CreatedAt, e2.Volume, "juice"))
		history, err := repo.GetHistory(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, entity.History{
			"2025-03-13": {Date: "2025-03-13", Goal: 2000, Events: []entity.DrinkEvent{e1}},
			"2025-03-14": {Date: "2025-03-14", Goal: 2500, Events: []entity.DrinkEvent{e2}},
			"2025-03-15": {Date: "2025-03-15", Goal: 2500, Events: []entity.DrinkEvent{}},
		}, history)
	})
	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery(daysQuery).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"day", "goal"}))
		mock.ExpectQuery(eventsQuery).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "day", "created_at", "volume", "kind"}))
		history, err := repo.GetHistory(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(daysQuery).
			WithArgs(userID).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetHistory(ctx, userID)
		assert.Error(t, err)
	})
}

func TestUpdateDayGoal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDrinksRepo(mock)
	query := regexp.QuoteMeta(`UPDATE day_records SET goal = $1 WHERE user_id = $2 AND day = $3;`)
	ctx := context.Background()
	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(3000.0, userID, "2025-03-14").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.UpdateDayGoal(ctx, userID, "2025-03-14", 3000))
	})
	t.Run("no such day", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(3000.0, userID, "2025-03-14").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, repo.UpdateDayGoal(ctx, userID, "2025-03-14", 3000), errorvalues.ErrDayNotFound)
	})
}

func TestClearHistory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDrinksRepo(mock)
	query := regexp.QuoteMeta(`DELETE FROM day_records WHERE user_id = $1;`)
	ctx := context.Background()
	t.Run("cleared", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(userID).
			WillReturnResult(pgxmock.NewResult("DELETE", 4))
		assert.NoError(t, repo.Clear(ctx, userID))
	})
	t.Run("nothing to clear", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(userID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		assert.NoError(t, repo.Clear(ctx, userID))
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(userID).
			WillReturnError(errors.New("db error"))
		assert.Error(t, repo.Clear(ctx, userID))
	})
}
