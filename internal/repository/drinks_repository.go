package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/drip/internal/error_values"
	"github.com/limbo/drip/pkg/entity"
)

type DrinksRepository struct {
	conn PgConnection
}

func NewDrinksRepo(conn PgConnection) *DrinksRepository {
	mustPing(conn, "drinksRepo")
	return &DrinksRepository{
		conn: conn,
	}
}

func (dr *DrinksRepository) AddDrink(ctx context.Context, uid uuid.UUID, date string, goal float64, event *entity.DrinkEvent) error {
	if event == nil {
		return errors.New("drink event is nil")
	}
	tx, err := dr.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning transaction error: " + err.Error())
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO day_records (user_id, day, goal) VALUES ($1, $2, $3) ON CONFLICT (user_id, day) DO NOTHING;`,
		uid, date, goal,
	)
	if err != nil {
		tx.Rollback(ctx)
		if pgCode(err) == codeForeignKeyViolation {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("creating day record error: " + err.Error())
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO drink_events (id, user_id, day, created_at, volume, kind) VALUES ($1, $2, $3, $4, $5, $6);`,
		event.ID, uid, date, event.CreatedAt, event.Volume, string(event.Kind),
	)
	if err != nil {
		tx.Rollback(ctx)
		return errors.New("adding drink error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing drink error: " + err.Error())
	}
	return nil
}

func (dr *DrinksRepository) DeleteDrink(ctx context.Context, uid uuid.UUID, id uuid.UUID) error {
	ct, err := dr.conn.Exec(ctx, `DELETE FROM drink_events WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("deleting drink error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrDrinkNotFound
	}
	return nil
}

func (dr *DrinksRepository) GetDay(ctx context.Context, uid uuid.UUID, date string) (*entity.DayRecord, error) {
	rec := entity.DayRecord{Date: date}
	row := dr.conn.QueryRow(ctx, `SELECT goal FROM day_records WHERE user_id = $1 AND day = $2;`, uid, date)
	if err := row.Scan(&rec.Goal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrDayNotFound
		}
		return nil, errors.New("getting day record error: " + err.Error())
	}
	rows, err := dr.conn.Query(ctx,
		`SELECT id, created_at, volume, kind FROM drink_events WHERE user_id = $1 AND day = $2 ORDER BY created_at;`,
		uid, date,
	)
	if err != nil {
		return nil, errors.New("getting drinks of day error: " + err.Error())
	}
	defer rows.Close()
	rec.Events = make([]entity.DrinkEvent, 0)
	for rows.Next() {
		var (
			e    entity.DrinkEvent
			kind string
		)
		if err = rows.Scan(&e.ID, &e.CreatedAt, &e.Volume, &kind); err != nil {
			return nil, errors.New("drink row parsing error: " + err.Error())
		}
		e.Kind = entity.DrinkKind(kind)
		rec.Events = append(rec.Events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected drink rows error: " + err.Error())
	}
	return &rec, nil
}

func (dr *DrinksRepository) GetHistory(ctx context.Context, uid uuid.UUID) (entity.History, error) {
	history := make(entity.History)
	dayRows, err := dr.conn.Query(ctx, `SELECT day, goal FROM day_records WHERE user_id = $1;`, uid)
	if err != nil {
		return nil, errors.New("getting day records error: " + err.Error())
	}
	for dayRows.Next() {
		rec := &entity.DayRecord{Events: make([]entity.DrinkEvent, 0)}
		if err = dayRows.Scan(&rec.Date, &rec.Goal); err != nil {
			dayRows.Close()
			return nil, errors.New("day record row parsing error: " + err.Error())
		}
		history[rec.Date] = rec
	}
	dayRows.Close()
	if err = dayRows.Err(); err != nil {
		return nil, errors.New("unexpected day record rows error: " + err.Error())
	}

	rows, err := dr.conn.Query(ctx,
		`SELECT id, day, created_at, volume, kind FROM drink_events WHERE user_id = $1 ORDER BY created_at;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("getting drinks error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var (
			e         entity.DrinkEvent
			day, kind string
		)
		if err = rows.Scan(&e.ID, &day, &e.CreatedAt, &e.Volume, &kind); err != nil {
			return nil, errors.New("drink row parsing error: " + err.Error())
		}
		e.Kind = entity.DrinkKind(kind)
		rec, ok := history[day]
		if !ok {
			// day_records row is guaranteed by the foreign key
			continue
		}
		rec.Events = append(rec.Events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected drink rows error: " + err.Error())
	}
	return history, nil
}

func (dr *DrinksRepository) UpdateDayGoal(ctx context.Context, uid uuid.UUID, date string, goal float64) error {
	ct, err := dr.conn.Exec(ctx, `UPDATE day_records SET goal = $1 WHERE user_id = $2 AND day = $3;`, goal, uid, date)
	if err != nil {
		return errors.New("updating day goal error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrDayNotFound
	}
	return nil
}

func (dr *DrinksRepository) Clear(ctx context.Context, uid uuid.UUID) error {
	_, err := dr.conn.Exec(ctx, `DELETE FROM day_records WHERE user_id = $1;`, uid)
	if err != nil {
		return errors.New("clearing history error: " + err.Error())
	}
	return nil
}
