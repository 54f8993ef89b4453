package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/drip/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repository.go -package=mocks

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Updates user's info
	Update(ctx context.Context, user *entity.User) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type DrinksRepositoryI interface {
	// Stores drink event on date. Day record is created with goal if it doesn't exist yet
	AddDrink(ctx context.Context, uid uuid.UUID, date string, goal float64, event *entity.DrinkEvent) error
	// Removes user's drink event
	DeleteDrink(ctx context.Context, uid uuid.UUID, id uuid.UUID) error
	// Returns day record with events sorted by time
	GetDay(ctx context.Context, uid uuid.UUID, date string) (*entity.DayRecord, error)
	// Returns every day record of user
	GetHistory(ctx context.Context, uid uuid.UUID) (entity.History, error)
	// Changes goal stored in day record
	UpdateDayGoal(ctx context.Context, uid uuid.UUID, date string, goal float64) error
	// Deletes all day records and events of user
	Clear(ctx context.Context, uid uuid.UUID) error
}

type SettingsRepositoryI interface {
	Get(ctx context.Context, uid uuid.UUID) (*entity.Settings, error)
	// Inserts or replaces settings
	Upsert(ctx context.Context, uid uuid.UUID, settings *entity.Settings) error
}

type AchievementsRepositoryI interface {
	// Lists ids of unlocked achievements
	ListUnlocked(ctx context.Context, uid uuid.UUID) ([]string, error)
	// Marks achievement as unlocked. Returns false if it was unlocked before
	Unlock(ctx context.Context, uid uuid.UUID, achievementID string) (bool, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
	// Empty leaves the driver default.
	SSLMode string
}

func (pgcfg *PGCfg) ConnString() string {
	connStr := fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
	if pgcfg.SSLMode != "" {
		connStr += "?sslmode=" + pgcfg.SSLMode
	}
	return connStr
}
