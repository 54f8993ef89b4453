package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/drip/internal/error_values"
)

type AchievementsRepository struct {
	conn PgConnection
}

func NewAchievementsRepo(conn PgConnection) *AchievementsRepository {
	mustPing(conn, "achievementsRepo")
	return &AchievementsRepository{
		conn: conn,
	}
}

func (ar *AchievementsRepository) ListUnlocked(ctx context.Context, uid uuid.UUID) ([]string, error) {
	rows, err := ar.conn.Query(ctx,
		`SELECT achievement_id FROM unlocked_achievements WHERE user_id = $1 ORDER BY unlocked_at, achievement_id;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("listing achievements error: " + err.Error())
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, errors.New("achievement row parsing error: " + err.Error())
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected achievement rows error: " + err.Error())
	}
	return ids, nil
}

func (ar *AchievementsRepository) Unlock(ctx context.Context, uid uuid.UUID, achievementID string) (bool, error) {
	ct, err := ar.conn.Exec(ctx,
		`INSERT INTO unlocked_achievements (user_id, achievement_id) VALUES ($1, $2) ON CONFLICT (user_id, achievement_id) DO NOTHING;`,
		uid, achievementID,
	)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return false, errorvalues.ErrUserNotFound
		}
		return false, errors.New("unlocking achievement error: " + err.Error())
	}
	return ct.RowsAffected() == 1, nil
}
