package pgstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studiosadmin/admin-console/internal/domain"
)

type systemStateRepository struct {
	pool *pgxpool.Pool
}

func (r *systemStateRepository) Get(ctx context.Context, key string) (*domain.SystemState, error) {
	row, err := queryRow(ctx, r.pool, psql.Select("key", "value", "created_at", "updated_at").
		From("system_states").Where(squirrel.Eq{"key": key}))
	if err != nil {
		return nil, err
	}
	var s domain.SystemState
	if err := row.Scan(&s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *systemStateRepository) Upsert(ctx context.Context, key string, value bool) (*domain.SystemState, error) {
	b := psql.Insert("system_states").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW() " +
			"RETURNING key, value, created_at, updated_at")
	row, err := queryRow(ctx, r.pool, b)
	if err != nil {
		return nil, err
	}
	var s domain.SystemState
	if err := row.Scan(&s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

type usageRepository struct {
	pool *pgxpool.Pool
}

func scanUsage(row interface{ Scan(...any) error }) (*domain.Usage, error) {
	var (
		u  domain.Usage
		id uuid.UUID
	)
	if err := row.Scan(&id, &u.UserID, &u.Seconds, &u.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	u.ID = id.String()
	return &u, nil
}

func (r *usageRepository) Increment(ctx context.Context, userID string, seconds float64) (*domain.Usage, error) {
	b := psql.Insert("usages").
		Columns("id", "user_id", "seconds").
		Values(uuid.New(), userID, seconds).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET seconds = usages.seconds + EXCLUDED.seconds, updated_at = NOW() " +
			"RETURNING id, user_id, seconds, updated_at")
	row, err := queryRow(ctx, r.pool, b)
	if err != nil {
		return nil, err
	}
	return scanUsage(row)
}

func (r *usageRepository) GetByUser(ctx context.Context, userID string) (*domain.Usage, error) {
	row, err := queryRow(ctx, r.pool, psql.Select("id", "user_id", "seconds", "updated_at").
		From("usages").Where(squirrel.Eq{"user_id": userID}))
	if err != nil {
		return nil, err
	}
	return scanUsage(row)
}

func (r *usageRepository) List(ctx context.Context) ([]domain.Usage, error) {
	rows, err := query(ctx, r.pool, psql.Select("id", "user_id", "seconds", "updated_at").
		From("usages").OrderBy("user_id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []domain.Usage
	for rows.Next() {
		u, err := scanUsage(rows)
		if err != nil {
			return nil, err
		}
		usages = append(usages, *u)
	}
	return usages, rows.Err()
}

type counterRepository struct {
	pool *pgxpool.Pool
}

func (r *counterRepository) Next(ctx context.Context, name string) (int64, error) {
	b := psql.Insert("counters").
		Columns("name", "sequence_value").
		Values(name, 1).
		Suffix("ON CONFLICT (name) DO UPDATE SET sequence_value = counters.sequence_value + 1 RETURNING sequence_value")
	row, err := queryRow(ctx, r.pool, b)
	if err != nil {
		return 0, err
	}
	var next int64
	if err := row.Scan(&next); err != nil {
		return 0, mapError(err)
	}
	return next, nil
}
