// Package pgstore implements the repositories on PostgreSQL.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studiosadmin/admin-console/internal/repository"
)

const uniqueViolation = "23505"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// New wires every repository to pool.
func New(pool *pgxpool.Pool) repository.Repositories {
	return repository.Repositories{
		Members:      &memberRepository{pool: pool},
		BugReports:   &bugReportRepository{pool: pool},
		SystemStates: &systemStateRepository{pool: pool},
		Usage:        &usageRepository{pool: pool},
		Counters:     &counterRepository{pool: pool},
		Stats:        &statsRepository{pool: pool},
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

// parseID rejects ids that cannot be a UUID before they reach the database.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, repository.ErrNotFound
	}
	return parsed, nil
}

func queryRow(ctx context.Context, pool *pgxpool.Pool, b squirrel.Sqlizer) (pgx.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}
	return pool.QueryRow(ctx, query, args...), nil
}

func query(ctx context.Context, pool *pgxpool.Pool, b squirrel.Sqlizer) (pgx.Rows, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}
	return pool.Query(ctx, sql, args...)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

func (r *statsRepository) DataSize(ctx context.Context) (int64, error) {
	var size int64
	if err := r.pool.QueryRow(ctx, `SELECT pg_database_size(current_database())`).Scan(&size); err != nil {
		return 0, err
	}
	return size, nil
}
