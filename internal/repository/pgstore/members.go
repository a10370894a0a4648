package pgstore

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/repository"
)

var memberColumns = []string{"id", "username", "password", "access", "created_at", "updated_at"}

type memberRepository struct {
	pool *pgxpool.Pool
}

func scanMember(row pgx.Row) (*domain.Member, error) {
	var (
		m  domain.Member
		id uuid.UUID
	)
	if err := row.Scan(&id, &m.Username, &m.Password, &m.Access, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	m.ID = id.String()
	return &m, nil
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	b := psql.Insert("members").
		Columns("id", "username", "password", "access").
		Values(uuid.New(), member.Username, member.Password, member.Access).
		Suffix(returning(memberColumns))
	row, err := queryRow(ctx, r.pool, b)
	if err != nil {
		return err
	}
	created, err := scanMember(row)
	if err != nil {
		return err
	}
	*member = *created
	return nil
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	id, err := parseID(member.ID)
	if err != nil {
		return err
	}
	b := psql.Update("members").
		Set("username", member.Username).
		Set("password", member.Password).
		Set("access", member.Access).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(memberColumns))
	row, err := queryRow(ctx, r.pool, b)
	if err != nil {
		return err
	}
	updated, err := scanMember(row)
	if err != nil {
		return err
	}
	*member = *updated
	return nil
}

func (r *memberRepository) SetAccess(ctx context.Context, id string, field domain.AccessField, value bool) (*domain.Member, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b := psql.Update("members").
		Set("access", squirrel.Expr("jsonb_set(access, ?::text[], to_jsonb(?::boolean))", []string{string(field)}, value)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": uid}).
		Suffix(returning(memberColumns))
	row, err := queryRow(ctx, r.pool, b)
	if err != nil {
		return nil, err
	}
	return scanMember(row)
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	row, err := queryRow(ctx, r.pool, psql.Select(memberColumns...).From("members").Where(squirrel.Eq{"id": uid}))
	if err != nil {
		return nil, err
	}
	return scanMember(row)
}

func (r *memberRepository) GetByUsername(ctx context.Context, username string) (*domain.Member, error) {
	row, err := queryRow(ctx, r.pool, psql.Select(memberColumns...).From("members").Where(squirrel.Eq{"username": username}))
	if err != nil {
		return nil, err
	}
	return scanMember(row)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *memberRepository) List(ctx context.Context, filter repository.MemberFilter) ([]domain.Member, error) {
	b := psql.Select(memberColumns...).From("members").OrderBy("created_at", "id")
	if search := strings.TrimSpace(filter.Search); search != "" {
		b = b.Where(squirrel.ILike{"username": "%" + likeEscaper.Replace(search) + "%"})
	}
	rows, err := query(ctx, r.pool, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	sql, args, err := psql.Delete("members").Where(squirrel.Eq{"id": uid}).ToSql()
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
