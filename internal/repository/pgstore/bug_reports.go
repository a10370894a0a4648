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

var bugReportColumns = []string{
	"id", "ticket_number", "user_id", "username", "title", "description",
	"rating", "status", "resolution_message", "created_at",
}

type bugReportRepository struct {
	pool *pgxpool.Pool
}

func scanBugReport(row pgx.Row) (*domain.BugReport, error) {
	var (
		br     domain.BugReport
		id     uuid.UUID
		status string
	)
	err := row.Scan(&id, &br.TicketNumber, &br.UserID, &br.Username, &br.Title, &br.Description,
		&br.Rating, &status, &br.ResolutionMessage, &br.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	br.ID = id.String()
	br.Status = domain.BugReportStatus(status)
	return &br, nil
}

func returning(cols []string) string {
	return "RETURNING " + strings.Join(cols, ", ")
}

func (r *bugReportRepository) Create(ctx context.Context, report *domain.BugReport) error {
	b := psql.Insert("bug_reports").
		Columns("id", "ticket_number", "user_id", "username", "title", "description", "rating", "status", "resolution_message").
		Values(uuid.New(), report.TicketNumber, report.UserID, report.Username, report.Title,
			report.Description, report.Rating, string(report.Status), report.ResolutionMessage).
		Suffix(returning(bugReportColumns))
	row, err := queryRow(ctx, r.pool, b)
	if err != nil {
		return err
	}
	created, err := scanBugReport(row)
	if err != nil {
		return err
	}
	*report = *created
	return nil
}

func (r *bugReportRepository) GetByID(ctx context.Context, id string) (*domain.BugReport, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	row, err := queryRow(ctx, r.pool, psql.Select(bugReportColumns...).From("bug_reports").Where(squirrel.Eq{"id": uid}))
	if err != nil {
		return nil, err
	}
	return scanBugReport(row)
}

func (r *bugReportRepository) List(ctx context.Context, filter repository.BugReportFilter) ([]domain.BugReport, error) {
	b := psql.Select(bugReportColumns...).From("bug_reports").OrderBy("created_at", "ticket_number")
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		b = b.Where(squirrel.Eq{"status": statuses})
	}
	rows, err := query(ctx, r.pool, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.BugReport
	for rows.Next() {
		br, err := scanBugReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *br)
	}
	return reports, rows.Err()
}

func (r *bugReportRepository) Apply(ctx context.Context, id string, changes repository.BugReportChanges) (*domain.BugReport, error) {
	if changes.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	b := psql.Update("bug_reports").Where(squirrel.Eq{"id": uid}).Suffix(returning(bugReportColumns))
	if changes.UserID != nil {
		b = b.Set("user_id", *changes.UserID)
	}
	if changes.Username != nil {
		b = b.Set("username", *changes.Username)
	}
	if changes.Title != nil {
		b = b.Set("title", *changes.Title)
	}
	if changes.Description != nil {
		b = b.Set("description", *changes.Description)
	}
	if changes.Rating != nil {
		b = b.Set("rating", *changes.Rating)
	}
	if changes.Status != nil {
		b = b.Set("status", string(*changes.Status))
	}
	if changes.ResolutionMessage != nil {
		b = b.Set("resolution_message", *changes.ResolutionMessage)
	}

	row, err := queryRow(ctx, r.pool, b)
	if err != nil {
		return nil, err
	}
	return scanBugReport(row)
}

func (r *bugReportRepository) CountByStatus(ctx context.Context) (map[domain.BugReportStatus]int64, error) {
	rows, err := query(ctx, r.pool, psql.Select("status", "COUNT(*)").From("bug_reports").GroupBy("status"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.BugReportStatus]int64)
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.BugReportStatus(status)] = count
	}
	return counts, rows.Err()
}
