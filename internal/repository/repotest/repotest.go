// Package repotest holds behaviour checks shared by every repository backend.
// Each check expects an empty store.
package repotest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/repository"
)

// Run exercises every repository in repos.
func Run(t *testing.T, repos repository.Repositories) {
	t.Run("members", func(t *testing.T) { Members(t, repos.Members) })
	t.Run("bug_reports", func(t *testing.T) { BugReports(t, repos.BugReports) })
	t.Run("system_states", func(t *testing.T) { SystemStates(t, repos.SystemStates) })
	t.Run("usage", func(t *testing.T) { Usage(t, repos.Usage) })
	t.Run("counters", func(t *testing.T) { Counters(t, repos.Counters) })
	t.Run("stats", func(t *testing.T) {
		size, err := repos.Stats.DataSize(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, size, int64(0))
	})
}

func Members(t *testing.T, repo repository.MemberRepository) {
	ctx := context.Background()

	m := &domain.Member{Username: "Grace", Password: "pw", Access: domain.DefaultAccess()}
	require.NoError(t, repo.Create(ctx, m))
	require.NotEmpty(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())

	err := repo.Create(ctx, &domain.Member{Username: "Grace", Password: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	other := &domain.Member{Username: "linus", Password: "pw"}
	require.NoError(t, repo.Create(ctx, other))

	got, err := repo.GetByUsername(ctx, "Grace")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.True(t, got.Access.Dashboard)

	updated, err := repo.SetAccess(ctx, m.ID, domain.AccessDeveloper, true)
	require.NoError(t, err)
	assert.True(t, updated.Access.Developer)
	assert.True(t, updated.Access.Settings)

	list, err := repo.List(ctx, repository.MemberFilter{Search: "RAC"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Grace", list[0].Username)

	list, err = repo.List(ctx, repository.MemberFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, m.ID, list[0].ID)

	other.Username = "Grace"
	assert.ErrorIs(t, repo.Update(ctx, other), repository.ErrDuplicate)
	other.Username = "torvalds"
	require.NoError(t, repo.Update(ctx, other))

	require.NoError(t, repo.Delete(ctx, m.ID))
	assert.ErrorIs(t, repo.Delete(ctx, m.ID), repository.ErrNotFound)
	_, err = repo.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.SetAccess(ctx, "not-an-id", domain.AccessAssets, true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func BugReports(t *testing.T, repo repository.BugReportRepository) {
	ctx := context.Background()

	first := &domain.BugReport{
		TicketNumber: 1, UserID: "u1", Username: "ada", Title: "Broken export",
		Description: "hangs", Rating: 2, Status: domain.BugReportStatusOpen,
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NotEmpty(t, first.ID)
	assert.Nil(t, first.ResolutionMessage)

	second := &domain.BugReport{
		TicketNumber: 2, UserID: "u2", Username: "bob", Title: "Typo",
		Description: "settings page", Rating: 5, Status: domain.BugReportStatusInProgress,
	}
	require.NoError(t, repo.Create(ctx, second))

	resolved := domain.BugReportStatusResolved
	msg := "Fixed"
	got, err := repo.Apply(ctx, first.ID, repository.BugReportChanges{Status: &resolved, ResolutionMessage: &msg})
	require.NoError(t, err)
	assert.Equal(t, domain.BugReportStatusResolved, got.Status)
	require.NotNil(t, got.ResolutionMessage)
	assert.Equal(t, "Fixed", *got.ResolutionMessage)
	assert.Equal(t, "Broken export", got.Title)

	list, err := repo.List(ctx, repository.BugReportFilter{Statuses: []domain.BugReportStatus{domain.BugReportStatusInProgress}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	list, err = repo.List(ctx, repository.BugReportFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[domain.BugReportStatusResolved])
	assert.Equal(t, int64(1), counts[domain.BugReportStatusInProgress])
	assert.Zero(t, counts[domain.BugReportStatusOpen])

	_, err = repo.Apply(ctx, "not-an-id", repository.BugReportChanges{Status: &resolved})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func SystemStates(t *testing.T, repo repository.SystemStateRepository) {
	ctx := context.Background()

	_, err := repo.Get(ctx, domain.SystemKeyGlobalCrash)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	state, err := repo.Upsert(ctx, domain.SystemKeyGlobalCrash, true)
	require.NoError(t, err)
	assert.True(t, state.Value)

	state, err = repo.Upsert(ctx, domain.SystemKeyGlobalCrash, false)
	require.NoError(t, err)
	assert.False(t, state.Value)

	got, err := repo.Get(ctx, domain.SystemKeyGlobalCrash)
	require.NoError(t, err)
	assert.False(t, got.Value)
}

// Usage only relies on keys it creates, so it also runs against shared stores.
func Usage(t *testing.T, repo repository.UsageRepository) {
	ctx := context.Background()
	userID := "user-" + uuid.NewString()

	_, err := repo.GetByUser(ctx, userID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Increment(ctx, userID, 12.5)
	require.NoError(t, err)
	u, err := repo.Increment(ctx, userID, 7.5)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, u.Seconds, 1e-9)

	got, err := repo.GetByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.InDelta(t, 20.0, got.Seconds, 1e-9)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	found := false
	for _, entry := range all {
		if entry.UserID == userID {
			found = true
		}
	}
	assert.True(t, found)
}

func Counters(t *testing.T, repo repository.CounterRepository) {
	ctx := context.Background()
	for want := int64(1); want <= 3; want++ {
		got, err := repo.Next(ctx, domain.CounterBugReport)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	other, err := repo.Next(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}
