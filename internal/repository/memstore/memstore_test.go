package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/repository"
	"github.com/studiosadmin/admin-console/internal/repository/repotest"
)

func TestMembersUniqueUsername(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	first := &domain.Member{Username: "alice", Password: "pw"}
	require.NoError(t, repos.Members.Create(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	err := repos.Members.Create(ctx, &domain.Member{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	all, err := repos.Members.List(ctx, repository.MemberFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMembersListOrderAndSearch(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	for _, name := range []string{"Zed", "amy", "Bob"} {
		require.NoError(t, repos.Members.Create(ctx, &domain.Member{Username: name, Password: "x"}))
	}

	all, err := repos.Members.List(ctx, repository.MemberFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Zed", all[0].Username)
	assert.Equal(t, "Bob", all[2].Username)

	found, err := repos.Members.List(ctx, repository.MemberFilter{Search: "B"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bob", found[0].Username)
}

func TestMembersSetAccess(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	m := &domain.Member{Username: "carol", Password: "pw", Access: domain.DefaultAccess()}
	require.NoError(t, repos.Members.Create(ctx, m))

	updated, err := repos.Members.SetAccess(ctx, m.ID, domain.AccessAssets, true)
	require.NoError(t, err)
	assert.True(t, updated.Access.Assets)
	assert.True(t, updated.Access.Dashboard)

	reloaded, err := repos.Members.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Access.Assets)

	_, err = repos.Members.SetAccess(ctx, "missing", domain.AccessAssets, true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMembersUpdateRejectsTakenUsername(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	a := &domain.Member{Username: "a", Password: "pw"}
	b := &domain.Member{Username: "b", Password: "pw"}
	require.NoError(t, repos.Members.Create(ctx, a))
	require.NoError(t, repos.Members.Create(ctx, b))

	b.Username = "a"
	assert.ErrorIs(t, repos.Members.Update(ctx, b), repository.ErrDuplicate)

	require.NoError(t, repos.Members.Delete(ctx, a.ID))
	assert.ErrorIs(t, repos.Members.Delete(ctx, a.ID), repository.ErrNotFound)
	assert.NoError(t, repos.Members.Update(ctx, b))
}

func TestBugReportsApplyMerges(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	report := &domain.BugReport{
		UserID: "u1", Username: "user", Title: "Broken", Description: "It broke",
		Rating: 2, Status: domain.BugReportStatusOpen,
	}
	require.NoError(t, repos.BugReports.Create(ctx, report))

	status := domain.BugReportStatusResolved
	msg := "fixed"
	updated, err := repos.BugReports.Apply(ctx, report.ID, repository.BugReportChanges{
		Status:            &status,
		ResolutionMessage: &msg,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BugReportStatusResolved, updated.Status)
	require.NotNil(t, updated.ResolutionMessage)
	assert.Equal(t, "fixed", *updated.ResolutionMessage)
	assert.Equal(t, "Broken", updated.Title)

	msg = "mutated after the call"
	reloaded, err := repos.BugReports.GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "fixed", *reloaded.ResolutionMessage)

	open, err := repos.BugReports.List(ctx, repository.BugReportFilter{Statuses: []domain.BugReportStatus{domain.BugReportStatusOpen}})
	require.NoError(t, err)
	assert.Empty(t, open)

	counts, err := repos.BugReports.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[domain.BugReportStatusResolved])
}

func TestSystemStateUpsertKeepsOneRecord(t *testing.T) {
	ctx := context.Background()
	s := New()
	repos := s.Repositories()

	_, err := repos.SystemStates.Get(ctx, domain.SystemKeyGlobalCrash)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	first, err := repos.SystemStates.Upsert(ctx, domain.SystemKeyGlobalCrash, true)
	require.NoError(t, err)
	second, err := repos.SystemStates.Upsert(ctx, domain.SystemKeyGlobalCrash, false)
	require.NoError(t, err)

	assert.False(t, second.Value)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Len(t, s.states, 1)
}

func TestUsageAndCounters(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	_, err := repos.Usage.Increment(ctx, "u1", 30)
	require.NoError(t, err)
	usage, err := repos.Usage.Increment(ctx, "u1", 12.5)
	require.NoError(t, err)
	assert.InDelta(t, 42.5, usage.Seconds, 1e-9)

	for want := int64(1); want <= 3; want++ {
		got, err := repos.Counters.Next(ctx, domain.CounterBugReport)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	size, err := repos.Stats.DataSize(ctx)
	require.NoError(t, err)
	assert.Positive(t, size)
}

func TestRepositoryBehaviour(t *testing.T) {
	repotest.Run(t, New().Repositories())
}
