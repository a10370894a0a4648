package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/events"
	"github.com/studiosadmin/admin-console/internal/repository"
)

func TestCreateMemberAppliesDefaultAccess(t *testing.T) {
	f := newFixture(t)

	m, err := f.members.Create(context.Background(), CreateMemberInput{
		Username: "  alice ",
		Password: "pw",
		Access:   domain.AccessPatch{domain.AccessAssets: boolPtr(true), domain.AccessDashboard: boolPtr(false)},
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", m.Username)
	assert.True(t, m.Access.Assets)
	assert.False(t, m.Access.Dashboard)
	assert.True(t, m.Access.Settings)
	assert.True(t, m.Access.BugReport)
	assert.False(t, m.Access.Developer)
	assert.Equal(t, []events.EventType{events.EventMemberCreated}, f.events.types())
}

func TestCreateMemberDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.members.Create(ctx, CreateMemberInput{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	_, err = f.members.Create(ctx, CreateMemberInput{Username: "bob", Password: "other"})
	de := requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, "Username already exists.", de.Message)

	all, err := f.repos.Members.List(ctx, repository.MemberFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateMemberRequiresCredentials(t *testing.T) {
	f := newFixture(t)

	_, err := f.members.Create(context.Background(), CreateMemberInput{Username: " ", Password: "pw"})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = f.members.Create(context.Background(), CreateMemberInput{Username: "x"})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestSetAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.members.Create(ctx, CreateMemberInput{Username: "carol", Password: "pw"})
	require.NoError(t, err)

	for _, field := range domain.AccessFields() {
		updated, err := f.members.SetAccess(ctx, m.ID, string(field), true)
		require.NoError(t, err, field)
		assert.True(t, updated.Access.Get(field), field)
	}

	reloaded, err := f.members.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Access.Developer)

	_, err = f.members.SetAccess(ctx, m.ID, "password", true)
	de := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid access field.", de.Message)

	_, err = f.members.SetAccess(ctx, "missing", string(domain.AccessAssets), true)
	de = requireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Member not found.", de.Message)

	e := f.events.last()
	assert.Equal(t, events.EventMemberAccessChanged, e.Type)
}

func TestUpdateMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.members.Create(ctx, CreateMemberInput{Username: "dave", Password: "secret"})
	require.NoError(t, err)
	_, err = f.members.Create(ctx, CreateMemberInput{Username: "erin", Password: "pw"})
	require.NoError(t, err)

	updated, err := f.members.Update(ctx, m.ID, UpdateMemberInput{
		Username: strPtr("david"),
		Password: strPtr(""),
		Access:   domain.AccessPatch{domain.AccessIDCard: boolPtr(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, "david", updated.Username)
	assert.Equal(t, "secret", updated.Password)
	assert.True(t, updated.Access.IDCard)
	assert.True(t, updated.Access.Dashboard)

	_, err = f.members.Update(ctx, m.ID, UpdateMemberInput{Username: strPtr("erin")})
	requireStatus(t, err, http.StatusConflict)

	_, err = f.members.Update(ctx, m.ID, UpdateMemberInput{Username: strPtr("david")})
	require.NoError(t, err)

	_, err = f.members.Update(ctx, "missing", UpdateMemberInput{})
	requireStatus(t, err, http.StatusNotFound)
}

func TestDeleteMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.members.Create(ctx, CreateMemberInput{Username: "frank", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, f.members.Delete(ctx, m.ID))
	requireStatus(t, f.members.Delete(ctx, m.ID), http.StatusNotFound)

	_, err = f.members.Get(ctx, m.ID)
	requireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, events.EventMemberDeleted, f.events.last().Type)
}

func TestListMembersSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Grace", "heidi", "graham"} {
		_, err := f.members.Create(ctx, CreateMemberInput{Username: name, Password: "pw"})
		require.NoError(t, err)
	}

	found, err := f.members.List(ctx, "gra")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Grace", found[0].Username)
	assert.Equal(t, "graham", found[1].Username)
}
