package auth_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentfuze/portal/internal/auth"
	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/rbac"
	"github.com/talentfuze/portal/internal/shared"
	_ "github.com/talentfuze/portal/testing"
)

func newFixture(t *testing.T) (*auth.Service, *rbac.Service) {
	t.Helper()
	roles, users, err := rbac.DemoSeed("password123")
	require.NoError(t, err)
	repo := rbac.NewMemoryRepository(roles, users)
	return auth.NewService(repo, nil, nil), rbac.NewService(repo, nil, nil)
}

func TestLoginBuildsSnapshot(t *testing.T) {
	svc, _ := newFixture(t)

	principal, err := svc.Login(context.Background(), "agency1@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, "Agency Manager", principal.Name)
	assert.Equal(t, "Agency", principal.Role)
	assert.Equal(t, authz.ClassAgency, principal.Class)
	assert.Equal(t, int64(1), principal.AgencyID)
	assert.ElementsMatch(t, []authz.Permission{
		authz.PermViewDashboard,
		authz.PermViewOwnAgency,
		authz.PermViewAssignedVAs,
		authz.PermViewOwnCheckIns,
		authz.PermViewVARequests,
	}, principal.Permissions)
}

func TestLoginNeverLeaksPassword(t *testing.T) {
	svc, _ := newFixture(t)

	principal, err := svc.Login(context.Background(), "admin@talentfuze.com", "password123")
	require.NoError(t, err)

	raw, err := json.Marshal(principal)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(raw)), "password")
}

func TestLoginUniformFailureMessage(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, unknownErr := svc.Login(ctx, "nobody@example.com", "password123")
	_, wrongErr := svc.Login(ctx, "admin@talentfuze.com", "wrongpass")

	require.ErrorIs(t, unknownErr, shared.ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, shared.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginSnapshotIsStable(t *testing.T) {
	svc, roleStore := newFixture(t)
	ctx := context.Background()

	principal, err := svc.Login(ctx, "va1@example.com", "password123")
	require.NoError(t, err)
	require.False(t, principal.HasPermission(authz.PermViewAllVAs))

	// An administrator edits the role after login; the active session keeps
	// its snapshot until the user logs in again.
	_, err = roleStore.TogglePermission(ctx, principal.RoleID, authz.PermViewAllVAs)
	require.NoError(t, err)
	assert.False(t, principal.HasPermission(authz.PermViewAllVAs))

	relogged, err := svc.Login(ctx, "va1@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, relogged.HasPermission(authz.PermViewAllVAs))
}

func TestLoginVAClass(t *testing.T) {
	svc, _ := newFixture(t)

	principal, err := svc.Login(context.Background(), "va2@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, authz.ClassVA, principal.Class)
	assert.Equal(t, int64(2), principal.VirtualAssistantID)
	assert.Equal(t, int64(2), principal.AgencyID)
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.Login(context.Background(), "Admin@TalentFuze.com", "password123")
	assert.NoError(t, err)
}
