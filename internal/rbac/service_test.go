package rbac_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/rbac"
	"github.com/talentfuze/portal/internal/shared"
	_ "github.com/talentfuze/portal/testing"
)

func newService(t *testing.T) *rbac.Service {
	t.Helper()
	roles, users, err := rbac.DemoSeed("password123")
	require.NoError(t, err)
	repo := rbac.NewMemoryRepository(roles, users)
	return rbac.NewService(repo, nil, nil)
}

func TestCreateRoleAssignsNextID(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	existing, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	var maxID int64
	for _, r := range existing {
		if r.ID > maxID {
			maxID = r.ID
		}
	}

	role, err := svc.CreateRole(ctx, rbac.CreateRoleInput{
		Name:        "Ops",
		Description: "desc",
		Type:        rbac.RoleTypeInternal,
		Permissions: []authz.Permission{authz.PermViewDashboard},
	})
	require.NoError(t, err)
	assert.Equal(t, maxID+1, role.ID)
	assert.Equal(t, rbac.RoleTypeInternal, role.Type)
	assert.True(t, role.HasPermission(authz.PermViewDashboard))
}

func TestCreateRoleValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateRole(ctx, rbac.CreateRoleInput{Name: "", Description: "desc", Type: rbac.RoleTypeExternal})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.CreateRole(ctx, rbac.CreateRoleInput{Name: "   ", Description: "desc"})
	assert.ErrorIs(t, err, shared.ErrValidation)

	// Duplicate of a seeded role name.
	_, err = svc.CreateRole(ctx, rbac.CreateRoleInput{Name: "Agency", Description: "dup"})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.CreateRole(ctx, rbac.CreateRoleInput{Name: "Bad Perms", Permissions: []authz.Permission{"view_everything"}})
	assert.ErrorIs(t, err, shared.ErrValidation)

	// Type defaults to external when omitted.
	role, err := svc.CreateRole(ctx, rbac.CreateRoleInput{Name: "Untyped"})
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleTypeExternal, role.Type)
}

func TestTogglePermissionInvolution(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	role, err := svc.GetRole(ctx, 2)
	require.NoError(t, err)
	original := append([]authz.Permission(nil), role.Permissions...)
	key := authz.PermManageCheckIns
	require.False(t, role.HasPermission(key))

	toggled, err := svc.TogglePermission(ctx, role.ID, key)
	require.NoError(t, err)
	assert.True(t, toggled.HasPermission(key))

	reverted, err := svc.TogglePermission(ctx, role.ID, key)
	require.NoError(t, err)
	assert.False(t, reverted.HasPermission(key))
	assert.ElementsMatch(t, original, reverted.Permissions)
}

func TestTogglePermissionRejectsUnknownKey(t *testing.T) {
	svc := newService(t)

	_, err := svc.TogglePermission(context.Background(), 2, authz.Permission("view_everthing"))
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.TogglePermission(context.Background(), 99, authz.PermViewDashboard)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteRoleBlockedByAssignedUsers(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	// Role 2 (Agency) has seeded users.
	err := svc.DeleteRole(ctx, 2)
	require.ErrorIs(t, err, shared.ErrConflict)
	assert.Contains(t, err.Error(), "role has assigned users")

	// Still present afterwards: the aborted delete left no partial state.
	_, err = svc.GetRole(ctx, 2)
	require.NoError(t, err)

	// An unreferenced role deletes cleanly.
	role, err := svc.CreateRole(ctx, rbac.CreateRoleInput{Name: "Ephemeral"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRole(ctx, role.ID))
	_, err = svc.GetRole(ctx, role.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteRole(ctx, 99), shared.ErrNotFound)
}

func TestUpdateRoleMergesPartialFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	desc := "updated description"
	role, err := svc.UpdateRole(ctx, 3, rbac.UpdateRoleInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "VirtualAssistant", role.Name)
	assert.Equal(t, desc, role.Description)

	dup := "Agency"
	_, err = svc.UpdateRole(ctx, 3, rbac.UpdateRoleInput{Name: &dup})
	assert.ErrorIs(t, err, shared.ErrValidation)

	// Renaming a role to its current name is not a duplicate.
	same := "VirtualAssistant"
	_, err = svc.UpdateRole(ctx, 3, rbac.UpdateRoleInput{Name: &same})
	assert.NoError(t, err)

	_, err = svc.UpdateRole(ctx, 42, rbac.UpdateRoleInput{Description: &desc})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateUserRole(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	user, err := svc.UpdateUserRole(ctx, 6, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), user.RoleID)

	_, err = svc.UpdateUserRole(ctx, 6, 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.UpdateUserRole(ctx, 99, 4)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListUsersByRole(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	users, err := svc.ListUsersByRole(ctx, 2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Equal(t, int64(2), u.RoleID)
	}
}
