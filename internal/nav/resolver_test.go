package nav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/nav"
)

func principalWith(class authz.RoleClass, perms ...authz.Permission) *authz.Principal {
	return &authz.Principal{ID: 1, Class: class, Permissions: perms}
}

func TestResolveInternalAdmin(t *testing.T) {
	p := principalWith(authz.ClassInternal,
		authz.PermViewDashboard,
		authz.PermViewAllAgencies,
		authz.PermViewAllVAs,
		authz.PermViewAllCheckIns,
		authz.PermViewVARequests,
		authz.PermManageRoles,
	)

	items := nav.Resolve(p)
	require.Len(t, items, 6)
	assert.Equal(t, nav.Item{Path: "/", Label: "Dashboard", Icon: "LayoutDashboard"}, items[0])
	assert.Equal(t, "Agencies", items[1].Label)
	assert.Equal(t, "Virtual Assistants", items[2].Label)
	assert.Equal(t, "Check-ins", items[3].Label)
	assert.Equal(t, "VA Requests", items[4].Label)
	assert.Equal(t, nav.Item{Path: "/roles", Label: "Role Management", Icon: "Shield"}, items[5])
}

func TestResolveAgencyManagerScenario(t *testing.T) {
	// Role "Agency Manager": view_dashboard, view_own_agency,
	// view_assigned_vas, assigned to agencyId 1.
	p := principalWith(authz.ClassAgency,
		authz.PermViewDashboard,
		authz.PermViewOwnAgency,
		authz.PermViewAssignedVAs,
	)
	p.AgencyID = 1

	items := nav.Resolve(p)
	require.Len(t, items, 3)
	assert.Equal(t, "Dashboard", items[0].Label)
	assert.Equal(t, nav.Item{Path: "/agencies", Label: "My Agency", Icon: "Building2"}, items[1])
	assert.Equal(t, nav.Item{Path: "/virtual-assistants", Label: "My Virtual Assistants", Icon: "Users"}, items[2])
	for _, item := range items {
		assert.NotEqual(t, "/roles", item.Path, "role management must stay hidden")
	}
}

func TestResolveLabelVariantPriority(t *testing.T) {
	// Holding both the all-access and the assigned-only permission yields
	// the all-access label, and the path appears only once.
	p := principalWith(authz.ClassInternal, authz.PermViewAllVAs, authz.PermViewAssignedVAs)

	items := nav.Resolve(p)
	require.Len(t, items, 1)
	assert.Equal(t, "Virtual Assistants", items[0].Label)
}

func TestResolveVAProfileLabel(t *testing.T) {
	p := principalWith(authz.ClassVA, authz.PermViewOwnProfile, authz.PermViewOwnCheckIns)

	items := nav.Resolve(p)
	require.Len(t, items, 2)
	assert.Equal(t, "My Profile", items[0].Label)
	assert.Equal(t, "My Check-ins", items[1].Label)
}

func TestResolveDeterministic(t *testing.T) {
	p := principalWith(authz.ClassInternal,
		authz.PermManageRoles,
		authz.PermViewDashboard,
		authz.PermViewAllCheckIns,
	)

	first := nav.Resolve(p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, nav.Resolve(p))
	}
	// Dashboard leads regardless of permission slice order.
	assert.Equal(t, "/", first[0].Path)
}

func TestResolveNilPrincipal(t *testing.T) {
	assert.Empty(t, nav.Resolve(nil))
}

func TestResolveNoPermissions(t *testing.T) {
	assert.Empty(t, nav.Resolve(principalWith(authz.ClassAgency)))
}
