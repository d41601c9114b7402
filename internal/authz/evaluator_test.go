package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentfuze/portal/internal/authz"
)

func internalPrincipal() *authz.Principal {
	return &authz.Principal{
		ID:    1,
		Email: "admin@talentfuze.com",
		Role:  "TalentFuze",
		Class: authz.ClassInternal,
		Permissions: []authz.Permission{
			authz.PermViewAllAgencies,
			authz.PermViewAllVAs,
			authz.PermViewAllCheckIns,
			authz.PermManageUsers,
		},
	}
}

func agencyPrincipal(agencyID int64) *authz.Principal {
	return &authz.Principal{
		ID:       2,
		Email:    "agency@example.com",
		Role:     "Agency",
		Class:    authz.ClassAgency,
		AgencyID: agencyID,
		Permissions: []authz.Permission{
			authz.PermViewOwnAgency,
			authz.PermViewAssignedVAs,
			authz.PermViewOwnCheckIns,
		},
	}
}

func vaPrincipal(vaID, agencyID int64) *authz.Principal {
	return &authz.Principal{
		ID:                 3,
		Email:              "va@example.com",
		Role:               "VirtualAssistant",
		Class:              authz.ClassVA,
		AgencyID:           agencyID,
		VirtualAssistantID: vaID,
		Permissions: []authz.Permission{
			authz.PermViewOwnProfile,
			authz.PermViewOwnCheckIns,
		},
	}
}

func TestHasPermission(t *testing.T) {
	p := agencyPrincipal(1)

	assert.True(t, authz.HasPermission(p, authz.PermViewOwnAgency))
	assert.False(t, authz.HasPermission(p, authz.PermManageRoles))
	assert.False(t, authz.HasPermission(nil, authz.PermViewOwnAgency))

	// Repeated evaluation must not mutate the principal.
	before := len(p.Permissions)
	_ = authz.HasPermission(p, authz.PermViewOwnAgency)
	_ = authz.HasPermission(p, authz.PermViewOwnAgency)
	assert.Equal(t, before, len(p.Permissions))
}

func TestCanViewAgency(t *testing.T) {
	admin := internalPrincipal()
	for _, id := range []int64{1, 2, 99} {
		assert.True(t, authz.CanViewAgency(admin, id), "internal sees agency %d", id)
	}

	agency := agencyPrincipal(1)
	assert.True(t, authz.CanViewAgency(agency, 1))
	assert.False(t, authz.CanViewAgency(agency, 2))

	va := vaPrincipal(1, 1)
	assert.True(t, authz.CanViewAgency(va, 1))
	assert.False(t, authz.CanViewAgency(va, 2))

	assert.False(t, authz.CanViewAgency(nil, 1))
	assert.False(t, authz.CanViewAgency(agency, 0))
}

func TestCanViewVirtualAssistant(t *testing.T) {
	admin := internalPrincipal()
	assert.True(t, authz.CanViewVirtualAssistant(admin, 5, 3))

	agency := agencyPrincipal(1)
	assert.True(t, authz.CanViewVirtualAssistant(agency, 7, 1))
	assert.False(t, authz.CanViewVirtualAssistant(agency, 7, 2))

	va := vaPrincipal(1, 1)
	assert.True(t, authz.CanViewVirtualAssistant(va, 1, 1))
	// A VA must never see a sibling VA in its own agency.
	assert.False(t, authz.CanViewVirtualAssistant(va, 2, 1))
	// Its own record stays visible regardless of the owning agency id given.
	assert.True(t, authz.CanViewVirtualAssistant(va, 1, 999))

	assert.False(t, authz.CanViewVirtualAssistant(nil, 1, 1))
}

func TestCanViewCheckIn(t *testing.T) {
	admin := internalPrincipal()
	assert.True(t, authz.CanViewCheckIn(admin, authz.CheckInRef{AgencyID: 4, VirtualAssistantID: 9}))

	agency := agencyPrincipal(1)
	assert.True(t, authz.CanViewCheckIn(agency, authz.CheckInRef{AgencyID: 1, VirtualAssistantID: 9}))
	assert.False(t, authz.CanViewCheckIn(agency, authz.CheckInRef{AgencyID: 2, VirtualAssistantID: 9}))

	va := vaPrincipal(3, 1)
	assert.True(t, authz.CanViewCheckIn(va, authz.CheckInRef{AgencyID: 2, VirtualAssistantID: 3}))
	assert.False(t, authz.CanViewCheckIn(va, authz.CheckInRef{AgencyID: 1, VirtualAssistantID: 4}))

	assert.False(t, authz.CanViewCheckIn(nil, authz.CheckInRef{AgencyID: 1, VirtualAssistantID: 1}))
}

func TestListScope(t *testing.T) {
	assert.Equal(t, authz.Scope{All: true}, authz.ListScope(internalPrincipal()))
	assert.Equal(t, authz.Scope{AgencyID: 2}, authz.ListScope(agencyPrincipal(2)))
	assert.Equal(t, authz.Scope{AgencyID: 1, VirtualAssistantID: 4}, authz.ListScope(vaPrincipal(4, 1)))
	assert.Equal(t, authz.Scope{Empty: true}, authz.ListScope(nil))

	// Scoped principals missing their scoping attribute see nothing, never
	// everything.
	assert.Equal(t, authz.Scope{Empty: true}, authz.ListScope(&authz.Principal{Class: authz.ClassAgency}))
	assert.Equal(t, authz.Scope{Empty: true}, authz.ListScope(&authz.Principal{Class: authz.ClassVA}))
}

func TestClassifyRole(t *testing.T) {
	assert.Equal(t, authz.ClassInternal, authz.ClassifyRole(true, 0, 0))
	assert.Equal(t, authz.ClassAgency, authz.ClassifyRole(false, 1, 0))
	// Scoping to a VA wins even when an agency id is also present.
	assert.Equal(t, authz.ClassVA, authz.ClassifyRole(false, 1, 2))
	assert.Equal(t, authz.ClassAgency, authz.ClassifyRole(false, 0, 0))
}
