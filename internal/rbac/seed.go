package rbac

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/talentfuze/portal/internal/authz"
)

// DemoSeed returns the demo roles and users used by the in-memory store.
// Every account shares the given password, hashed once here.
func DemoSeed(password string) ([]Role, []User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	roles := []Role{
		{
			ID:          1,
			Name:        "TalentFuze",
			Description: "Internal staff with visibility over the whole platform",
			Type:        RoleTypeInternal,
			Permissions: []authz.Permission{
				authz.PermViewDashboard, authz.PermViewRevenue,
				authz.PermViewAllAgencies, authz.PermManageAgencies,
				authz.PermViewAllVAs, authz.PermManageVAs,
				authz.PermViewAllCheckIns, authz.PermManageCheckIns,
				authz.PermViewVARequests, authz.PermManageVARequests,
				authz.PermManageUsers, authz.PermManageRoles,
			},
		},
		{
			ID:          2,
			Name:        "Agency",
			Description: "Agency managers scoped to their own agency",
			Type:        RoleTypeExternal,
			Permissions: []authz.Permission{
				authz.PermViewDashboard,
				authz.PermViewOwnAgency,
				authz.PermViewAssignedVAs,
				authz.PermViewOwnCheckIns,
				authz.PermViewVARequests,
			},
		},
		{
			ID:          3,
			Name:        "VirtualAssistant",
			Description: "Virtual assistants scoped to their own profile",
			Type:        RoleTypeExternal,
			Permissions: []authz.Permission{
				authz.PermViewDashboard,
				authz.PermViewOwnProfile,
				authz.PermViewOwnCheckIns,
			},
		},
		{
			ID:          4,
			Name:        "VA Mentor",
			Description: "Internal mentors overseeing all virtual assistants",
			Type:        RoleTypeInternal,
			Permissions: []authz.Permission{
				authz.PermViewDashboard,
				authz.PermViewAllVAs,
				authz.PermViewAllCheckIns,
			},
		},
		{
			ID:          5,
			Name:        "Operations Manager",
			Description: "Internal operations staff handling staffing requests",
			Type:        RoleTypeInternal,
			Permissions: []authz.Permission{
				authz.PermViewDashboard, authz.PermViewRevenue,
				authz.PermViewAllAgencies, authz.PermViewAllVAs,
				authz.PermViewAllCheckIns,
				authz.PermViewVARequests, authz.PermManageVARequests,
			},
		},
	}

	users := []User{
		{ID: 1, Email: "admin@talentfuze.com", Name: "TalentFuze Admin", PasswordHash: string(hash), RoleID: 1},
		{ID: 2, Email: "mentor@talentfuze.com", Name: "VA Mentor", PasswordHash: string(hash), RoleID: 4},
		{ID: 3, Email: "operations@talentfuze.com", Name: "Operations Manager", PasswordHash: string(hash), RoleID: 5},
		{ID: 4, Email: "agency1@example.com", Name: "Agency Manager", PasswordHash: string(hash), RoleID: 2, AgencyID: 1},
		{ID: 5, Email: "agency2@example.com", Name: "Agency Manager 2", PasswordHash: string(hash), RoleID: 2, AgencyID: 2},
		{ID: 6, Email: "va1@example.com", Name: "Virtual Assistant", PasswordHash: string(hash), RoleID: 3, AgencyID: 1, VirtualAssistantID: 1},
		{ID: 7, Email: "va2@example.com", Name: "Virtual Assistant 2", PasswordHash: string(hash), RoleID: 3, AgencyID: 2, VirtualAssistantID: 2},
	}

	return roles, users, nil
}
