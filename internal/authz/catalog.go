// Package authz holds the permission catalog, the principal model and the
// pure authorization predicates used by every access decision in the portal.
package authz

// Permission identifies an atomic capability a role can grant.
type Permission string

// Catalog of portal permissions. Call sites reference these constants so an
// unknown key is a compile error rather than a check that silently fails.
const (
	PermViewDashboard Permission = "view_dashboard"
	PermViewRevenue   Permission = "view_revenue"

	PermViewAllAgencies Permission = "view_all_agencies"
	PermViewOwnAgency   Permission = "view_own_agency"
	PermManageAgencies  Permission = "manage_agencies"

	PermViewAllVAs      Permission = "view_all_vas"
	PermViewAssignedVAs Permission = "view_assigned_vas"
	PermViewOwnProfile  Permission = "view_own_profile"
	PermManageVAs       Permission = "manage_vas"

	PermViewAllCheckIns Permission = "view_all_checkins"
	PermViewOwnCheckIns Permission = "view_own_checkins"
	PermManageCheckIns  Permission = "manage_checkins"

	PermViewVARequests   Permission = "view_va_requests"
	PermManageVARequests Permission = "manage_va_requests"

	PermManageUsers Permission = "manage_users"
	PermManageRoles Permission = "manage_roles"
)

// Descriptor pairs a permission key with its label and grouping category for
// the role management screens.
type Descriptor struct {
	Key      Permission `json:"key"`
	Label    string     `json:"label"`
	Category string     `json:"category"`
}

var catalog = []Descriptor{
	{Key: PermViewDashboard, Label: "View Dashboard", Category: "Dashboard"},
	{Key: PermViewRevenue, Label: "View Revenue Data", Category: "Dashboard"},
	{Key: PermViewAllAgencies, Label: "View All Agencies", Category: "Agencies"},
	{Key: PermViewOwnAgency, Label: "View Own Agency", Category: "Agencies"},
	{Key: PermManageAgencies, Label: "Manage Agencies", Category: "Agencies"},
	{Key: PermViewAllVAs, Label: "View All Virtual Assistants", Category: "VAs"},
	{Key: PermViewAssignedVAs, Label: "View Assigned VAs", Category: "VAs"},
	{Key: PermViewOwnProfile, Label: "View Own Profile", Category: "VAs"},
	{Key: PermManageVAs, Label: "Manage Virtual Assistants", Category: "VAs"},
	{Key: PermViewAllCheckIns, Label: "View All Check-ins", Category: "Check-ins"},
	{Key: PermViewOwnCheckIns, Label: "View Own Check-ins", Category: "Check-ins"},
	{Key: PermManageCheckIns, Label: "Manage Check-ins", Category: "Check-ins"},
	{Key: PermViewVARequests, Label: "View VA Requests", Category: "Requests"},
	{Key: PermManageVARequests, Label: "Manage VA Requests", Category: "Requests"},
	{Key: PermManageUsers, Label: "Manage Users", Category: "Administration"},
	{Key: PermManageRoles, Label: "Manage Roles", Category: "Administration"},
}

// Catalog returns every permission descriptor in display order.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// CategoryGroup holds the descriptors belonging to one catalog category.
type CategoryGroup struct {
	Category    string       `json:"category"`
	Permissions []Descriptor `json:"permissions"`
}

// CatalogByCategory groups the catalog by category, preserving the order in
// which categories first appear.
func CatalogByCategory() []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)
	for _, d := range catalog {
		i, ok := index[d.Category]
		if !ok {
			i = len(groups)
			index[d.Category] = i
			groups = append(groups, CategoryGroup{Category: d.Category})
		}
		groups[i].Permissions = append(groups[i].Permissions, d)
	}
	return groups
}

// KnownPermission reports whether key belongs to the catalog. The role store
// rejects toggles of unknown keys with this check.
func KnownPermission(key Permission) bool {
	for _, d := range catalog {
		if d.Key == key {
			return true
		}
	}
	return false
}
