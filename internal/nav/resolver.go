// Package nav derives the navigation entries visible to a principal.
package nav

import "github.com/talentfuze/portal/internal/authz"

// Item is one navigation entry for the UI shell.
type Item struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// variant is one permission-gated label for a candidate entry. The first
// variant whose permission the principal holds wins.
type variant struct {
	permission authz.Permission
	label      string
}

type candidate struct {
	path     string
	icon     string
	variants []variant
}

// Candidates are evaluated in this fixed order, dashboard first, so the
// resolved list is deterministic for a given principal.
var candidates = []candidate{
	{
		path: "/",
		icon: "LayoutDashboard",
		variants: []variant{
			{authz.PermViewDashboard, "Dashboard"},
		},
	},
	{
		path: "/agencies",
		icon: "Building2",
		variants: []variant{
			{authz.PermViewAllAgencies, "Agencies"},
			{authz.PermViewOwnAgency, "My Agency"},
		},
	},
	{
		path: "/virtual-assistants",
		icon: "Users",
		variants: []variant{
			{authz.PermViewAllVAs, "Virtual Assistants"},
			{authz.PermViewAssignedVAs, "My Virtual Assistants"},
			{authz.PermViewOwnProfile, "My Profile"},
		},
	},
	{
		path: "/check-ins",
		icon: "CheckSquare",
		variants: []variant{
			{authz.PermViewAllCheckIns, "Check-ins"},
			{authz.PermViewOwnCheckIns, "My Check-ins"},
		},
	},
	{
		path: "/va-requests",
		icon: "ClipboardList",
		variants: []variant{
			{authz.PermViewVARequests, "VA Requests"},
		},
	},
	{
		path: "/roles",
		icon: "Shield",
		variants: []variant{
			{authz.PermManageRoles, "Role Management"},
		},
	},
}

// Resolve returns the navigation entries the principal may see, in fixed
// priority order. Each path appears at most once; when several permissions
// map to the same path the most privileged label wins.
func Resolve(p *authz.Principal) []Item {
	if p == nil {
		return nil
	}
	items := make([]Item, 0, len(candidates))
	for _, c := range candidates {
		for _, v := range c.variants {
			if authz.HasPermission(p, v.permission) {
				items = append(items, Item{Path: c.path, Label: v.label, Icon: c.icon})
				break
			}
		}
	}
	return items
}
