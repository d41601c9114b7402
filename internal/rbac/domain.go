// Package rbac implements the role store: roles, their permission sets and
// the users assigned to them.
package rbac

import (
	"time"

	"github.com/talentfuze/portal/internal/authz"
)

// RoleType distinguishes staffing-company roles from agency/VA roles.
type RoleType string

const (
	// RoleTypeInternal marks roles belonging to the staffing company.
	RoleTypeInternal RoleType = "internal"
	// RoleTypeExternal marks roles belonging to agencies and VAs.
	RoleTypeExternal RoleType = "external"
)

// Role is a named, reusable bundle of permissions assignable to users.
type Role struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        RoleType           `json:"type"`
	Permissions []authz.Permission `json:"permissions"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// HasPermission reports whether the role grants the permission.
func (r Role) HasPermission(key authz.Permission) bool {
	for _, held := range r.Permissions {
		if held == key {
			return true
		}
	}
	return false
}

// User is a portal account. The password hash never leaves the package
// boundary in serialized form.
type User struct {
	ID                 int64     `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	PasswordHash       string    `json:"-"`
	RoleID             int64     `json:"roleId"`
	AgencyID           int64     `json:"agencyId,omitempty"`
	VirtualAssistantID int64     `json:"virtualAssistantId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
