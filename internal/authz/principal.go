package authz

// RoleClass partitions roles by the record visibility they imply. Predicates
// switch on this closed set instead of comparing free-form role names.
type RoleClass string

const (
	// ClassInternal marks staff roles with visibility over every record.
	ClassInternal RoleClass = "internal"
	// ClassAgency marks roles scoped to a single agency's records.
	ClassAgency RoleClass = "agency"
	// ClassVA marks roles scoped to a single virtual assistant's records.
	ClassVA RoleClass = "virtual_assistant"
)

// ClassifyRole derives the role class from the role type and the scoping
// attributes present on the user. External users carrying a virtual assistant
// id are VA-scoped even when they also carry an agency id.
func ClassifyRole(internal bool, agencyID, virtualAssistantID int64) RoleClass {
	if internal {
		return ClassInternal
	}
	if virtualAssistantID != 0 {
		return ClassVA
	}
	return ClassAgency
}

// Principal is the authenticated view of a user: identity, role class and the
// permission set snapshotted at login. It never carries credentials.
type Principal struct {
	ID                 int64        `json:"id"`
	Email              string       `json:"email"`
	Name               string       `json:"name"`
	Role               string       `json:"role"`
	RoleID             int64        `json:"roleId,omitempty"`
	Class              RoleClass    `json:"class"`
	AgencyID           int64        `json:"agencyId,omitempty"`
	VirtualAssistantID int64        `json:"virtualAssistantId,omitempty"`
	Permissions        []Permission `json:"permissions"`
}

// HasPermission reports whether the principal holds the permission.
func (p *Principal) HasPermission(key Permission) bool {
	return HasPermission(p, key)
}
