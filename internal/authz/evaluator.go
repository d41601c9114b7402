package authz

// The predicates below are pure and never return an error: a missing
// principal or malformed descriptor resolves to false so callers can use them
// as plain row filters.

// HasPermission reports whether key is a member of the principal's snapshot.
func HasPermission(p *Principal, key Permission) bool {
	if p == nil {
		return false
	}
	for _, held := range p.Permissions {
		if held == key {
			return true
		}
	}
	return false
}

// CanViewAgency reports whether the principal may see the agency. Internal
// principals see every agency; agency and VA principals only their own.
func CanViewAgency(p *Principal, agencyID int64) bool {
	if p == nil || agencyID == 0 {
		return false
	}
	switch p.Class {
	case ClassInternal:
		return true
	case ClassAgency, ClassVA:
		return p.AgencyID == agencyID
	}
	return false
}

// CanViewVirtualAssistant reports whether the principal may see the VA
// record. A VA principal only ever sees its own record, never a sibling in
// the same agency, which is why the owning agency id is ignored for it.
func CanViewVirtualAssistant(p *Principal, vaID, owningAgencyID int64) bool {
	if p == nil || vaID == 0 {
		return false
	}
	switch p.Class {
	case ClassInternal:
		return true
	case ClassAgency:
		return owningAgencyID != 0 && p.AgencyID == owningAgencyID
	case ClassVA:
		return p.VirtualAssistantID == vaID
	}
	return false
}

// CheckInRef carries the scoping identifiers of a check-in record.
type CheckInRef struct {
	AgencyID           int64
	VirtualAssistantID int64
}

// CanViewCheckIn reports whether the principal may see the check-in.
func CanViewCheckIn(p *Principal, ref CheckInRef) bool {
	if p == nil {
		return false
	}
	switch p.Class {
	case ClassInternal:
		return true
	case ClassAgency:
		return ref.AgencyID != 0 && p.AgencyID == ref.AgencyID
	case ClassVA:
		return ref.VirtualAssistantID != 0 && p.VirtualAssistantID == ref.VirtualAssistantID
	}
	return false
}

// Scope describes the row filter a principal is entitled to on list
// operations. Data services consult it before returning collections.
type Scope struct {
	// All grants the unfiltered collection.
	All bool
	// Empty forces an empty result set. Set for absent principals.
	Empty bool
	// AgencyID, when non-zero, restricts rows to one agency.
	AgencyID int64
	// VirtualAssistantID, when non-zero, restricts rows to one VA.
	VirtualAssistantID int64
}

// ListScope resolves the list-scoping rule for the principal: internal staff
// receive everything, agency principals their agency's rows, VA principals
// their own row, and an absent principal an empty set rather than an error.
func ListScope(p *Principal) Scope {
	if p == nil {
		return Scope{Empty: true}
	}
	switch p.Class {
	case ClassInternal:
		return Scope{All: true}
	case ClassAgency:
		if p.AgencyID == 0 {
			return Scope{Empty: true}
		}
		return Scope{AgencyID: p.AgencyID}
	case ClassVA:
		if p.VirtualAssistantID == 0 {
			return Scope{Empty: true}
		}
		return Scope{AgencyID: p.AgencyID, VirtualAssistantID: p.VirtualAssistantID}
	}
	return Scope{Empty: true}
}
