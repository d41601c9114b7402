// Package vas implements the virtual assistant data service. Reads are
// scoped per principal class, which is where the own-record rule for VA
// logins is enforced: a VA never sees a sibling from the same agency.
package vas

import "time"

// VirtualAssistant represents a VA placed with an agency.
type VirtualAssistant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AgencyID  int64     `json:"agencyId"`
	RoleTitle string    `json:"roleTitle"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"startDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
