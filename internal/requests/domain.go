// Package requests implements the VA request pipeline: agencies ask for a
// new placement, internal staff work the request through its lifecycle.
package requests

import "time"

// VARequest represents an agency's request for a new VA placement.
type VARequest struct {
	ID          int64     `json:"id"`
	AgencyID    int64     `json:"agencyId"`
	RoleTitle   string    `json:"roleTitle"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
