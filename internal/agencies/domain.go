// Package agencies implements the agency data service. Every read is scoped
// through the authorization predicates and every write re-checks the manage
// permission before touching state.
package agencies

import "time"

// Agency represents a client agency on the platform.
type Agency struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
