// Package checkins implements the weekly check-in data service.
package checkins

import "time"

// CheckIn represents a weekly status report filed for a VA placement.
type CheckIn struct {
	ID                 int64     `json:"id"`
	AgencyID           int64     `json:"agencyId"`
	VirtualAssistantID int64     `json:"virtualAssistantId"`
	WeekOf             time.Time `json:"weekOf"`
	Status             string    `json:"status"`
	Notes              string    `json:"notes"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
