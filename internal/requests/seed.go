package requests

import "time"

// DemoRows returns the VA requests used by demo mode and tests.
func DemoRows() []VARequest {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	return []VARequest{
		{ID: 1, AgencyID: 1, RoleTitle: "Customer Support VA", Description: "Full-time, US business hours.", Status: "open", CreatedAt: now, UpdatedAt: now},
		{ID: 2, AgencyID: 2, RoleTitle: "Video Editor", Description: "Part-time to start.", Status: "interviewing", CreatedAt: now, UpdatedAt: now},
	}
}
