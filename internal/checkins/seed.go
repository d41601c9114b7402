package checkins

import "time"

// DemoRows returns the check-ins used by demo mode and tests. Agency and VA
// ids line up with the other demo seeds.
func DemoRows() []CheckIn {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	week := time.Date(2024, time.February, 26, 0, 0, 0, 0, time.UTC)
	return []CheckIn{
		{ID: 1, AgencyID: 1, VirtualAssistantID: 1, WeekOf: week, Status: "submitted", Notes: "All tasks on track.", CreatedAt: now, UpdatedAt: now},
		{ID: 2, AgencyID: 2, VirtualAssistantID: 2, WeekOf: week, Status: "flagged", Notes: "Client unresponsive this week.", CreatedAt: now, UpdatedAt: now},
		{ID: 3, AgencyID: 1, VirtualAssistantID: 3, WeekOf: week, Status: "pending", CreatedAt: now, UpdatedAt: now},
	}
}
