package vas

import "time"

// DemoRows returns the virtual assistants used by demo mode and tests.
// Agency ids line up with the agencies demo rows.
func DemoRows() []VirtualAssistant {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2023, time.September, 4, 0, 0, 0, 0, time.UTC)
	return []VirtualAssistant{
		{ID: 1, Name: "Maria Santos", Email: "va1@example.com", AgencyID: 1, RoleTitle: "Executive Assistant", Status: "active", StartDate: start, CreatedAt: now, UpdatedAt: now},
		{ID: 2, Name: "Jose Ramirez", Email: "va2@example.com", AgencyID: 2, RoleTitle: "Bookkeeper", Status: "active", StartDate: start, CreatedAt: now, UpdatedAt: now},
		{ID: 3, Name: "Liza Cruz", Email: "va3@example.com", AgencyID: 1, RoleTitle: "Social Media Manager", Status: "on_leave", StartDate: start, CreatedAt: now, UpdatedAt: now},
	}
}
