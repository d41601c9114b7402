package agencies

import "time"

// DemoRows returns the agencies used by demo mode and tests.
func DemoRows() []Agency {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	return []Agency{
		{ID: 1, Name: "Scale Digital", ContactName: "Dana Reyes", ContactEmail: "dana@scaledigital.example", Status: "active", CreatedAt: now, UpdatedAt: now},
		{ID: 2, Name: "Northwind Media", ContactName: "Chris Alvarez", ContactEmail: "chris@northwind.example", Status: "active", CreatedAt: now, UpdatedAt: now},
		{ID: 3, Name: "Brightside Commerce", ContactName: "Sam Okafor", ContactEmail: "sam@brightside.example", Status: "paused", CreatedAt: now, UpdatedAt: now},
	}
}
