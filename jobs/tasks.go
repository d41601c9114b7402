// Package jobs holds the background task definitions and the Asynq worker
// that runs them.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAuditRetention trims old rows from audit_logs.
	TaskAuditRetention = "audit:retention"
	// TaskCheckInOpen files pending check-ins for the current week.
	TaskCheckInOpen = "checkin:open"
)

// AuditRetentionPayload controls how far back audit logs are kept.
type AuditRetentionPayload struct {
	KeepDays int `json:"keepDays"`
}

// NewAuditRetentionTask constructs an audit retention task.
func NewAuditRetentionTask(payload AuditRetentionPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditRetention, data), nil
}

// NewCheckInOpenTask constructs a weekly check-in opener task.
func NewCheckInOpenTask() *asynq.Task {
	return asynq.NewTask(TaskCheckInOpen, nil)
}
