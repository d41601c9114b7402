package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	jobmetrics "github.com/talentfuze/portal/internal/jobs"
)

// CheckInOpenHandler files a pending check-in for every active VA that does
// not already have one for the current week. Runs from the Monday cron.
type CheckInOpenHandler struct {
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

// NewCheckInOpenHandler constructs the handler.
func NewCheckInOpenHandler(pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *CheckInOpenHandler {
	return &CheckInOpenHandler{pool: pool, logger: logger, metrics: metrics}
}

// ProcessTask implements asynq.Handler.
func (h *CheckInOpenHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	tracker := h.metrics.Track("checkin_open")
	tag, err := h.pool.Exec(ctx, `
		INSERT INTO check_ins (agency_id, virtual_assistant_id, week_of, status, notes)
		SELECT v.agency_id, v.id, date_trunc('week', NOW())::date, 'pending', ''
		FROM virtual_assistants v
		WHERE v.status = 'active'
		AND NOT EXISTS (
			SELECT 1 FROM check_ins c
			WHERE c.virtual_assistant_id = v.id
			AND c.week_of = date_trunc('week', NOW())::date
		)`)
	if err != nil {
		return tracker.End(err)
	}
	if h.logger != nil {
		h.logger.Info("weekly check-ins opened", slog.Int64("created", tag.RowsAffected()))
	}
	return tracker.End(nil)
}
