package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	jobmetrics "github.com/talentfuze/portal/internal/jobs"
)

const defaultAuditKeepDays = 365

// AuditRetentionHandler deletes audit log rows older than the retention
// window.
type AuditRetentionHandler struct {
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

// NewAuditRetentionHandler constructs the handler.
func NewAuditRetentionHandler(pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *AuditRetentionHandler {
	return &AuditRetentionHandler{pool: pool, logger: logger, metrics: metrics}
}

// ProcessTask implements asynq.Handler.
func (h *AuditRetentionHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	tracker := h.metrics.Track("audit_retention")
	var payload AuditRetentionPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	keepDays := payload.KeepDays
	if keepDays <= 0 {
		keepDays = defaultAuditKeepDays
	}
	tag, err := h.pool.Exec(ctx,
		`DELETE FROM audit_logs WHERE occurred_at < NOW() - make_interval(days => $1)`, keepDays)
	if err != nil {
		return tracker.End(err)
	}
	if h.logger != nil {
		h.logger.Info("audit retention",
			slog.Int("keep_days", keepDays),
			slog.Int64("deleted", tag.RowsAffected()))
	}
	return tracker.End(nil)
}
