package checkins

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/session"
	"github.com/talentfuze/portal/internal/shared"
)

// Service applies authorization scoping on top of the repository. A check-in
// is visible to internal staff, to its agency, and to its VA.
type Service struct {
	repo   Repository
	audit  *shared.AuditLogger
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(repo Repository, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// CreateCheckInInput carries the fields for a new check-in.
type CreateCheckInInput struct {
	AgencyID           int64
	VirtualAssistantID int64
	WeekOf             time.Time
	Status             string
	Notes              string
}

// UpdateCheckInInput carries partial updates. Nil fields keep their values.
type UpdateCheckInInput struct {
	Status *string
	Notes  *string
}

// List returns the check-ins visible to the calling principal.
func (s *Service) List(ctx context.Context) ([]CheckIn, error) {
	p := session.CurrentPrincipal(ctx)
	if authz.ListScope(p).Empty {
		return []CheckIn{}, nil
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]CheckIn, 0, len(all))
	for _, c := range all {
		if authz.CanViewCheckIn(p, ref(c)) {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

// Get fetches one check-in. Records outside the caller's scope read as
// absent.
func (s *Service) Get(ctx context.Context, id int64) (CheckIn, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return CheckIn{}, err
	}
	if !authz.CanViewCheckIn(session.CurrentPrincipal(ctx), ref(c)) {
		return CheckIn{}, shared.ErrNotFound
	}
	return c, nil
}

// Create files a new check-in. Requires manage_checkins.
func (s *Service) Create(ctx context.Context, input CreateCheckInInput) (CheckIn, error) {
	if err := s.requireManage(ctx); err != nil {
		return CheckIn{}, err
	}
	if input.AgencyID <= 0 || input.VirtualAssistantID <= 0 {
		return CheckIn{}, fmt.Errorf("%w: agency and virtual assistant are required", shared.ErrValidation)
	}
	weekOf := input.WeekOf
	if weekOf.IsZero() {
		weekOf = startOfWeek(time.Now().UTC())
	}
	status := input.Status
	if status == "" {
		status = "pending"
	}
	created, err := s.repo.Create(ctx, CheckIn{
		AgencyID:           input.AgencyID,
		VirtualAssistantID: input.VirtualAssistantID,
		WeekOf:             weekOf,
		Status:             status,
		Notes:              input.Notes,
	})
	if err != nil {
		return CheckIn{}, err
	}
	s.recordAudit(ctx, "checkin.create", created.ID)
	return created, nil
}

// Update applies a partial update. Requires manage_checkins.
func (s *Service) Update(ctx context.Context, id int64, input UpdateCheckInInput) (CheckIn, error) {
	if err := s.requireManage(ctx); err != nil {
		return CheckIn{}, err
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return CheckIn{}, err
	}
	if input.Status != nil {
		c.Status = *input.Status
	}
	if input.Notes != nil {
		c.Notes = *input.Notes
	}
	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return CheckIn{}, err
	}
	s.recordAudit(ctx, "checkin.update", updated.ID)
	return updated, nil
}

// Delete removes a check-in. Requires manage_checkins.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.requireManage(ctx); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, "checkin.delete", id)
	return nil
}

func ref(c CheckIn) authz.CheckInRef {
	return authz.CheckInRef{AgencyID: c.AgencyID, VirtualAssistantID: c.VirtualAssistantID}
}

func startOfWeek(t time.Time) time.Time {
	day := t.Truncate(24 * time.Hour)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func (s *Service) requireManage(ctx context.Context) error {
	if !authz.HasPermission(session.CurrentPrincipal(ctx), authz.PermManageCheckIns) {
		return shared.ErrForbidden
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, action string, id int64) {
	var actorID int64
	if p := session.CurrentPrincipal(ctx); p != nil {
		actorID = p.ID
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "check_in",
		EntityID: strconv.FormatInt(id, 10),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("action", action), slog.Any("error", err))
	}
}
