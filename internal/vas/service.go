package vas

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/session"
	"github.com/talentfuze/portal/internal/shared"
)

// Service applies authorization scoping on top of the repository.
type Service struct {
	repo   Repository
	audit  *shared.AuditLogger
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(repo Repository, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// CreateVAInput carries the fields for a new VA.
type CreateVAInput struct {
	Name      string
	Email     string
	AgencyID  int64
	RoleTitle string
	Status    string
	StartDate time.Time
}

// UpdateVAInput carries partial updates. Nil fields keep their values.
type UpdateVAInput struct {
	Name      *string
	Email     *string
	AgencyID  *int64
	RoleTitle *string
	Status    *string
}

// List returns the VAs visible to the calling principal. An agency principal
// gets its agency's roster; a VA principal only its own record.
func (s *Service) List(ctx context.Context) ([]VirtualAssistant, error) {
	p := session.CurrentPrincipal(ctx)
	if authz.ListScope(p).Empty {
		return []VirtualAssistant{}, nil
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]VirtualAssistant, 0, len(all))
	for _, v := range all {
		if authz.CanViewVirtualAssistant(p, v.ID, v.AgencyID) {
			visible = append(visible, v)
		}
	}
	return visible, nil
}

// Get fetches one VA. Records outside the caller's scope read as absent.
func (s *Service) Get(ctx context.Context, id int64) (VirtualAssistant, error) {
	va, err := s.repo.Get(ctx, id)
	if err != nil {
		return VirtualAssistant{}, err
	}
	if !authz.CanViewVirtualAssistant(session.CurrentPrincipal(ctx), va.ID, va.AgencyID) {
		return VirtualAssistant{}, shared.ErrNotFound
	}
	return va, nil
}

// Create adds a new VA. Requires manage_vas.
func (s *Service) Create(ctx context.Context, input CreateVAInput) (VirtualAssistant, error) {
	if err := s.requireManage(ctx); err != nil {
		return VirtualAssistant{}, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return VirtualAssistant{}, fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	if input.AgencyID <= 0 {
		return VirtualAssistant{}, fmt.Errorf("%w: agency is required", shared.ErrValidation)
	}
	status := input.Status
	if status == "" {
		status = "active"
	}
	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}
	created, err := s.repo.Create(ctx, VirtualAssistant{
		Name:      name,
		Email:     strings.TrimSpace(input.Email),
		AgencyID:  input.AgencyID,
		RoleTitle: strings.TrimSpace(input.RoleTitle),
		Status:    status,
		StartDate: startDate,
	})
	if err != nil {
		return VirtualAssistant{}, err
	}
	s.recordAudit(ctx, "va.create", created.ID)
	return created, nil
}

// Update applies a partial update. Requires manage_vas.
func (s *Service) Update(ctx context.Context, id int64, input UpdateVAInput) (VirtualAssistant, error) {
	if err := s.requireManage(ctx); err != nil {
		return VirtualAssistant{}, err
	}
	va, err := s.repo.Get(ctx, id)
	if err != nil {
		return VirtualAssistant{}, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return VirtualAssistant{}, fmt.Errorf("%w: name is required", shared.ErrValidation)
		}
		va.Name = name
	}
	if input.Email != nil {
		va.Email = strings.TrimSpace(*input.Email)
	}
	if input.AgencyID != nil {
		if *input.AgencyID <= 0 {
			return VirtualAssistant{}, fmt.Errorf("%w: agency is required", shared.ErrValidation)
		}
		va.AgencyID = *input.AgencyID
	}
	if input.RoleTitle != nil {
		va.RoleTitle = strings.TrimSpace(*input.RoleTitle)
	}
	if input.Status != nil {
		va.Status = *input.Status
	}
	updated, err := s.repo.Update(ctx, va)
	if err != nil {
		return VirtualAssistant{}, err
	}
	s.recordAudit(ctx, "va.update", updated.ID)
	return updated, nil
}

// Delete removes a VA. Requires manage_vas.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.requireManage(ctx); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, "va.delete", id)
	return nil
}

func (s *Service) requireManage(ctx context.Context) error {
	if !authz.HasPermission(session.CurrentPrincipal(ctx), authz.PermManageVAs) {
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
		Entity:   "virtual_assistant",
		EntityID: strconv.FormatInt(id, 10),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("action", action), slog.Any("error", err))
	}
}
