package agencies

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/session"
	"github.com/talentfuze/portal/internal/shared"
)

// Service applies authorization scoping on top of the repository. Reads
// filter through the view predicates; writes require the manage permission.
type Service struct {
	repo   Repository
	audit  *shared.AuditLogger
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(repo Repository, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// CreateAgencyInput carries the fields for a new agency.
type CreateAgencyInput struct {
	Name         string
	ContactName  string
	ContactEmail string
	Status       string
}

// UpdateAgencyInput carries partial updates. Nil fields keep their values.
type UpdateAgencyInput struct {
	Name         *string
	ContactName  *string
	ContactEmail *string
	Status       *string
}

// List returns the agencies visible to the calling principal. A principal
// without any agency visibility gets an empty slice, never an error.
func (s *Service) List(ctx context.Context) ([]Agency, error) {
	p := session.CurrentPrincipal(ctx)
	scope := authz.ListScope(p)
	if scope.Empty {
		return []Agency{}, nil
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if scope.All {
		return all, nil
	}
	visible := make([]Agency, 0, 1)
	for _, a := range all {
		if authz.CanViewAgency(p, a.ID) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

// Get fetches one agency. Records outside the caller's scope read as absent
// so existence is not leaked.
func (s *Service) Get(ctx context.Context, id int64) (Agency, error) {
	agency, err := s.repo.Get(ctx, id)
	if err != nil {
		return Agency{}, err
	}
	if !authz.CanViewAgency(session.CurrentPrincipal(ctx), agency.ID) {
		return Agency{}, shared.ErrNotFound
	}
	return agency, nil
}

// Create adds a new agency. Requires manage_agencies.
func (s *Service) Create(ctx context.Context, input CreateAgencyInput) (Agency, error) {
	if err := s.requireManage(ctx); err != nil {
		return Agency{}, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Agency{}, fmt.Errorf("%w: agency name is required", shared.ErrValidation)
	}
	status := input.Status
	if status == "" {
		status = "active"
	}
	created, err := s.repo.Create(ctx, Agency{
		Name:         name,
		ContactName:  strings.TrimSpace(input.ContactName),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		Status:       status,
	})
	if err != nil {
		return Agency{}, err
	}
	s.recordAudit(ctx, "agency.create", created.ID)
	return created, nil
}

// Update applies a partial update. Requires manage_agencies.
func (s *Service) Update(ctx context.Context, id int64, input UpdateAgencyInput) (Agency, error) {
	if err := s.requireManage(ctx); err != nil {
		return Agency{}, err
	}
	agency, err := s.repo.Get(ctx, id)
	if err != nil {
		return Agency{}, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return Agency{}, fmt.Errorf("%w: agency name is required", shared.ErrValidation)
		}
		agency.Name = name
	}
	if input.ContactName != nil {
		agency.ContactName = strings.TrimSpace(*input.ContactName)
	}
	if input.ContactEmail != nil {
		agency.ContactEmail = strings.TrimSpace(*input.ContactEmail)
	}
	if input.Status != nil {
		agency.Status = *input.Status
	}
	updated, err := s.repo.Update(ctx, agency)
	if err != nil {
		return Agency{}, err
	}
	s.recordAudit(ctx, "agency.update", updated.ID)
	return updated, nil
}

// Delete removes an agency. Requires manage_agencies.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.requireManage(ctx); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, "agency.delete", id)
	return nil
}

func (s *Service) requireManage(ctx context.Context) error {
	if !authz.HasPermission(session.CurrentPrincipal(ctx), authz.PermManageAgencies) {
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
		Entity:   "agency",
		EntityID: strconv.FormatInt(id, 10),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("action", action), slog.Any("error", err))
	}
}
