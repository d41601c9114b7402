package requests

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

// Service applies authorization scoping on top of the repository. The
// request pipeline is an agency-and-staff surface: VA principals never see
// it, even for their own agency.
type Service struct {
	repo   Repository
	audit  *shared.AuditLogger
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(repo Repository, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// CreateRequestInput carries the fields for a new request.
type CreateRequestInput struct {
	AgencyID    int64
	RoleTitle   string
	Description string
}

// UpdateRequestInput carries partial updates. Nil fields keep their values.
type UpdateRequestInput struct {
	RoleTitle   *string
	Description *string
	Status      *string
}

func visible(p *authz.Principal, req VARequest) bool {
	if p == nil {
		return false
	}
	switch p.Class {
	case authz.ClassInternal:
		return true
	case authz.ClassAgency:
		return req.AgencyID != 0 && p.AgencyID == req.AgencyID
	}
	return false
}

// List returns the requests visible to the calling principal.
func (s *Service) List(ctx context.Context) ([]VARequest, error) {
	p := session.CurrentPrincipal(ctx)
	if authz.ListScope(p).Empty {
		return []VARequest{}, nil
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]VARequest, 0, len(all))
	for _, req := range all {
		if visible(p, req) {
			out = append(out, req)
		}
	}
	return out, nil
}

// Get fetches one request. Records outside the caller's scope read as
// absent.
func (s *Service) Get(ctx context.Context, id int64) (VARequest, error) {
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		return VARequest{}, err
	}
	if !visible(session.CurrentPrincipal(ctx), req) {
		return VARequest{}, shared.ErrNotFound
	}
	return req, nil
}

// Create opens a new request. An agency principal may only file for its own
// agency; internal staff with manage_va_requests may file for any.
func (s *Service) Create(ctx context.Context, input CreateRequestInput) (VARequest, error) {
	p := session.CurrentPrincipal(ctx)
	canManage := authz.HasPermission(p, authz.PermManageVARequests)
	ownAgency := p != nil && p.Class == authz.ClassAgency && p.AgencyID != 0 && p.AgencyID == input.AgencyID
	if !canManage && !ownAgency {
		return VARequest{}, shared.ErrForbidden
	}
	if input.AgencyID <= 0 {
		return VARequest{}, fmt.Errorf("%w: agency is required", shared.ErrValidation)
	}
	title := strings.TrimSpace(input.RoleTitle)
	if title == "" {
		return VARequest{}, fmt.Errorf("%w: role title is required", shared.ErrValidation)
	}
	created, err := s.repo.Create(ctx, VARequest{
		AgencyID:    input.AgencyID,
		RoleTitle:   title,
		Description: strings.TrimSpace(input.Description),
		Status:      "open",
	})
	if err != nil {
		return VARequest{}, err
	}
	s.recordAudit(ctx, "va_request.create", created.ID)
	return created, nil
}

// Update applies a partial update. Requires manage_va_requests.
func (s *Service) Update(ctx context.Context, id int64, input UpdateRequestInput) (VARequest, error) {
	if err := s.requireManage(ctx); err != nil {
		return VARequest{}, err
	}
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		return VARequest{}, err
	}
	if input.RoleTitle != nil {
		title := strings.TrimSpace(*input.RoleTitle)
		if title == "" {
			return VARequest{}, fmt.Errorf("%w: role title is required", shared.ErrValidation)
		}
		req.RoleTitle = title
	}
	if input.Description != nil {
		req.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		req.Status = *input.Status
	}
	updated, err := s.repo.Update(ctx, req)
	if err != nil {
		return VARequest{}, err
	}
	s.recordAudit(ctx, "va_request.update", updated.ID)
	return updated, nil
}

// Delete removes a request. Requires manage_va_requests.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.requireManage(ctx); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, "va_request.delete", id)
	return nil
}

func (s *Service) requireManage(ctx context.Context) error {
	if !authz.HasPermission(session.CurrentPrincipal(ctx), authz.PermManageVARequests) {
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
		Entity:   "va_request",
		EntityID: strconv.FormatInt(id, 10),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("action", action), slog.Any("error", err))
	}
}
