package rbac

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/session"
	"github.com/talentfuze/portal/internal/shared"
)

// Service orchestrates role store operations and records mutations in the
// audit trail.
type Service struct {
	repo   Repository
	audit  *shared.AuditLogger
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// CreateRoleInput carries the fields for a new role.
type CreateRoleInput struct {
	Name        string
	Description string
	Type        RoleType
	Permissions []authz.Permission
}

// UpdateRoleInput carries a partial role update; nil fields are left as-is.
type UpdateRoleInput struct {
	Name        *string
	Description *string
	Type        *RoleType
	Permissions *[]authz.Permission
}

// ListRoles returns all roles in stable id order.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// GetRole fetches a role by id.
func (s *Service) GetRole(ctx context.Context, id int64) (Role, error) {
	return s.repo.GetRole(ctx, id)
}

// CreateRole validates and inserts a new role. The repository assigns the
// next integer id.
func (s *Service) CreateRole(ctx context.Context, input CreateRoleInput) (Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Role{}, fmt.Errorf("%w: role name is required", shared.ErrValidation)
	}
	if err := s.ensureNameAvailable(ctx, name, 0); err != nil {
		return Role{}, err
	}
	if err := validatePermissions(input.Permissions); err != nil {
		return Role{}, err
	}
	roleType := input.Type
	if roleType == "" {
		roleType = RoleTypeExternal
	}
	if roleType != RoleTypeInternal && roleType != RoleTypeExternal {
		return Role{}, fmt.Errorf("%w: unknown role type %q", shared.ErrValidation, roleType)
	}

	role, err := s.repo.CreateRole(ctx, Role{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Type:        roleType,
		Permissions: input.Permissions,
	})
	if err != nil {
		return Role{}, err
	}
	s.recordAudit(ctx, "role.create", role.ID, map[string]any{"name": role.Name})
	return role, nil
}

// UpdateRole merges the provided fields into the stored role.
func (s *Service) UpdateRole(ctx context.Context, id int64, input UpdateRoleInput) (Role, error) {
	role, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return Role{}, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return Role{}, fmt.Errorf("%w: role name is required", shared.ErrValidation)
		}
		if err := s.ensureNameAvailable(ctx, name, id); err != nil {
			return Role{}, err
		}
		role.Name = name
	}
	if input.Description != nil {
		role.Description = strings.TrimSpace(*input.Description)
	}
	if input.Type != nil {
		if *input.Type != RoleTypeInternal && *input.Type != RoleTypeExternal {
			return Role{}, fmt.Errorf("%w: unknown role type %q", shared.ErrValidation, *input.Type)
		}
		role.Type = *input.Type
	}
	if input.Permissions != nil {
		if err := validatePermissions(*input.Permissions); err != nil {
			return Role{}, err
		}
		role.Permissions = *input.Permissions
	}

	updated, err := s.repo.UpdateRole(ctx, role)
	if err != nil {
		return Role{}, err
	}
	s.recordAudit(ctx, "role.update", updated.ID, map[string]any{"name": updated.Name})
	return updated, nil
}

// DeleteRole removes a role. Deletion is refused while any user still
// references the role.
func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	if _, err := s.repo.GetRole(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountUsersByRole(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: role has assigned users", shared.ErrConflict)
	}
	if err := s.repo.DeleteRole(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, "role.delete", id, nil)
	return nil
}

// TogglePermission flips the permission on the role: held keys are removed,
// absent keys added. Unknown keys are rejected against the catalog.
func (s *Service) TogglePermission(ctx context.Context, roleID int64, key authz.Permission) (Role, error) {
	if !authz.KnownPermission(key) {
		return Role{}, fmt.Errorf("%w: unknown permission %q", shared.ErrValidation, key)
	}
	role, err := s.repo.TogglePermission(ctx, roleID, key)
	if err != nil {
		return Role{}, err
	}
	s.recordAudit(ctx, "role.toggle_permission", roleID, map[string]any{
		"permission": string(key),
		"granted":    role.HasPermission(key),
	})
	return role, nil
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser fetches a user by id.
func (s *Service) GetUser(ctx context.Context, id int64) (User, error) {
	return s.repo.GetUser(ctx, id)
}

// ListUsersByRole returns the users assigned to the role.
func (s *Service) ListUsersByRole(ctx context.Context, roleID int64) ([]User, error) {
	return s.repo.ListUsersByRole(ctx, roleID)
}

// UpdateUserRole reassigns a user to another role. Both ids must exist.
func (s *Service) UpdateUserRole(ctx context.Context, userID, roleID int64) (User, error) {
	if _, err := s.repo.GetRole(ctx, roleID); err != nil {
		return User{}, err
	}
	user, err := s.repo.UpdateUserRole(ctx, userID, roleID)
	if err != nil {
		return User{}, err
	}
	s.recordAudit(ctx, "user.update_role", userID, map[string]any{"roleId": roleID})
	return user, nil
}

func (s *Service) ensureNameAvailable(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.GetRoleByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: a role with this name already exists", shared.ErrValidation)
	}
	return nil
}

func validatePermissions(perms []authz.Permission) error {
	for _, key := range perms {
		if !authz.KnownPermission(key) {
			return fmt.Errorf("%w: unknown permission %q", shared.ErrValidation, key)
		}
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, action string, entityID int64, meta map[string]any) {
	var actorID int64
	if p := session.CurrentPrincipal(ctx); p != nil {
		actorID = p.ID
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "role_store",
		EntityID: strconv.FormatInt(entityID, 10),
		Meta:     meta,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}
