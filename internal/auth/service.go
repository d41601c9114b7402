// Package auth authenticates credentials and builds the principal snapshot
// attached to the session at login.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/rbac"
	"github.com/talentfuze/portal/internal/shared"
)

// Directory resolves users and their roles. The role store repository
// satisfies it.
type Directory interface {
	FindUserByEmail(ctx context.Context, email string) (rbac.User, error)
	GetRole(ctx context.Context, id int64) (rbac.Role, error)
}

// Service wraps authentication business rules.
type Service struct {
	directory Directory
	audit     *shared.AuditLogger
	logger    *slog.Logger
}

// NewService constructs a new Service.
func NewService(directory Directory, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{directory: directory, audit: audit, logger: logger}
}

// Login validates the credentials and returns the principal snapshot: role
// name, role class, scoping ids and the role's permission set as it stands
// right now. Unknown email and wrong password produce the same error so the
// response confirms neither. The snapshot never carries the password hash.
func (s *Service) Login(ctx context.Context, email, password string) (*authz.Principal, error) {
	user, err := s.directory.FindUserByEmail(ctx, email)
	if err != nil {
		// Burn a comparison anyway so the timing of the failure does not
		// separate unknown emails from wrong passwords.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva"), []byte(password))
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	role, err := s.directory.GetRole(ctx, user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("auth: resolve role %d: %w", user.RoleID, err)
	}

	permissions := make([]authz.Permission, len(role.Permissions))
	copy(permissions, role.Permissions)

	principal := &authz.Principal{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		Role:               role.Name,
		RoleID:             role.ID,
		Class:              authz.ClassifyRole(role.Type == rbac.RoleTypeInternal, user.AgencyID, user.VirtualAssistantID),
		AgencyID:           user.AgencyID,
		VirtualAssistantID: user.VirtualAssistantID,
		Permissions:        permissions,
	}

	s.recordAudit(ctx, "auth.login", principal.ID)
	return principal, nil
}

func (s *Service) recordAudit(ctx context.Context, action string, userID int64) {
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  userID,
		Action:   action,
		Entity:   "user",
		EntityID: strconv.FormatInt(userID, 10),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}
