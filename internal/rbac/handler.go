package rbac

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/gate"
	"github.com/talentfuze/portal/internal/platform/httpx"
)

// Handler exposes the role management JSON API.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	gate      gate.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gateMW gate.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		gate:      gateMW,
		validator: validator.New(),
	}
}

// MountRoleRoutes registers role management routes.
func (h *Handler) MountRoleRoutes(r chi.Router) {
	r.Use(h.gate.Require(authz.PermManageRoles))
	r.Get("/", h.listRoles)
	r.Post("/", h.createRole)
	r.Get("/{id}", h.getRole)
	r.Put("/{id}", h.updateRole)
	r.Delete("/{id}", h.deleteRole)
	r.Post("/{id}/permissions/toggle", h.togglePermission)
	r.Get("/{id}/users", h.listRoleUsers)
}

// MountUserRoutes registers user role assignment routes.
func (h *Handler) MountUserRoutes(r chi.Router) {
	r.Use(h.gate.Require(authz.PermManageUsers))
	r.Get("/", h.listUsers)
	r.Get("/{id}", h.getUser)
	r.Put("/{id}/role", h.updateUserRole)
}

// MountPermissionRoutes registers the permission catalog route.
func (h *Handler) MountPermissionRoutes(r chi.Router) {
	r.Use(h.gate.Require(authz.PermManageRoles))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"permissions": authz.Catalog(),
			"categories":  authz.CatalogByCategory(),
		})
	})
}

type createRolePayload struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Type        string   `json:"type" validate:"omitempty,oneof=internal external"`
	Permissions []string `json:"permissions"`
}

type updateRolePayload struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Type        *string   `json:"type" validate:"omitempty,oneof=internal external"`
	Permissions *[]string `json:"permissions"`
}

type togglePermissionPayload struct {
	Permission string `json:"permission" validate:"required"`
}

type updateUserRolePayload struct {
	RoleID int64 `json:"roleId" validate:"required,gt=0"`
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		h.fail(w, "list roles", err)
		return
	}
	httpx.JSON(w, http.StatusOK, roles)
}

func (h *Handler) getRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	role, err := h.service.GetRole(r.Context(), id)
	if err != nil {
		h.fail(w, "get role", err)
		return
	}
	httpx.JSON(w, http.StatusOK, role)
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	var payload createRolePayload
	if !h.decode(w, r, &payload) {
		return
	}
	role, err := h.service.CreateRole(r.Context(), CreateRoleInput{
		Name:        payload.Name,
		Description: payload.Description,
		Type:        RoleType(payload.Type),
		Permissions: toPermissions(payload.Permissions),
	})
	if err != nil {
		h.fail(w, "create role", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, role)
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	var payload updateRolePayload
	if !h.decode(w, r, &payload) {
		return
	}
	input := UpdateRoleInput{
		Name:        payload.Name,
		Description: payload.Description,
	}
	if payload.Type != nil {
		roleType := RoleType(*payload.Type)
		input.Type = &roleType
	}
	if payload.Permissions != nil {
		perms := toPermissions(*payload.Permissions)
		input.Permissions = &perms
	}
	role, err := h.service.UpdateRole(r.Context(), id, input)
	if err != nil {
		h.fail(w, "update role", err)
		return
	}
	httpx.JSON(w, http.StatusOK, role)
}

func (h *Handler) deleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteRole(r.Context(), id); err != nil {
		h.fail(w, "delete role", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) togglePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	var payload togglePermissionPayload
	if !h.decode(w, r, &payload) {
		return
	}
	role, err := h.service.TogglePermission(r.Context(), id, authz.Permission(payload.Permission))
	if err != nil {
		h.fail(w, "toggle permission", err)
		return
	}
	httpx.JSON(w, http.StatusOK, role)
}

func (h *Handler) listRoleUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	users, err := h.service.ListUsersByRole(r.Context(), id)
	if err != nil {
		h.fail(w, "list role users", err)
		return
	}
	httpx.JSON(w, http.StatusOK, users)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.fail(w, "list users", err)
		return
	}
	httpx.JSON(w, http.StatusOK, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		h.fail(w, "get user", err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) updateUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	var payload updateUserRolePayload
	if !h.decode(w, r, &payload) {
		return
	}
	user, err := h.service.UpdateUserRole(r.Context(), id, payload.RoleID)
	if err != nil {
		h.fail(w, "update user role", err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return false
	}
	if err := h.validator.Struct(target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if h.logger != nil {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

func toPermissions(keys []string) []authz.Permission {
	perms := make([]authz.Permission, len(keys))
	for i, k := range keys {
		perms[i] = authz.Permission(k)
	}
	return perms
}
