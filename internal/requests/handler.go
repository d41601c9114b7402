package requests

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

// Handler exposes the VA requests JSON API.
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

// MountRoutes registers VA request routes. Entry requires the view
// permission; write rules are enforced in the service.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.gate.Require(authz.PermViewVARequests))
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createRequestPayload struct {
	AgencyID    int64  `json:"agencyId" validate:"required,gt=0"`
	RoleTitle   string `json:"roleTitle" validate:"required"`
	Description string `json:"description"`
}

type updateRequestPayload struct {
	RoleTitle   *string `json:"roleTitle"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=open interviewing placed closed"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "list va requests", err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	req, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "get va request", err)
		return
	}
	httpx.JSON(w, http.StatusOK, req)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload createRequestPayload
	if !h.decode(w, r, &payload) {
		return
	}
	req, err := h.service.Create(r.Context(), CreateRequestInput{
		AgencyID:    payload.AgencyID,
		RoleTitle:   payload.RoleTitle,
		Description: payload.Description,
	})
	if err != nil {
		h.fail(w, "create va request", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, req)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	var payload updateRequestPayload
	if !h.decode(w, r, &payload) {
		return
	}
	req, err := h.service.Update(r.Context(), id, UpdateRequestInput{
		RoleTitle:   payload.RoleTitle,
		Description: payload.Description,
		Status:      payload.Status,
	})
	if err != nil {
		h.fail(w, "update va request", err)
		return
	}
	httpx.JSON(w, http.StatusOK, req)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete va request", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
