package agencies

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/talentfuze/portal/internal/gate"
	"github.com/talentfuze/portal/internal/platform/httpx"
)

// Handler exposes the agencies JSON API.
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

// MountRoutes registers agency routes. Authentication is enough to enter;
// the service scopes reads and enforces the manage permission on writes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.gate.RequireAuth)
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createAgencyPayload struct {
	Name         string `json:"name" validate:"required"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	Status       string `json:"status" validate:"omitempty,oneof=active paused churned"`
}

type updateAgencyPayload struct {
	Name         *string `json:"name"`
	ContactName  *string `json:"contactName"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	Status       *string `json:"status" validate:"omitempty,oneof=active paused churned"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "list agencies", err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	agency, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "get agency", err)
		return
	}
	httpx.JSON(w, http.StatusOK, agency)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload createAgencyPayload
	if !h.decode(w, r, &payload) {
		return
	}
	agency, err := h.service.Create(r.Context(), CreateAgencyInput{
		Name:         payload.Name,
		ContactName:  payload.ContactName,
		ContactEmail: payload.ContactEmail,
		Status:       payload.Status,
	})
	if err != nil {
		h.fail(w, "create agency", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, agency)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	var payload updateAgencyPayload
	if !h.decode(w, r, &payload) {
		return
	}
	agency, err := h.service.Update(r.Context(), id, UpdateAgencyInput{
		Name:         payload.Name,
		ContactName:  payload.ContactName,
		ContactEmail: payload.ContactEmail,
		Status:       payload.Status,
	})
	if err != nil {
		h.fail(w, "update agency", err)
		return
	}
	httpx.JSON(w, http.StatusOK, agency)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete agency", err)
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
