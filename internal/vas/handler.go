package vas

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/talentfuze/portal/internal/gate"
	"github.com/talentfuze/portal/internal/platform/httpx"
)

// Handler exposes the virtual assistants JSON API.
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

// MountRoutes registers VA routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.gate.RequireAuth)
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createVAPayload struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	AgencyID  int64  `json:"agencyId" validate:"required,gt=0"`
	RoleTitle string `json:"roleTitle"`
	Status    string `json:"status" validate:"omitempty,oneof=active on_leave offboarded"`
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
}

type updateVAPayload struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	AgencyID  *int64  `json:"agencyId"`
	RoleTitle *string `json:"roleTitle"`
	Status    *string `json:"status" validate:"omitempty,oneof=active on_leave offboarded"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "list virtual assistants", err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	va, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "get virtual assistant", err)
		return
	}
	httpx.JSON(w, http.StatusOK, va)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload createVAPayload
	if !h.decode(w, r, &payload) {
		return
	}
	var startDate time.Time
	if payload.StartDate != "" {
		startDate, _ = time.Parse("2006-01-02", payload.StartDate)
	}
	va, err := h.service.Create(r.Context(), CreateVAInput{
		Name:      payload.Name,
		Email:     payload.Email,
		AgencyID:  payload.AgencyID,
		RoleTitle: payload.RoleTitle,
		Status:    payload.Status,
		StartDate: startDate,
	})
	if err != nil {
		h.fail(w, "create virtual assistant", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, va)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	var payload updateVAPayload
	if !h.decode(w, r, &payload) {
		return
	}
	va, err := h.service.Update(r.Context(), id, UpdateVAInput{
		Name:      payload.Name,
		Email:     payload.Email,
		AgencyID:  payload.AgencyID,
		RoleTitle: payload.RoleTitle,
		Status:    payload.Status,
	})
	if err != nil {
		h.fail(w, "update virtual assistant", err)
		return
	}
	httpx.JSON(w, http.StatusOK, va)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete virtual assistant", err)
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
