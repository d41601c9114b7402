package checkins

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/talentfuze/portal/internal/gate"
	"github.com/talentfuze/portal/internal/platform/httpx"
	"github.com/talentfuze/portal/internal/shared"
)

// Handler exposes the check-ins JSON API.
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

// MountRoutes registers check-in routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.gate.RequireAuth)
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createCheckInPayload struct {
	AgencyID           int64  `json:"agencyId" validate:"required,gt=0"`
	VirtualAssistantID int64  `json:"virtualAssistantId" validate:"required,gt=0"`
	WeekOf             string `json:"weekOf" validate:"omitempty,datetime=2006-01-02"`
	Status             string `json:"status" validate:"omitempty,oneof=pending submitted flagged resolved"`
	Notes              string `json:"notes"`
}

type updateCheckInPayload struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending submitted flagged resolved"`
	Notes  *string `json:"notes"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "list check-ins", err)
		return
	}
	// The check-in feed grows every week, so it pages unlike the other lists.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
	items, pagination := shared.Paginate(out, page, perPage)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      items,
		"pagination": pagination,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "get check-in", err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload createCheckInPayload
	if !h.decode(w, r, &payload) {
		return
	}
	var weekOf time.Time
	if payload.WeekOf != "" {
		weekOf, _ = time.Parse("2006-01-02", payload.WeekOf)
	}
	c, err := h.service.Create(r.Context(), CreateCheckInInput{
		AgencyID:           payload.AgencyID,
		VirtualAssistantID: payload.VirtualAssistantID,
		WeekOf:             weekOf,
		Status:             payload.Status,
		Notes:              payload.Notes,
	})
	if err != nil {
		h.fail(w, "create check-in", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	var payload updateCheckInPayload
	if !h.decode(w, r, &payload) {
		return
	}
	c, err := h.service.Update(r.Context(), id, UpdateCheckInInput{
		Status: payload.Status,
		Notes:  payload.Notes,
	})
	if err != nil {
		h.fail(w, "update check-in", err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete check-in", err)
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
