package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/talentfuze/portal/internal/observability"
	"github.com/talentfuze/portal/internal/platform/httpx"
	"github.com/talentfuze/portal/internal/session"
	"github.com/talentfuze/portal/internal/shared"
)

// Handler wires HTTP endpoints for login, logout and the current principal.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	sessions  *session.Manager
	csrf      *session.CSRFManager
	metrics   *observability.Metrics
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *session.Manager, csrf *session.CSRFManager, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		sessions:  sessions,
		csrf:      csrf,
		metrics:   metrics,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/me", h.handleMe)
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		// Field-level detail is withheld on purpose: the login form only
		// ever sees one generic message.
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", shared.UserSafeMessage(shared.ErrInvalidCredentials))
		return
	}

	principal, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.metrics.RecordLogin("failure")
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", shared.UserSafeMessage(err))
			return
		}
		if h.logger != nil {
			h.logger.Error("login", slog.Any("error", err))
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	sess := session.FromContext(r.Context())
	if sess == nil {
		if h.logger != nil {
			h.logger.Error("session missing during login")
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	h.metrics.RecordLogin("success")

	// A later login simply replaces whatever an earlier one stored.
	sess.SetPrincipal(principal)
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)

	httpx.JSON(w, http.StatusOK, map[string]any{
		"principal": principal,
		"csrfToken": csrfToken,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess != nil {
		sess.ClearPrincipal()
		h.sessions.Destroy(sess)
	}
	// Logging out without a session is fine; the outcome is the same.
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	principal := session.CurrentPrincipal(r.Context())
	if principal == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "not authenticated")
		return
	}
	httpx.JSON(w, http.StatusOK, principal)
}
