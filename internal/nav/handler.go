package nav

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talentfuze/portal/internal/gate"
	"github.com/talentfuze/portal/internal/platform/httpx"
	"github.com/talentfuze/portal/internal/session"
)

// Handler serves the resolved navigation for the UI shell.
type Handler struct {
	gate gate.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(gateMW gate.Middleware) *Handler {
	return &Handler{gate: gateMW}
}

// MountRoutes registers the navigation route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAuth)
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			items := Resolve(session.CurrentPrincipal(req.Context()))
			httpx.JSON(w, http.StatusOK, items)
		})
	})
}
