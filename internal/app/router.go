package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/talentfuze/portal/internal/agencies"
	"github.com/talentfuze/portal/internal/auth"
	"github.com/talentfuze/portal/internal/checkins"
	"github.com/talentfuze/portal/internal/nav"
	"github.com/talentfuze/portal/internal/observability"
	"github.com/talentfuze/portal/internal/rbac"
	"github.com/talentfuze/portal/internal/requests"
	"github.com/talentfuze/portal/internal/session"
	"github.com/talentfuze/portal/internal/vas"
	"github.com/talentfuze/portal/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *session.Manager
	CSRFManager    *session.CSRFManager

	AuthHandler     *auth.Handler
	RBACHandler     *rbac.Handler
	NavHandler      *nav.Handler
	AgenciesHandler *agencies.Handler
	VAsHandler      *vas.Handler
	CheckInsHandler *checkins.Handler
	RequestsHandler *requests.Handler

	JobsHandler *jobs.Handler
	Metrics     *observability.Metrics
}

// NewRouter constructs the chi.Router with portal defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/roles", params.RBACHandler.MountRoleRoutes)
	r.Route("/users", params.RBACHandler.MountUserRoutes)
	r.Route("/permissions", params.RBACHandler.MountPermissionRoutes)
	r.Route("/nav", params.NavHandler.MountRoutes)
	r.Route("/agencies", params.AgenciesHandler.MountRoutes)
	r.Route("/virtual-assistants", params.VAsHandler.MountRoutes)
	r.Route("/check-ins", params.CheckInsHandler.MountRoutes)
	r.Route("/va-requests", params.RequestsHandler.MountRoutes)

	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
