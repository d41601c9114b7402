package gate

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/observability"
	"github.com/talentfuze/portal/internal/platform/httpx"
	"github.com/talentfuze/portal/internal/session"
)

// LoginPath is where unauthenticated principals are redirected.
const LoginPath = "/auth/login"

// Middleware wires the access gate into HTTP handlers.
type Middleware struct {
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Require ensures the request principal holds the permission before the
// wrapped handler runs.
func (m Middleware) Require(required authz.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := session.CurrentPrincipal(r.Context())
			switch Decide(principal, required) {
			case DecisionAllowed:
				next.ServeHTTP(w, r)
			case DecisionRedirectLogin:
				m.redirectLogin(w, r)
			case DecisionDenied:
				m.Metrics.RecordDenied(string(required))
				if m.Logger != nil {
					m.Logger.Warn("navigation denied",
						slog.Int64("principal", principal.ID),
						slog.String("path", r.URL.Path),
						slog.String("required", string(required)))
				}
				httpx.Problem(w, http.StatusForbidden, "Forbidden", DeniedMessage)
			}
		})
	}
}

// RequireAuth admits any authenticated principal.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return m.Require("")(next)
}

func (m Middleware) redirectLogin(w http.ResponseWriter, r *http.Request) {
	target := LoginPath + "?from=" + url.QueryEscape(r.URL.RequestURI())
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	w.Header().Set("Location", target)
	httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
}
