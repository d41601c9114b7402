package gate_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/gate"
	"github.com/talentfuze/portal/internal/session"
)

func TestDecide(t *testing.T) {
	p := &authz.Principal{
		ID:          1,
		Class:       authz.ClassInternal,
		Permissions: []authz.Permission{authz.PermViewDashboard},
	}

	assert.Equal(t, gate.DecisionRedirectLogin, gate.Decide(nil, ""))
	assert.Equal(t, gate.DecisionRedirectLogin, gate.Decide(nil, authz.PermViewDashboard))
	assert.Equal(t, gate.DecisionAllowed, gate.Decide(p, ""))
	assert.Equal(t, gate.DecisionAllowed, gate.Decide(p, authz.PermViewDashboard))
	// Valid principal, missing permission: denied in place, not sent to login.
	assert.Equal(t, gate.DecisionDenied, gate.Decide(p, authz.PermManageRoles))
}

func withPrincipal(r *http.Request, p *authz.Principal) *http.Request {
	sess := &session.Session{}
	sess.SetPrincipal(p)
	return r.WithContext(session.ContextWithSession(r.Context(), sess))
}

func TestMiddlewareRedirectsUnauthenticated(t *testing.T) {
	mw := gate.Middleware{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/agencies?page=2", nil)
	req.Header.Set("Accept", "text/html")
	res := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(res, req)

	require.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/auth/login?from=%2Fagencies%3Fpage%3D2", res.Header().Get("Location"))
}

func TestMiddlewareUnauthenticatedJSON(t *testing.T) {
	mw := gate.Middleware{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/agencies", nil)
	res := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Header().Get("Location"), "/auth/login?from=")
}

func TestMiddlewareDeniesMissingPermission(t *testing.T) {
	mw := gate.Middleware{}
	ran := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ran = true })

	p := &authz.Principal{ID: 7, Class: authz.ClassAgency, Permissions: []authz.Permission{authz.PermViewOwnAgency}}
	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/roles", nil), p)
	res := httptest.NewRecorder()
	mw.Require(authz.PermManageRoles)(next).ServeHTTP(res, req)

	assert.False(t, ran)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Contains(t, res.Body.String(), "Access denied")
}

func TestMiddlewareAllowsPermittedPrincipal(t *testing.T) {
	mw := gate.Middleware{}
	ran := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ran = true })

	p := &authz.Principal{ID: 1, Class: authz.ClassInternal, Permissions: []authz.Permission{authz.PermManageRoles}}
	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/roles", nil), p)
	mw.Require(authz.PermManageRoles)(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, ran)
}
