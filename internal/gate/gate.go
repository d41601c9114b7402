// Package gate guards protected routes: unauthenticated principals are sent
// to login, authenticated but under-permissioned ones are denied in place.
package gate

import "github.com/talentfuze/portal/internal/authz"

// Decision is the outcome of a navigation attempt.
type Decision int

const (
	// DecisionAllowed renders the requested screen.
	DecisionAllowed Decision = iota
	// DecisionRedirectLogin sends the principal to login, keeping the
	// originally requested location for the post-login return.
	DecisionRedirectLogin
	// DecisionDenied renders an access-denied message. The principal is
	// valid, just insufficiently privileged, so no login redirect.
	DecisionDenied
)

// DeniedMessage is rendered verbatim on a denied navigation.
const DeniedMessage = "Access denied. You do not have permission to view this page."

// Decide resolves a navigation attempt for the principal. An empty required
// permission means any authenticated principal passes. Decisions are cheap
// and computed per request; they are never cached across navigations.
func Decide(p *authz.Principal, required authz.Permission) Decision {
	if p == nil {
		return DecisionRedirectLogin
	}
	if required != "" && !authz.HasPermission(p, required) {
		return DecisionDenied
	}
	return DecisionAllowed
}
