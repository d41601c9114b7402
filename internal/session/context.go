package session

import (
	"context"

	"github.com/talentfuze/portal/internal/authz"
)

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext extracts the session from context.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// CurrentPrincipal returns the principal attached to the request session, or
// nil when the request is unauthenticated.
func CurrentPrincipal(ctx context.Context) *authz.Principal {
	return FromContext(ctx).Principal()
}

// IsAuthenticated reports whether the request carries a principal.
func IsAuthenticated(ctx context.Context) bool {
	return CurrentPrincipal(ctx) != nil
}
