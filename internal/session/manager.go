// Package session persists the authenticated principal between requests
// using a cookie-keyed Redis entry. The stored value is the principal
// snapshot taken at login; corrupt or missing entries read back as "no
// session", never as an error.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/talentfuze/portal/internal/authz"
)

// Manager orchestrates cookie based sessions backed by Redis.
type Manager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
	secret     []byte
}

// Session holds per-request session data. Exactly one principal may be
// attached at a time; a later login overwrites an earlier one.
type Session struct {
	ID        string
	principal *authz.Principal
	csrfToken string
	isNew     bool
	dirty     bool
	destroyed bool
}

type sessionPayload struct {
	Principal *authz.Principal `json:"principal,omitempty"`
	CSRFToken string           `json:"csrf_token,omitempty"`
}

// NewManager constructs a session Manager.
func NewManager(client *redis.Client, cookieName string, secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		secret:     []byte(secret),
	}
}

// Load restores the session referenced by the request cookie, or creates a
// fresh one. An unparseable stored payload is treated as a logged-out
// session by design: stale storage must never crash a navigation.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return m.newSession(), nil
		}
		return nil, err
	}

	payload, err := m.client.Get(ctx, m.redisKey(cookie.Value)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			sess := m.newSession()
			sess.ID = cookie.Value
			return sess, nil
		}
		return nil, err
	}

	var stored sessionPayload
	if err := json.Unmarshal(payload, &stored); err != nil {
		sess := m.newSession()
		sess.ID = cookie.Value
		return sess, nil
	}

	return &Session{
		ID:        cookie.Value,
		principal: stored.Principal,
		csrfToken: stored.CSRFToken,
	}, nil
}

// Commit persists the session and writes cookie headers as needed.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return nil
	}

	if sess.destroyed {
		if err := m.client.Del(ctx, m.redisKey(sess.ID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		http.SetCookie(w, &http.Cookie{
			Name:     m.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteStrictMode,
		})
		return nil
	}

	if sess.isNew && sess.ID == "" {
		sess.ID = m.generateSessionID()
	}

	if sess.dirty || sess.isNew {
		data, err := json.Marshal(sessionPayload{Principal: sess.principal, CSRFToken: sess.csrfToken})
		if err != nil {
			return err
		}
		if err := m.client.Set(ctx, m.redisKey(sess.ID), data, m.ttl).Err(); err != nil {
			return err
		}
		sess.dirty = false
	}

	if sess.ID != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     m.cookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteStrictMode,
			Expires:  time.Now().Add(m.ttl),
		})
	}
	return nil
}

// Destroy marks the session for deletion on the next Commit. Destroying an
// already destroyed session is a no-op, which makes logout idempotent.
func (m *Manager) Destroy(sess *Session) {
	if sess == nil {
		return
	}
	sess.destroyed = true
}

// TTL exposes the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// CookieName returns the cookie identifier used for sessions.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// SetPrincipal attaches the login snapshot to the session.
func (s *Session) SetPrincipal(p *authz.Principal) {
	s.principal = p
	s.dirty = true
}

// Principal returns the snapshot attached at login, or nil.
func (s *Session) Principal() *authz.Principal {
	if s == nil {
		return nil
	}
	return s.principal
}

// ClearPrincipal detaches the principal without discarding the session row.
func (s *Session) ClearPrincipal() {
	if s.principal == nil {
		return
	}
	s.principal = nil
	s.dirty = true
}

// SetCSRFToken stores the CSRF token bound to this session.
func (s *Session) SetCSRFToken(token string) {
	s.csrfToken = token
	s.dirty = true
}

// CSRFToken returns the stored CSRF token, if any.
func (s *Session) CSRFToken() string {
	if s == nil {
		return ""
	}
	return s.csrfToken
}

func (m *Manager) newSession() *Session {
	return &Session{
		ID:    m.generateSessionID(),
		isNew: true,
		dirty: true,
	}
}

func (m *Manager) redisKey(id string) string {
	return "session:" + id
}

func (m *Manager) generateSessionID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return base64.RawURLEncoding.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	if len(m.secret) > 0 {
		for i := range b {
			b[i] ^= m.secret[i%len(m.secret)]
		}
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
