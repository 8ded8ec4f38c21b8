package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie carries the signed session token.
const SessionCookie = "chopper_session"

// Manager issues and validates the signed session cookie and answers
// authentication checks for the routing layer.
type Manager struct {
	store  *SessionStore
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewManager creates a session manager. The secret signs the HMAC session
// token; secure marks cookies HTTPS-only.
func NewManager(store *SessionStore, secret string, ttl time.Duration, secure bool) *Manager {
	if store == nil {
		panic("auth: session store required")
	}
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
	}
}

// Store exposes the underlying session store.
func (m *Manager) Store() *SessionStore {
	return m.store
}

// ReadSessionID extracts and verifies the session id from the request
// cookie.
func (m *Manager) ReadSessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// IssueSessionID mints a fresh session id and sets the signed cookie.
func (m *Manager) IssueSessionID(w http.ResponseWriter) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign session token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// Authenticated reports whether the session id has an authenticated session.
func (m *Manager) Authenticated(ctx context.Context, sessionID string) bool {
	if sessionID == "" {
		return false
	}
	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return false
	}
	return sess.IsAuthenticated
}
