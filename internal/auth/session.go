package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/choppersalon/platform/internal/storage"
)

// Session is the persisted record of whether a visitor is logged in and who
// they are. Field names match the storefront's serialized session blob.
type Session struct {
	IsAuthenticated bool  `json:"isAuthenticated"`
	User            *User `json:"user"`
}

// SessionStore persists sessions in the key-value store, one blob per
// session id.
type SessionStore struct {
	kv  storage.Store
	ttl time.Duration
}

// NewSessionStore creates a session store. Sessions expire after ttl; a zero
// ttl keeps them until explicit logout.
func NewSessionStore(kv storage.Store, ttl time.Duration) *SessionStore {
	return &SessionStore{kv: kv, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Get loads the session for id. An absent session is returned as an empty,
// unauthenticated one.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	found, err := s.kv.GetJSON(ctx, sessionKey(id), &sess)
	if err != nil {
		return nil, fmt.Errorf("auth: load session: %w", err)
	}
	if !found {
		return &Session{}, nil
	}
	return &sess, nil
}

// Put writes the session immediately, so it survives reloads.
func (s *SessionStore) Put(ctx context.Context, id string, sess *Session) error {
	if err := s.kv.SetJSONWithTTL(ctx, sessionKey(id), sess, s.ttl); err != nil {
		return fmt.Errorf("auth: save session: %w", err)
	}
	return nil
}

// Clear removes the session record.
func (s *SessionStore) Clear(ctx context.Context, id string) error {
	if err := s.kv.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("auth: clear session: %w", err)
	}
	return nil
}

type contextKey string

const sessionIDKey contextKey = "sessionID"

// WithSessionID stores the visitor's session id on the context.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext returns the session id injected by the session
// middleware.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}
