package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/choppersalon/platform/internal/auth"
	"github.com/choppersalon/platform/internal/storage"
)

func newTestManager(t *testing.T) *auth.Manager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := auth.NewSessionStore(storage.NewRedisStore(client), time.Hour)
	return auth.NewManager(store, "test-secret", time.Hour, false)
}

func TestEnsureSessionIssuesCookie(t *testing.T) {
	mgr := newTestManager(t)

	var gotID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = auth.SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/shop", nil)
	rec := httptest.NewRecorder()
	EnsureSession(mgr)(handler).ServeHTTP(rec, req)

	if gotID == "" {
		t.Fatalf("expected a session id in context")
	}
	cookies := rec.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == auth.SessionCookie {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatalf("expected %s cookie to be set", auth.SessionCookie)
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("expected session cookie to be http-only")
	}

	// A second request carrying the cookie keeps the same id without
	// setting a new cookie.
	req2 := httptest.NewRequest(http.MethodGet, "/shop", nil)
	req2.AddCookie(sessionCookie)
	rec2 := httptest.NewRecorder()
	firstID := gotID
	EnsureSession(mgr)(handler).ServeHTTP(rec2, req2)

	if gotID != firstID {
		t.Fatalf("expected session id %q to persist, got %q", firstID, gotID)
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie on a returning visit")
	}
}

func TestRequireSessionRedirectsPages(t *testing.T) {
	mgr := newTestManager(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	chain := EnsureSession(mgr)(RequireSession(mgr)(handler))

	req := httptest.NewRequest(http.MethodGet, "/booking", nil)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/login" {
		t.Fatalf("expected redirect to /login, got %q", got)
	}
}

func TestRequireSessionRejectsAPIRequests(t *testing.T) {
	mgr := newTestManager(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	chain := EnsureSession(mgr)(RequireSession(mgr)(handler))

	req := httptest.NewRequest(http.MethodGet, "/api/booking", nil)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON error, got content type %q", ct)
	}
}

func TestRequireSessionPassesAuthenticated(t *testing.T) {
	mgr := newTestManager(t)

	// Log the session in directly through the store.
	issueRec := httptest.NewRecorder()
	id, err := mgr.IssueSessionID(issueRec)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	sess := &auth.Session{
		IsAuthenticated: true,
		User:            &auth.User{ID: "u1", Name: "Dana", Email: "dana@example.com"},
	}
	if err := mgr.Store().Put(t.Context(), id, sess); err != nil {
		t.Fatalf("store session: %v", err)
	}

	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	chain := EnsureSession(mgr)(RequireSession(mgr)(handler))

	req := httptest.NewRequest(http.MethodGet, "/booking", nil)
	req.AddCookie(issueRec.Result().Cookies()[0])
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}
