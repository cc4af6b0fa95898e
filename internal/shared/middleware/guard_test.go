package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"szabo-data/inkwell/internal/api"
	"szabo-data/inkwell/internal/shared/config"
	"szabo-data/inkwell/internal/shared/middleware"
	"szabo-data/inkwell/internal/shared/session"
)

// sessionFor builds a request-scoped session in one of the states a guard
// can encounter.
func sessionFor(t *testing.T, state string) *session.Session {
	t.Helper()
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		RedisAddr:     mr.Addr(),
		SessionCookie: "test_session",
		SessionTTL:    time.Hour,
	}
	m := session.NewManager(cfg, redis.NewClient(&redis.Options{Addr: mr.Addr()}), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	switch state {
	case "unresolved":
		req.AddCookie(&http.Cookie{Name: "test_session", Value: "x"})
		mr.Close()
		return m.Load(context.Background(), req)
	case "anonymous":
		return m.Load(context.Background(), req)
	case "author":
		sess := m.Load(context.Background(), req)
		require.NoError(t, sess.SetAuth("tok", api.User{ID: 7, Username: "alice", Role: api.RoleAuthor}))
		return sess
	case "admin":
		sess := m.Load(context.Background(), req)
		require.NoError(t, sess.SetAuth("tok", api.User{ID: 1, Username: "root", Role: api.RoleAdmin}))
		return sess
	}
	t.Fatalf("unknown state %q", state)
	return nil
}

func serve(t *testing.T, guard func(http.Handler) http.Handler, sess *session.Session) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	reached := false
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req = req.WithContext(session.ContextWithSession(req.Context(), sess))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res, reached
}

func TestRequireAuth(t *testing.T) {
	cases := []struct {
		state      string
		wantStatus int
		wantTarget string
		wantNext   bool
	}{
		{"unresolved", http.StatusServiceUnavailable, "", false},
		{"anonymous", http.StatusSeeOther, middleware.LoginPath, false},
		{"author", http.StatusOK, "", true},
		{"admin", http.StatusOK, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.state, func(t *testing.T) {
			res, reached := serve(t, middleware.RequireAuth, sessionFor(t, tc.state))
			assert.Equal(t, tc.wantStatus, res.Code)
			assert.Equal(t, tc.wantTarget, res.Header().Get("Location"))
			assert.Equal(t, tc.wantNext, reached)
		})
	}
}

func TestRequireAuthWithoutMiddleware(t *testing.T) {
	// No session in context reads as unresolved, never as a redirect.
	res, reached := serve(t, middleware.RequireAuth, nil)
	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
	assert.False(t, reached)
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		state      string
		wantStatus int
		wantTarget string
		wantNext   bool
	}{
		{"unresolved", http.StatusServiceUnavailable, "", false},
		{"anonymous", http.StatusSeeOther, middleware.LoginPath, false},
		{"author", http.StatusSeeOther, "/", false},
		{"admin", http.StatusOK, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.state, func(t *testing.T) {
			res, reached := serve(t, middleware.RequireAdmin, sessionFor(t, tc.state))
			assert.Equal(t, tc.wantStatus, res.Code)
			assert.Equal(t, tc.wantTarget, res.Header().Get("Location"))
			assert.Equal(t, tc.wantNext, reached)
		})
	}
}
