package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"szabo-data/inkwell/internal/api"
	"szabo-data/inkwell/internal/components/admin"
	"szabo-data/inkwell/internal/components/auth"
	"szabo-data/inkwell/internal/components/categories"
	"szabo-data/inkwell/internal/components/posts"
	"szabo-data/inkwell/internal/components/tags"
	"szabo-data/inkwell/internal/shared/config"
	"szabo-data/inkwell/internal/shared/session"
	"szabo-data/inkwell/internal/view"
)

// newBackend stubs the blog REST API with enough behavior for end-to-end
// request flows: one published post, a login endpoint, and an admin stats
// endpoint that insists on the admin token.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	post := api.Post{
		ID:     1,
		Title:  "First Post",
		Slug:   "first-post",
		Status: api.StatusPublished,
		Author: api.PostAuthor{ID: 7, Username: "alice"},
		Category: api.Category{
			ID: 1, Name: "General", Slug: "general",
		},
		CreatedAt: "2025-06-01T10:00:00",
		UpdatedAt: "2025-06-01T10:00:00",
	}
	page := api.PostPage{Content: []api.Post{post}, Size: 10, TotalElements: 1, TotalPages: 1, First: true, Last: true}

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		switch {
		case r.URL.Path == "/auth/login":
			var req api.LoginRequest
			json.NewDecoder(r.Body).Decode(&req)
			switch req.EmailOrUsername {
			case "alice":
				json.NewEncoder(w).Encode(api.AuthResponse{
					Token: "tok-author",
					User:  api.User{ID: 7, Username: "alice", Role: api.RoleAuthor},
				})
			case "root":
				json.NewEncoder(w).Encode(api.AuthResponse{
					Token: "tok-admin",
					User:  api.User{ID: 1, Username: "root", Role: api.RoleAdmin},
				})
			default:
				w.WriteHeader(http.StatusUnauthorized)
			}
		case r.URL.Path == "/posts" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(page)
		case r.URL.Path == "/posts/my":
			if token == "" || token == "tok-stale" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(page)
		case r.URL.Path == "/posts/first-post":
			json.NewEncoder(w).Encode(post)
		case r.URL.Path == "/categories":
			json.NewEncoder(w).Encode([]api.Category{{ID: 1, Name: "General", Slug: "general"}})
		case r.URL.Path == "/tags":
			json.NewEncoder(w).Encode([]api.Tag{{ID: 1, Name: "go", Slug: "go"}})
		case r.URL.Path == "/admin/stats":
			if token != "tok-admin" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			json.NewEncoder(w).Encode(api.Stats{TotalPosts: 1, TotalUsers: 2, TotalCategories: 1, TotalTags: 1})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(backend.Close)
	return backend
}

type testApp struct {
	handler http.Handler
	manager *session.Manager
	redis   *miniredis.Miniredis
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	backend := newBackend(t)
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Version:       "test",
		Port:          0,
		Environment:   "dev",
		APIBaseURL:    backend.URL,
		RedisAddr:     mr.Addr(),
		SessionCookie: "test_session",
		SessionTTL:    time.Hour,
	}

	logger := zerolog.Nop()
	manager := session.NewManager(cfg, redis.NewClient(&redis.Options{Addr: mr.Addr()}), logger)
	client := api.NewClient(cfg.APIBaseURL, manager, logger)
	views, err := view.NewEngine()
	require.NoError(t, err)

	categoriesAPI := api.NewCategoriesAPI(client)
	s := NewServer(params{
		Config:        cfg,
		Logger:        logger,
		Sessions:      manager,
		HealthHandler: NewHealthHandler(NewHealthSrvc(manager, categoriesAPI)),
		Auth:          auth.NewRouter(api.NewAuthAPI(client), views),
		Posts:         posts.NewRouter(api.NewPostsAPI(client), categoriesAPI, views),
		Categories:    categories.NewRouter(categoriesAPI, views),
		Tags:          tags.NewRouter(api.NewTagsAPI(client), views),
		Admin:         admin.NewRouter(api.NewAdminAPI(client), categoriesAPI, views),
	})
	return &testApp{handler: s.Handler(), manager: manager, redis: mr}
}

func (a *testApp) login(t *testing.T, user string) string {
	t.Helper()
	form := url.Values{"emailOrUsername": {user}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	a.handler.ServeHTTP(res, req)
	require.Equal(t, http.StatusSeeOther, res.Code)
	for _, c := range res.Result().Cookies() {
		if c.Name == "test_session" {
			return c.Value
		}
	}
	t.Fatal("login set no session cookie")
	return ""
}

func (a *testApp) get(path, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "test_session", Value: sessionID})
	}
	res := httptest.NewRecorder()
	a.handler.ServeHTTP(res, req)
	return res
}

func TestHomeIsPublic(t *testing.T) {
	app := newTestApp(t)

	res := app.get("/", "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "First Post")
}

func TestPostDetailIsPublic(t *testing.T) {
	app := newTestApp(t)

	res := app.get("/posts/first-post", "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "First Post")
	assert.NotContains(t, res.Body.String(), "Edit")
}

func TestProtectedPageRedirectsAnonymous(t *testing.T) {
	app := newTestApp(t)

	res := app.get("/posts/my", "")
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/auth/login", res.Header().Get("Location"))
}

func TestAuthorCanSeeOwnPosts(t *testing.T) {
	app := newTestApp(t)
	id := app.login(t, "alice")

	res := app.get("/posts/my", id)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "First Post")
}

func TestAdminAreaRejectsAuthor(t *testing.T) {
	app := newTestApp(t)
	id := app.login(t, "alice")

	res := app.get("/admin", id)
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/", res.Header().Get("Location"))
}

func TestAdminAreaServesAdmin(t *testing.T) {
	app := newTestApp(t)
	id := app.login(t, "root")

	res := app.get("/admin", id)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Dashboard")
}

func TestStaleCredentialClearsSessionAndRedirects(t *testing.T) {
	app := newTestApp(t)
	id := app.login(t, "alice")

	// Invalidate the token server-side by rewriting the stored record.
	raw, err := app.redis.Get("session:" + id)
	require.NoError(t, err)
	app.redis.Set("session:"+id, strings.Replace(raw, "tok-author", "tok-stale", 1))

	res := app.get("/posts/my", id)
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/auth/login", res.Header().Get("Location"))

	// The session record is gone: the next request is anonymous.
	assert.False(t, app.redis.Exists("session:"+id))
	next := app.get("/posts/my", id)
	assert.Equal(t, http.StatusSeeOther, next.Code)
	assert.Equal(t, "/auth/login", next.Header().Get("Location"))
}

func TestGuardHoldsWhileSessionStoreDown(t *testing.T) {
	app := newTestApp(t)
	id := app.login(t, "alice")

	app.redis.Close()
	res := app.get("/posts/my", id)
	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	res := app.get("/health", "")
	require.Equal(t, http.StatusOK, res.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &health))
	assert.Equal(t, "serving", health.Status)
	assert.True(t, health.Redis)
	assert.True(t, health.API)
}

func TestStaticAssetsServed(t *testing.T) {
	app := newTestApp(t)

	res := app.get("/static/app.css", "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "body")
}
