package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"szabo-data/inkwell/internal/api"
	"szabo-data/inkwell/internal/shared/middleware"
	"szabo-data/inkwell/internal/shared/respond"
	"szabo-data/inkwell/internal/shared/session"
	"szabo-data/inkwell/internal/view"
)

var moderationStatuses = []api.PostStatus{api.StatusDraft, api.StatusPending, api.StatusPublished, api.StatusRejected}

type Router struct {
	admin      *api.AdminAPI
	categories *api.CategoriesAPI
	views      *view.Engine
}

func NewRouter(adminAPI *api.AdminAPI, categoriesAPI *api.CategoriesAPI, views *view.Engine) *Router {
	return &Router{
		admin:      adminAPI,
		categories: categoriesAPI,
		views:      views,
	}
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)
	router.Get("/", r.Dashboard)
	router.Get("/posts", r.Posts)
	router.Post("/posts/{id}/approve", r.ApprovePost)
	router.Post("/posts/{id}/reject", r.RejectPost)
	router.Post("/posts/{id}/publish", r.PublishPost)
	router.Get("/users", r.Users)
	router.Post("/users/{id}/delete", r.DeleteUser)
	router.Get("/categories", r.Categories)
	router.Post("/categories", r.CreateCategory)
	router.Post("/categories/{id}", r.UpdateCategory)
	router.Post("/categories/{id}/delete", r.DeleteCategory)
	return router
}

type dashboardPageData struct {
	Stats *api.Stats
}

func (r *Router) Dashboard(w http.ResponseWriter, req *http.Request) {
	stats, err := r.admin.Stats(req.Context())
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}
	r.render(w, req, "pages/admin_dashboard.html", "Dashboard", dashboardPageData{Stats: stats})
}

type postsPageData struct {
	Posts    []api.Post
	Pager    view.Pager
	Status   string
	Statuses []api.PostStatus
}

func (r *Router) Posts(w http.ResponseWriter, req *http.Request) {
	page := 0
	if parsed, err := strconv.Atoi(req.URL.Query().Get("page")); err == nil && parsed > 0 {
		page = parsed
	}
	status := req.URL.Query().Get("status")

	result, err := r.admin.Posts(req.Context(), page, status)
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}

	extra := ""
	if status != "" {
		extra = "status=" + status
	}
	data := postsPageData{
		Posts:    result.Content,
		Pager:    view.NewPager(result, "/admin/posts", extra),
		Status:   status,
		Statuses: moderationStatuses,
	}
	r.render(w, req, "pages/admin_posts.html", "Moderation", data)
}

func (r *Router) ApprovePost(w http.ResponseWriter, req *http.Request) {
	id, ok := idParam(w, req)
	if !ok {
		return
	}
	if _, err := r.admin.Approve(req.Context(), id); err != nil {
		respond.Fail(w, req, err, "/admin/posts")
		return
	}
	session.FromContext(req.Context()).AddFlash(session.FlashSuccess, "Post approved.")
	http.Redirect(w, req, "/admin/posts", http.StatusSeeOther)
}

func (r *Router) RejectPost(w http.ResponseWriter, req *http.Request) {
	id, ok := idParam(w, req)
	if !ok {
		return
	}
	reason := strings.TrimSpace(req.PostFormValue("reason"))
	if _, err := r.admin.Reject(req.Context(), id, reason); err != nil {
		respond.Fail(w, req, err, "/admin/posts")
		return
	}
	session.FromContext(req.Context()).AddFlash(session.FlashSuccess, "Post rejected.")
	http.Redirect(w, req, "/admin/posts", http.StatusSeeOther)
}

func (r *Router) PublishPost(w http.ResponseWriter, req *http.Request) {
	id, ok := idParam(w, req)
	if !ok {
		return
	}
	if _, err := r.admin.Publish(req.Context(), id); err != nil {
		respond.Fail(w, req, err, "/admin/posts")
		return
	}
	session.FromContext(req.Context()).AddFlash(session.FlashSuccess, "Post published.")
	http.Redirect(w, req, "/admin/posts", http.StatusSeeOther)
}

type usersPageData struct {
	Users []api.User
}

func (r *Router) Users(w http.ResponseWriter, req *http.Request) {
	users, err := r.admin.Users(req.Context())
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}
	r.render(w, req, "pages/admin_users.html", "Users", usersPageData{Users: users})
}

func (r *Router) DeleteUser(w http.ResponseWriter, req *http.Request) {
	id, ok := idParam(w, req)
	if !ok {
		return
	}
	if err := r.admin.DeleteUser(req.Context(), id); err != nil {
		respond.Fail(w, req, err, "/admin/users")
		return
	}
	hlog.FromRequest(req).Info().Int64("user_id", id).Msg("user removed")
	session.FromContext(req.Context()).AddFlash(session.FlashSuccess, "User removed.")
	http.Redirect(w, req, "/admin/users", http.StatusSeeOther)
}

type categoriesPageData struct {
	Categories []api.Category
}

func (r *Router) Categories(w http.ResponseWriter, req *http.Request) {
	categories, err := r.categories.List(req.Context())
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}
	r.render(w, req, "pages/admin_categories.html", "Categories", categoriesPageData{Categories: categories})
}

func (r *Router) CreateCategory(w http.ResponseWriter, req *http.Request) {
	form := categoryForm(req)
	if form.Name == "" {
		session.FromContext(req.Context()).AddFlash(session.FlashError, "Category name is required.")
		http.Redirect(w, req, "/admin/categories", http.StatusSeeOther)
		return
	}
	if _, err := r.categories.Create(req.Context(), form); err != nil {
		respond.Fail(w, req, err, "/admin/categories")
		return
	}
	session.FromContext(req.Context()).AddFlash(session.FlashSuccess, "Category created.")
	http.Redirect(w, req, "/admin/categories", http.StatusSeeOther)
}

func (r *Router) UpdateCategory(w http.ResponseWriter, req *http.Request) {
	id, ok := idParam(w, req)
	if !ok {
		return
	}
	form := categoryForm(req)
	if form.Name == "" {
		session.FromContext(req.Context()).AddFlash(session.FlashError, "Category name is required.")
		http.Redirect(w, req, "/admin/categories", http.StatusSeeOther)
		return
	}
	if _, err := r.categories.Update(req.Context(), id, form); err != nil {
		respond.Fail(w, req, err, "/admin/categories")
		return
	}
	session.FromContext(req.Context()).AddFlash(session.FlashSuccess, "Category updated.")
	http.Redirect(w, req, "/admin/categories", http.StatusSeeOther)
}

func (r *Router) DeleteCategory(w http.ResponseWriter, req *http.Request) {
	id, ok := idParam(w, req)
	if !ok {
		return
	}
	if err := r.categories.Delete(req.Context(), id); err != nil {
		respond.Fail(w, req, err, "/admin/categories")
		return
	}
	session.FromContext(req.Context()).AddFlash(session.FlashSuccess, "Category deleted.")
	http.Redirect(w, req, "/admin/categories", http.StatusSeeOther)
}

func categoryForm(req *http.Request) api.CategoryRequest {
	return api.CategoryRequest{
		Name: strings.TrimSpace(req.PostFormValue("name")),
		Slug: strings.TrimSpace(req.PostFormValue("slug")),
	}
}

func idParam(w http.ResponseWriter, req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, req)
		return 0, false
	}
	return id, true
}

func (r *Router) render(w http.ResponseWriter, req *http.Request, name, title string, data any) {
	if err := r.views.Render(w, name, view.BaseData(req, title, data)); err != nil {
		hlog.FromRequest(req).Error().Err(err).Str("template", name).Msg("render failed")
	}
}
