package posts

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"

	"szabo-data/inkwell/internal/api"
	"szabo-data/inkwell/internal/shared/middleware"
	"szabo-data/inkwell/internal/shared/respond"
	"szabo-data/inkwell/internal/shared/session"
	"szabo-data/inkwell/internal/view"
)

// authorStatuses are the states an author can ask for on the post form.
var authorStatuses = []api.PostStatus{api.StatusDraft, api.StatusPending}

// filterStatuses are the states offered by the my-posts filter.
var filterStatuses = []api.PostStatus{api.StatusDraft, api.StatusPending, api.StatusPublished, api.StatusRejected}

type Router struct {
	posts      *api.PostsAPI
	categories *api.CategoriesAPI
	views      *view.Engine
	validate   *validator.Validate
}

func NewRouter(postsAPI *api.PostsAPI, categoriesAPI *api.CategoriesAPI, views *view.Engine) *Router {
	return &Router{
		posts:      postsAPI,
		categories: categoriesAPI,
		views:      views,
		validate:   validator.New(),
	}
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.Home)
	router.Group(func(g chi.Router) {
		g.Use(middleware.RequireAuth)
		g.Get("/my", r.MyPosts)
		g.Get("/new", r.NewForm)
		g.Post("/new", r.Create)
		g.Get("/{slug}/edit", r.EditForm)
		g.Post("/{slug}/edit", r.Update)
		g.Post("/{slug}/delete", r.Delete)
	})
	router.Get("/{slug}", r.Detail)
	return router
}

type listPageData struct {
	Posts []api.Post
	Pager view.Pager
	Query string
}

// Home renders the published post list, or search results when q is given.
func (r *Router) Home(w http.ResponseWriter, req *http.Request) {
	page := pageParam(req)
	query := strings.TrimSpace(req.URL.Query().Get("q"))

	var (
		result *api.PostPage
		err    error
	)
	if query != "" {
		result, err = r.posts.Search(req.Context(), query, page)
	} else {
		result, err = r.posts.List(req.Context(), page)
	}
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}

	extra := ""
	if query != "" {
		extra = "q=" + strings.ReplaceAll(query, " ", "+")
	}
	data := listPageData{
		Posts: result.Content,
		Pager: view.NewPager(result, "/", extra),
		Query: query,
	}
	r.render(w, req, "pages/home.html", "Home", data)
}

type detailPageData struct {
	Post      *api.Post
	CanModify bool
}

func (r *Router) Detail(w http.ResponseWriter, req *http.Request) {
	slug := chi.URLParam(req, "slug")
	post, err := r.posts.GetBySlug(req.Context(), slug)
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}

	canModify := false
	if sess := session.FromContext(req.Context()); sess != nil {
		if user, ok := sess.Identity(); ok {
			canModify = user.CanModify(post)
		}
	}
	r.render(w, req, "pages/post.html", post.Title, detailPageData{Post: post, CanModify: canModify})
}

type myPostsPageData struct {
	Posts    []api.Post
	Pager    view.Pager
	Status   string
	Statuses []api.PostStatus
}

func (r *Router) MyPosts(w http.ResponseWriter, req *http.Request) {
	page := pageParam(req)
	status := req.URL.Query().Get("status")

	result, err := r.posts.My(req.Context(), page, status)
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}

	extra := ""
	if status != "" {
		extra = "status=" + status
	}
	data := myPostsPageData{
		Posts:    result.Content,
		Pager:    view.NewPager(result, "/posts/my", extra),
		Status:   status,
		Statuses: filterStatuses,
	}
	r.render(w, req, "pages/my_posts.html", "My posts", data)
}

type postForm struct {
	Title         string `validate:"required,max=200"`
	Content       string `validate:"required"`
	CategoryID    int64  `validate:"required"`
	Tags          string
	FeaturedImage string `validate:"omitempty,url"`
	Status        api.PostStatus
}

type formPageData struct {
	Form       postForm
	Categories []api.Category
	Errors     map[string]string
	Statuses   []api.PostStatus
	Action     string
	Heading    string
}

func (r *Router) NewForm(w http.ResponseWriter, req *http.Request) {
	categories, err := r.categories.List(req.Context())
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}
	data := formPageData{
		Form:       postForm{Status: api.StatusDraft},
		Categories: categories,
		Statuses:   authorStatuses,
		Action:     "/posts/new",
		Heading:    "New post",
	}
	r.render(w, req, "pages/post_form.html", "New post", data)
}

func (r *Router) Create(w http.ResponseWriter, req *http.Request) {
	form := parsePostForm(req)
	if fieldErrors := r.validateForm(form); len(fieldErrors) > 0 {
		r.renderFormErrors(w, req, form, fieldErrors, "/posts/new", "New post")
		return
	}

	post, err := r.posts.Create(req.Context(), form.request())
	if err != nil {
		respond.Fail(w, req, err, "/posts/new")
		return
	}
	session.FromContext(req.Context()).AddFlash(session.FlashSuccess, "Post created.")
	http.Redirect(w, req, "/posts/"+post.Slug, http.StatusSeeOther)
}

func (r *Router) EditForm(w http.ResponseWriter, req *http.Request) {
	post, ok := r.fetchOwned(w, req)
	if !ok {
		return
	}
	categories, err := r.categories.List(req.Context())
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}

	tagNames := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tagNames = append(tagNames, tag.Name)
	}
	data := formPageData{
		Form: postForm{
			Title:         post.Title,
			Content:       post.Content,
			CategoryID:    post.Category.ID,
			Tags:          strings.Join(tagNames, ", "),
			FeaturedImage: post.FeaturedImage,
			Status:        post.Status,
		},
		Categories: categories,
		Statuses:   filterStatuses,
		Action:     "/posts/" + post.Slug + "/edit",
		Heading:    "Edit post",
	}
	r.render(w, req, "pages/post_form.html", "Edit post", data)
}

func (r *Router) Update(w http.ResponseWriter, req *http.Request) {
	post, ok := r.fetchOwned(w, req)
	if !ok {
		return
	}

	form := parsePostForm(req)
	if fieldErrors := r.validateForm(form); len(fieldErrors) > 0 {
		r.renderFormErrors(w, req, form, fieldErrors, "/posts/"+post.Slug+"/edit", "Edit post")
		return
	}

	updated, err := r.posts.Update(req.Context(), post.ID, form.request())
	if err != nil {
		respond.Fail(w, req, err, "/posts/"+post.Slug+"/edit")
		return
	}
	session.FromContext(req.Context()).AddFlash(session.FlashSuccess, "Post updated.")
	http.Redirect(w, req, "/posts/"+updated.Slug, http.StatusSeeOther)
}

func (r *Router) Delete(w http.ResponseWriter, req *http.Request) {
	post, ok := r.fetchOwned(w, req)
	if !ok {
		return
	}
	if err := r.posts.Delete(req.Context(), post.ID); err != nil {
		respond.Fail(w, req, err, "/posts/my")
		return
	}
	session.FromContext(req.Context()).AddFlash(session.FlashSuccess, "Post deleted.")
	http.Redirect(w, req, "/posts/my", http.StatusSeeOther)
}

// fetchOwned loads the post under edit and enforces ownership. The check can
// only run after the round trip, since the author is not known beforehand.
// Denial flashes a notice and sends the visitor back to their own posts.
func (r *Router) fetchOwned(w http.ResponseWriter, req *http.Request) (*api.Post, bool) {
	slug := chi.URLParam(req, "slug")
	post, err := r.posts.GetBySlug(req.Context(), slug)
	if err != nil {
		respond.Error(w, req, r.views, err)
		return nil, false
	}

	sess := session.FromContext(req.Context())
	user, _ := sess.Identity()
	if !user.CanModify(post) {
		hlog.FromRequest(req).Warn().Str("slug", slug).Msg("edit denied, not the author")
		sess.AddFlash(session.FlashError, "You do not have permission to edit this post.")
		http.Redirect(w, req, "/posts/my", http.StatusSeeOther)
		return nil, false
	}
	return post, true
}

func parsePostForm(req *http.Request) postForm {
	categoryID, _ := strconv.ParseInt(req.PostFormValue("categoryId"), 10, 64)
	status := api.PostStatus(req.PostFormValue("status"))
	if status == "" {
		status = api.StatusDraft
	}
	return postForm{
		Title:         strings.TrimSpace(req.PostFormValue("title")),
		Content:       req.PostFormValue("content"),
		CategoryID:    categoryID,
		Tags:          req.PostFormValue("tags"),
		FeaturedImage: strings.TrimSpace(req.PostFormValue("featuredImage")),
		Status:        status,
	}
}

func (f postForm) request() api.PostRequest {
	var tags []string
	for _, tag := range strings.Split(f.Tags, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return api.PostRequest{
		Title:         f.Title,
		Content:       f.Content,
		CategoryID:    f.CategoryID,
		Tags:          tags,
		Status:        f.Status,
		FeaturedImage: f.FeaturedImage,
	}
}

func (r *Router) validateForm(form postForm) map[string]string {
	err := r.validate.Struct(form)
	if err == nil {
		return nil
	}
	fieldErrors := make(map[string]string)
	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		fieldErrors["title"] = "Please check the form and try again."
		return fieldErrors
	}
	for _, fieldErr := range invalid {
		switch fieldErr.Field() {
		case "Title":
			fieldErrors["title"] = "A title of at most 200 characters is required."
		case "Content":
			fieldErrors["content"] = "Content is required."
		case "CategoryID":
			fieldErrors["categoryId"] = "Pick a category."
		case "FeaturedImage":
			fieldErrors["featuredImage"] = "Enter a valid image URL."
		}
	}
	return fieldErrors
}

func (r *Router) renderFormErrors(w http.ResponseWriter, req *http.Request, form postForm, fieldErrors map[string]string, action, heading string) {
	categories, err := r.categories.List(req.Context())
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}
	statuses := authorStatuses
	if heading == "Edit post" {
		statuses = filterStatuses
	}
	data := formPageData{
		Form:       form,
		Categories: categories,
		Errors:     fieldErrors,
		Statuses:   statuses,
		Action:     action,
		Heading:    heading,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	if renderErr := r.views.Render(w, "pages/post_form.html", view.BaseData(req, heading, data)); renderErr != nil {
		hlog.FromRequest(req).Error().Err(renderErr).Msg("render post form")
	}
}

func (r *Router) render(w http.ResponseWriter, req *http.Request, name, title string, data any) {
	if err := r.views.Render(w, name, view.BaseData(req, title, data)); err != nil {
		hlog.FromRequest(req).Error().Err(err).Str("template", name).Msg("render failed")
	}
}

func pageParam(req *http.Request) int {
	page, err := strconv.Atoi(req.URL.Query().Get("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}
