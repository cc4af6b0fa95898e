package tags

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"szabo-data/inkwell/internal/api"
	"szabo-data/inkwell/internal/shared/respond"
	"szabo-data/inkwell/internal/view"
)

type Router struct {
	tags  *api.TagsAPI
	views *view.Engine
}

func NewRouter(tagsAPI *api.TagsAPI, views *view.Engine) *Router {
	return &Router{tags: tagsAPI, views: views}
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.List)
	router.Get("/{slug}", r.Posts)
	return router
}

type listPageData struct {
	Tags []api.Tag
}

func (r *Router) List(w http.ResponseWriter, req *http.Request) {
	tagList, err := r.tags.List(req.Context())
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}
	r.render(w, req, "pages/tags.html", "Tags", listPageData{Tags: tagList})
}

type postsPageData struct {
	Slug  string
	Posts []api.Post
	Pager view.Pager
}

func (r *Router) Posts(w http.ResponseWriter, req *http.Request) {
	slug := chi.URLParam(req, "slug")
	page := 0
	if parsed, err := strconv.Atoi(req.URL.Query().Get("page")); err == nil && parsed > 0 {
		page = parsed
	}

	result, err := r.tags.Posts(req.Context(), slug, page)
	if err != nil {
		respond.Error(w, req, r.views, err)
		return
	}
	data := postsPageData{
		Slug:  slug,
		Posts: result.Content,
		Pager: view.NewPager(result, "/tags/"+slug, ""),
	}
	r.render(w, req, "pages/tag_posts.html", slug, data)
}

func (r *Router) render(w http.ResponseWriter, req *http.Request, name, title string, data any) {
	if err := r.views.Render(w, name, view.BaseData(req, title, data)); err != nil {
		hlog.FromRequest(req).Error().Err(err).Str("template", name).Msg("render failed")
	}
}
