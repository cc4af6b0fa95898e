package view

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"szabo-data/inkwell/internal/api"
	"szabo-data/inkwell/internal/shared/session"
	"szabo-data/inkwell/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	Identity    *api.User
	IsAdmin     bool
	Flashes     []session.Flash
	CurrentPath string
	Data        any
}

// NewEngine parses the embedded templates once at startup.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatDate": formatDate,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

// BaseData assembles the shared template fields from the request session.
// Popping the flashes here means any queued notice shows on whichever page
// renders next, and only once.
func BaseData(r *http.Request, title string, data any) TemplateData {
	td := TemplateData{
		Title:       title,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	sess := session.FromContext(r.Context())
	if sess != nil {
		if user, ok := sess.Identity(); ok {
			td.Identity = user
			td.IsAdmin = sess.IsAdmin()
		}
		td.Flashes = sess.PopFlashes()
	}
	return td
}

// formatDate renders the API's timestamp strings for display. The API sends
// local date-times without a zone, so only the date part is trusted.
func formatDate(value string) string {
	if len(value) < 10 {
		return value
	}
	t, err := time.Parse("2006-01-02", value[:10])
	if err != nil {
		return value
	}
	return t.Format("02 Jan 2006")
}
