// Package respond centralizes how API failures become responses. It is the
// single place that turns the gateway's 401 sentinel into the login
// redirect; every other error surfaces as a notice, per the error taxonomy
// of the page layer.
package respond

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"szabo-data/inkwell/internal/api"
	"szabo-data/inkwell/internal/shared/middleware"
	"szabo-data/inkwell/internal/shared/session"
	"szabo-data/inkwell/internal/view"
)

const genericMessage = "Something went wrong. Please try again."

// message picks what the visitor gets to see: server validation/business
// messages verbatim, everything else generic.
func message(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericMessage
}

// Fail handles an API error from a form action: flash the notice and send
// the visitor back somewhere useful. A rejected credential skips the notice
// and goes straight to the login page; the session is already cleared.
func Fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, api.ErrUnauthenticated) {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}
	hlog.FromRequest(r).Warn().Err(err).Str("path", r.URL.Path).Msg("action failed")
	if sess := session.FromContext(r.Context()); sess != nil {
		sess.AddFlash(session.FlashError, message(err))
	}
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}

type errorPageData struct {
	Status  int
	Message string
}

// Error handles an API error while rendering a page: show a terminal error
// state instead of the page. The 401 policy applies here too.
func Error(w http.ResponseWriter, r *http.Request, views *view.Engine, err error) {
	if errors.Is(err, api.ErrUnauthenticated) {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}
	hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("page load failed")

	status := http.StatusBadGateway
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		status = apiErr.Status
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := view.BaseData(r, "Error", errorPageData{Status: status, Message: message(err)})
	if renderErr := views.Render(w, "pages/error.html", data); renderErr != nil {
		hlog.FromRequest(r).Error().Err(renderErr).Msg("render error page")
	}
}
