package session

import (
	"context"
	"net/http"
)

// commitWriter commits the session right before the first response byte, so
// the Set-Cookie header and the Redis write (or delete) land ahead of any
// redirect or body the handler produces.
type commitWriter struct {
	http.ResponseWriter
	ctx           context.Context
	manager       *Manager
	session       *Session
	headerWritten bool
}

func (w *commitWriter) WriteHeader(statusCode int) {
	if !w.headerWritten {
		w.headerWritten = true
		if err := w.manager.Commit(w.ctx, w.ResponseWriter, w.session); err != nil {
			w.manager.logger.Error().Err(err).Msg("session commit failed")
		}
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *commitWriter) Write(data []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(data)
}

// Middleware resolves the session before any guard or handler runs and
// commits it on the way out. Guards therefore never observe a session that
// is still loading unless the store itself is down.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sess := m.Load(ctx, r)
			ctx = ContextWithSession(ctx, sess)

			wrapped := &commitWriter{
				ResponseWriter: w,
				ctx:            ctx,
				manager:        m,
				session:        sess,
			}
			next.ServeHTTP(wrapped, r.WithContext(ctx))
		})
	}
}
