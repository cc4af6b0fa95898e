package session

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// FromContext extracts the session from context. Returns nil when no session
// middleware ran, which callers must treat as an unresolved session.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey{}).(*Session)
	return s
}

// Credential implements api.CredentialStore against the request-scoped
// session, so the transport layer reads the durable pair without knowing
// anything about cookies or handlers.
func (m *Manager) Credential(ctx context.Context) (string, bool) {
	return FromContext(ctx).Credential()
}

// Clear implements api.CredentialStore. It drops the in-memory pair at once
// and marks the durable record for deletion; commit removes it before the
// response leaves. Safe to call repeatedly.
func (m *Manager) Clear(ctx context.Context) {
	FromContext(ctx).Clear()
}
