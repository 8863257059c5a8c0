package auth

import "context"

type sessionContextKey struct{}

// ContextWithSession attaches the resolved session to the context.
func ContextWithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, &session)
}

// SessionFromContext extracts the session from the context, if one was
// attached by the session middleware.
func SessionFromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	v, ok := ctx.Value(sessionContextKey{}).(*Session)
	if !ok || v == nil || v.Departamento == "" {
		return Session{}, false
	}
	return *v, true
}
