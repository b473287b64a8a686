package finpulse

import "context"

type contextKey string

const sessionContextKey contextKey = "finpulse:session"

// WithSessionContext stores the request session in the standard context so
// code below the HTTP layer can read it without a fiber dependency.
func WithSessionContext(ctx context.Context, session Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext retrieves a session previously stored by the gate
func SessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}
