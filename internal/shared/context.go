package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// Principal is the signed-in user as remembered by the session.
type Principal struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// PrincipalFromContext returns the signed-in user, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	sess := SessionFromContext(ctx)
	if sess == nil || sess.User() == "" {
		return Principal{}, false
	}
	return Principal{
		ID:    sess.User(),
		Name:  sess.Get(sessionUserNameKey),
		Email: sess.Get(sessionUserEmailKey),
		Role:  sess.Get(sessionUserRoleKey),
	}, true
}
