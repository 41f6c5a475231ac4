package middleware

import "context"

// ContextKey is a private type for request context keys.
type ContextKey string

const (
	UserIDCtxKey   = ContextKey("user_id")
	UserRoleCtxKey = ContextKey("user_role")
)

const RoleAdmin = "admin"

// Session is the authenticated caller resolved by JWTAuth.
type Session struct {
	UserID string
	Role   string
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// WithSession stores the caller in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, s.UserID)
	return context.WithValue(ctx, UserRoleCtxKey, s.Role)
}

// SessionFrom returns the caller stored by JWTAuth. ok is false on public
// routes.
func SessionFrom(ctx context.Context) (Session, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	if !ok || userID == "" {
		return Session{}, false
	}
	role, _ := ctx.Value(UserRoleCtxKey).(string)
	return Session{UserID: userID, Role: role}, true
}
