package middleware

import "context"

type contextKey string

const userIDContextKey contextKey = "user_id"

// WithUserID injects the authenticated user's ID into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the authenticated user's ID, or "" when the
// request did not pass the auth middleware.
func UserIDFromContext(ctx context.Context) string {
	v := ctx.Value(userIDContextKey)
	if v == nil {
		return ""
	}
	id, _ := v.(string)
	return id
}
