package domain

import "context"

type userIDKey struct{}

// ContextWithUserID returns a context carrying the authenticated user id.
// The auth middleware installs it; services read it back with
// UserIDFromContext instead of relying on any process-wide state.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext extracts the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}
