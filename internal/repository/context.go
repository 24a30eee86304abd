package repository

import "context"

type contextKey int

const (
	tokenKey contextKey = iota
	requestIDKey
)

// ContextWithToken attaches the backend API token of the authenticated
// session; adapters forward it on every upstream call.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// ContextWithRequestID propagates the portal request ID to upstream calls.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}
