package internal

import "context"

type ctxKey string

const contextRequestIDKey ctxKey = "requestID"

// RequestIDFromContext returns the simulated request id, or "" if absent.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextRequestIDKey).(string); ok {
		return id
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextRequestIDKey, id)
}
