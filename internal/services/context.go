package services

import "context"

type contextKey string

const (
	runIDKey       contextKey = "run_id"
	contentTypeKey contextKey = "content_type"
)

// WithRunID annotates context with the run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithContentType annotates context with the library being targeted.
func WithContentType(ctx context.Context, kind string) context.Context {
	if kind == "" {
		return ctx
	}
	return context.WithValue(ctx, contentTypeKey, kind)
}

// ContentTypeFromContext returns the targeted library if present.
func ContentTypeFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(contentTypeKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
