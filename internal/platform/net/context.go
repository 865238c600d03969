// Package net provides request context helpers and the JSON reply envelope
// shared by transports
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"

	"maintnotice/internal/platform/logger"
)

// WithRequest annotates ctx with the request id for both chi and the
// request scoped logger
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	// set chi RequestID so chimw.GetReqID can retrieve it
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
