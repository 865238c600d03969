package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"maintnotice/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins enables CORS for the listed origins; empty disables CORS
	CORSOrigins []string
	// MaxBodyBytes caps request bodies; 0 disables the cap
	MaxBodyBytes int64
	// SlowRequest marks slower requests at warn level in the access log
	SlowRequest time.Duration
}

// CommonStack returns a baseline per scope middleware slice
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestContext,

		// safety
		middleware.RecoverJSON,
		middleware.BodyLimit(o.MaxBodyBytes),

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
	}
	if len(o.CORSOrigins) > 0 {
		stack = append(stack, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	return append(stack,
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(30*time.Second),
	)
}
