package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	pnet "maintnotice/internal/platform/net"
)

// RequestContext copies the chi request id into the request scoped logger
// context and mirrors it on the response. Mount after RequestID
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chimw.GetReqID(r.Context())
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set(chimw.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(pnet.WithRequest(r.Context(), id)))
	})
}
