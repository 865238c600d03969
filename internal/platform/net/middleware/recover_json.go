package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "maintnotice/internal/platform/errors"
	"maintnotice/internal/platform/logger"
	pnet "maintnotice/internal/platform/net"
	phttp "maintnotice/internal/platform/net/http"
)

// RecoverJSON converts panics into the standard JSON error envelope and logs
// the stack with the request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			// let the server abort the connection as it normally would
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())

			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
			phttp.JSON(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}
