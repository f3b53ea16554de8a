package httpx

import (
	"log"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware turns a handler panic into the HTML error page. A page
// already partly written is left as is. http.ErrAbortHandler is passed on
// so the server can drop the connection quietly.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			started := false
			if rw, ok := w.(*responseWriter); ok {
				started = rw.wroteHeader()
			}
			log.Printf("panic recovered: request_id=%s client_id=%s method=%s path=%s started=%t error=%v stack=%s",
				RequestIDFrom(r), ClientIDFrom(r), r.Method, r.URL.Path, started, rec, debug.Stack())
			if !started {
				HTMLError(w, r, http.StatusInternalServerError, "An internal error occurred")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
