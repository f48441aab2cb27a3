package httpx

import (
	"log"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware turns a handler panic into a 500 envelope, unless the
// handler already started its response, and logs it in the access log format.
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
			log.Printf("panic method=%s path=%s request_id=%s err=%v stack=%q",
				r.Method, r.URL.Path, RequestIDFrom(r), rec, debug.Stack())

			if rw, ok := w.(*responseWriter); ok && rw.wroteHeader() {
				return
			}
			JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
		}()
		next.ServeHTTP(w, r)
	})
}
