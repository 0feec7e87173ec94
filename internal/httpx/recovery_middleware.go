package httpx

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware turns a panicking lookup into a 500 envelope. A panic
// after the body started streaming can only be logged. http.ErrAbortHandler
// is re-raised so the server aborts the connection quietly.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw, ok := w.(*responseWriter)
		if !ok {
			rw = newResponseWriter(w)
		}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, isErr := rec.(error); isErr && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			log.Printf("panic recovered: method=%s path=%s request_id=%s committed=%t error=%v stack=%s",
				r.Method, r.URL.EscapedPath(), RequestIDFrom(r), rw.headerWritten, rec, debug.Stack())

			if !rw.headerWritten {
				JSONError(rw, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
			}
		}()

		next.ServeHTTP(rw, r)
	})
}
