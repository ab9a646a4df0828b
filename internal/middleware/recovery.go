package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type recoveryWriter struct {
	http.ResponseWriter
	headerWritten bool
}

func (rw *recoveryWriter) WriteHeader(code int) {
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recoveryWriter) Write(b []byte) (int, error) {
	rw.headerWritten = true
	return rw.ResponseWriter.Write(b)
}

func (rw *recoveryWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Recovery turns a handler panic into a 500 INTERNAL_ERROR response unless
// the handler already started writing. A panic skips the access log line, so
// the panic record carries the request and user IDs itself.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &recoveryWriter{ResponseWriter: w}
			r, slot := slotFor(r)

			defer func() {
				err := recover()
				if err == nil {
					return
				}

				attrs := []any{
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
				}
				if id := chimw.GetReqID(r.Context()); id != "" {
					attrs = append(attrs, "request_id", id)
				}
				if slot.userID != "" {
					attrs = append(attrs, "user_id", slot.userID)
				}
				logger.Error("panic recovered", append(attrs, "stack", string(debug.Stack()))...)

				if rw.headerWritten {
					return
				}
				writeInternalError(rw, logger)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

func writeInternalError(w http.ResponseWriter, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	body := map[string]any{
		"error": map[string]string{
			"code":    "INTERNAL_ERROR",
			"message": "internal server error",
		},
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write recovery response", "error", err)
	}
}
