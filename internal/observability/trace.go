package observability

import (
	"net/http"

	"go.uber.org/zap"
)

// Trace creates a middleware that injects a trace ID into every request.
// Request IDs are not assigned here: the orchestrator owns them, so the ID
// returned to the caller always matches the one in the telemetry record.
func Trace() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			traceID := GenerateTraceID()
			ctx = WithTraceID(ctx, traceID)

			w.Header().Set("X-Trace-Id", traceID)

			contextLogger := FromContext(ctx)
			contextLogger.Info("request started",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
