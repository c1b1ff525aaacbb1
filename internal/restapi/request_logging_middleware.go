package restapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"wayfinder.transit.dev/internal/logging"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// NewRequestLoggingMiddleware logs one line per request. Each request gets
// an id, echoed in X-Request-Id and attached to the logger that handlers
// read from the context. clientKey names the rate-limit client; API keys
// are never logged.
func NewRequestLoggingMiddleware(logger *slog.Logger, clientKey func(*http.Request) string) func(http.Handler) http.Handler {
	if clientKey == nil {
		clientKey = ipClientKey
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := uuid.NewString()
			w.Header().Set("X-Request-Id", requestID)
			reqLogger := logger.With(slog.String("request_id", requestID))
			r = r.WithContext(logging.WithLogger(r.Context(), reqLogger))

			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(recorder, r)

			client := clientKey(r)
			if strings.HasPrefix(client, "key:") {
				client = "key"
			}

			logging.LogHTTPRequest(reqLogger,
				r.Method,
				r.URL.Path,
				recorder.statusCode,
				float64(time.Since(start).Nanoseconds())/1e6,
				slog.String("client", client),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.String("component", "http_server"))
		})
	}
}
