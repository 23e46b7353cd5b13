package middleware

import (
	"net/http"

	"anchor-hq/anchor/pkg/telemetry/logging"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID stores a request ID in the context and echoes it in the
// response. A caller-supplied X-Request-ID is kept when it is short enough;
// otherwise a UUIDv4 is generated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}
