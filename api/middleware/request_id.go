package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/pricing-engine-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// Inbound ids longer than this are discarded and regenerated.
const maxRequestIDLen = 64

// RequestID tags each request with a correlation id, honoring one supplied
// by the caller, and echoes it back in the response headers.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" || len(reqID) > maxRequestIDLen {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
