// Package httpapi exposes the league manager over HTTP with a google-style
// JSON envelope on every response.
package httpapi

import (
	"net/http"

	"github.com/fantaleague/fantacalcio/internal/platform/logging"
)

// NewRouter assembles the full HTTP surface: health probe, public read
// routes, and the authenticated league/auction/lineup/settlement routes.
func NewRouter(h *Handler, verifier TokenVerifier, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerHealthRoutes(mux)
	registerPublicRoutes(mux, h)
	registerAuthorizedRoutes(mux, h, verifier)

	return RequestTracing(RequestLogging(logger, CORS(recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic while serving request",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeInternalError(r.Context(), w)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
