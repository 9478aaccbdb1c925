package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// StorePinger is the part of the store the readiness check needs.
type StorePinger interface {
	PingContext(ctx context.Context) error
}

const readyTimeout = time.Second

// ReadyzHandler reports whether the todo list store answers a ping.
// Failures are logged with the request id and answered with 503.
func ReadyzHandler(store StorePinger, logger *slog.Logger) http.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := store.PingContext(ctx); err != nil {
			logger.ErrorContext(r.Context(), "store not ready",
				"rid", RequestIDFromContext(r.Context()),
				"err", err,
			)
			writeError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
