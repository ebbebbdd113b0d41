package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aurex-exteriors/site/internal/platform/logging"
	"github.com/aurex-exteriors/site/internal/service/backend"
)

const readyTimeout = 2 * time.Second

// Response is the payload for the health endpoints.
type Response struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
}

// Checker reports whether the intake backend answers.
type Checker interface {
	Health(ctx context.Context) (*backend.Health, error)
}

// Handler is a plain HTTP handler for the liveness endpoint.
func Handler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Response{Status: "healthy"})
}

// Ready returns a readiness handler that answers 503 while the backend is unreachable.
func Ready(checker Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		h, err := checker.Health(ctx)
		if err != nil {
			logging.LogWarn(r.Context(), "readiness check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, Response{Status: "unavailable", Backend: "unreachable"})
			return
		}
		writeJSON(w, http.StatusOK, Response{Status: "ready", Backend: h.Status})
	}
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
