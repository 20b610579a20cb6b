package handlers

import (
	"net/http"

	"github.com/go-pkgz/lgr"
)

// HealthCheck is a dependency's liveness probe.
type HealthCheck func() error

// HealthHandler reports whether the ledger, scheduler, and proof builder
// were wired up correctly at startup.
type HealthHandler struct {
	logger lgr.L
	checks map[string]HealthCheck
}

// NewHealthHandler builds a health handler over the given named checks.
func NewHealthHandler(logger lgr.L, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{logger: logger, checks: checks}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{}
	healthy := true
	for name, check := range h.checks {
		if err := check(); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{"status": status, "healthy": healthy})
}
