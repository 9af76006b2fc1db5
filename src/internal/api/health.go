package api

import (
	"fmt"
	"net/http"
)

// CheckHealth reports whether the route file can be read and parsed.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	response := HealthCheckResponse{
		Healthy: true,
		Checks:  make(map[string]CheckResult),
	}

	records, rev, err := h.mgr.Load()
	if err != nil {
		response.Healthy = false
		response.Checks["route_file"] = CheckResult{
			Passed:  false,
			Message: "Failed to parse route file: " + err.Error(),
		}
	} else {
		w.Header().Set("ETag", quoteETag(rev))
		response.Checks["route_file"] = CheckResult{
			Passed:  true,
			Message: fmt.Sprintf("Route file %s holds %d routes", h.mgr.Path(), len(records)),
		}
	}

	status := http.StatusOK
	if !response.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}
