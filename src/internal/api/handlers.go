package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/lukassup/route-ctl/src/internal/log"
	"github.com/lukassup/route-ctl/src/internal/manager"
)

// Handler serves the route endpoints. Every request runs under one mutex, so
// read-modify-write cycles started through the API never interleave. Writers
// outside this process are detected through If-Match only.
type Handler struct {
	mgr *manager.Manager
	mu  sync.Mutex
}

// NewHandler creates a handler operating on mgr.
func NewHandler(mgr *manager.Manager) *Handler {
	return &Handler{mgr: mgr}
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(DataResponse{Data: data}); err != nil {
		log.Warnf("Failed to write response: %v", err)
	}
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// decodeJSON decodes JSON from the request body.
func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func quoteETag(revision string) string {
	return `"` + revision + `"`
}

// ifMatch reports whether the If-Match header admits revision. A missing
// header always matches.
func ifMatch(header, revision string) bool {
	header = strings.TrimSpace(header)
	if header == "" || header == "*" {
		return true
	}
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		tag = strings.TrimPrefix(tag, "W/")
		if strings.Trim(tag, `"`) == revision {
			return true
		}
	}
	return false
}

// setRevision sets the ETag header to the current route file revision.
func (h *Handler) setRevision(w http.ResponseWriter) {
	rev, err := h.mgr.Revision()
	if err != nil {
		log.Warnf("Failed to compute route file revision: %v", err)
		return
	}
	w.Header().Set("ETag", quoteETag(rev))
}

// mutate runs fn under the handler lock after checking If-Match against the
// route file. On success the response carries the new revision.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, status int, fn func() (interface{}, error)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rev, err := h.mgr.Revision()
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if !ifMatch(r.Header.Get("If-Match"), rev) {
		log.Warnf("Rejecting %s %s: route file revision is %s", r.Method, r.URL.Path, rev)
		WritePreconditionFailed(w, rev)
		return
	}

	data, err := fn()
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	h.setRevision(w)
	writeJSON(w, status, data)
}
