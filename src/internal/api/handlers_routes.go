package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lukassup/route-ctl/src/internal/errors"
	"github.com/lukassup/route-ctl/src/internal/routes"
)

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("query parameter %s must be a boolean", name)
	}
	return b, nil
}

func nameFilter(name string) routes.Filter {
	return routes.Filter{Key: routes.FieldName, Value: name, ExactMatch: true}
}

// GetRoutes lists routes, or finds them when a value is given.
// GET /api/v1/routes?key=network&value=10.&partial_match=true&ignore_case=false
func (h *Handler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	q := r.URL.Query()
	if !q.Has("value") {
		records, rev, err := h.mgr.Load()
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		w.Header().Set("ETag", quoteETag(rev))
		writeJSONData(w, RoutesResponse{Routes: records})
		return
	}

	ignoreCase, err := boolParam(r, "ignore_case")
	if err != nil {
		WriteInvalidRequest(w, err.Error())
		return
	}
	partial, err := boolParam(r, "partial_match")
	if err != nil {
		WriteInvalidRequest(w, err.Error())
		return
	}
	key := q.Get("key")
	if key == "" {
		key = routes.FieldName
	}
	if !isKnownKey(key) {
		WriteInvalidRequest(w, fmt.Sprintf("unknown key %q", key))
		return
	}

	found, err := h.mgr.Find(routes.Filter{
		Key:        key,
		Value:      q.Get("value"),
		IgnoreCase: ignoreCase,
		ExactMatch: !partial,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	h.setRevision(w)
	writeJSONData(w, RoutesResponse{Routes: found})
}

func isKnownKey(key string) bool {
	for _, k := range routes.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// GetRoute returns the route with the given name.
// GET /api/v1/routes/{name}
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := chi.URLParam(r, "name")
	found, err := h.mgr.Find(nameFilter(name))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	switch len(found) {
	case 0:
		WriteNotFound(w, fmt.Sprintf("Route '%s'", name))
	case 1:
		h.setRevision(w)
		writeJSONData(w, found[0])
	default:
		WriteDomainError(w, errors.Newf(errors.ErrCodeMultipleRecordsFound,
			"more than one route with name %q found", name))
	}
}

// CreateRoute creates a route. With ?upsert=true an existing route sharing
// its identity is updated instead.
// POST /api/v1/routes
func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var rec routes.Record
	if err := decodeJSON(r, &rec); err != nil {
		WriteInvalidRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	upsert, err := boolParam(r, "upsert")
	if err != nil {
		WriteInvalidRequest(w, err.Error())
		return
	}

	status := http.StatusCreated
	if upsert {
		status = http.StatusOK
	}
	h.mutate(w, r, status, func() (interface{}, error) {
		var all []*routes.Record
		var err error
		if upsert {
			all, err = h.mgr.CreateOrUpdate(&rec)
		} else {
			all, err = h.mgr.Create(&rec)
		}
		if err != nil {
			return nil, err
		}
		return RoutesResponse{Routes: all}, nil
	})
}

// ReplaceRoutes replaces every route in the file.
// PUT /api/v1/routes
func (h *Handler) ReplaceRoutes(w http.ResponseWriter, r *http.Request) {
	var req RoutesRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.Routes == nil {
		WriteInvalidRequest(w, `request body must contain a "routes" array`)
		return
	}

	h.mutate(w, r, http.StatusOK, func() (interface{}, error) {
		all, err := h.mgr.Replace(req.Routes)
		if err != nil {
			return nil, err
		}
		return RoutesResponse{Routes: all}, nil
	})
}

// UpdateRoute merges the request body into the named route.
// PUT /api/v1/routes/{name}
func (h *Handler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var rec routes.Record
	if err := decodeJSON(r, &rec); err != nil {
		WriteInvalidRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if rec.Name == "" {
		rec.Name = name
	}
	if rec.Name != name {
		WriteInvalidRequest(w, fmt.Sprintf("route name %q does not match path %q", rec.Name, name))
		return
	}

	h.mutate(w, r, http.StatusOK, func() (interface{}, error) {
		all, err := h.mgr.Update(&rec)
		if err != nil {
			return nil, err
		}
		return RoutesResponse{Routes: all}, nil
	})
}

// DeleteRoute deletes the named route.
// DELETE /api/v1/routes/{name}
func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	h.mutate(w, r, http.StatusOK, func() (interface{}, error) {
		found, err := h.mgr.Find(nameFilter(name))
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, errors.Newf(errors.ErrCodeRecordNotFound, "route %q not found", name)
		}
		kept, err := h.mgr.Delete(nameFilter(name))
		if err != nil {
			return nil, err
		}
		return RoutesResponse{Routes: kept}, nil
	})
}

// ValidateRoutes compares every route in the body with the stored routes.
// POST /api/v1/routes/validate
func (h *Handler) ValidateRoutes(w http.ResponseWriter, r *http.Request) {
	var req RoutesRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	results, err := h.mgr.ValidateBatch(req.Routes)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	h.setRevision(w)
	writeJSONData(w, ValidateResponse{Routes: results})
}
