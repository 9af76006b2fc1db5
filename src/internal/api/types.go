package api

import (
	"github.com/lukassup/route-ctl/src/internal/routes"
)

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// RoutesResponse is the collection envelope shared with the CLI output.
type RoutesResponse struct {
	Routes []*routes.Record `json:"routes"`
}

// RoutesRequest carries a batch of routes.
type RoutesRequest struct {
	Routes []*routes.Record `json:"routes"`
}

// ValidateResponse lists per-route validation results.
type ValidateResponse struct {
	Routes []routes.ValidationResult `json:"routes"`
}

// HealthCheckResponse represents the health check result.
type HealthCheckResponse struct {
	Healthy bool                   `json:"healthy"`
	Checks  map[string]CheckResult `json:"checks"`
}

// CheckResult represents a single health check result.
type CheckResult struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}
