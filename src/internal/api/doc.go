// Package api provides the REST API for route-ctl.
//
// The API exposes the route file managed by a manager.Manager over HTTP:
//
//	GET    /api/v1/routes             list, or find with ?key=&value=&ignore_case=&partial_match=
//	POST   /api/v1/routes             create one route (?upsert=true to create or update)
//	PUT    /api/v1/routes             replace all routes with {"routes": [...]}
//	POST   /api/v1/routes/validate    validate {"routes": [...]} against the file
//	GET    /api/v1/routes/{name}      get one route
//	PUT    /api/v1/routes/{name}      update one route
//	DELETE /api/v1/routes/{name}      delete one route
//	GET    /api/v1/health             check that the route file parses
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { "routes": [ ... ] }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "not_found",
//	    "message": "Human-readable error message",
//	    "details": { "error_code": "RECORD_NOT_FOUND" }
//	  }
//	}
//
// # Revisions
//
// Responses carry an ETag holding the MD5 revision of the route file.
// Mutating requests may send it back in If-Match; when the file has changed
// in the meantime the request fails with 412 and nothing is written.
package api
