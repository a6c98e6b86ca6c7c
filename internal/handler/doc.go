// Package handler implements the HTTP API of venuestore.
//
// # Handlers
//
// CatalogHandler serves venues, events and categories. AdminHandler serves
// the audit log, fixture import/export and the health check.
//
// Middleware provides panic recovery, CORS, request logging with request
// ids, and the admin token check for mutating routes.
//
// # API Design
//
// All handlers follow REST conventions:
// - GET for retrieval
// - POST for creation
// - PUT for updates and links
// - DELETE for removal and unlinks
//
// # Response Format
//
// Success responses return JSON with 200 or 201; deletes return 204.
// Error responses return JSON with {error, details, trace_id, timestamp}.
// Store errors map to status codes:
//
//	not found          404
//	invalid reference  422
//	duplicate name     409
//	invalid input      400
//	anything else      500
package handler
