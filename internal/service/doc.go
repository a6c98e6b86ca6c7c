// Package service implements the application layer of venuestore.
//
// CatalogService sits between the HTTP handlers and the in-memory store.
// The store enforces every relationship rule; the service adds what happens
// after a change commits.
//
// # Event System
//
// Every successful mutation publishes a Notification on the EventBus, which
// cmd/server forwards to Server-Sent Events clients.
//
// # Audit Trail
//
// When an audit repository is configured, each mutation is also recorded
// there. Recording happens after the store change has committed; a failed
// write is logged and the mutation still succeeds.
//
// # Fixtures
//
// ImportFixture loads a name-referenced catalog (see internal/codec) in merge
// or replace mode. ExportFixture produces the same shape from a snapshot.
package service
