// Package store is the in-memory relational store behind the catalog.
//
// It keeps three arena-style tables indexed by identifier (venues, events,
// categories) and a relationship component that maintains the edges between
// them on both sides:
//
//	Venue 1 ── * Event   owning; deleting or detaching cascades to the event
//	Event * ── * Category weak; deleting a category only unlinks it
//
// Store is the facade. Each of its methods is atomic with respect to every
// other method.
package store
