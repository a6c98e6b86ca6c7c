// Package domain defines the entity and value types of the venue catalog.
//
// # Entities
//
// Venue is the aggregate root: it exclusively owns its Events. Deleting a
// Venue deletes every Event held at it.
//
// Event belongs to exactly one Venue and references zero or more Categories.
//
// Category is a label shared by many Events. It keeps a back-reference set of
// the Events that point at it, used only for lookups.
//
// Relationship edges are carried as identifier slices (Venue.EventIDs,
// Event.CategoryIDs, Category.EventIDs). The store keeps both sides of every
// edge consistent; values handed out by the store are copies.
//
// # Errors
//
// Operations fail with one of the sentinel errors in errors.go, wrapped with
// context. Callers match them with errors.Is.
package domain
