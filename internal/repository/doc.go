// Package repository defines the persistence interfaces for venuestore.
//
// The catalog itself lives in memory (see internal/store); the only durable
// state is the audit trail of successful mutations. The sqlite subpackage
// implements AuditRepository.
//
// # Audit Trail
//
// Each entry names the action (venue_created, event_deleted, ...), the entity
// kind and identifier, a short detail string and the time it happened.
// Entries are append-only and listed newest first.
//
// # Testing
//
// The sqlite repository is tested against in-memory databases.
package repository
