package repository

import (
	"context"

	"venuestore/internal/domain"
)

// AuditQuery narrows an audit listing. Zero values mean no constraint.
type AuditQuery struct {
	Kind     string
	EntityID int64
	Limit    int
}

// AuditRepository stores the append-only audit trail
type AuditRepository interface {
	// Record stores the entry and returns it with its assigned ID
	Record(ctx context.Context, entry domain.AuditEntry) (domain.AuditEntry, error)

	// List returns matching entries, newest first
	List(ctx context.Context, q AuditQuery) ([]domain.AuditEntry, error)

	// Close releases resources
	Close() error
}
