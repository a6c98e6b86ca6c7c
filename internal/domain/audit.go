package domain

import "time"

// AuditEntry records one successful catalog mutation.
type AuditEntry struct {
	ID       int64     `json:"id"`
	Action   string    `json:"action"`
	Kind     string    `json:"kind"`
	EntityID int64     `json:"entity_id"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}
