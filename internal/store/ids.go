package store

import "sync/atomic"

// Kind names an entity table.
type Kind int

const (
	KindVenue Kind = iota
	KindEvent
	KindCategory
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindVenue:
		return "venue"
	case KindEvent:
		return "event"
	case KindCategory:
		return "category"
	}
	return "unknown"
}

// IdentityGenerator hands out identifiers per kind, starting at 1. It is safe
// for concurrent use and never returns the same value twice for a kind.
type IdentityGenerator struct {
	counters [kindCount]atomic.Int64
}

func NewIdentityGenerator() *IdentityGenerator {
	return &IdentityGenerator{}
}

// Next returns the next identifier for kind.
func (g *IdentityGenerator) Next(kind Kind) int64 {
	return g.counters[kind].Add(1)
}
