package store

import (
	"fmt"
	"slices"

	"venuestore/internal/domain"
)

// idSet is an unordered set of identifiers.
type idSet map[int64]struct{}

func (s idSet) add(id int64)      { s[id] = struct{}{} }
func (s idSet) remove(id int64)   { delete(s, id) }
func (s idSet) has(id int64) bool { _, ok := s[id]; return ok }

// sorted returns the members in ascending order, never nil.
func (s idSet) sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

type venueRow struct {
	venue  domain.Venue
	events idSet
}

func (r *venueRow) record() domain.Venue {
	v := r.venue
	v.EventIDs = r.events.sorted()
	return v
}

type eventRow struct {
	event      domain.Event
	categories idSet
}

func (r *eventRow) record() domain.Event {
	e := r.event
	e.CategoryIDs = r.categories.sorted()
	return e
}

type categoryRow struct {
	category domain.Category
	events   idSet
}

func (r *categoryRow) record() domain.Category {
	c := r.category
	c.EventIDs = r.events.sorted()
	return c
}

// table is a keyed collection of rows of one kind.
type table[T any] struct {
	kind Kind
	rows map[int64]*T
}

func newTable[T any](kind Kind) *table[T] {
	return &table[T]{kind: kind, rows: make(map[int64]*T)}
}

func (t *table[T]) insert(id int64, row *T) {
	t.rows[id] = row
}

func (t *table[T]) get(id int64) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", t.kind, id, domain.ErrNotFound)
	}
	return row, nil
}

func (t *table[T]) contains(id int64) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) remove(id int64) error {
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%s %d: %w", t.kind, id, domain.ErrNotFound)
	}
	delete(t.rows, id)
	return nil
}

// list returns the rows ordered by identifier.
func (t *table[T]) list() []*T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	rows := make([]*T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, t.rows[id])
	}
	return rows
}

func (t *table[T]) len() int {
	return len(t.rows)
}

// tables holds the three entity tables plus the case-folded name indexes
// used for uniqueness checks.
type tables struct {
	venues     *table[venueRow]
	events     *table[eventRow]
	categories *table[categoryRow]

	venueNames    map[string]int64
	categoryNames map[string]int64
}

func newTables() *tables {
	return &tables{
		venues:        newTable[venueRow](KindVenue),
		events:        newTable[eventRow](KindEvent),
		categories:    newTable[categoryRow](KindCategory),
		venueNames:    make(map[string]int64),
		categoryNames: make(map[string]int64),
	}
}
