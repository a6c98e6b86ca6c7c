package store

import (
	"cmp"
	"fmt"
	"slices"

	"venuestore/internal/domain"
)

// eventMatcher is an EventFilter with its text criteria folded once.
type eventMatcher struct {
	f        domain.EventFilter
	city     string
	category string
	title    string
}

func newEventMatcher(f domain.EventFilter) eventMatcher {
	return eventMatcher{
		f:        f,
		city:     fold(f.City),
		category: fold(f.Category),
		title:    fold(f.TitleContains),
	}
}

func (m eventMatcher) match(t *tables, ev *eventRow) bool {
	e := ev.event
	if m.f.VenueID != 0 && e.VenueID != m.f.VenueID {
		return false
	}
	if m.f.Status != "" && e.Status != m.f.Status {
		return false
	}
	if !m.f.DateFrom.IsZero() && !e.Date.After(m.f.DateFrom) {
		return false
	}
	if !m.f.DateTo.IsZero() && e.Date.After(m.f.DateTo) {
		return false
	}
	if m.title != "" && !containsFold(e.Title, m.title) {
		return false
	}
	if m.city != "" {
		v, err := t.venues.get(e.VenueID)
		if err != nil || !containsFold(v.venue.City, m.city) {
			return false
		}
	}
	if m.category != "" {
		found := false
		for cid := range ev.categories {
			c, err := t.categories.get(cid)
			if err == nil && containsFold(c.category.Name, m.category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// byDateThenID orders events by date ascending, ties by identifier.
func byDateThenID(a, b domain.Event) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// filterEvents returns every matching event in date order.
func filterEvents(t *tables, f domain.EventFilter) []domain.Event {
	m := newEventMatcher(f)
	var out []domain.Event
	for _, ev := range t.events.rows {
		if m.match(t, ev) {
			out = append(out, ev.record())
		}
	}
	slices.SortFunc(out, byDateThenID)
	return out
}

// filterVenues returns every matching venue in identifier order.
func filterVenues(t *tables, f domain.VenueFilter) []domain.Venue {
	name, city := fold(f.NameContains), fold(f.City)
	var out []domain.Venue
	for _, v := range t.venues.list() {
		if name != "" && !containsFold(v.venue.Name, name) {
			continue
		}
		if city != "" && !containsFold(v.venue.City, city) {
			continue
		}
		if f.MinCapacity > 0 && v.venue.Capacity < f.MinCapacity {
			continue
		}
		if f.MaxCapacity > 0 && v.venue.Capacity > f.MaxCapacity {
			continue
		}
		out = append(out, v.record())
	}
	return out
}

// pageSizes bounds the size of a requested page.
type pageSizes struct {
	def int
	max int
}

func (p pageSizes) resolve(req domain.PageRequest) (domain.PageRequest, error) {
	if req.Index < 0 {
		return req, fmt.Errorf("page index must not be negative, got %d: %w", req.Index, domain.ErrInvalidInput)
	}
	if req.Size <= 0 {
		req.Size = p.def
	}
	if p.max > 0 && req.Size > p.max {
		req.Size = p.max
	}
	return req, nil
}

// paginate cuts the [Index*Size, Index*Size+Size) window out of items.
// Windows past the end are empty.
func paginate[T any](items []T, req domain.PageRequest) domain.Page[T] {
	total := len(items)
	page := domain.Page[T]{
		Items: []T{},
		Total: total,
		Index: req.Index,
		Size:  req.Size,
	}
	if req.Size > 0 {
		page.TotalPages = (total + req.Size - 1) / req.Size
	}
	if req.Size <= 0 || req.Index > total/req.Size {
		return page
	}
	start := req.Index * req.Size
	if start >= total {
		return page
	}
	end := min(start+req.Size, total)
	page.Items = append(page.Items, items[start:end]...)
	return page
}
