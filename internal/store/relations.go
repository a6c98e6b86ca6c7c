package store

import "venuestore/internal/domain"

// relations keeps the Venue<->Event and Event<->Category edges consistent
// on both sides and applies the cascade rules:
//
//   - a venue owns its events; deleting the venue or detaching an event from
//     it deletes the event
//   - categories hold weak back-references; deleting a category only unlinks it
//
// Callers hold the store's write lock and have already checked every
// precondition, so the helpers below do not fail halfway through.
type relations struct {
	t *tables
}

// attachEventToVenue points ev at v and adds ev to v's event set, leaving any
// previous venue.
func (r relations) attachEventToVenue(ev *eventRow, v *venueRow) {
	id := ev.event.ID
	if prev := ev.event.VenueID; prev != 0 && prev != v.venue.ID {
		if old, err := r.t.venues.get(prev); err == nil {
			old.events.remove(id)
		}
	}
	ev.event.VenueID = v.venue.ID
	v.events.add(id)
}

// detachEventFromVenue removes ev from its venue. An event cannot exist
// without a venue, so the event itself is deleted.
func (r relations) detachEventFromVenue(ev *eventRow) {
	r.purgeEvent(ev)
}

// linkEventToCategory is idempotent.
func (r relations) linkEventToCategory(ev *eventRow, c *categoryRow) {
	ev.categories.add(c.category.ID)
	c.events.add(ev.event.ID)
}

// unlinkEventFromCategory is idempotent.
func (r relations) unlinkEventFromCategory(ev *eventRow, c *categoryRow) {
	ev.categories.remove(c.category.ID)
	c.events.remove(ev.event.ID)
}

// unlinkAllCategories clears every category link of ev.
func (r relations) unlinkAllCategories(ev *eventRow) {
	for _, cid := range ev.categories.sorted() {
		if c, err := r.t.categories.get(cid); err == nil {
			r.unlinkEventFromCategory(ev, c)
		} else {
			ev.categories.remove(cid)
		}
	}
}

// deleteVenue cascades into every owned event, then drops the venue. It
// returns the venue as it was before the cascade.
func (r relations) deleteVenue(id int64) (domain.Venue, error) {
	v, err := r.t.venues.get(id)
	if err != nil {
		return domain.Venue{}, err
	}
	removed := v.record()
	for _, eid := range v.events.sorted() {
		if ev, err := r.t.events.get(eid); err == nil {
			r.purgeEvent(ev)
		}
	}
	delete(r.t.venueNames, fold(v.venue.Name))
	return removed, r.t.venues.remove(id)
}

// deleteCategory unlinks the category from its events and drops it. Events
// are otherwise untouched.
func (r relations) deleteCategory(id int64) (domain.Category, error) {
	c, err := r.t.categories.get(id)
	if err != nil {
		return domain.Category{}, err
	}
	removed := c.record()
	for _, eid := range c.events.sorted() {
		if ev, err := r.t.events.get(eid); err == nil {
			ev.categories.remove(id)
		}
	}
	delete(r.t.categoryNames, fold(c.category.Name))
	return removed, r.t.categories.remove(id)
}

// deleteEvent removes the event from its venue and categories, then drops it.
func (r relations) deleteEvent(id int64) error {
	ev, err := r.t.events.get(id)
	if err != nil {
		return err
	}
	r.purgeEvent(ev)
	return nil
}

func (r relations) purgeEvent(ev *eventRow) {
	id := ev.event.ID
	r.unlinkAllCategories(ev)
	if v, err := r.t.venues.get(ev.event.VenueID); err == nil {
		v.events.remove(id)
	}
	delete(r.t.events.rows, id)
}
