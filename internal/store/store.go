package store

import (
	"fmt"
	"slices"
	"sync"

	"venuestore/internal/domain"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Store is the in-memory catalog of venues, events and categories.
//
// One RWMutex guards all tables. Every mutation, cascades included, runs
// under the write lock, so readers never see a half-applied change. All
// preconditions are checked before the first write; a failed call leaves the
// store untouched.
type Store struct {
	mu    sync.RWMutex
	ids   *IdentityGenerator
	t     *tables
	rel   relations
	sizes pageSizes
}

// Option configures a Store.
type Option func(*Store)

// WithPageSizes sets the default and maximum page size.
func WithPageSizes(def, maxSize int) Option {
	return func(s *Store) {
		s.sizes = newPageSizes(def, maxSize)
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	t := newTables()
	s := &Store{
		ids:   NewIdentityGenerator(),
		t:     t,
		rel:   relations{t: t},
		sizes: pageSizes{def: DefaultPageSize, max: MaxPageSize},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newPageSizes(def, maxSize int) pageSizes {
	if def <= 0 {
		def = DefaultPageSize
	}
	if maxSize > 0 && def > maxSize {
		def = maxSize
	}
	return pageSizes{def: def, max: maxSize}
}

// SetPageSizes changes the page size bounds of later queries.
func (s *Store) SetPageSizes(def, maxSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sizes = newPageSizes(def, maxSize)
}

// Venues

func (s *Store) CreateVenue(in domain.VenueInput) (domain.Venue, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.Venue{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := fold(in.Name)
	if _, taken := s.t.venueNames[key]; taken {
		return domain.Venue{}, fmt.Errorf("venue %q: %w", in.Name, domain.ErrDuplicateName)
	}

	row := &venueRow{
		venue: domain.Venue{
			ID:       s.ids.Next(KindVenue),
			Name:     in.Name,
			Address:  in.Address,
			City:     in.City,
			Capacity: in.Capacity,
		},
		events: idSet{},
	}
	s.t.venues.insert(row.venue.ID, row)
	s.t.venueNames[key] = row.venue.ID
	return row.record(), nil
}

func (s *Store) GetVenue(id int64) (domain.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := s.t.venues.get(id)
	if err != nil {
		return domain.Venue{}, err
	}
	return row.record(), nil
}

func (s *Store) ListVenues() []domain.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.t.venues.list()
	out := make([]domain.Venue, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.record())
	}
	return out
}

// UpdateVenue replaces the attributes of a venue. Its events stay attached.
func (s *Store) UpdateVenue(id int64, in domain.VenueInput) (domain.Venue, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.Venue{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.t.venues.get(id)
	if err != nil {
		return domain.Venue{}, err
	}
	key := fold(in.Name)
	if owner, taken := s.t.venueNames[key]; taken && owner != id {
		return domain.Venue{}, fmt.Errorf("venue %q: %w", in.Name, domain.ErrDuplicateName)
	}

	delete(s.t.venueNames, fold(row.venue.Name))
	row.venue.Name = in.Name
	row.venue.Address = in.Address
	row.venue.City = in.City
	row.venue.Capacity = in.Capacity
	s.t.venueNames[key] = id
	return row.record(), nil
}

// DeleteVenue deletes the venue and every event it owns.
// DeleteVenue removes the venue and its events, returning the venue as it
// was at deletion time.
func (s *Store) DeleteVenue(id int64) (domain.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rel.deleteVenue(id)
}

func (s *Store) ExistsVenueByName(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.t.venueNames[fold(name)]
	return ok
}

// FindVenueByName looks a venue up by case-insensitive name.
func (s *Store) FindVenueByName(name string) (domain.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.t.venueNames[fold(name)]
	if !ok {
		return domain.Venue{}, fmt.Errorf("venue %q: %w", name, domain.ErrNotFound)
	}
	row, err := s.t.venues.get(id)
	if err != nil {
		return domain.Venue{}, err
	}
	return row.record(), nil
}

// VenueEvents returns the events held at a venue in date order.
func (s *Store) VenueEvents(id int64) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := s.t.venues.get(id)
	if err != nil {
		return nil, err
	}
	return s.collectEvents(row.events), nil
}

// RemoveEventFromVenue detaches an event from its venue, which deletes the
// event.
func (s *Store) RemoveEventFromVenue(venueID, eventID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.t.venues.get(venueID)
	if err != nil {
		return err
	}
	if !v.events.has(eventID) {
		return fmt.Errorf("event %d at venue %d: %w", eventID, venueID, domain.ErrNotFound)
	}
	ev, err := s.t.events.get(eventID)
	if err != nil {
		return err
	}
	s.rel.detachEventFromVenue(ev)
	return nil
}

func (s *Store) FilterVenues(f domain.VenueFilter, req domain.PageRequest) (domain.Page[domain.Venue], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, err := s.sizes.resolve(req)
	if err != nil {
		return domain.Page[domain.Venue]{}, err
	}
	return paginate(filterVenues(s.t, f), req), nil
}

// Events

func (s *Store) CreateEvent(in domain.EventInput) (domain.Event, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	venue, err := s.referencedVenue(in.VenueID)
	if err != nil {
		return domain.Event{}, err
	}
	cats, err := s.referencedCategories(in.CategoryIDs)
	if err != nil {
		return domain.Event{}, err
	}

	status := in.Status
	if status == "" {
		status = domain.EventStatusActive
	}
	row := &eventRow{
		event: domain.Event{
			ID:          s.ids.Next(KindEvent),
			Title:       in.Title,
			Description: in.Description,
			Date:        in.Date,
			Status:      status,
		},
		categories: idSet{},
	}
	s.t.events.insert(row.event.ID, row)
	s.rel.attachEventToVenue(row, venue)
	for _, c := range cats {
		s.rel.linkEventToCategory(row, c)
	}
	return row.record(), nil
}

func (s *Store) GetEvent(id int64) (domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := s.t.events.get(id)
	if err != nil {
		return domain.Event{}, err
	}
	return row.record(), nil
}

// ListEvents returns all events in identifier order.
func (s *Store) ListEvents() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.t.events.list()
	out := make([]domain.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.record())
	}
	return out
}

// UpdateEvent replaces the attributes of an event. A zero VenueID or the
// current one keeps the venue; another moves the event. A nil CategoryIDs
// keeps the category links, a non-nil one replaces them.
func (s *Store) UpdateEvent(id int64, in domain.EventInput) (domain.Event, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.t.events.get(id)
	if err != nil {
		return domain.Event{}, err
	}
	var venue *venueRow
	if in.VenueID != 0 && in.VenueID != row.event.VenueID {
		if venue, err = s.referencedVenue(in.VenueID); err != nil {
			return domain.Event{}, err
		}
	}
	var cats []*categoryRow
	if in.CategoryIDs != nil {
		if cats, err = s.referencedCategories(in.CategoryIDs); err != nil {
			return domain.Event{}, err
		}
	}

	row.event.Title = in.Title
	row.event.Description = in.Description
	row.event.Date = in.Date
	if in.Status != "" {
		row.event.Status = in.Status
	}
	if venue != nil {
		s.rel.attachEventToVenue(row, venue)
	}
	if in.CategoryIDs != nil {
		s.rel.unlinkAllCategories(row)
		for _, c := range cats {
			s.rel.linkEventToCategory(row, c)
		}
	}
	return row.record(), nil
}

// SetEventStatus moves an event to another lifecycle state.
func (s *Store) SetEventStatus(id int64, status domain.EventStatus) (domain.Event, error) {
	if !status.Valid() {
		return domain.Event{}, fmt.Errorf("unknown event status %q: %w", status, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.t.events.get(id)
	if err != nil {
		return domain.Event{}, err
	}
	row.event.Status = status
	return row.record(), nil
}

// DeleteEvent removes the event from its venue and categories.
func (s *Store) DeleteEvent(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rel.deleteEvent(id)
}

// FilterEvents returns one page of the events matching f, ordered by date
// then identifier.
func (s *Store) FilterEvents(f domain.EventFilter, req domain.PageRequest) (domain.Page[domain.Event], error) {
	if f.Status != "" && !f.Status.Valid() {
		return domain.Page[domain.Event]{}, fmt.Errorf("unknown event status %q: %w", f.Status, domain.ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	req, err := s.sizes.resolve(req)
	if err != nil {
		return domain.Page[domain.Event]{}, err
	}
	return paginate(filterEvents(s.t, f), req), nil
}

// LinkEventCategory is a no-op when the pair is already linked.
func (s *Store) LinkEventCategory(eventID, categoryID int64) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, c, err := s.eventAndCategory(eventID, categoryID)
	if err != nil {
		return domain.Event{}, err
	}
	s.rel.linkEventToCategory(ev, c)
	return ev.record(), nil
}

// UnlinkEventCategory is a no-op when the pair is not linked.
func (s *Store) UnlinkEventCategory(eventID, categoryID int64) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, c, err := s.eventAndCategory(eventID, categoryID)
	if err != nil {
		return domain.Event{}, err
	}
	s.rel.unlinkEventFromCategory(ev, c)
	return ev.record(), nil
}

func (s *Store) ClearEventCategories(eventID int64) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.t.events.get(eventID)
	if err != nil {
		return domain.Event{}, err
	}
	s.rel.unlinkAllCategories(ev)
	return ev.record(), nil
}

// Categories

func (s *Store) CreateCategory(in domain.CategoryInput) (domain.Category, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := fold(in.Name)
	if _, taken := s.t.categoryNames[key]; taken {
		return domain.Category{}, fmt.Errorf("category %q: %w", in.Name, domain.ErrDuplicateName)
	}
	return s.insertCategory(key, in).record(), nil
}

func (s *Store) insertCategory(key string, in domain.CategoryInput) *categoryRow {
	row := &categoryRow{
		category: domain.Category{
			ID:          s.ids.Next(KindCategory),
			Name:        in.Name,
			Description: in.Description,
		},
		events: idSet{},
	}
	s.t.categories.insert(row.category.ID, row)
	s.t.categoryNames[key] = row.category.ID
	return row
}

func (s *Store) GetCategory(id int64) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := s.t.categories.get(id)
	if err != nil {
		return domain.Category{}, err
	}
	return row.record(), nil
}

func (s *Store) ListCategories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.t.categories.list()
	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.record())
	}
	return out
}

func (s *Store) UpdateCategory(id int64, in domain.CategoryInput) (domain.Category, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.t.categories.get(id)
	if err != nil {
		return domain.Category{}, err
	}
	key := fold(in.Name)
	if owner, taken := s.t.categoryNames[key]; taken && owner != id {
		return domain.Category{}, fmt.Errorf("category %q: %w", in.Name, domain.ErrDuplicateName)
	}

	delete(s.t.categoryNames, fold(row.category.Name))
	row.category.Name = in.Name
	row.category.Description = in.Description
	s.t.categoryNames[key] = id
	return row.record(), nil
}

// DeleteCategory unlinks the category from its events and removes it. No
// event is deleted.
// DeleteCategory unlinks and removes the category, returning it as it was at
// deletion time.
func (s *Store) DeleteCategory(id int64) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rel.deleteCategory(id)
}

func (s *Store) ExistsCategoryByName(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.t.categoryNames[fold(name)]
	return ok
}

// EnsureCategories resolves each name to a category, creating the missing
// ones. Names that fold to the same key resolve to one category. The result
// follows the order of first appearance; created counts the new categories.
func (s *Store) EnsureCategories(names []string) (cats []domain.Category, created int, err error) {
	inputs := make([]domain.CategoryInput, 0, len(names))
	for _, name := range names {
		in := domain.CategoryInput{Name: name}.Normalize()
		if err := in.Validate(); err != nil {
			return nil, 0, err
		}
		inputs = append(inputs, in)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		key := fold(in.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		if id, ok := s.t.categoryNames[key]; ok {
			row, err := s.t.categories.get(id)
			if err != nil {
				return nil, created, err
			}
			cats = append(cats, row.record())
			continue
		}
		cats = append(cats, s.insertCategory(key, in).record())
		created++
	}
	return cats, created, nil
}

// CategoryEvents returns the events linked to a category in date order.
func (s *Store) CategoryEvents(id int64) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := s.t.categories.get(id)
	if err != nil {
		return nil, err
	}
	return s.collectEvents(row.events), nil
}

// Whole store

// Snapshot is a consistent copy of every table, each ordered by identifier.
type Snapshot struct {
	Venues     []domain.Venue
	Events     []domain.Event
	Categories []domain.Category
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Venues:     make([]domain.Venue, 0, s.t.venues.len()),
		Events:     make([]domain.Event, 0, s.t.events.len()),
		Categories: make([]domain.Category, 0, s.t.categories.len()),
	}
	for _, row := range s.t.venues.list() {
		snap.Venues = append(snap.Venues, row.record())
	}
	for _, row := range s.t.events.list() {
		snap.Events = append(snap.Events, row.record())
	}
	for _, row := range s.t.categories.list() {
		snap.Categories = append(snap.Categories, row.record())
	}
	return snap
}

// Reset drops every record. Identifiers keep increasing afterwards.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.t = newTables()
	s.rel = relations{t: s.t}
}

// Stats counts the records per kind.
type Stats struct {
	Venues     int `json:"venues"`
	Events     int `json:"events"`
	Categories int `json:"categories"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Venues:     s.t.venues.len(),
		Events:     s.t.events.len(),
		Categories: s.t.categories.len(),
	}
}

// helpers; callers hold the lock

func (s *Store) referencedVenue(id int64) (*venueRow, error) {
	if id <= 0 {
		return nil, fmt.Errorf("event venue is required: %w", domain.ErrInvalidReference)
	}
	row, ok := s.t.venues.rows[id]
	if !ok {
		return nil, fmt.Errorf("venue %d: %w", id, domain.ErrInvalidReference)
	}
	return row, nil
}

func (s *Store) referencedCategories(ids []int64) ([]*categoryRow, error) {
	rows := make([]*categoryRow, 0, len(ids))
	for _, id := range ids {
		row, ok := s.t.categories.rows[id]
		if !ok {
			return nil, fmt.Errorf("category %d: %w", id, domain.ErrInvalidReference)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Store) eventAndCategory(eventID, categoryID int64) (*eventRow, *categoryRow, error) {
	ev, err := s.t.events.get(eventID)
	if err != nil {
		return nil, nil, err
	}
	c, err := s.t.categories.get(categoryID)
	if err != nil {
		return nil, nil, err
	}
	return ev, c, nil
}

func (s *Store) collectEvents(ids idSet) []domain.Event {
	out := make([]domain.Event, 0, len(ids))
	for id := range ids {
		if ev, err := s.t.events.get(id); err == nil {
			out = append(out, ev.record())
		}
	}
	slices.SortFunc(out, byDateThenID)
	return out
}
