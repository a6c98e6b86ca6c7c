package service

import (
	"context"
	"fmt"

	"venuestore/internal/clock"
	"venuestore/internal/domain"
	"venuestore/internal/logger"
	"venuestore/internal/repository"
	"venuestore/internal/store"
)

// CatalogService provides the catalog operations used by the HTTP layer
type CatalogService struct {
	store    *store.Store
	eventBus *EventBus
	audit    repository.AuditRepository
	clock    clock.Clock
	log      *logger.Logger
}

// Option configures a CatalogService
type Option func(*CatalogService)

// WithAudit records every mutation in repo
func WithAudit(repo repository.AuditRepository) Option {
	return func(s *CatalogService) { s.audit = repo }
}

func WithClock(c clock.Clock) Option {
	return func(s *CatalogService) { s.clock = c }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *CatalogService) { s.log = l }
}

// NewCatalogService creates a new catalog service
func NewCatalogService(st *store.Store, eventBus *EventBus, opts ...Option) *CatalogService {
	s := &CatalogService{
		store:    st,
		eventBus: eventBus,
		clock:    clock.NewSystem(),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.eventBus == nil {
		s.eventBus = NewEventBus()
	}
	return s
}

// Venues

func (s *CatalogService) CreateVenue(ctx context.Context, in domain.VenueInput) (domain.Venue, error) {
	v, err := s.store.CreateVenue(in)
	if err != nil {
		return v, err
	}
	s.committed(ctx, VenueCreated, store.KindVenue, v.ID, v.Name, v)
	return v, nil
}

func (s *CatalogService) GetVenue(ctx context.Context, id int64) (domain.Venue, error) {
	return s.store.GetVenue(id)
}

// ListVenues returns a page of venues matching f, in identifier order
func (s *CatalogService) ListVenues(ctx context.Context, f domain.VenueFilter, page domain.PageRequest) (domain.Page[domain.Venue], error) {
	return s.store.FilterVenues(f, page)
}

func (s *CatalogService) UpdateVenue(ctx context.Context, id int64, in domain.VenueInput) (domain.Venue, error) {
	v, err := s.store.UpdateVenue(id, in)
	if err != nil {
		return v, err
	}
	s.committed(ctx, VenueUpdated, store.KindVenue, v.ID, v.Name, v)
	return v, nil
}

// DeleteVenue removes the venue and every event held there
func (s *CatalogService) DeleteVenue(ctx context.Context, id int64) error {
	v, err := s.store.DeleteVenue(id)
	if err != nil {
		return err
	}
	s.committed(ctx, VenueDeleted, store.KindVenue, id,
		fmt.Sprintf("%s (%d events)", v.Name, len(v.EventIDs)),
		map[string]any{"venue_id": id, "event_ids": v.EventIDs})
	return nil
}

func (s *CatalogService) VenueEvents(ctx context.Context, id int64) ([]domain.Event, error) {
	return s.store.VenueEvents(id)
}

// RemoveEventFromVenue detaches the event from its venue, deleting it
func (s *CatalogService) RemoveEventFromVenue(ctx context.Context, venueID, eventID int64) error {
	if err := s.store.RemoveEventFromVenue(venueID, eventID); err != nil {
		return err
	}
	s.committed(ctx, EventDeleted, store.KindEvent, eventID,
		fmt.Sprintf("removed from venue %d", venueID),
		map[string]int64{"event_id": eventID, "venue_id": venueID})
	return nil
}

// Events

func (s *CatalogService) CreateEvent(ctx context.Context, in domain.EventInput) (domain.Event, error) {
	e, err := s.store.CreateEvent(in)
	if err != nil {
		return e, err
	}
	s.committed(ctx, EventCreated, store.KindEvent, e.ID, e.Title, e)
	return e, nil
}

func (s *CatalogService) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	return s.store.GetEvent(id)
}

// SearchEvents returns a page of events matching f, ordered by date
func (s *CatalogService) SearchEvents(ctx context.Context, f domain.EventFilter, page domain.PageRequest) (domain.Page[domain.Event], error) {
	return s.store.FilterEvents(f, page)
}

// UpcomingEvents returns active events dated today or later
func (s *CatalogService) UpcomingEvents(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Event], error) {
	today := domain.DateOf(s.clock.Now())
	return s.store.FilterEvents(domain.EventFilter{
		DateFrom: today.AddDays(-1),
		Status:   domain.EventStatusActive,
	}, page)
}

func (s *CatalogService) UpdateEvent(ctx context.Context, id int64, in domain.EventInput) (domain.Event, error) {
	e, err := s.store.UpdateEvent(id, in)
	if err != nil {
		return e, err
	}
	s.committed(ctx, EventUpdated, store.KindEvent, e.ID, e.Title, e)
	return e, nil
}

func (s *CatalogService) SetEventStatus(ctx context.Context, id int64, status domain.EventStatus) (domain.Event, error) {
	e, err := s.store.SetEventStatus(id, status)
	if err != nil {
		return e, err
	}
	s.committed(ctx, EventStatusChanged, store.KindEvent, e.ID, string(e.Status), e)
	return e, nil
}

func (s *CatalogService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.store.DeleteEvent(id); err != nil {
		return err
	}
	s.committed(ctx, EventDeleted, store.KindEvent, id, "", map[string]int64{"event_id": id})
	return nil
}

func (s *CatalogService) LinkEventCategory(ctx context.Context, eventID, categoryID int64) (domain.Event, error) {
	e, err := s.store.LinkEventCategory(eventID, categoryID)
	if err != nil {
		return e, err
	}
	s.committed(ctx, EventCategoriesChanged, store.KindEvent, e.ID, fmt.Sprintf("linked category %d", categoryID), e)
	return e, nil
}

func (s *CatalogService) UnlinkEventCategory(ctx context.Context, eventID, categoryID int64) (domain.Event, error) {
	e, err := s.store.UnlinkEventCategory(eventID, categoryID)
	if err != nil {
		return e, err
	}
	s.committed(ctx, EventCategoriesChanged, store.KindEvent, e.ID, fmt.Sprintf("unlinked category %d", categoryID), e)
	return e, nil
}

func (s *CatalogService) ClearEventCategories(ctx context.Context, eventID int64) (domain.Event, error) {
	e, err := s.store.ClearEventCategories(eventID)
	if err != nil {
		return e, err
	}
	s.committed(ctx, EventCategoriesChanged, store.KindEvent, e.ID, "cleared categories", e)
	return e, nil
}

// Categories

func (s *CatalogService) CreateCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	c, err := s.store.CreateCategory(in)
	if err != nil {
		return c, err
	}
	s.committed(ctx, CategoryCreated, store.KindCategory, c.ID, c.Name, c)
	return c, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	return s.store.GetCategory(id)
}

func (s *CatalogService) ListCategories(ctx context.Context) []domain.Category {
	return s.store.ListCategories()
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, in domain.CategoryInput) (domain.Category, error) {
	c, err := s.store.UpdateCategory(id, in)
	if err != nil {
		return c, err
	}
	s.committed(ctx, CategoryUpdated, store.KindCategory, c.ID, c.Name, c)
	return c, nil
}

// DeleteCategory unlinks the category from its events and removes it
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	c, err := s.store.DeleteCategory(id)
	if err != nil {
		return err
	}
	s.committed(ctx, CategoryDeleted, store.KindCategory, id, c.Name,
		map[string]any{"category_id": id, "event_ids": c.EventIDs})
	return nil
}

func (s *CatalogService) CategoryEvents(ctx context.Context, id int64) ([]domain.Event, error) {
	return s.store.CategoryEvents(id)
}

// Housekeeping

func (s *CatalogService) Stats(ctx context.Context) store.Stats {
	return s.store.Stats()
}

// SetPageSizes changes the default and maximum page sizes
func (s *CatalogService) SetPageSizes(def, maxSize int) {
	s.store.SetPageSizes(def, maxSize)
	s.log.Info("page sizes changed", "default", def, "max", maxSize)
}

// AuditEnabled reports whether an audit repository is configured
func (s *CatalogService) AuditEnabled() bool {
	return s.audit != nil
}

// AuditLog lists recorded mutations, newest first. Without an audit
// repository the log is empty.
func (s *CatalogService) AuditLog(ctx context.Context, q repository.AuditQuery) ([]domain.AuditEntry, error) {
	if s.audit == nil {
		return []domain.AuditEntry{}, nil
	}
	return s.audit.List(ctx, q)
}

// committed publishes and records a successful mutation
func (s *CatalogService) committed(ctx context.Context, typ NotificationType, kind store.Kind, id int64, detail string, payload any) {
	s.eventBus.Publish(Notification{Type: typ, Payload: payload})
	s.record(ctx, domain.AuditEntry{
		Action:   string(typ),
		Kind:     kind.String(),
		EntityID: id,
		Detail:   detail,
	})
}

func (s *CatalogService) record(ctx context.Context, entry domain.AuditEntry) {
	if s.audit == nil {
		return
	}
	entry.At = s.clock.Now()
	if _, err := s.audit.Record(ctx, entry); err != nil {
		s.log.Warn("audit record failed",
			"action", entry.Action,
			"kind", entry.Kind,
			"entity_id", entry.EntityID,
			"error", err,
		)
	}
}
