package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"

	"venuestore/internal/codec"
	"venuestore/internal/domain"
	"venuestore/internal/store"
)

// Import strategies
const (
	StrategyMerge   = "merge"
	StrategyReplace = "replace"
)

// ImportResult represents the result of an import operation
type ImportResult struct {
	VenuesCreated     int    `json:"venues_created"`
	VenuesUpdated     int    `json:"venues_updated"`
	CategoriesCreated int    `json:"categories_created"`
	CategoriesUpdated int    `json:"categories_updated"`
	EventsCreated     int    `json:"events_created"`
	EventsSkipped     int    `json:"events_skipped"`
	Strategy          string `json:"strategy"`
}

// Import parses r in the given format and imports it
func (s *CatalogService) Import(ctx context.Context, r io.Reader, format, strategy string) (*ImportResult, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}
	fx, err := c.Parse(r)
	if err != nil {
		return nil, err
	}
	return s.ImportFixture(ctx, fx, strategy)
}

// ImportFixture loads fx into the store.
//
// In merge mode venues and categories are matched by case-insensitive name
// and updated in place; an event equal in title, venue and date to an
// existing one is skipped. Replace mode empties the store first.
//
// The whole fixture is validated before anything changes, including every
// venue reference. Failures after that point (a name clash with a concurrent
// writer, say) leave the part already imported in place.
func (s *CatalogService) ImportFixture(ctx context.Context, fx *domain.Fixture, strategy string) (*ImportResult, error) {
	if strategy == "" {
		strategy = StrategyMerge
	}
	if strategy != StrategyMerge && strategy != StrategyReplace {
		return nil, fmt.Errorf("invalid strategy %s, must be 'merge' or 'replace': %w", strategy, domain.ErrInvalidInput)
	}
	if err := s.validateFixture(fx, strategy == StrategyMerge); err != nil {
		return nil, err
	}

	if strategy == StrategyReplace {
		s.store.Reset()
	}

	result := &ImportResult{Strategy: strategy}
	if err := s.importVenues(fx.Venues, result); err != nil {
		return result, err
	}
	if err := s.importCategories(fx.Categories, result); err != nil {
		return result, err
	}
	if err := s.importEvents(fx.Events, result); err != nil {
		return result, err
	}

	s.log.Info("catalog imported",
		"strategy", strategy,
		"venues_created", result.VenuesCreated,
		"categories_created", result.CategoriesCreated,
		"events_created", result.EventsCreated,
		"events_skipped", result.EventsSkipped,
	)
	s.eventBus.Publish(Notification{Type: CatalogImported, Payload: result})
	s.record(ctx, domain.AuditEntry{
		Action: string(CatalogImported),
		Kind:   "catalog",
		Detail: fmt.Sprintf("%s: %d venues, %d categories, %d events created",
			strategy, result.VenuesCreated, result.CategoriesCreated, result.EventsCreated),
	})
	return result, nil
}

func (s *CatalogService) validateFixture(fx *domain.Fixture, merge bool) error {
	fold := cases.Fold()
	venues := make(map[string]bool, len(fx.Venues))
	for i, v := range fx.Venues {
		if err := v.Input().Validate(); err != nil {
			return fmt.Errorf("venues[%d]: %w", i, err)
		}
		venues[fold.String(strings.TrimSpace(v.Name))] = true
	}
	for i, c := range fx.Categories {
		if err := c.Input().Validate(); err != nil {
			return fmt.Errorf("categories[%d]: %w", i, err)
		}
	}
	for i, e := range fx.Events {
		in := domain.EventInput{Title: e.Title, Date: e.Date, Status: e.Status}.Normalize()
		if err := in.Validate(); err != nil {
			return fmt.Errorf("events[%d]: %w", i, err)
		}
		for _, name := range e.Categories {
			if err := (domain.CategoryInput{Name: name}).Normalize().Validate(); err != nil {
				return fmt.Errorf("events[%d] %q: %w", i, e.Title, err)
			}
		}
		if venues[fold.String(strings.TrimSpace(e.Venue))] {
			continue
		}
		if merge && s.store.ExistsVenueByName(e.Venue) {
			continue
		}
		return fmt.Errorf("events[%d] %q: venue %q: %w", i, e.Title, e.Venue, domain.ErrInvalidReference)
	}
	return nil
}

func (s *CatalogService) importVenues(venues []domain.FixtureVenue, result *ImportResult) error {
	for _, fv := range venues {
		existing, err := s.store.FindVenueByName(fv.Name)
		switch {
		case err == nil:
			if _, err := s.store.UpdateVenue(existing.ID, fv.Input()); err != nil {
				return fmt.Errorf("update venue %q: %w", fv.Name, err)
			}
			result.VenuesUpdated++
		case errors.Is(err, domain.ErrNotFound):
			if _, err := s.store.CreateVenue(fv.Input()); err != nil {
				return fmt.Errorf("create venue %q: %w", fv.Name, err)
			}
			result.VenuesCreated++
		default:
			return err
		}
	}
	return nil
}

func (s *CatalogService) importCategories(categories []domain.FixtureCategory, result *ImportResult) error {
	for _, fc := range categories {
		cats, created, err := s.store.EnsureCategories([]string{fc.Name})
		if err != nil {
			return fmt.Errorf("category %q: %w", fc.Name, err)
		}
		result.CategoriesCreated += created

		in := fc.Input()
		c := cats[0]
		if in.Description == "" || in.Description == c.Description {
			continue
		}
		// the stored spelling of the name wins
		in.Name = c.Name
		if _, err := s.store.UpdateCategory(c.ID, in); err != nil {
			return fmt.Errorf("update category %q: %w", fc.Name, err)
		}
		if created == 0 {
			result.CategoriesUpdated++
		}
	}
	return nil
}

func (s *CatalogService) importEvents(events []domain.FixtureEvent, result *ImportResult) error {
	fold := cases.Fold()
	key := func(title string, venueID int64, date domain.Date) string {
		return fmt.Sprintf("%s|%d|%s", fold.String(strings.TrimSpace(title)), venueID, date)
	}
	existing := make(map[string]bool)
	for _, e := range s.store.ListEvents() {
		existing[key(e.Title, e.VenueID, e.Date)] = true
	}

	for _, fe := range events {
		venue, err := s.store.FindVenueByName(fe.Venue)
		if err != nil {
			return fmt.Errorf("event %q: venue %q: %w", fe.Title, fe.Venue, domain.ErrInvalidReference)
		}
		k := key(fe.Title, venue.ID, fe.Date)
		if existing[k] {
			result.EventsSkipped++
			continue
		}

		var categoryIDs []int64
		if len(fe.Categories) > 0 {
			cats, created, err := s.store.EnsureCategories(fe.Categories)
			if err != nil {
				return fmt.Errorf("event %q: %w", fe.Title, err)
			}
			result.CategoriesCreated += created
			for _, c := range cats {
				categoryIDs = append(categoryIDs, c.ID)
			}
		}

		if _, err := s.store.CreateEvent(domain.EventInput{
			Title:       fe.Title,
			Description: fe.Description,
			Date:        fe.Date,
			Status:      fe.Status,
			VenueID:     venue.ID,
			CategoryIDs: categoryIDs,
		}); err != nil {
			return fmt.Errorf("create event %q: %w", fe.Title, err)
		}
		existing[k] = true
		result.EventsCreated++
	}
	return nil
}

// ExportFixture converts the current catalog into a name-referenced fixture
func (s *CatalogService) ExportFixture(ctx context.Context) *domain.Fixture {
	return fixtureFromSnapshot(s.store.Snapshot())
}

// Export writes the catalog in the given format
func (s *CatalogService) Export(ctx context.Context, w io.Writer, format string) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return err
	}
	return c.Export(s.ExportFixture(ctx), w)
}

func fixtureFromSnapshot(snap store.Snapshot) *domain.Fixture {
	fx := &domain.Fixture{
		Venues:     make([]domain.FixtureVenue, 0, len(snap.Venues)),
		Categories: make([]domain.FixtureCategory, 0, len(snap.Categories)),
		Events:     make([]domain.FixtureEvent, 0, len(snap.Events)),
	}

	venueNames := make(map[int64]string, len(snap.Venues))
	for _, v := range snap.Venues {
		venueNames[v.ID] = v.Name
		fx.Venues = append(fx.Venues, domain.FixtureVenue{
			Name:     v.Name,
			Address:  v.Address,
			City:     v.City,
			Capacity: v.Capacity,
		})
	}

	categoryNames := make(map[int64]string, len(snap.Categories))
	for _, c := range snap.Categories {
		categoryNames[c.ID] = c.Name
		fx.Categories = append(fx.Categories, domain.FixtureCategory{
			Name:        c.Name,
			Description: c.Description,
		})
	}

	for _, e := range snap.Events {
		fe := domain.FixtureEvent{
			Title:       e.Title,
			Description: e.Description,
			Date:        e.Date,
			Status:      e.Status,
			Venue:       venueNames[e.VenueID],
		}
		for _, cid := range e.CategoryIDs {
			fe.Categories = append(fe.Categories, categoryNames[cid])
		}
		fx.Events = append(fx.Events, fe)
	}
	return fx
}
