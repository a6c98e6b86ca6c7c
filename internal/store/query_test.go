package store

import (
	"testing"

	"venuestore/internal/domain"
)

// fixture builds two cities worth of events:
//
//	Bogotá: five events on days 5,1,3,3,9 (two share day 3)
//	Cali:   one event on day 2
func fixture(t *testing.T) (*Store, map[string]domain.Event) {
	t.Helper()
	s := New()
	bog := mustVenue(t, s, "Movistar Arena", "Bogotá")
	cal := mustVenue(t, s, "Coliseo", "Cali")
	rock := mustCategory(t, s, "Rock en Español")
	jazz := mustCategory(t, s, "Jazz")

	events := map[string]domain.Event{
		"a": mustEvent(t, s, "Alpha Tour", bog.ID, day(5), rock.ID),
		"b": mustEvent(t, s, "Beta Night", bog.ID, day(1)),
		"c": mustEvent(t, s, "Gamma", bog.ID, day(3), jazz.ID),
		"d": mustEvent(t, s, "Delta", bog.ID, day(3), rock.ID, jazz.ID),
		"e": mustEvent(t, s, "Epsilon", bog.ID, day(9)),
		"f": mustEvent(t, s, "Zeta Tour", cal.ID, day(2), rock.ID),
	}
	return s, events
}

func ids(events []domain.Event) []int64 {
	out := make([]int64, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterEventsCityPagination(t *testing.T) {
	s, ev := fixture(t)

	page, err := s.FilterEvents(domain.EventFilter{City: "Bogotá"}, domain.PageRequest{Index: 0, Size: 2})
	assertNoError(t, err)

	assertEqual(t, 5, page.Total)
	assertEqual(t, 3, page.TotalPages)
	assertEqual(t, []int64{ev["b"].ID, ev["c"].ID}, ids(page.Items))

	page, err = s.FilterEvents(domain.EventFilter{City: "Bogotá"}, domain.PageRequest{Index: 1, Size: 2})
	assertNoError(t, err)
	assertEqual(t, []int64{ev["d"].ID, ev["a"].ID}, ids(page.Items))

	page, err = s.FilterEvents(domain.EventFilter{City: "Bogotá"}, domain.PageRequest{Index: 2, Size: 2})
	assertNoError(t, err)
	assertEqual(t, []int64{ev["e"].ID}, ids(page.Items))
}

func TestFilterEvents(t *testing.T) {
	s, ev := fixture(t)

	tests := []struct {
		name   string
		filter domain.EventFilter
		want   []string
	}{
		{"no filter matches all in date order", domain.EventFilter{}, []string{"b", "f", "c", "d", "a", "e"}},
		{"city substring ignores case and accents stay", domain.EventFilter{City: "BOGOT"}, []string{"b", "c", "d", "a", "e"}},
		{"city with accent in other case", domain.EventFilter{City: "bogotá"}, []string{"b", "c", "d", "a", "e"}},
		{"category substring", domain.EventFilter{Category: "rock"}, []string{"f", "d", "a"}},
		{"category matches any linked", domain.EventFilter{Category: "JAZ"}, []string{"c", "d"}},
		{"date from is strict", domain.EventFilter{DateFrom: day(3)}, []string{"a", "e"}},
		{"date to is inclusive", domain.EventFilter{DateTo: day(3)}, []string{"b", "f", "c", "d"}},
		{"conjunction", domain.EventFilter{City: "cali", Category: "rock"}, []string{"f"}},
		{"title substring", domain.EventFilter{TitleContains: "tour"}, []string{"f", "a"}},
		{"no match", domain.EventFilter{City: "Lima"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.FilterEvents(tt.filter, domain.PageRequest{Size: 50})
			assertNoError(t, err)

			want := make([]int64, 0, len(tt.want))
			for _, key := range tt.want {
				want = append(want, ev[key].ID)
			}
			assertEqual(t, want, ids(page.Items))
			assertEqual(t, len(tt.want), page.Total)
		})
	}
}

func TestFilterEventsByStatusAndVenue(t *testing.T) {
	s, ev := fixture(t)
	_, err := s.SetEventStatus(ev["c"].ID, domain.EventStatusPostponed)
	assertNoError(t, err)

	page, err := s.FilterEvents(domain.EventFilter{Status: domain.EventStatusPostponed}, domain.PageRequest{})
	assertNoError(t, err)
	assertEqual(t, []int64{ev["c"].ID}, ids(page.Items))

	page, err = s.FilterEvents(domain.EventFilter{VenueID: ev["f"].VenueID}, domain.PageRequest{})
	assertNoError(t, err)
	assertEqual(t, []int64{ev["f"].ID}, ids(page.Items))

	_, err = s.FilterEvents(domain.EventFilter{Status: "bogus"}, domain.PageRequest{})
	assertErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFilterEventsPageBounds(t *testing.T) {
	s, _ := fixture(t)

	t.Run("page past the end is empty", func(t *testing.T) {
		page, err := s.FilterEvents(domain.EventFilter{}, domain.PageRequest{Index: 10, Size: 4})
		assertNoError(t, err)
		assertEqual(t, 0, len(page.Items))
		assertEqual(t, 6, page.Total)
	})

	t.Run("negative index is rejected", func(t *testing.T) {
		_, err := s.FilterEvents(domain.EventFilter{}, domain.PageRequest{Index: -1, Size: 4})
		assertErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("zero size uses default", func(t *testing.T) {
		page, err := s.FilterEvents(domain.EventFilter{}, domain.PageRequest{})
		assertNoError(t, err)
		assertEqual(t, DefaultPageSize, page.Size)
		assertEqual(t, 6, len(page.Items))
	})

	t.Run("size is capped", func(t *testing.T) {
		s.SetPageSizes(2, 3)
		defer s.SetPageSizes(DefaultPageSize, MaxPageSize)

		page, err := s.FilterEvents(domain.EventFilter{}, domain.PageRequest{Size: 50})
		assertNoError(t, err)
		assertEqual(t, 3, page.Size)
		assertEqual(t, 3, len(page.Items))

		page, err = s.FilterEvents(domain.EventFilter{}, domain.PageRequest{})
		assertNoError(t, err)
		assertEqual(t, 2, page.Size)
	})
}

func TestFilterVenues(t *testing.T) {
	s := New()
	small, err := s.CreateVenue(domain.VenueInput{Name: "Teatro Colón", City: "Bogotá", Capacity: 900})
	assertNoError(t, err)
	big, err := s.CreateVenue(domain.VenueInput{Name: "Estadio El Campín", City: "Bogotá", Capacity: 36000})
	assertNoError(t, err)
	other, err := s.CreateVenue(domain.VenueInput{Name: "Teatro Jorge Isaacs", City: "Cali", Capacity: 1200})
	assertNoError(t, err)

	tests := []struct {
		name   string
		filter domain.VenueFilter
		want   []int64
	}{
		{"all", domain.VenueFilter{}, []int64{small.ID, big.ID, other.ID}},
		{"name", domain.VenueFilter{NameContains: "teatro"}, []int64{small.ID, other.ID}},
		{"city", domain.VenueFilter{City: "BOGOTÁ"}, []int64{small.ID, big.ID}},
		{"min capacity", domain.VenueFilter{MinCapacity: 1000}, []int64{big.ID, other.ID}},
		{"capacity range", domain.VenueFilter{MinCapacity: 1000, MaxCapacity: 2000}, []int64{other.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.FilterVenues(tt.filter, domain.PageRequest{})
			assertNoError(t, err)
			got := make([]int64, 0, len(page.Items))
			for _, v := range page.Items {
				got = append(got, v.ID)
			}
			assertEqual(t, tt.want, got)
		})
	}
}

func TestRelatedEvents(t *testing.T) {
	s, ev := fixture(t)

	events, err := s.VenueEvents(ev["a"].VenueID)
	assertNoError(t, err)
	assertEqual(t, []int64{ev["b"].ID, ev["c"].ID, ev["d"].ID, ev["a"].ID, ev["e"].ID}, ids(events))

	events, err = s.CategoryEvents(ev["a"].CategoryIDs[0])
	assertNoError(t, err)
	assertEqual(t, []int64{ev["f"].ID, ev["d"].ID, ev["a"].ID}, ids(events))

	_, err = s.VenueEvents(404)
	assertErrorIs(t, err, domain.ErrNotFound)
	_, err = s.CategoryEvents(404)
	assertErrorIs(t, err, domain.ErrNotFound)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name  string
		req   domain.PageRequest
		want  []int
		pages int
	}{
		{"first", domain.PageRequest{Index: 0, Size: 2}, []int{1, 2}, 3},
		{"last partial", domain.PageRequest{Index: 2, Size: 2}, []int{5}, 3},
		{"past end", domain.PageRequest{Index: 3, Size: 2}, []int{}, 3},
		{"huge index", domain.PageRequest{Index: 1 << 40, Size: 1 << 30}, []int{}, 1},
		{"exact fit", domain.PageRequest{Index: 0, Size: 5}, []int{1, 2, 3, 4, 5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := paginate(items, tt.req)
			assertEqual(t, tt.want, page.Items)
			assertEqual(t, 5, page.Total)
			assertEqual(t, tt.pages, page.TotalPages)
		})
	}
}
