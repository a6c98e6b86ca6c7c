package handler

import (
	"net/http"

	"venuestore/internal/domain"
)

// ListVenues returns a page of venues. Query parameters: name, city,
// min_capacity, max_capacity, page, size.
func (h *CatalogHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.VenueFilter{NameContains: q.Get("name"), City: q.Get("city")}

	var err error
	if f.MinCapacity, err = queryInt(r, "min_capacity"); err != nil {
		h.fail(w, r, err)
		return
	}
	if f.MaxCapacity, err = queryInt(r, "max_capacity"); err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	venues, err := h.svc.ListVenues(r.Context(), f, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, venues, http.StatusOK)
}

func (h *CatalogHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	venue, err := h.svc.GetVenue(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, venue, http.StatusOK)
}

func (h *CatalogHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var in domain.VenueInput
	if err := decodeBody(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	venue, err := h.svc.CreateVenue(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, venue, http.StatusCreated)
}

func (h *CatalogHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in domain.VenueInput
	if err := decodeBody(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	venue, err := h.svc.UpdateVenue(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, venue, http.StatusOK)
}

// DeleteVenue removes the venue and all of its events
func (h *CatalogHandler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.DeleteVenue(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) VenueEvents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	events, err := h.svc.VenueEvents(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, events, http.StatusOK)
}

// RemoveEventFromVenue detaches an event from its venue, which deletes it
func (h *CatalogHandler) RemoveEventFromVenue(w http.ResponseWriter, r *http.Request) {
	venueID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	eventID, err := pathID(r, "eventID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.RemoveEventFromVenue(r.Context(), venueID, eventID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
