package handler

import (
	"net/http"

	"venuestore/internal/domain"
)

// eventFilter reads the event search query parameters
func eventFilter(r *http.Request) (domain.EventFilter, error) {
	q := r.URL.Query()
	f := domain.EventFilter{
		City:          q.Get("city"),
		Category:      q.Get("category"),
		TitleContains: q.Get("title"),
	}

	var err error
	if f.DateFrom, err = queryDate(r, "from"); err != nil {
		return f, err
	}
	if f.DateTo, err = queryDate(r, "to"); err != nil {
		return f, err
	}
	if raw := q.Get("status"); raw != "" {
		if f.Status, err = domain.ParseEventStatus(raw); err != nil {
			return f, err
		}
	}
	venueID, err := queryInt(r, "venue_id")
	if err != nil {
		return f, err
	}
	f.VenueID = int64(venueID)
	return f, nil
}

// SearchEvents returns a date-ordered page of events. Query parameters:
// city, category, title, from (exclusive), to (inclusive), status, venue_id,
// page, size.
func (h *CatalogHandler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	f, err := eventFilter(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	events, err := h.svc.SearchEvents(r.Context(), f, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, events, http.StatusOK)
}

// UpcomingEvents returns active events from today on
func (h *CatalogHandler) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	page, err := pageRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	events, err := h.svc.UpcomingEvents(r.Context(), page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, events, http.StatusOK)
}

func (h *CatalogHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	event, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, event, http.StatusOK)
}

func (h *CatalogHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in domain.EventInput
	if err := decodeBody(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	event, err := h.svc.CreateEvent(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, event, http.StatusCreated)
}

// UpdateEvent replaces an event's attributes. Omitting venue_id keeps the
// venue; omitting category_ids keeps the links.
func (h *CatalogHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in domain.EventInput
	if err := decodeBody(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	event, err := h.svc.UpdateEvent(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, event, http.StatusOK)
}

func (h *CatalogHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.DeleteEvent(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StatusRequest is the body of PUT /api/events/{id}/status
type StatusRequest struct {
	Status string `json:"status"`
}

func (h *CatalogHandler) SetEventStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req StatusRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	status, err := domain.ParseEventStatus(req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	event, err := h.svc.SetEventStatus(r.Context(), id, status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, event, http.StatusOK)
}

func (h *CatalogHandler) LinkEventCategory(w http.ResponseWriter, r *http.Request) {
	h.changeLink(w, r, true)
}

func (h *CatalogHandler) UnlinkEventCategory(w http.ResponseWriter, r *http.Request) {
	h.changeLink(w, r, false)
}

func (h *CatalogHandler) changeLink(w http.ResponseWriter, r *http.Request, link bool) {
	eventID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var event domain.Event
	if link {
		event, err = h.svc.LinkEventCategory(r.Context(), eventID, categoryID)
	} else {
		event, err = h.svc.UnlinkEventCategory(r.Context(), eventID, categoryID)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, event, http.StatusOK)
}

func (h *CatalogHandler) ClearEventCategories(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	event, err := h.svc.ClearEventCategories(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, event, http.StatusOK)
}
