package handler

import (
	"net/http"

	"venuestore/internal/logger"
	"venuestore/internal/service"
)

// CatalogHandler handles venue, event and category requests
type CatalogHandler struct {
	svc *service.CatalogService
	log *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc *service.CatalogService, log *logger.Logger) *CatalogHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogHandler{svc: svc, log: log.With("component", "catalog_handler")}
}

// Register adds the catalog routes to mux
func (h *CatalogHandler) Register(mux *http.ServeMux) {
	// Venue endpoints
	mux.HandleFunc("GET /api/venues", h.ListVenues)
	mux.HandleFunc("POST /api/venues", h.CreateVenue)
	mux.HandleFunc("GET /api/venues/{id}", h.GetVenue)
	mux.HandleFunc("PUT /api/venues/{id}", h.UpdateVenue)
	mux.HandleFunc("DELETE /api/venues/{id}", h.DeleteVenue)
	mux.HandleFunc("GET /api/venues/{id}/events", h.VenueEvents)
	mux.HandleFunc("DELETE /api/venues/{id}/events/{eventID}", h.RemoveEventFromVenue)

	// Event endpoints
	mux.HandleFunc("GET /api/events", h.SearchEvents)
	mux.HandleFunc("GET /api/events/upcoming", h.UpcomingEvents)
	mux.HandleFunc("POST /api/events", h.CreateEvent)
	mux.HandleFunc("GET /api/events/{id}", h.GetEvent)
	mux.HandleFunc("PUT /api/events/{id}", h.UpdateEvent)
	mux.HandleFunc("DELETE /api/events/{id}", h.DeleteEvent)
	mux.HandleFunc("PUT /api/events/{id}/status", h.SetEventStatus)
	mux.HandleFunc("DELETE /api/events/{id}/categories", h.ClearEventCategories)
	mux.HandleFunc("PUT /api/events/{id}/categories/{categoryID}", h.LinkEventCategory)
	mux.HandleFunc("DELETE /api/events/{id}/categories/{categoryID}", h.UnlinkEventCategory)

	// Category endpoints
	mux.HandleFunc("GET /api/categories", h.ListCategories)
	mux.HandleFunc("POST /api/categories", h.CreateCategory)
	mux.HandleFunc("GET /api/categories/{id}", h.GetCategory)
	mux.HandleFunc("PUT /api/categories/{id}", h.UpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", h.DeleteCategory)
	mux.HandleFunc("GET /api/categories/{id}/events", h.CategoryEvents)
}

func (h *CatalogHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeServiceError(w, r, h.log, err)
}
