package handler

import (
	"bytes"
	"io"
	"net/http"

	"venuestore/internal/logger"
	"venuestore/internal/repository"
	"venuestore/internal/service"
	"venuestore/internal/store"
)

// AdminHandler serves import, export, audit and health endpoints
type AdminHandler struct {
	svc     *service.CatalogService
	log     *logger.Logger
	clients func() int
}

// NewAdminHandler creates a new admin handler. clients reports the number
// of connected SSE clients and may be nil.
func NewAdminHandler(svc *service.CatalogService, log *logger.Logger, clients func() int) *AdminHandler {
	if log == nil {
		log = logger.Nop()
	}
	if clients == nil {
		clients = func() int { return 0 }
	}
	return &AdminHandler{svc: svc, log: log.With("component", "admin_handler"), clients: clients}
}

// Register adds the admin routes to mux
func (h *AdminHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /api/audit", h.AuditLog)
	mux.HandleFunc("GET /api/export/{format}", h.Export)
	mux.HandleFunc("POST /api/import/{format}", h.Import)
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status     string      `json:"status"`
	Counts     store.Stats `json:"counts"`
	Audit      bool        `json:"audit"`
	SSEClients int         `json:"sse_clients"`
}

func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, HealthResponse{
		Status:     "ok",
		Counts:     h.svc.Stats(r.Context()),
		Audit:      h.svc.AuditEnabled(),
		SSEClients: h.clients(),
	}, http.StatusOK)
}

// AuditLog lists audit entries, newest first. Query parameters: kind,
// entity_id, limit.
func (h *AdminHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	entityID, err := queryInt(r, "entity_id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	entries, err := h.svc.AuditLog(r.Context(), repository.AuditQuery{
		Kind:     r.URL.Query().Get("kind"),
		EntityID: int64(entityID),
		Limit:    limit,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, h.log, entries, http.StatusOK)
}

// Export writes the catalog as a yaml or json fixture
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")

	// render first so a bad format still gets a JSON error
	var buf bytes.Buffer
	if err := h.svc.Export(r.Context(), &buf, format); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	contentType := "application/yaml"
	if format == "json" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.`+format+`"`)
	if _, err := io.Copy(w, &buf); err != nil {
		h.log.Warn("failed to write export", "error", err)
	}
}

// Import loads a fixture from the request body. The strategy query
// parameter selects merge (default) or replace.
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	result, err := h.svc.Import(r.Context(), body, r.PathValue("format"), r.URL.Query().Get("strategy"))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, h.log, result, http.StatusOK)
}
