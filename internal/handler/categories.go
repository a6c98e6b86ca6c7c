package handler

import (
	"net/http"

	"venuestore/internal/domain"
)

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, h.svc.ListCategories(r.Context()), http.StatusOK)
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	category, err := h.svc.GetCategory(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, category, http.StatusOK)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in domain.CategoryInput
	if err := decodeBody(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	category, err := h.svc.CreateCategory(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, category, http.StatusCreated)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in domain.CategoryInput
	if err := decodeBody(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	category, err := h.svc.UpdateCategory(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, category, http.StatusOK)
}

// DeleteCategory unlinks the category from its events; the events stay
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) CategoryEvents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	events, err := h.svc.CategoryEvents(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, h.log, events, http.StatusOK)
}
