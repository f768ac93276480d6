package httpadapter

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"adbridge/internal/core/domain"
)

func (h *Handler) handleAdSetCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	var s domain.AdSet
	if err := decodeBody(r, &s); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.adSets.Create(r.Context(), owner, &s)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// handleAdSetListByCampaign serves GET /campaigns/{id}/adsets; the route
// parameter is the parent campaign id.
func (h *Handler) handleAdSetListByCampaign(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	campaignID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sets, err := h.adSets.ListByCampaign(r.Context(), owner, campaignID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sets)
}

func (h *Handler) handleAdSetGet(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.adSets.Get(r.Context(), owner, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

func (h *Handler) handleAdSetUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var p domain.AdSetPatch
	if err := decodeBody(r, &p); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.adSets.Update(r.Context(), owner, id, p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

func (h *Handler) handleAdSetDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.adSets.Delete(r.Context(), owner, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAdSetPause(w http.ResponseWriter, r *http.Request) {
	h.adSetTransition(w, r, h.adSets.Pause)
}

func (h *Handler) handleAdSetActivate(w http.ResponseWriter, r *http.Request) {
	h.adSetTransition(w, r, h.adSets.Activate)
}

func (h *Handler) adSetTransition(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, ownerID string, id uuid.UUID) (*domain.AdSet, error)) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := fn(r.Context(), owner, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

func (h *Handler) handleAdSetInsights(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tr, err := timeRange(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ins, err := h.adSets.Insights(r.Context(), owner, id, tr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ins)
}

// handleAdSetSync serves POST /campaigns/{id}/adsets/sync.
func (h *Handler) handleAdSetSync(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	campaignID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	n, err := h.adSets.SyncWithRemote(r.Context(), owner, campaignID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"synced": n})
}
