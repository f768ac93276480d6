package httpadapter

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
)

func (h *Handler) handleAdCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	var a domain.Ad
	if err := decodeBody(r, &a); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.ads.Create(r.Context(), owner, &a)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleAdList(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	f := port.AdFilter{
		OwnerID:    owner,
		AdSetID:    r.URL.Query().Get("adset_id"),
		CampaignID: r.URL.Query().Get("campaign_id"),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 0),
		SortBy:     r.URL.Query().Get("sort_by"),
		SortDesc:   r.URL.Query().Get("order") == "desc",
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.Status(s)
		f.Status = &status
	}
	page, err := h.ads.List(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleAdGet(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.ads.Get(r.Context(), owner, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

func (h *Handler) handleAdUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var p domain.AdPatch
	if err := decodeBody(r, &p); err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.ads.Update(r.Context(), owner, id, p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

func (h *Handler) handleAdDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.ads.Delete(r.Context(), owner, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAdActivate(w http.ResponseWriter, r *http.Request) {
	h.adTransition(w, r, h.ads.Activate)
}

func (h *Handler) handleAdPause(w http.ResponseWriter, r *http.Request) {
	h.adTransition(w, r, h.ads.Pause)
}

func (h *Handler) handleAdDuplicate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	copied, err := h.ads.Duplicate(r.Context(), owner, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, copied)
}

func (h *Handler) adTransition(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Ad, error)) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := fn(r.Context(), owner, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

func (h *Handler) handleAdInsights(w http.ResponseWriter, r *http.Request) {
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
	ins, err := h.ads.Insights(r.Context(), owner, id, tr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ins)
}

func (h *Handler) handleAdPreview(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	preview, err := h.ads.Preview(r.Context(), owner, id, r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"preview": preview})
}

// handleAdListByAdSet serves GET /adsets/remote/{remoteID}/ads: the local
// mirror filtered by the platform ad set id.
func (h *Handler) handleAdListByAdSet(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	ads, err := h.ads.ListByAdSet(r.Context(), owner, chi.URLParam(r, "remoteID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ads)
}
