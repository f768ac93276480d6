package httpadapter

import (
	"net/http"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
)

func (h *Handler) handleCampaignCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	var c domain.Campaign
	if err := decodeBody(r, &c); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.campaigns.Create(r.Context(), owner, &c)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleCampaignList(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	f := port.CampaignFilter{
		OwnerID:  owner,
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 0),
		SortBy:   r.URL.Query().Get("sort_by"),
		SortDesc: r.URL.Query().Get("order") == "desc",
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.Status(s)
		f.Status = &status
	}
	page, err := h.campaigns.List(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleCampaignGet(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.campaigns.Get(r.Context(), owner, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleCampaignUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var p domain.CampaignPatch
	if err := decodeBody(r, &p); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.campaigns.Update(r.Context(), owner, id, p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleCampaignDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.campaigns.Delete(r.Context(), owner, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCampaignBulk(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	var body struct {
		IDs []string      `json:"ids"`
		Op  domain.BulkOp `json:"operation"`
	}
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.campaigns.BulkOperate(r.Context(), owner, body.IDs, body.Op)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleCampaignSync(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	var body struct {
		RemoteAccountID string `json:"remote_account_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	n, err := h.campaigns.SyncWithRemote(r.Context(), owner, body.RemoteAccountID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"synced": n})
}

func (h *Handler) handleCampaignDuplicate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	copied, err := h.campaigns.Duplicate(r.Context(), owner, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, copied)
}

func (h *Handler) handleCampaignInsights(w http.ResponseWriter, r *http.Request) {
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
	ins, err := h.campaigns.Insights(r.Context(), owner, id, tr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ins)
}
