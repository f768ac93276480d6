package httpadapter

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
)

// Creatives have no local mirror; the {id} parameter is the platform's own
// creative id, passed through as-is.

func (h *Handler) handleCreativeCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	var c domain.Creative
	if err := decodeBody(r, &c); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.creatives.Create(r.Context(), owner, &c)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleCreativeList(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	q := port.CreativeListQuery{
		Limit: queryInt(r, "limit", 0),
		After: r.URL.Query().Get("after"),
	}
	if fields := r.URL.Query().Get("fields"); fields != "" {
		q.Fields = strings.Split(fields, ",")
	}
	list, err := h.creatives.List(r.Context(), owner, q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreativeGet(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	c, err := h.creatives.Get(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleCreativeUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	var p domain.CreativePatch
	if err := decodeBody(r, &p); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.creatives.Update(r.Context(), owner, chi.URLParam(r, "id"), p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleCreativeDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	if err := h.creatives.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreativeSearch(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	results, err := h.creatives.Search(r.Context(), owner,
		r.URL.Query().Get("q"), queryInt(r, "limit", 0))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, results)
}

func (h *Handler) handleCreativeSummary(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	tr, err := timeRange(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	summary, err := h.creatives.PerformanceSummary(r.Context(), owner, tr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleCreativeBulkUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	var body struct {
		IDs   []string             `json:"ids"`
		Patch domain.CreativePatch `json:"patch"`
	}
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.creatives.BulkUpdate(r.Context(), owner, body.IDs, body.Patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleCreativeBulkDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.creatives.BulkDelete(r.Context(), owner, body.IDs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleCreativePreview(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	preview, err := h.creatives.Preview(r.Context(), owner,
		chi.URLParam(r, "id"), r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"preview": preview})
}

func (h *Handler) handleCreativeInsights(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	tr, err := timeRange(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ins, err := h.creatives.Insights(r.Context(), owner, chi.URLParam(r, "id"), tr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ins)
}

func (h *Handler) handleCreativeGetWithInsights(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	tr, err := timeRange(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	full, err := h.creatives.GetWithInsights(r.Context(), owner, chi.URLParam(r, "id"), tr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, full)
}
