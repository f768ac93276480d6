// Package httpadapter exposes the entity services over HTTP. It is a thin
// inbound adapter: decode, delegate, map errors. Authentication is owned by
// an upstream gateway; the owner id arrives in the X-Owner-ID header.
package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"adbridge/internal/core/port"
	"adbridge/internal/errs"
)

// Handler holds the services and registers the routes on a chi.Router.
type Handler struct {
	campaigns port.CampaignUseCase
	adSets    port.AdSetUseCase
	ads       port.AdUseCase
	creatives port.CreativeUseCase
	creds     port.CredentialSource
	tokenTTL  time.Duration
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(campaigns port.CampaignUseCase, adSets port.AdSetUseCase,
	ads port.AdUseCase, creatives port.CreativeUseCase,
	creds port.CredentialSource, tokenTTL time.Duration, logger *slog.Logger) *Handler {
	h := &Handler{
		campaigns: campaigns, adSets: adSets, ads: ads, creatives: creatives,
		creds: creds, tokenTTL: tokenTTL, logger: logger,
	}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/credentials", h.handleStoreCredential)
		r.Delete("/credentials", h.handleRemoveCredential)

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCampaignCreate)
			r.Get("/", h.handleCampaignList)
			r.Post("/bulk", h.handleCampaignBulk)
			r.Post("/sync", h.handleCampaignSync)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleCampaignGet)
				r.Patch("/", h.handleCampaignUpdate)
				r.Delete("/", h.handleCampaignDelete)
				r.Post("/duplicate", h.handleCampaignDuplicate)
				r.Get("/insights", h.handleCampaignInsights)
				r.Get("/adsets", h.handleAdSetListByCampaign)
				r.Post("/adsets/sync", h.handleAdSetSync)
			})
		})

		r.Route("/adsets", func(r chi.Router) {
			r.Post("/", h.handleAdSetCreate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleAdSetGet)
				r.Patch("/", h.handleAdSetUpdate)
				r.Delete("/", h.handleAdSetDelete)
				r.Post("/pause", h.handleAdSetPause)
				r.Post("/activate", h.handleAdSetActivate)
				r.Get("/insights", h.handleAdSetInsights)
			})
			r.Get("/remote/{remoteID}/ads", h.handleAdListByAdSet)
		})

		r.Route("/ads", func(r chi.Router) {
			r.Post("/", h.handleAdCreate)
			r.Get("/", h.handleAdList)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleAdGet)
				r.Patch("/", h.handleAdUpdate)
				r.Delete("/", h.handleAdDelete)
				r.Post("/activate", h.handleAdActivate)
				r.Post("/pause", h.handleAdPause)
				r.Post("/duplicate", h.handleAdDuplicate)
				r.Get("/insights", h.handleAdInsights)
				r.Get("/preview", h.handleAdPreview)
			})
		})

		r.Route("/creatives", func(r chi.Router) {
			r.Post("/", h.handleCreativeCreate)
			r.Get("/", h.handleCreativeList)
			r.Get("/search", h.handleCreativeSearch)
			r.Get("/summary", h.handleCreativeSummary)
			r.Post("/bulk-update", h.handleCreativeBulkUpdate)
			r.Post("/bulk-delete", h.handleCreativeBulkDelete)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleCreativeGet)
				r.Patch("/", h.handleCreativeUpdate)
				r.Delete("/", h.handleCreativeDelete)
				r.Get("/preview", h.handleCreativePreview)
				r.Get("/insights", h.handleCreativeInsights)
				r.Get("/full", h.handleCreativeGetWithInsights)
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler { return h.router }

// ownerID extracts the authenticated owner from the request. The empty
// string means the gateway did not authenticate the caller.
func ownerID(r *http.Request) string {
	return r.Header.Get("X-Owner-ID")
}

// writeError maps the error taxonomy onto HTTP statuses. The remote
// platform's own message survives the mapping; transport internals do not.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errs.IsRemote(err):
		status = http.StatusBadGateway
	default:
		h.logger.Error("internal error", slog.String("path", r.URL.Path), slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// requireOwner rejects unauthenticated requests before any work is done.
func (h *Handler) requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := ownerID(r)
	if owner == "" {
		h.writeError(w, r, errs.ErrUnauthorized)
		return "", false
	}
	return owner, true
}

// handleStoreCredential caches the owner's platform access token. The auth
// layer that obtains the token is out of scope; this is its seam.
func (h *Handler) handleStoreCredential(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	var body struct {
		Token      string `json:"token"`
		TTLSeconds int    `json:"ttl_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	ttl := h.tokenTTL
	if body.TTLSeconds > 0 {
		ttl = time.Duration(body.TTLSeconds) * time.Second
	}
	h.creds.Set(owner, body.Token, ttl)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveCredential(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	h.creds.Remove(owner)
	w.WriteHeader(http.StatusNoContent)
}
