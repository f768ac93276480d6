package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"adbridge/internal/cache"
	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
	"adbridge/internal/errs"
)

// stubCampaignUC overrides only the methods a test exercises; calling
// anything else panics through the embedded nil interface.
type stubCampaignUC struct {
	port.CampaignUseCase
	campaign *domain.Campaign
	err      error
}

func (s stubCampaignUC) Get(context.Context, string, uuid.UUID) (*domain.Campaign, error) {
	return s.campaign, s.err
}

func newTestHandler(campaigns port.CampaignUseCase, creds port.CredentialSource) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(campaigns, nil, nil, nil, creds, time.Hour, logger)
}

func doRequest(h *Handler, method, target, ownerID, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if ownerID != "" {
		req.Header.Set("X-Owner-ID", ownerID)
	}
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestMissingOwnerHeader(t *testing.T) {
	h := newTestHandler(stubCampaignUC{}, cache.New())
	rec := doRequest(h, http.MethodGet, "/api/v1/campaigns/"+uuid.NewString(), "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMalformedCampaignID(t *testing.T) {
	h := newTestHandler(stubCampaignUC{}, cache.New())
	rec := doRequest(h, http.MethodGet, "/api/v1/campaigns/not-a-uuid", "owner-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", errs.Validationf("bad input"), http.StatusBadRequest},
		{"unauthorized", errs.ErrUnauthorized, http.StatusUnauthorized},
		{"not found", errs.ErrNotFound, http.StatusNotFound},
		{"remote", &errs.RemoteError{Message: "Invalid parameter", Code: 100}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(stubCampaignUC{err: tt.err}, cache.New())
			rec := doRequest(h, http.MethodGet, "/api/v1/campaigns/"+uuid.NewString(), "owner-1", "")
			require.Equal(t, tt.want, rec.Code)
			require.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestRemoteErrorBodyKeepsPlatformMessage(t *testing.T) {
	h := newTestHandler(stubCampaignUC{err: &errs.RemoteError{Message: "Invalid parameter", Code: 100}}, cache.New())
	rec := doRequest(h, http.MethodGet, "/api/v1/campaigns/"+uuid.NewString(), "owner-1", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid parameter")
}

func TestCampaignGetOK(t *testing.T) {
	c := &domain.Campaign{ID: uuid.New(), OwnerID: "owner-1", Name: "spring sale"}
	h := newTestHandler(stubCampaignUC{campaign: c}, cache.New())
	rec := doRequest(h, http.MethodGet, "/api/v1/campaigns/"+c.ID.String(), "owner-1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "spring sale")
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestStoreCredential(t *testing.T) {
	creds := cache.New()
	h := newTestHandler(stubCampaignUC{}, creds)

	rec := doRequest(h, http.MethodPost, "/api/v1/credentials", "owner-1",
		`{"token":"tok-123","ttl_seconds":60}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	tok, ok := creds.Get("owner-1")
	require.True(t, ok)
	require.Equal(t, "tok-123", tok)

	ttl, ok := creds.TTL("owner-1")
	require.True(t, ok)
	require.LessOrEqual(t, ttl, time.Minute)
}

func TestStoreCredentialDefaultsTTL(t *testing.T) {
	creds := cache.New()
	h := newTestHandler(stubCampaignUC{}, creds)

	rec := doRequest(h, http.MethodPost, "/api/v1/credentials", "owner-1", `{"token":"tok"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	ttl, ok := creds.TTL("owner-1")
	require.True(t, ok)
	require.Greater(t, ttl, 59*time.Minute, "falls back to the configured token TTL")
}

func TestStoreCredentialRejectsEmptyToken(t *testing.T) {
	h := newTestHandler(stubCampaignUC{}, cache.New())
	rec := doRequest(h, http.MethodPost, "/api/v1/credentials", "owner-1", `{"token":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveCredential(t *testing.T) {
	creds := cache.New()
	creds.Set("owner-1", "tok", time.Minute)
	h := newTestHandler(stubCampaignUC{}, creds)

	rec := doRequest(h, http.MethodDelete, "/api/v1/credentials", "owner-1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.False(t, creds.Has("owner-1"))
}

func TestTimeRangeQueryValidation(t *testing.T) {
	h := newTestHandler(stubCampaignUC{}, cache.New())
	id := uuid.NewString()

	rec := doRequest(h, http.MethodGet, "/api/v1/campaigns/"+id+"/insights?since=2026-08-01", "owner-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code, "a lone since is rejected before the service runs")
}
