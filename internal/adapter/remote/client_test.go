package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"adbridge/internal/config/configs"
	"adbridge/internal/core/domain"
	"adbridge/internal/errs"
)

// newTestClient points a client at an httptest server. Request paths seen by
// the handler carry the version prefix, e.g. /v19.0/act_1/campaigns.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)
	cfg := configs.Remote{BaseURL: *base, Version: "v19.0"}
	return New(cfg, slog.New(slog.NewTextHandler(testWriter{t}, nil))), srv
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func fptr(v float64) *float64 { return &v }

func campaignReadbackHandler(t *testing.T, onCreate func(r *http.Request)) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v19.0/act_42/campaigns", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		onCreate(r)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "9001"})
	})
	mux.HandleFunc("GET /v19.0/9001", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "9001", "name": "spring sale", "status": "ACTIVE",
			"effective_status": "ACTIVE", "daily_budget": "2500",
		})
	})
	return mux
}

func TestCreateCampaignPayload(t *testing.T) {
	var form url.Values
	client, _ := newTestClient(t, campaignReadbackHandler(t, func(r *http.Request) {
		form = r.PostForm
	}))

	rc, err := client.CreateCampaign(context.Background(), "tok", "42", &domain.Campaign{
		Name:        "spring sale",
		Objective:   "OUTCOME_TRAFFIC",
		Status:      domain.StatusActive,
		DailyBudget: fptr(25),
		BidStrategy: domain.BidCap,
		BidAmount:   fptr(1.5),
	})
	require.NoError(t, err)

	require.Equal(t, "tok", form.Get("access_token"))
	require.Equal(t, "2500", form.Get("daily_budget"), "money travels in minor units")
	require.False(t, form.Has("lifetime_budget"))
	require.Equal(t, "150", form.Get("bid_amount"))
	require.Equal(t, "[]", form.Get("special_ad_categories"),
		"absent categories still serialize as an empty array")

	// create reads the created object back
	require.Equal(t, "9001", rc.ID)
	require.Equal(t, "ACTIVE", rc.EffectiveStatus)
	require.NotNil(t, rc.DailyBudget)
	require.Equal(t, 25.0, *rc.DailyBudget)
}

func TestCreateCampaignUncappedNeverSendsBid(t *testing.T) {
	var form url.Values
	client, _ := newTestClient(t, campaignReadbackHandler(t, func(r *http.Request) {
		form = r.PostForm
	}))

	_, err := client.CreateCampaign(context.Background(), "tok", "42", &domain.Campaign{
		Name:        "spring sale",
		Objective:   "OUTCOME_TRAFFIC",
		Status:      domain.StatusActive,
		DailyBudget: fptr(25),
		BidStrategy: domain.BidLowestCost,
		BidAmount:   fptr(7), // must be stripped at the wire regardless
	})
	require.NoError(t, err)
	require.False(t, form.Has("bid_amount"))
}

func TestCreateCampaignMinROASBidOnlyWhenPositive(t *testing.T) {
	for _, tc := range []struct {
		name string
		bid  *float64
		want string
	}{
		{name: "positive bid travels", bid: fptr(1.5), want: "150"},
		{name: "zero bid is dropped", bid: fptr(0)},
		{name: "absent bid is dropped", bid: nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var form url.Values
			client, _ := newTestClient(t, campaignReadbackHandler(t, func(r *http.Request) {
				form = r.PostForm
			}))

			_, err := client.CreateCampaign(context.Background(), "tok", "42", &domain.Campaign{
				Name:        "spring sale",
				Objective:   "OUTCOME_TRAFFIC",
				Status:      domain.StatusActive,
				DailyBudget: fptr(25),
				BidStrategy: domain.BidMinROAS,
				BidAmount:   tc.bid,
			})
			require.NoError(t, err)
			if tc.want == "" {
				require.False(t, form.Has("bid_amount"))
			} else {
				require.Equal(t, tc.want, form.Get("bid_amount"))
			}
		})
	}
}

func TestRemoteErrorPreservesPlatformMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid parameter","type":"OAuthException","code":100}}`)
	}))

	_, err := client.GetCampaign(context.Background(), "tok", "9001")
	require.Error(t, err)
	require.True(t, errs.IsRemote(err))

	var re *errs.RemoteError
	require.ErrorAs(t, err, &re)
	require.Equal(t, "Invalid parameter", re.Message)
	require.Equal(t, 100, re.Code)
}

func TestRemoteErrorWithoutEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "boom")
	}))

	err := client.DeleteCampaign(context.Background(), "tok", "9001")
	require.True(t, errs.IsRemote(err))

	var re *errs.RemoteError
	require.ErrorAs(t, err, &re)
	require.Equal(t, http.StatusInternalServerError, re.Code)
}

func TestUnreachablePlatform(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)
	srv.Close() // nothing is listening anymore

	client := New(configs.Remote{BaseURL: *base, Version: "v19.0"},
		slog.New(slog.NewTextHandler(testWriter{t}, nil)))
	_, gerr := client.GetCampaign(context.Background(), "tok", "1")
	require.True(t, errs.IsRemote(gerr))
}
