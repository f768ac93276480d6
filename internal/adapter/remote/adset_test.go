package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"adbridge/internal/core/domain"
	"adbridge/internal/errs"
)

func adSetReadbackHandler(t *testing.T, onCreate func(r *http.Request)) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v19.0/act_42/adsets", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		onCreate(r)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "7001"})
	})
	mux.HandleFunc("GET /v19.0/7001", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "7001", "name": "us broad", "campaign_id": "9001",
			"status": "PAUSED", "daily_budget": "1000",
		})
	})
	return mux
}

func testAdSet() *domain.AdSet {
	return &domain.AdSet{
		Name:             "us broad",
		Status:           domain.StatusPaused,
		OptimizationGoal: "LINK_CLICKS",
		BillingEvent:     "IMPRESSIONS",
		DailyBudget:      fptr(10),
		RemoteAccountID:  "42",
		RemoteCampaignID: "9001",
		StartTime:        time.Now(),
		EndTime:          time.Now().Add(48 * time.Hour),
		Targeting: domain.Targeting{
			GeoLocations: &domain.GeoLocations{Countries: []string{"US"}},
		},
	}
}

func TestCreateAdSetStripsUncappedBid(t *testing.T) {
	var form url.Values
	client, _ := newTestClient(t, adSetReadbackHandler(t, func(r *http.Request) {
		form = r.PostForm
	}))

	s := testAdSet()
	s.BidStrategy = domain.BidLowestCost
	s.BidAmount = fptr(3)

	rs, err := client.CreateAdSet(context.Background(), "tok", s)
	require.NoError(t, err)
	require.False(t, form.Has("bid_amount"))
	require.Equal(t, "1000", form.Get("daily_budget"))
	require.Equal(t, "9001", form.Get("campaign_id"))
	require.Equal(t, "7001", rs.ID)
}

func TestCreateAdSetCappedSendsBid(t *testing.T) {
	var form url.Values
	client, _ := newTestClient(t, adSetReadbackHandler(t, func(r *http.Request) {
		form = r.PostForm
	}))

	s := testAdSet()
	s.BidStrategy = domain.BidCap
	s.BidAmount = fptr(1.5)

	_, err := client.CreateAdSet(context.Background(), "tok", s)
	require.NoError(t, err)
	require.Equal(t, "150", form.Get("bid_amount"))
}

func TestCreateAdSetRejectsBothBudgets(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	s := testAdSet()
	s.LifetimeBudget = fptr(100)

	_, err := client.CreateAdSet(context.Background(), "tok", s)
	require.ErrorIs(t, err, errs.ErrValidation)
	require.False(t, called, "no request may be sent for an invalid budget pair")
}
