package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"adbridge/internal/core/domain"
	"adbridge/internal/errs"
)

func fptr(v float64) *float64 { return &v }

func TestBid(t *testing.T) {
	tests := []struct {
		name     string
		strategy domain.BidStrategy
		bid      *float64
		wantErr  bool
	}{
		{"uncapped without bid", domain.BidLowestCost, nil, false},
		{"uncapped with zero bid", domain.BidLowestCost, fptr(0), false},
		{"uncapped with positive bid", domain.BidLowestCost, fptr(2.5), true},
		{"empty strategy defaults to uncapped", "", fptr(2.5), true},
		{"capped with bid", domain.BidCap, fptr(1.5), false},
		{"capped without bid", domain.BidCap, nil, true},
		{"capped with zero bid", domain.BidCap, fptr(0), true},
		{"cost cap with bid", domain.BidCostCap, fptr(3), false},
		{"cost cap without bid", domain.BidCostCap, nil, true},
		{"min roas without bid", domain.BidMinROAS, nil, false},
		{"min roas with bid", domain.BidMinROAS, fptr(4), false},
		{"unknown strategy", "SOMETHING_ELSE", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Bid(tt.strategy, tt.bid)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCampaignBudgetExclusivity(t *testing.T) {
	require.NoError(t, CampaignBudget(fptr(10), nil))
	require.NoError(t, CampaignBudget(nil, fptr(500)))

	require.ErrorIs(t, CampaignBudget(fptr(10), fptr(500)), errs.ErrValidation)
	require.ErrorIs(t, CampaignBudget(nil, nil), errs.ErrValidation)
	require.ErrorIs(t, CampaignBudget(fptr(0), nil), errs.ErrValidation)
	require.ErrorIs(t, CampaignBudget(nil, fptr(-1)), errs.ErrValidation)
}

func TestCampaign(t *testing.T) {
	base := func() *domain.Campaign {
		return &domain.Campaign{
			Name:        "spring sale",
			Objective:   "OUTCOME_TRAFFIC",
			DailyBudget: fptr(25),
			BidStrategy: domain.BidLowestCost,
		}
	}

	require.NoError(t, Campaign(base()))

	c := base()
	c.Name = ""
	require.ErrorIs(t, Campaign(c), errs.ErrValidation)

	c = base()
	c.Objective = ""
	require.ErrorIs(t, Campaign(c), errs.ErrValidation)

	c = base()
	c.LifetimeBudget = fptr(100)
	require.ErrorIs(t, Campaign(c), errs.ErrValidation)

	c = base()
	start := time.Now()
	end := start.Add(-time.Hour)
	c.StartTime, c.EndTime = &start, &end
	require.ErrorIs(t, Campaign(c), errs.ErrValidation)
}

func TestAdSet(t *testing.T) {
	base := func() *domain.AdSet {
		return &domain.AdSet{
			Name:             "us broad",
			CampaignID:       uuid.New(),
			OptimizationGoal: "LINK_CLICKS",
			BillingEvent:     "IMPRESSIONS",
			StartTime:        time.Now(),
			EndTime:          time.Now().Add(48 * time.Hour),
			Targeting: domain.Targeting{
				GeoLocations: &domain.GeoLocations{Countries: []string{"US"}},
			},
		}
	}

	require.NoError(t, AdSet(base()))

	// No budget is accepted: the parent campaign may carry it.
	s := base()
	s.DailyBudget, s.LifetimeBudget = nil, nil
	require.NoError(t, AdSet(s))

	s = base()
	s.DailyBudget, s.LifetimeBudget = fptr(10), fptr(100)
	require.ErrorIs(t, AdSet(s), errs.ErrValidation)

	s = base()
	s.CampaignID = uuid.Nil
	require.ErrorIs(t, AdSet(s), errs.ErrValidation)

	s = base()
	s.Targeting = domain.Targeting{}
	require.ErrorIs(t, AdSet(s), errs.ErrValidation)

	s = base()
	s.EndTime = s.StartTime
	require.ErrorIs(t, AdSet(s), errs.ErrValidation)

	s = base()
	s.BidStrategy = domain.BidCap
	require.ErrorIs(t, AdSet(s), errs.ErrValidation)
	s.BidAmount = fptr(1.2)
	require.NoError(t, AdSet(s))
}

func TestAd(t *testing.T) {
	require.NoError(t, Ad(&domain.Ad{Name: "ad", AdSetID: "123", CreativeID: "456"}))

	err := Ad(&domain.Ad{Name: "", AdSetID: "123", CreativeID: "456"})
	require.ErrorIs(t, err, errs.ErrValidation)

	err = Ad(&domain.Ad{Name: "ad", AdSetID: "not-numeric", CreativeID: "456"})
	require.ErrorIs(t, err, errs.ErrValidation)

	err = Ad(&domain.Ad{Name: "ad", AdSetID: "123", CreativeID: ""})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestRemoteID(t *testing.T) {
	require.NoError(t, RemoteID("creative id", "120210000000000001"))
	require.Error(t, RemoteID("creative id", ""))
	require.Error(t, RemoteID("creative id", "abc"))
	require.Error(t, RemoteID("creative id", "-5"))

	if err := RemoteID("creative id", "x"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
