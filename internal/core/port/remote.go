package port

import (
	"context"
	"time"

	"adbridge/internal/core/domain"
)

// RemoteCampaign is the platform's view of a campaign, already converted to
// local units (money in major currency units). Services merge these fields
// into the mirror after a successful remote call.
type RemoteCampaign struct {
	ID                  string
	Name                string
	Objective           string
	Status              string
	EffectiveStatus     string
	DailyBudget         *float64
	LifetimeBudget      *float64
	BidStrategy         string
	BidAmount           *float64
	StartTime           *time.Time
	EndTime             *time.Time
	SpecialAdCategories []string
}

// RemoteAdSet is the platform's view of an ad set.
type RemoteAdSet struct {
	ID               string
	Name             string
	CampaignID       string
	Status           string
	EffectiveStatus  string
	OptimizationGoal string
	BillingEvent     string
	BidStrategy      string
	BidAmount        *float64
	DailyBudget      *float64
	LifetimeBudget   *float64
	StartTime        *time.Time
	EndTime          *time.Time
}

// RemoteAd is the platform's view of an ad, including the volatile review
// fields refreshed on reads.
type RemoteAd struct {
	ID               string
	Name             string
	AdSetID          string
	CampaignID       string
	CreativeID       string
	Status           string
	EffectiveStatus  string
	ConfiguredStatus string
	BidAmount        *float64
	TrackingSpecs    []map[string]any
	ReviewFeedback   map[string]string
	Issues           []string
	Recommendations  []string
	PreviewLink      string
}

// CreativeListQuery drives the cursor-paginated remote creative listing.
type CreativeListQuery struct {
	Fields []string
	Limit  int
	After  string
}

// CampaignAPI is the remote platform surface for campaigns, scoped to the
// owner's ad account resource.
type CampaignAPI interface {
	CreateCampaign(ctx context.Context, token, accountID string, c *domain.Campaign) (*RemoteCampaign, error)
	UpdateCampaign(ctx context.Context, token, remoteID string, p domain.CampaignPatch) error
	DeleteCampaign(ctx context.Context, token, remoteID string) error
	GetCampaign(ctx context.Context, token, remoteID string) (*RemoteCampaign, error)
	ListCampaigns(ctx context.Context, token, accountID string) ([]RemoteCampaign, error)
	CampaignInsights(ctx context.Context, token, remoteID string, tr *domain.TimeRange) (*domain.Insights, error)
}

// AdSetAPI is the remote platform surface for ad sets.
type AdSetAPI interface {
	CreateAdSet(ctx context.Context, token string, s *domain.AdSet) (*RemoteAdSet, error)
	UpdateAdSet(ctx context.Context, token, remoteID string, p domain.AdSetPatch) error
	DeleteAdSet(ctx context.Context, token, remoteID string) error
	ListAdSets(ctx context.Context, token, accountID, remoteCampaignID string) ([]RemoteAdSet, error)
	GetAdSet(ctx context.Context, token, remoteID string) (*RemoteAdSet, error)
	AdSetInsights(ctx context.Context, token, remoteID string, tr *domain.TimeRange) (*domain.Insights, error)
}

// AdAPI is the remote platform surface for ads.
type AdAPI interface {
	CreateAd(ctx context.Context, token, accountID string, a *domain.Ad) (*RemoteAd, error)
	UpdateAd(ctx context.Context, token, remoteID string, p domain.AdPatch) error
	DeleteAd(ctx context.Context, token, remoteID string) error
	GetAd(ctx context.Context, token, remoteID string) (*RemoteAd, error)
	AdInsights(ctx context.Context, token, remoteID string, tr *domain.TimeRange) (*domain.Insights, error)
	AdPreview(ctx context.Context, token, remoteID, format string) (string, error)
}

// CreativeAPI is the remote platform surface for creatives. There is no
// local mirror; every operation round-trips to the platform.
type CreativeAPI interface {
	CreateCreative(ctx context.Context, token, accountID string, c *domain.Creative) (string, error)
	UpdateCreative(ctx context.Context, token, remoteID string, p domain.CreativePatch) error
	DeleteCreative(ctx context.Context, token, remoteID string) error
	GetCreative(ctx context.Context, token, remoteID string, fields []string) (*domain.Creative, error)
	ListCreatives(ctx context.Context, token, accountID string, q CreativeListQuery) ([]domain.Creative, string, error)
	CreativePreview(ctx context.Context, token, remoteID, format string) (string, error)
	CreativeInsights(ctx context.Context, token, remoteID string, tr *domain.TimeRange) (*domain.Insights, error)
}

// MarketingClient is the full remote platform adapter.
type MarketingClient interface {
	CampaignAPI
	AdSetAPI
	AdAPI
	CreativeAPI
}
