package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ad is the locally mirrored ad. Unlike campaigns and ad sets, an ad is
// created on the remote platform first: the local record stores the remote id
// as its external key, so there is nothing to persist until the platform has
// assigned one. AdSetID and CreativeID reference remote identifiers and must
// be numeric.
type Ad struct {
	ID               uuid.UUID        `json:"id"`
	OwnerID          string           `json:"owner_id"`
	RemoteAdID       string           `json:"remote_ad_id,omitempty"`
	Name             string           `json:"name"`
	AdSetID          string           `json:"adset_id"`
	CampaignID       string           `json:"campaign_id"`
	CreativeID       string           `json:"creative_id"`
	Status           Status           `json:"status"`
	EffectiveStatus  string           `json:"effective_status,omitempty"`
	ConfiguredStatus string           `json:"configured_status,omitempty"`
	BidAmount        *float64         `json:"bid_amount,omitempty"`
	TrackingSpecs    []map[string]any `json:"tracking_specs,omitempty"`
	Metrics          AdMetrics        `json:"metrics"`
	LastInsightsAt   *time.Time       `json:"last_insights_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// AdMetrics caches the last insights snapshot fetched for the ad. It is
// refreshed opportunistically on insights reads and may lag the platform.
type AdMetrics struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Spend       float64 `json:"spend"`
	Reach       int64   `json:"reach"`
	CTR         float64 `json:"ctr"`
	Conversions int64   `json:"conversions"`
}

// AdPatch carries mutable ad fields for an update.
type AdPatch struct {
	Name          *string          `json:"name,omitempty"`
	Status        *Status          `json:"status,omitempty"`
	CreativeID    *string          `json:"creative_id,omitempty"`
	BidAmount     *float64         `json:"bid_amount,omitempty"`
	TrackingSpecs []map[string]any `json:"tracking_specs,omitempty"`
}
