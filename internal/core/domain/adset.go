package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdSet is the locally mirrored ad set. It belongs to a local campaign and,
// once synced, to that campaign's remote counterpart. The remote ad account
// id is resolved from the owner's profile before creation and its absence is
// a hard failure.
type AdSet struct {
	ID               uuid.UUID       `json:"id"`
	OwnerID          string          `json:"owner_id"`
	CampaignID       uuid.UUID       `json:"campaign_id"`
	Name             string          `json:"name"`
	OptimizationGoal string          `json:"optimization_goal"`
	BillingEvent     string          `json:"billing_event"`
	BidStrategy      BidStrategy     `json:"bid_strategy"`
	BidAmount        *float64        `json:"bid_amount,omitempty"`
	DailyBudget      *float64        `json:"daily_budget,omitempty"`
	LifetimeBudget   *float64        `json:"lifetime_budget,omitempty"`
	Status           Status          `json:"status"`
	Targeting        Targeting       `json:"targeting"`
	PromotedObject   *PromotedObject `json:"promoted_object,omitempty"`
	RemoteAccountID  string          `json:"remote_account_id,omitempty"`
	RemoteCampaignID string          `json:"remote_campaign_id,omitempty"`
	RemoteAdSetID    string          `json:"remote_adset_id,omitempty"`
	StartTime        time.Time       `json:"start_time"`
	EndTime          time.Time       `json:"end_time"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Synced reports whether the ad set exists on the remote platform.
func (s *AdSet) Synced() bool { return s.RemoteAdSetID != "" }

// PromotedObject points the ad set at the thing being promoted, e.g. a page,
// a pixel conversion event or a mobile application.
type PromotedObject struct {
	PageID          string `json:"page_id,omitempty"`
	PixelID         string `json:"pixel_id,omitempty"`
	CustomEventType string `json:"custom_event_type,omitempty"`
	ApplicationID   string `json:"application_id,omitempty"`
	ObjectStoreURL  string `json:"object_store_url,omitempty"`
}

// AdSetPatch carries mutable ad set fields for an update.
type AdSetPatch struct {
	Name             *string         `json:"name,omitempty"`
	Status           *Status         `json:"status,omitempty"`
	OptimizationGoal *string         `json:"optimization_goal,omitempty"`
	BillingEvent     *string         `json:"billing_event,omitempty"`
	BidStrategy      *BidStrategy    `json:"bid_strategy,omitempty"`
	BidAmount        *float64        `json:"bid_amount,omitempty"`
	DailyBudget      *float64        `json:"daily_budget,omitempty"`
	LifetimeBudget   *float64        `json:"lifetime_budget,omitempty"`
	Targeting        *Targeting      `json:"targeting,omitempty"`
	PromotedObject   *PromotedObject `json:"promoted_object,omitempty"`
	StartTime        *time.Time      `json:"start_time,omitempty"`
	EndTime          *time.Time      `json:"end_time,omitempty"`
}
