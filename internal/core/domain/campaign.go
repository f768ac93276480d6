package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state shared by campaigns, ad sets and ads. It
// mirrors the remote platform's configured status values. Campaigns and ads
// are tombstoned with StatusDeleted on delete; ad sets are the exception and
// are removed from the local mirror outright.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusPaused   Status = "PAUSED"
	StatusDeleted  Status = "DELETED"
	StatusArchived Status = "ARCHIVED"
)

// Valid reports whether s is one of the recognised lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusDeleted, StatusArchived:
		return true
	}
	return false
}

// BidStrategy selects how the remote platform spends the budget. The bid
// amount requirement depends on the strategy; see the validate package.
type BidStrategy string

const (
	// BidLowestCost is the uncapped default. A bid amount must not be sent
	// with it; the platform rejects the combination.
	BidLowestCost BidStrategy = "LOWEST_COST_WITHOUT_CAP"
	// BidCap requires a positive bid amount acting as a hard cap.
	BidCap BidStrategy = "LOWEST_COST_WITH_BID_CAP"
	// BidCostCap requires a positive bid amount acting as an average cost target.
	BidCostCap BidStrategy = "COST_CAP"
	// BidMinROAS takes an optional bid amount (minimum return on ad spend).
	BidMinROAS BidStrategy = "LOWEST_COST_WITH_MIN_ROAS"
)

// Valid reports whether b is a known strategy.
func (b BidStrategy) Valid() bool {
	switch b {
	case BidLowestCost, BidCap, BidCostCap, BidMinROAS:
		return true
	}
	return false
}

// RequiresBid reports whether the strategy needs a positive bid amount.
func (b BidStrategy) RequiresBid() bool {
	return b == BidCap || b == BidCostCap
}

// Campaign is the locally mirrored advertising campaign. Money fields are in
// major currency units; conversion to the platform's minor units happens at
// the wire boundary. RemoteCampaignID is empty until the campaign has been
// created on the platform, which is deferred for campaigns created paused.
type Campaign struct {
	ID                  uuid.UUID   `json:"id"`
	OwnerID             string      `json:"owner_id"`
	Name                string      `json:"name"`
	Objective           string      `json:"objective"`
	Status              Status      `json:"status"`
	EffectiveStatus     string      `json:"effective_status,omitempty"`
	DailyBudget         *float64    `json:"daily_budget,omitempty"`
	LifetimeBudget      *float64    `json:"lifetime_budget,omitempty"`
	BidStrategy         BidStrategy `json:"bid_strategy"`
	BidAmount           *float64    `json:"bid_amount,omitempty"`
	StartTime           *time.Time  `json:"start_time,omitempty"`
	EndTime             *time.Time  `json:"end_time,omitempty"`
	Targeting           *Targeting  `json:"targeting,omitempty"`
	SpecialAdCategories []string    `json:"special_ad_categories"`
	RemoteAccountID     string      `json:"remote_account_id,omitempty"`
	RemoteCampaignID    string      `json:"remote_campaign_id,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// Synced reports whether the campaign exists on the remote platform.
func (c *Campaign) Synced() bool { return c.RemoteCampaignID != "" }

// CampaignPatch carries the mutable campaign fields for an update. Nil means
// "leave unchanged"; a set pointer is applied locally and forwarded remotely.
type CampaignPatch struct {
	Name           *string      `json:"name,omitempty"`
	Status         *Status      `json:"status,omitempty"`
	Objective      *string      `json:"objective,omitempty"`
	DailyBudget    *float64     `json:"daily_budget,omitempty"`
	LifetimeBudget *float64     `json:"lifetime_budget,omitempty"`
	BidStrategy    *BidStrategy `json:"bid_strategy,omitempty"`
	BidAmount      *float64     `json:"bid_amount,omitempty"`
	StartTime      *time.Time   `json:"start_time,omitempty"`
	EndTime        *time.Time   `json:"end_time,omitempty"`
	Targeting      *Targeting   `json:"targeting,omitempty"`
}
