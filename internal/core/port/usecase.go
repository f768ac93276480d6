package port

import (
	"context"

	"github.com/google/uuid"

	"adbridge/internal/core/domain"
)

// CampaignUseCase is the inbound command surface for campaigns. Implementations
// orchestrate validation, credential lookup, the remote call and the local
// mirror write, in that order.
type CampaignUseCase interface {
	Create(ctx context.Context, ownerID string, c *domain.Campaign) (*domain.Campaign, error)
	List(ctx context.Context, f CampaignFilter) (*Page[domain.Campaign], error)
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Campaign, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, p domain.CampaignPatch) (*domain.Campaign, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	BulkOperate(ctx context.Context, ownerID string, ids []string, op domain.BulkOp) (*domain.BulkResult, error)
	Insights(ctx context.Context, ownerID string, id uuid.UUID, tr *domain.TimeRange) (*domain.Insights, error)
	SyncWithRemote(ctx context.Context, ownerID, remoteAccountID string) (int, error)
	Duplicate(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Campaign, error)
}

// AdSetUseCase is the inbound command surface for ad sets.
type AdSetUseCase interface {
	Create(ctx context.Context, ownerID string, s *domain.AdSet) (*domain.AdSet, error)
	ListByCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID) ([]domain.AdSet, error)
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*domain.AdSet, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, p domain.AdSetPatch) (*domain.AdSet, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	Pause(ctx context.Context, ownerID string, id uuid.UUID) (*domain.AdSet, error)
	Activate(ctx context.Context, ownerID string, id uuid.UUID) (*domain.AdSet, error)
	Insights(ctx context.Context, ownerID string, id uuid.UUID, tr *domain.TimeRange) (*domain.Insights, error)
	SyncWithRemote(ctx context.Context, ownerID string, campaignID uuid.UUID) (int, error)
}

// AdUseCase is the inbound command surface for ads. Ads are remote-first:
// Create calls the platform before any local write.
type AdUseCase interface {
	Create(ctx context.Context, ownerID string, a *domain.Ad) (*domain.Ad, error)
	List(ctx context.Context, f AdFilter) (*Page[domain.Ad], error)
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Ad, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, p domain.AdPatch) (*domain.Ad, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	Activate(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Ad, error)
	Pause(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Ad, error)
	Duplicate(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Ad, error)
	Insights(ctx context.Context, ownerID string, id uuid.UUID, tr *domain.TimeRange) (*domain.Insights, error)
	Preview(ctx context.Context, ownerID string, id uuid.UUID, format string) (string, error)
	ListByAdSet(ctx context.Context, ownerID, adSetRemoteID string) ([]domain.Ad, error)
}

// CreativeWithInsights pairs a creative with its performance snapshot.
type CreativeWithInsights struct {
	Creative domain.Creative `json:"creative"`
	Insights domain.Insights `json:"insights"`
}

// PerformanceSummary aggregates insights across an owner's creatives.
type PerformanceSummary struct {
	Creatives   int     `json:"creatives"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Spend       float64 `json:"spend"`
	AvgCTR      float64 `json:"avg_ctr"`
}

// CreativeList is one cursor page of remote creatives.
type CreativeList struct {
	Items []domain.Creative `json:"items"`
	After string            `json:"after,omitempty"`
}

// CreativeUseCase is the inbound command surface for creatives. Creatives
// have no local mirror, so every read is a live platform call.
type CreativeUseCase interface {
	Create(ctx context.Context, ownerID string, c *domain.Creative) (*domain.Creative, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Creative, error)
	Update(ctx context.Context, ownerID, id string, p domain.CreativePatch) (*domain.Creative, error)
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, q CreativeListQuery) (*CreativeList, error)
	Preview(ctx context.Context, ownerID, id, format string) (string, error)
	Insights(ctx context.Context, ownerID, id string, tr *domain.TimeRange) (*domain.Insights, error)
	GetWithInsights(ctx context.Context, ownerID, id string, tr *domain.TimeRange) (*CreativeWithInsights, error)
	BulkUpdate(ctx context.Context, ownerID string, ids []string, p domain.CreativePatch) (*domain.BulkResult, error)
	BulkDelete(ctx context.Context, ownerID string, ids []string) (*domain.BulkResult, error)
	Search(ctx context.Context, ownerID, query string, limit int) ([]domain.Creative, error)
	PerformanceSummary(ctx context.Context, ownerID string, tr *domain.TimeRange) (*PerformanceSummary, error)
}
