package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"adbridge/internal/core/domain"
)

// CampaignFilter narrows and paginates a local campaign listing. Filters are
// exact-match; Sort is a single column name with direction.
type CampaignFilter struct {
	OwnerID  string
	Status   *domain.Status
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

// AdFilter narrows and paginates a local ad listing.
type AdFilter struct {
	OwnerID    string
	Status     *domain.Status
	AdSetID    string
	CampaignID string
	Page       int
	Limit      int
	SortBy     string
	SortDesc   bool
}

// Page is one page of a local listing with a computed total page count.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// CampaignRepository persists the local campaign mirror. Get methods return
// (nil, nil) when no row matches.
type CampaignRepository interface {
	Create(ctx context.Context, c *domain.Campaign) error
	Update(ctx context.Context, c *domain.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	GetByRemoteID(ctx context.Context, ownerID, remoteID string) (*domain.Campaign, error)
	List(ctx context.Context, f CampaignFilter) ([]domain.Campaign, int64, error)
}

// AdSetRepository persists the local ad set mirror. Delete removes the row;
// ad sets are the one entity the design hard-deletes locally.
type AdSetRepository interface {
	Create(ctx context.Context, s *domain.AdSet) error
	Update(ctx context.Context, s *domain.AdSet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AdSet, error)
	GetByRemoteID(ctx context.Context, ownerID, remoteID string) (*domain.AdSet, error)
	ListByCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID) ([]domain.AdSet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdRepository persists the local ad mirror.
type AdRepository interface {
	Create(ctx context.Context, a *domain.Ad) error
	Update(ctx context.Context, a *domain.Ad) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error)
	GetByRemoteID(ctx context.Context, ownerID, remoteAdID string) (*domain.Ad, error)
	List(ctx context.Context, f AdFilter) ([]domain.Ad, int64, error)
}

// AccountResolver maps an owner to their linked remote ad account. A missing
// link is reported as errs.ErrUnauthorized, never defaulted.
type AccountResolver interface {
	RemoteAccountID(ctx context.Context, ownerID string) (string, error)
}

// CredentialSource hands out cached platform access tokens per owner. The
// concrete implementation lives in internal/cache and is injected so tests
// can substitute a fake.
type CredentialSource interface {
	Set(ownerID, token string, ttl time.Duration)
	Get(ownerID string) (string, bool)
	Has(ownerID string) bool
	Remove(ownerID string) bool
	TTL(ownerID string) (time.Duration, bool)
}
