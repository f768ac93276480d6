package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
	"adbridge/internal/core/validate"
	"adbridge/internal/errs"
)

// AdUseCase owns the ad lifecycle. Ads invert the dual-write order of the
// other entities: the remote ad is created first, because the local record
// stores the remote id as its external key. For the same reason a remote
// failure on update propagates instead of being absorbed.
type AdUseCase struct {
	repo     port.AdRepository
	accounts port.AccountResolver
	creds    port.CredentialSource
	remote   port.AdAPI
	logger   *slog.Logger
}

// NewAdUseCase wires the ad service.
func NewAdUseCase(repo port.AdRepository, accounts port.AccountResolver,
	creds port.CredentialSource, remote port.AdAPI, logger *slog.Logger) *AdUseCase {
	return &AdUseCase{repo: repo, accounts: accounts, creds: creds, remote: remote, logger: logger}
}

// Create validates the ad, creates it remotely first, then persists the
// local record populated with the platform's confirmed fields. Unlike
// campaigns, ads always hit the platform immediately, paused or not.
func (u *AdUseCase) Create(ctx context.Context, ownerID string, a *domain.Ad) (*domain.Ad, error) {
	a.OwnerID = ownerID
	if a.Status == "" {
		a.Status = domain.StatusPaused
	}
	if !a.Status.Valid() {
		return nil, errs.Validationf("unknown status %q", a.Status)
	}
	if err := validate.Ad(a); err != nil {
		return nil, err
	}

	accountID, err := u.accounts.RemoteAccountID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return nil, err
	}

	ra, err := u.remote.CreateAd(ctx, token, accountID, a)
	if err != nil {
		return nil, err
	}

	a.ID = uuid.New()
	u.mergeRemote(a, ra)
	if err = u.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List is a local-only query.
func (u *AdUseCase) List(ctx context.Context, f port.AdFilter) (*port.Page[domain.Ad], error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)
	items, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &port.Page[domain.Ad]{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}

// Get returns the local record, refreshed best-effort with the platform's
// volatile review fields.
func (u *AdUseCase) Get(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Ad, error) {
	a, err := u.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	token, ok := u.creds.Get(ownerID)
	if !ok {
		return a, nil
	}
	ra, err := u.remote.GetAd(ctx, token, a.RemoteAdID)
	if err != nil {
		u.logger.Warn("remote ad refresh failed, returning local data",
			slog.String("ad_id", id.String()), slog.Any("error", err))
		return a, nil
	}
	u.mergeRemote(a, ra)
	if err = u.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update pushes the patch to the platform and applies it locally only on
// remote success. The remote failure propagates; this is deliberately
// stricter than the campaign path.
func (u *AdUseCase) Update(ctx context.Context, ownerID string, id uuid.UUID, p domain.AdPatch) (*domain.Ad, error) {
	a, err := u.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if p.Status != nil && !p.Status.Valid() {
		return nil, errs.Validationf("unknown status %q", *p.Status)
	}
	if p.CreativeID != nil {
		if err = validate.RemoteID("creative id", *p.CreativeID); err != nil {
			return nil, err
		}
	}

	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return nil, err
	}
	if err = u.remote.UpdateAd(ctx, token, a.RemoteAdID, p); err != nil {
		return nil, err
	}

	applyAdPatch(a, p)
	if err = u.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete transitions the ad to DELETED locally after a best-effort remote
// delete. The row is never removed.
func (u *AdUseCase) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	a, err := u.load(ctx, ownerID, id)
	if err != nil {
		return err
	}
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return err
	}
	if rerr := u.remote.DeleteAd(ctx, token, a.RemoteAdID); rerr != nil {
		u.logger.Warn("remote ad delete failed, proceeding with local delete",
			slog.String("ad_id", id.String()), slog.Any("error", rerr))
	}
	a.Status = domain.StatusDeleted
	return u.repo.Update(ctx, a)
}

// Activate transitions the ad to ACTIVE.
func (u *AdUseCase) Activate(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Ad, error) {
	st := domain.StatusActive
	return u.Update(ctx, ownerID, id, domain.AdPatch{Status: &st})
}

// Pause transitions the ad to PAUSED.
func (u *AdUseCase) Pause(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Ad, error) {
	st := domain.StatusPaused
	return u.Update(ctx, ownerID, id, domain.AdPatch{Status: &st})
}

// Duplicate creates a paused copy of the ad named "<original> (Copy)". All
// other fields are carried over; the copy goes through the normal
// remote-first create.
func (u *AdUseCase) Duplicate(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Ad, error) {
	orig, err := u.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	cp := *orig
	cp.ID = uuid.UUID{}
	cp.RemoteAdID = ""
	cp.Name = orig.Name + " (Copy)"
	cp.Status = domain.StatusPaused
	cp.EffectiveStatus = ""
	cp.ConfiguredStatus = ""
	cp.Metrics = domain.AdMetrics{}
	cp.LastInsightsAt = nil
	return u.Create(ctx, ownerID, &cp)
}

// Insights fetches the ad performance snapshot and opportunistically caches
// the metrics on the local record. A remote failure degrades to zeroed
// metrics.
func (u *AdUseCase) Insights(ctx context.Context, ownerID string, id uuid.UUID, tr *domain.TimeRange) (*domain.Insights, error) {
	a, err := u.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return nil, err
	}
	ins, err := u.remote.AdInsights(ctx, token, a.RemoteAdID, tr)
	if err != nil {
		u.logger.Warn("ad insights fetch failed, returning zeroed metrics",
			slog.String("ad_id", id.String()), slog.Any("error", err))
		return &domain.Insights{}, nil
	}

	a.Metrics = domain.AdMetrics{
		Impressions: ins.Impressions,
		Clicks:      ins.Clicks,
		Spend:       ins.Spend,
		Reach:       ins.Reach,
		CTR:         ins.CTR,
		Conversions: ins.Conversions,
	}
	now := time.Now().UTC()
	a.LastInsightsAt = &now
	if uerr := u.repo.Update(ctx, a); uerr != nil {
		u.logger.Warn("caching ad metrics failed", slog.String("ad_id", id.String()), slog.Any("error", uerr))
	}
	return ins, nil
}

// Preview renders the ad in the requested format.
func (u *AdUseCase) Preview(ctx context.Context, ownerID string, id uuid.UUID, format string) (string, error) {
	a, err := u.load(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return "", err
	}
	return u.remote.AdPreview(ctx, token, a.RemoteAdID, format)
}

// ListByAdSet is a local-only query keyed by the remote ad set id.
func (u *AdUseCase) ListByAdSet(ctx context.Context, ownerID, adSetRemoteID string) ([]domain.Ad, error) {
	items, _, err := u.repo.List(ctx, port.AdFilter{
		OwnerID: ownerID,
		AdSetID: adSetRemoteID,
		Page:    1,
		Limit:   maxPageLimit,
	})
	return items, err
}

func (u *AdUseCase) load(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Ad, error) {
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || a.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: ad %s", errs.ErrNotFound, id)
	}
	return a, nil
}

func (u *AdUseCase) mergeRemote(a *domain.Ad, ra *port.RemoteAd) {
	a.RemoteAdID = ra.ID
	if ra.Name != "" {
		a.Name = ra.Name
	}
	if ra.AdSetID != "" {
		a.AdSetID = ra.AdSetID
	}
	if ra.CampaignID != "" {
		a.CampaignID = ra.CampaignID
	}
	if ra.CreativeID != "" {
		a.CreativeID = ra.CreativeID
	}
	a.Status = mergeStatus(a.Status, ra.Status)
	a.EffectiveStatus = ra.EffectiveStatus
	a.ConfiguredStatus = ra.ConfiguredStatus
	if ra.BidAmount != nil {
		a.BidAmount = ra.BidAmount
	}
	if ra.TrackingSpecs != nil {
		a.TrackingSpecs = ra.TrackingSpecs
	}
}

func applyAdPatch(a *domain.Ad, p domain.AdPatch) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.CreativeID != nil {
		a.CreativeID = *p.CreativeID
	}
	if p.BidAmount != nil {
		a.BidAmount = p.BidAmount
	}
	if p.TrackingSpecs != nil {
		a.TrackingSpecs = p.TrackingSpecs
	}
}
