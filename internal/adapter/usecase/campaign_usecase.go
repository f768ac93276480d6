package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
	"adbridge/internal/core/validate"
	"adbridge/internal/errs"
)

// CampaignUseCase owns the campaign lifecycle and its local/remote id
// mapping. Campaigns are created locally first; the remote create is skipped
// entirely for campaigns created in a non-active status.
type CampaignUseCase struct {
	repo     port.CampaignRepository
	accounts port.AccountResolver
	creds    port.CredentialSource
	remote   port.CampaignAPI
	logger   *slog.Logger
}

// NewCampaignUseCase wires the campaign service.
func NewCampaignUseCase(repo port.CampaignRepository, accounts port.AccountResolver,
	creds port.CredentialSource, remote port.CampaignAPI, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{repo: repo, accounts: accounts, creds: creds, remote: remote, logger: logger}
}

// Create validates, persists the local record, and, for active campaigns,
// creates the remote counterpart. A remote failure on an active create does
// not lose the write: the local record is kept with its status downgraded to
// PAUSED so the campaign cannot silently run unsynced.
func (u *CampaignUseCase) Create(ctx context.Context, ownerID string, c *domain.Campaign) (*domain.Campaign, error) {
	c.OwnerID = ownerID
	if c.Status == "" {
		c.Status = domain.StatusPaused
	}
	if !c.Status.Valid() {
		return nil, errs.Validationf("unknown status %q", c.Status)
	}
	if c.BidStrategy == "" {
		c.BidStrategy = domain.BidLowestCost
	}
	if err := validate.Campaign(c); err != nil {
		return nil, err
	}

	accountID, err := u.accounts.RemoteAccountID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	c.RemoteAccountID = accountID

	var token string
	if c.Status == domain.StatusActive {
		if token, err = ensureToken(u.creds, ownerID); err != nil {
			return nil, err
		}
	}

	c.ID = uuid.New()
	c.RemoteCampaignID = ""
	if err = u.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if c.Status != domain.StatusActive {
		return c, nil
	}

	rc, err := u.remote.CreateCampaign(ctx, token, accountID, c)
	if err != nil {
		u.logger.Warn("remote campaign create failed, downgrading to paused",
			slog.String("campaign_id", c.ID.String()), slog.Any("error", err))
		c.Status = domain.StatusPaused
		if uerr := u.repo.Update(ctx, c); uerr != nil {
			return nil, uerr
		}
		return c, nil
	}
	u.mergeRemote(c, rc)
	if err = u.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List is a local-only query; it never touches the platform.
func (u *CampaignUseCase) List(ctx context.Context, f port.CampaignFilter) (*port.Page[domain.Campaign], error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)
	items, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &port.Page[domain.Campaign]{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}

// Get returns the local record, refreshed best-effort with the platform's
// volatile fields. A failed refresh degrades to local data, never to an
// error.
func (u *CampaignUseCase) Get(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Campaign, error) {
	c, err := u.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !c.Synced() {
		return c, nil
	}
	token, ok := u.creds.Get(ownerID)
	if !ok {
		return c, nil
	}
	rc, err := u.remote.GetCampaign(ctx, token, c.RemoteCampaignID)
	if err != nil {
		u.logger.Warn("remote campaign refresh failed, returning local data",
			slog.String("campaign_id", id.String()), slog.Any("error", err))
		return c, nil
	}
	u.mergeRemote(c, rc)
	if err = u.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies the patch locally and pushes it to the platform
// best-effort: a remote failure is logged and the local write is kept.
func (u *CampaignUseCase) Update(ctx context.Context, ownerID string, id uuid.UUID, p domain.CampaignPatch) (*domain.Campaign, error) {
	c, err := u.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err = validatePatch(c, p); err != nil {
		return nil, err
	}

	if c.Synced() {
		token, err := ensureToken(u.creds, ownerID)
		if err != nil {
			return nil, err
		}
		if rerr := u.remote.UpdateCampaign(ctx, token, c.RemoteCampaignID, p); rerr != nil {
			u.logger.Warn("remote campaign update failed, keeping local write",
				slog.String("campaign_id", id.String()), slog.Any("error", rerr))
		}
	}

	applyCampaignPatch(c, p)
	if err = u.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete transitions the campaign to DELETED locally after a best-effort
// remote delete. The row is never removed.
func (u *CampaignUseCase) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	c, err := u.load(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if c.Synced() {
		token, err := ensureToken(u.creds, ownerID)
		if err != nil {
			return err
		}
		if rerr := u.remote.DeleteCampaign(ctx, token, c.RemoteCampaignID); rerr != nil {
			u.logger.Warn("remote campaign delete failed, proceeding with local delete",
				slog.String("campaign_id", id.String()), slog.Any("error", rerr))
		}
	}
	c.Status = domain.StatusDeleted
	return u.repo.Update(ctx, c)
}

// BulkOperate applies op to every id concurrently and independently. Items
// that fail to parse or to execute are reported per item; the batch itself
// never fails as a whole.
func (u *CampaignUseCase) BulkOperate(ctx context.Context, ownerID string, ids []string, op domain.BulkOp) (*domain.BulkResult, error) {
	if !op.Valid() {
		return nil, errs.Validationf("unknown bulk operation %q", op)
	}
	return runBulk(ids, func(raw string) error {
		id, err := uuid.Parse(raw)
		if err != nil {
			return errs.Validationf("invalid campaign id %q", raw)
		}
		switch op {
		case domain.BulkDelete:
			return u.Delete(ctx, ownerID, id)
		case domain.BulkPause:
			return u.transition(ctx, ownerID, id, domain.StatusPaused)
		case domain.BulkActivate:
			return u.transition(ctx, ownerID, id, domain.StatusActive)
		default:
			return u.transition(ctx, ownerID, id, domain.StatusArchived)
		}
	}), nil
}

func (u *CampaignUseCase) transition(ctx context.Context, ownerID string, id uuid.UUID, st domain.Status) error {
	_, err := u.Update(ctx, ownerID, id, domain.CampaignPatch{Status: &st})
	return err
}

// Insights fetches the campaign performance snapshot. An unsynced campaign
// or a remote failure yields zeroed metrics, not an error.
func (u *CampaignUseCase) Insights(ctx context.Context, ownerID string, id uuid.UUID, tr *domain.TimeRange) (*domain.Insights, error) {
	c, err := u.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !c.Synced() {
		return &domain.Insights{}, nil
	}
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return nil, err
	}
	ins, err := u.remote.CampaignInsights(ctx, token, c.RemoteCampaignID, tr)
	if err != nil {
		u.logger.Warn("campaign insights fetch failed, returning zeroed metrics",
			slog.String("campaign_id", id.String()), slog.Any("error", err))
		return &domain.Insights{}, nil
	}
	return ins, nil
}

// SyncWithRemote pulls the account's campaigns from the platform and upserts
// them into the local mirror, keyed by remote id. It returns the number of
// campaigns reconciled.
func (u *CampaignUseCase) SyncWithRemote(ctx context.Context, ownerID, remoteAccountID string) (int, error) {
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return 0, err
	}
	remotes, err := u.remote.ListCampaigns(ctx, token, remoteAccountID)
	if err != nil {
		return 0, err
	}
	synced := 0
	for i := range remotes {
		rc := &remotes[i]
		local, err := u.repo.GetByRemoteID(ctx, ownerID, rc.ID)
		if err != nil {
			return synced, err
		}
		if local == nil {
			local = &domain.Campaign{
				ID:              uuid.New(),
				OwnerID:         ownerID,
				Status:          domain.StatusPaused,
				BidStrategy:     domain.BidLowestCost,
				RemoteAccountID: remoteAccountID,
			}
			u.mergeRemote(local, rc)
			if err = u.repo.Create(ctx, local); err != nil {
				return synced, err
			}
		} else {
			u.mergeRemote(local, rc)
			if err = u.repo.Update(ctx, local); err != nil {
				return synced, err
			}
		}
		synced++
	}
	return synced, nil
}

// Duplicate creates a paused copy of the campaign, identity excluded.
func (u *CampaignUseCase) Duplicate(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Campaign, error) {
	orig, err := u.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	cp := *orig
	cp.ID = uuid.UUID{}
	cp.RemoteCampaignID = ""
	cp.EffectiveStatus = ""
	cp.Status = domain.StatusPaused
	return u.Create(ctx, ownerID, &cp)
}

// load fetches the campaign and enforces ownership. Absence and foreign
// ownership are indistinguishable to the caller.
func (u *CampaignUseCase) load(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Campaign, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: campaign %s", errs.ErrNotFound, id)
	}
	return c, nil
}

// mergeRemote folds the platform-confirmed fields into the local record.
func (u *CampaignUseCase) mergeRemote(c *domain.Campaign, rc *port.RemoteCampaign) {
	c.RemoteCampaignID = rc.ID
	if rc.Name != "" {
		c.Name = rc.Name
	}
	if rc.Objective != "" {
		c.Objective = rc.Objective
	}
	c.Status = mergeStatus(c.Status, rc.Status)
	c.EffectiveStatus = rc.EffectiveStatus
	if rc.DailyBudget != nil {
		c.DailyBudget = rc.DailyBudget
	}
	if rc.LifetimeBudget != nil {
		c.LifetimeBudget = rc.LifetimeBudget
	}
	if rc.BidStrategy != "" {
		c.BidStrategy = domain.BidStrategy(rc.BidStrategy)
	}
	if rc.BidAmount != nil {
		c.BidAmount = rc.BidAmount
	}
	if rc.StartTime != nil {
		c.StartTime = rc.StartTime
	}
	if rc.EndTime != nil {
		c.EndTime = rc.EndTime
	}
	if rc.SpecialAdCategories != nil {
		c.SpecialAdCategories = rc.SpecialAdCategories
	}
}

// validatePatch checks the patched campaign against the same invariants as a
// create, using the effective (patched) values.
func validatePatch(c *domain.Campaign, p domain.CampaignPatch) error {
	daily, lifetime := c.DailyBudget, c.LifetimeBudget
	if p.DailyBudget != nil {
		daily = p.DailyBudget
		lifetime = nil
	}
	if p.LifetimeBudget != nil {
		lifetime = p.LifetimeBudget
		if p.DailyBudget == nil {
			daily = nil
		}
	}
	if p.DailyBudget != nil && p.LifetimeBudget != nil {
		return errs.Validationf("daily and lifetime budget are mutually exclusive")
	}
	if err := validate.CampaignBudget(daily, lifetime); err != nil {
		return err
	}
	strategy := c.BidStrategy
	if p.BidStrategy != nil {
		strategy = *p.BidStrategy
	}
	bid := c.BidAmount
	if p.BidAmount != nil {
		bid = p.BidAmount
	}
	if err := validate.Bid(strategy, bid); err != nil {
		return err
	}
	if p.Status != nil && !p.Status.Valid() {
		return errs.Validationf("unknown status %q", *p.Status)
	}
	return nil
}

// applyCampaignPatch folds the set fields of the patch into the record.
func applyCampaignPatch(c *domain.Campaign, p domain.CampaignPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Objective != nil {
		c.Objective = *p.Objective
	}
	if p.DailyBudget != nil {
		c.DailyBudget = p.DailyBudget
		c.LifetimeBudget = nil
	}
	if p.LifetimeBudget != nil {
		c.LifetimeBudget = p.LifetimeBudget
		c.DailyBudget = nil
	}
	if p.BidStrategy != nil {
		c.BidStrategy = *p.BidStrategy
	}
	if p.BidAmount != nil {
		c.BidAmount = p.BidAmount
	}
	if p.StartTime != nil {
		c.StartTime = p.StartTime
	}
	if p.EndTime != nil {
		c.EndTime = p.EndTime
	}
	if p.Targeting != nil {
		c.Targeting = p.Targeting
	}
}
