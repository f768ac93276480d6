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

// AdSetUseCase owns the ad set lifecycle. Ad sets mirror the campaign path
// (local-first, remote create deferred while paused) but are hard-deleted
// locally instead of tombstoned.
type AdSetUseCase struct {
	repo      port.AdSetRepository
	campaigns port.CampaignRepository
	accounts  port.AccountResolver
	creds     port.CredentialSource
	remote    port.AdSetAPI
	logger    *slog.Logger
}

// NewAdSetUseCase wires the ad set service.
func NewAdSetUseCase(repo port.AdSetRepository, campaigns port.CampaignRepository,
	accounts port.AccountResolver, creds port.CredentialSource,
	remote port.AdSetAPI, logger *slog.Logger) *AdSetUseCase {
	return &AdSetUseCase{repo: repo, campaigns: campaigns, accounts: accounts,
		creds: creds, remote: remote, logger: logger}
}

// Create validates and persists the ad set, creating the remote counterpart
// when the ad set starts active. An ad set without its own budget is
// accepted with a warning: the parent campaign may carry the budget, which
// cannot be decided here.
func (u *AdSetUseCase) Create(ctx context.Context, ownerID string, s *domain.AdSet) (*domain.AdSet, error) {
	s.OwnerID = ownerID
	if s.Status == "" {
		s.Status = domain.StatusPaused
	}
	if !s.Status.Valid() {
		return nil, errs.Validationf("unknown status %q", s.Status)
	}
	if s.BidStrategy == "" {
		s.BidStrategy = domain.BidLowestCost
	}
	if err := validate.AdSet(s); err != nil {
		return nil, err
	}
	if s.DailyBudget == nil && s.LifetimeBudget == nil {
		u.logger.Warn("ad set created without budget, relying on campaign budget",
			slog.String("name", s.Name))
	}

	parent, err := u.campaigns.GetByID(ctx, s.CampaignID)
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: campaign %s", errs.ErrNotFound, s.CampaignID)
	}

	accountID, err := u.accounts.RemoteAccountID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.RemoteAccountID = accountID
	s.RemoteCampaignID = parent.RemoteCampaignID

	var token string
	if s.Status == domain.StatusActive {
		if !parent.Synced() {
			return nil, errs.Validationf("parent campaign %s has no remote counterpart yet", s.CampaignID)
		}
		if token, err = ensureToken(u.creds, ownerID); err != nil {
			return nil, err
		}
	}

	s.ID = uuid.New()
	s.RemoteAdSetID = ""
	if err = u.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	if s.Status != domain.StatusActive {
		return s, nil
	}

	rs, err := u.remote.CreateAdSet(ctx, token, s)
	if err != nil {
		u.logger.Warn("remote ad set create failed, downgrading to paused",
			slog.String("adset_id", s.ID.String()), slog.Any("error", err))
		s.Status = domain.StatusPaused
		if uerr := u.repo.Update(ctx, s); uerr != nil {
			return nil, uerr
		}
		return s, nil
	}
	u.mergeRemote(s, rs)
	if err = u.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListByCampaign is a local-only query.
func (u *AdSetUseCase) ListByCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID) ([]domain.AdSet, error) {
	return u.repo.ListByCampaign(ctx, ownerID, campaignID)
}

// Get returns the local record with a best-effort remote refresh.
func (u *AdSetUseCase) Get(ctx context.Context, ownerID string, id uuid.UUID) (*domain.AdSet, error) {
	s, err := u.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !s.Synced() {
		return s, nil
	}
	token, ok := u.creds.Get(ownerID)
	if !ok {
		return s, nil
	}
	rs, err := u.remote.GetAdSet(ctx, token, s.RemoteAdSetID)
	if err != nil {
		u.logger.Warn("remote ad set refresh failed, returning local data",
			slog.String("adset_id", id.String()), slog.Any("error", err))
		return s, nil
	}
	u.mergeRemote(s, rs)
	if err = u.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update applies the patch locally and pushes it best-effort to the remote
// counterpart when one exists.
func (u *AdSetUseCase) Update(ctx context.Context, ownerID string, id uuid.UUID, p domain.AdSetPatch) (*domain.AdSet, error) {
	s, err := u.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	strategy := s.BidStrategy
	if p.BidStrategy != nil {
		strategy = *p.BidStrategy
	}
	bid := s.BidAmount
	if p.BidAmount != nil {
		bid = p.BidAmount
	}
	if err = validate.Bid(strategy, bid); err != nil {
		return nil, err
	}
	if p.DailyBudget != nil && p.LifetimeBudget != nil {
		return nil, errs.Validationf("daily and lifetime budget are mutually exclusive")
	}
	if p.Status != nil && !p.Status.Valid() {
		return nil, errs.Validationf("unknown status %q", *p.Status)
	}

	if s.Synced() {
		token, err := ensureToken(u.creds, ownerID)
		if err != nil {
			return nil, err
		}
		if rerr := u.remote.UpdateAdSet(ctx, token, s.RemoteAdSetID, p); rerr != nil {
			u.logger.Warn("remote ad set update failed, keeping local write",
				slog.String("adset_id", id.String()), slog.Any("error", rerr))
		}
	}

	applyAdSetPatch(s, p)
	if err = u.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete removes the ad set locally after a best-effort remote delete.
func (u *AdSetUseCase) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	s, err := u.load(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if s.Synced() {
		token, err := ensureToken(u.creds, ownerID)
		if err != nil {
			return err
		}
		if rerr := u.remote.DeleteAdSet(ctx, token, s.RemoteAdSetID); rerr != nil {
			u.logger.Warn("remote ad set delete failed, proceeding with local delete",
				slog.String("adset_id", id.String()), slog.Any("error", rerr))
		}
	}
	return u.repo.Delete(ctx, id)
}

// Pause transitions the ad set to PAUSED.
func (u *AdSetUseCase) Pause(ctx context.Context, ownerID string, id uuid.UUID) (*domain.AdSet, error) {
	st := domain.StatusPaused
	return u.Update(ctx, ownerID, id, domain.AdSetPatch{Status: &st})
}

// Activate transitions the ad set to ACTIVE.
func (u *AdSetUseCase) Activate(ctx context.Context, ownerID string, id uuid.UUID) (*domain.AdSet, error) {
	st := domain.StatusActive
	return u.Update(ctx, ownerID, id, domain.AdSetPatch{Status: &st})
}

// Insights fetches the ad set performance snapshot, degrading to zeroed
// metrics when the platform cannot be reached.
func (u *AdSetUseCase) Insights(ctx context.Context, ownerID string, id uuid.UUID, tr *domain.TimeRange) (*domain.Insights, error) {
	s, err := u.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !s.Synced() {
		return &domain.Insights{}, nil
	}
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return nil, err
	}
	ins, err := u.remote.AdSetInsights(ctx, token, s.RemoteAdSetID, tr)
	if err != nil {
		u.logger.Warn("ad set insights fetch failed, returning zeroed metrics",
			slog.String("adset_id", id.String()), slog.Any("error", err))
		return &domain.Insights{}, nil
	}
	return ins, nil
}

// SyncWithRemote pulls the remote ad sets of the campaign and upserts them
// into the local mirror. It returns the number of ad sets reconciled.
func (u *AdSetUseCase) SyncWithRemote(ctx context.Context, ownerID string, campaignID uuid.UUID) (int, error) {
	parent, err := u.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	if parent == nil || parent.OwnerID != ownerID {
		return 0, fmt.Errorf("%w: campaign %s", errs.ErrNotFound, campaignID)
	}
	if !parent.Synced() {
		return 0, nil
	}
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return 0, err
	}
	remotes, err := u.remote.ListAdSets(ctx, token, parent.RemoteAccountID, parent.RemoteCampaignID)
	if err != nil {
		return 0, err
	}
	synced := 0
	for i := range remotes {
		rs := &remotes[i]
		local, err := u.repo.GetByRemoteID(ctx, ownerID, rs.ID)
		if err != nil {
			return synced, err
		}
		if local == nil {
			local = &domain.AdSet{
				ID:               uuid.New(),
				OwnerID:          ownerID,
				CampaignID:       campaignID,
				Status:           domain.StatusPaused,
				BidStrategy:      domain.BidLowestCost,
				RemoteAccountID:  parent.RemoteAccountID,
				RemoteCampaignID: parent.RemoteCampaignID,
			}
			u.mergeRemote(local, rs)
			if err = u.repo.Create(ctx, local); err != nil {
				return synced, err
			}
		} else {
			u.mergeRemote(local, rs)
			if err = u.repo.Update(ctx, local); err != nil {
				return synced, err
			}
		}
		synced++
	}
	return synced, nil
}

func (u *AdSetUseCase) load(ctx context.Context, ownerID string, id uuid.UUID) (*domain.AdSet, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: ad set %s", errs.ErrNotFound, id)
	}
	return s, nil
}

func (u *AdSetUseCase) mergeRemote(s *domain.AdSet, rs *port.RemoteAdSet) {
	s.RemoteAdSetID = rs.ID
	if rs.Name != "" {
		s.Name = rs.Name
	}
	if rs.CampaignID != "" {
		s.RemoteCampaignID = rs.CampaignID
	}
	s.Status = mergeStatus(s.Status, rs.Status)
	if rs.OptimizationGoal != "" {
		s.OptimizationGoal = rs.OptimizationGoal
	}
	if rs.BillingEvent != "" {
		s.BillingEvent = rs.BillingEvent
	}
	if rs.BidStrategy != "" {
		s.BidStrategy = domain.BidStrategy(rs.BidStrategy)
	}
	if rs.BidAmount != nil {
		s.BidAmount = rs.BidAmount
	}
	if rs.DailyBudget != nil {
		s.DailyBudget = rs.DailyBudget
	}
	if rs.LifetimeBudget != nil {
		s.LifetimeBudget = rs.LifetimeBudget
	}
	if rs.StartTime != nil {
		s.StartTime = *rs.StartTime
	}
	if rs.EndTime != nil {
		s.EndTime = *rs.EndTime
	}
}

func applyAdSetPatch(s *domain.AdSet, p domain.AdSetPatch) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.OptimizationGoal != nil {
		s.OptimizationGoal = *p.OptimizationGoal
	}
	if p.BillingEvent != nil {
		s.BillingEvent = *p.BillingEvent
	}
	if p.BidStrategy != nil {
		s.BidStrategy = *p.BidStrategy
	}
	if p.BidAmount != nil {
		s.BidAmount = p.BidAmount
	}
	if p.DailyBudget != nil {
		s.DailyBudget = p.DailyBudget
		s.LifetimeBudget = nil
	}
	if p.LifetimeBudget != nil {
		s.LifetimeBudget = p.LifetimeBudget
		s.DailyBudget = nil
	}
	if p.Targeting != nil {
		s.Targeting = *p.Targeting
	}
	if p.PromotedObject != nil {
		s.PromotedObject = p.PromotedObject
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
}
