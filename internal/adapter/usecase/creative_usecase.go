package usecase

import (
	"context"
	"log/slog"
	"strings"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
	"adbridge/internal/core/validate"
	"adbridge/internal/errs"
)

// searchScanLimit bounds how many creatives a name search or performance
// summary will walk through the cursor pagination.
const searchScanLimit = 200

// CreativeUseCase owns creative operations. Creatives have no local mirror;
// the platform is authoritative and every read is a live remote call, so
// there is no cache to go stale.
type CreativeUseCase struct {
	accounts port.AccountResolver
	creds    port.CredentialSource
	remote   port.CreativeAPI
	logger   *slog.Logger
}

// NewCreativeUseCase wires the creative service.
func NewCreativeUseCase(accounts port.AccountResolver, creds port.CredentialSource,
	remote port.CreativeAPI, logger *slog.Logger) *CreativeUseCase {
	return &CreativeUseCase{accounts: accounts, creds: creds, remote: remote, logger: logger}
}

// Create creates the creative remotely and returns the platform's view of it.
func (u *CreativeUseCase) Create(ctx context.Context, ownerID string, c *domain.Creative) (*domain.Creative, error) {
	if c.Name == "" {
		return nil, errs.Validationf("creative name is required")
	}
	accountID, token, err := u.authorize(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	id, err := u.remote.CreateCreative(ctx, token, accountID, c)
	if err != nil {
		return nil, err
	}
	return u.remote.GetCreative(ctx, token, id, nil)
}

// Get reads one creative live from the platform.
func (u *CreativeUseCase) Get(ctx context.Context, ownerID, id string) (*domain.Creative, error) {
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return nil, err
	}
	if err = validate.RemoteID("creative id", id); err != nil {
		return nil, err
	}
	return u.remote.GetCreative(ctx, token, id, nil)
}

// Update pushes the patch and reads the updated creative back.
func (u *CreativeUseCase) Update(ctx context.Context, ownerID, id string, p domain.CreativePatch) (*domain.Creative, error) {
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return nil, err
	}
	if err = validate.RemoteID("creative id", id); err != nil {
		return nil, err
	}
	if err = u.remote.UpdateCreative(ctx, token, id, p); err != nil {
		return nil, err
	}
	return u.remote.GetCreative(ctx, token, id, nil)
}

// Delete removes the remote creative. There is no local record to touch.
func (u *CreativeUseCase) Delete(ctx context.Context, ownerID, id string) error {
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return err
	}
	if err = validate.RemoteID("creative id", id); err != nil {
		return err
	}
	return u.remote.DeleteCreative(ctx, token, id)
}

// List returns one cursor page of the owner's creatives.
func (u *CreativeUseCase) List(ctx context.Context, ownerID string, q port.CreativeListQuery) (*port.CreativeList, error) {
	accountID, token, err := u.authorize(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items, after, err := u.remote.ListCreatives(ctx, token, accountID, q)
	if err != nil {
		return nil, err
	}
	return &port.CreativeList{Items: items, After: after}, nil
}

// Preview renders the creative in the requested format.
func (u *CreativeUseCase) Preview(ctx context.Context, ownerID, id, format string) (string, error) {
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return "", err
	}
	return u.remote.CreativePreview(ctx, token, id, format)
}

// Insights fetches the creative performance snapshot, degrading to zeroed
// metrics when the platform cannot be reached.
func (u *CreativeUseCase) Insights(ctx context.Context, ownerID, id string, tr *domain.TimeRange) (*domain.Insights, error) {
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return nil, err
	}
	ins, err := u.remote.CreativeInsights(ctx, token, id, tr)
	if err != nil {
		u.logger.Warn("creative insights fetch failed, returning zeroed metrics",
			slog.String("creative_id", id), slog.Any("error", err))
		return &domain.Insights{}, nil
	}
	return ins, nil
}

// GetWithInsights pairs the live creative with its performance snapshot.
func (u *CreativeUseCase) GetWithInsights(ctx context.Context, ownerID, id string, tr *domain.TimeRange) (*port.CreativeWithInsights, error) {
	cr, err := u.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	ins, err := u.Insights(ctx, ownerID, id, tr)
	if err != nil {
		return nil, err
	}
	return &port.CreativeWithInsights{Creative: *cr, Insights: *ins}, nil
}

// BulkUpdate applies the patch to every creative concurrently and
// independently; per-item failures never abort the batch.
func (u *CreativeUseCase) BulkUpdate(ctx context.Context, ownerID string, ids []string, p domain.CreativePatch) (*domain.BulkResult, error) {
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return nil, err
	}
	return runBulk(ids, func(id string) error {
		if err := validate.RemoteID("creative id", id); err != nil {
			return err
		}
		return u.remote.UpdateCreative(ctx, token, id, p)
	}), nil
}

// BulkDelete deletes every creative concurrently and independently.
func (u *CreativeUseCase) BulkDelete(ctx context.Context, ownerID string, ids []string) (*domain.BulkResult, error) {
	token, err := ensureToken(u.creds, ownerID)
	if err != nil {
		return nil, err
	}
	return runBulk(ids, func(id string) error {
		if err := validate.RemoteID("creative id", id); err != nil {
			return err
		}
		return u.remote.DeleteCreative(ctx, token, id)
	}), nil
}

// Search walks the cursor pagination and returns creatives whose name
// contains the query, case-insensitively.
func (u *CreativeUseCase) Search(ctx context.Context, ownerID, query string, limit int) ([]domain.Creative, error) {
	if query == "" {
		return nil, errs.Validationf("search query is required")
	}
	if limit < 1 || limit > searchScanLimit {
		limit = defaultPageLimit
	}
	accountID, token, err := u.authorize(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var (
		out     []domain.Creative
		after   string
		scanned int
		needle  = strings.ToLower(query)
	)
	for scanned < searchScanLimit {
		items, next, err := u.remote.ListCreatives(ctx, token, accountID, port.CreativeListQuery{
			Fields: []string{"id", "name", "title", "thumbnail_url", "status"},
			Limit:  50,
			After:  after,
		})
		if err != nil {
			return nil, err
		}
		scanned += len(items)
		for i := range items {
			if strings.Contains(strings.ToLower(items[i].Name), needle) {
				out = append(out, items[i])
				if len(out) == limit {
					return out, nil
				}
			}
		}
		if next == "" || len(items) == 0 {
			break
		}
		after = next
	}
	return out, nil
}

// PerformanceSummary aggregates insights across the owner's creatives.
// Creatives whose insights cannot be fetched contribute zeroes rather than
// failing the summary.
func (u *CreativeUseCase) PerformanceSummary(ctx context.Context, ownerID string, tr *domain.TimeRange) (*port.PerformanceSummary, error) {
	accountID, token, err := u.authorize(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sum := &port.PerformanceSummary{}
	var after string
	for sum.Creatives < searchScanLimit {
		items, next, err := u.remote.ListCreatives(ctx, token, accountID, port.CreativeListQuery{
			Fields: []string{"id", "name"},
			Limit:  50,
			After:  after,
		})
		if err != nil {
			return nil, err
		}
		for i := range items {
			ins, ierr := u.remote.CreativeInsights(ctx, token, items[i].ID, tr)
			if ierr != nil {
				u.logger.Warn("creative insights skipped in summary",
					slog.String("creative_id", items[i].ID), slog.Any("error", ierr))
				ins = &domain.Insights{}
			}
			sum.Creatives++
			sum.Impressions += ins.Impressions
			sum.Clicks += ins.Clicks
			sum.Spend += ins.Spend
		}
		if next == "" || len(items) == 0 {
			break
		}
		after = next
	}
	if sum.Impressions > 0 {
		sum.AvgCTR = float64(sum.Clicks) / float64(sum.Impressions) * 100
	}
	return sum, nil
}

// authorize resolves the owner's ad account and credential in one step.
func (u *CreativeUseCase) authorize(ctx context.Context, ownerID string) (accountID, token string, err error) {
	if accountID, err = u.accounts.RemoteAccountID(ctx, ownerID); err != nil {
		return "", "", err
	}
	if token, err = ensureToken(u.creds, ownerID); err != nil {
		return "", "", err
	}
	return accountID, token, nil
}
