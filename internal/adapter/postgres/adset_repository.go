package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adbridge/internal/core/domain"
)

const adSetColumns = `id, owner_id, campaign_id, name, optimization_goal,
billing_event, bid_strategy, bid_amount, daily_budget, lifetime_budget,
status, targeting, promoted_object, remote_account_id, remote_campaign_id,
remote_adset_id, start_time, end_time, created_at, updated_at`

// AdSetRepository implements port.AdSetRepository.
type AdSetRepository struct {
	pool *pgxpool.Pool
}

// NewAdSetRepository returns a new repository instance.
func NewAdSetRepository(pool *pgxpool.Pool) *AdSetRepository {
	return &AdSetRepository{pool: pool}
}

// Create inserts the ad set row.
func (r *AdSetRepository) Create(ctx context.Context, s *domain.AdSet) error {
	targeting, err := json.Marshal(s.Targeting)
	if err != nil {
		return err
	}
	promoted, err := marshalNullable(s.PromotedObject)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	_, err = r.pool.Exec(ctx, `INSERT INTO ad_sets (`+adSetColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
		s.ID, s.OwnerID, s.CampaignID, s.Name, s.OptimizationGoal,
		s.BillingEvent, s.BidStrategy, s.BidAmount, s.DailyBudget,
		s.LifetimeBudget, s.Status, targeting, promoted, s.RemoteAccountID,
		nullable(s.RemoteCampaignID), nullable(s.RemoteAdSetID),
		s.StartTime, s.EndTime, s.CreatedAt, s.UpdatedAt)
	return err
}

// Update rewrites the mutable columns of the ad set row.
func (r *AdSetRepository) Update(ctx context.Context, s *domain.AdSet) error {
	targeting, err := json.Marshal(s.Targeting)
	if err != nil {
		return err
	}
	promoted, err := marshalNullable(s.PromotedObject)
	if err != nil {
		return err
	}
	s.UpdatedAt = time.Now().UTC()
	_, err = r.pool.Exec(ctx, `UPDATE ad_sets SET
name=$2, optimization_goal=$3, billing_event=$4, bid_strategy=$5,
bid_amount=$6, daily_budget=$7, lifetime_budget=$8, status=$9, targeting=$10,
promoted_object=$11, remote_account_id=$12, remote_campaign_id=$13,
remote_adset_id=$14, start_time=$15, end_time=$16, updated_at=$17
WHERE id=$1`,
		s.ID, s.Name, s.OptimizationGoal, s.BillingEvent, s.BidStrategy,
		s.BidAmount, s.DailyBudget, s.LifetimeBudget, s.Status, targeting,
		promoted, s.RemoteAccountID, nullable(s.RemoteCampaignID),
		nullable(s.RemoteAdSetID), s.StartTime, s.EndTime, s.UpdatedAt)
	return err
}

// GetByID returns the ad set or (nil, nil) when absent.
func (r *AdSetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AdSet, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+adSetColumns+` FROM ad_sets WHERE id=$1`, id)
	return scanAdSet(row)
}

// GetByRemoteID returns the owner's ad set with the given remote id.
func (r *AdSetRepository) GetByRemoteID(ctx context.Context, ownerID, remoteID string) (*domain.AdSet, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+adSetColumns+` FROM ad_sets WHERE owner_id=$1 AND remote_adset_id=$2`,
		ownerID, remoteID)
	return scanAdSet(row)
}

// ListByCampaign returns every ad set of the owner's campaign.
func (r *AdSetRepository) ListByCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID) ([]domain.AdSet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+adSetColumns+` FROM ad_sets WHERE owner_id=$1 AND campaign_id=$2 ORDER BY created_at`,
		ownerID, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AdSet, error) {
		s, err := scanAdSet(row)
		if err != nil || s == nil {
			return domain.AdSet{}, err
		}
		return *s, nil
	})
}

// Delete removes the ad set row. Ad sets are the one mirrored entity that is
// hard-deleted locally.
func (r *AdSetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM ad_sets WHERE id=$1`, id)
	return err
}

func scanAdSet(row pgx.Row) (*domain.AdSet, error) {
	var (
		s          domain.AdSet
		targeting  []byte
		promoted   []byte
		remoteCID  *string
		remoteASID *string
	)
	err := row.Scan(&s.ID, &s.OwnerID, &s.CampaignID, &s.Name,
		&s.OptimizationGoal, &s.BillingEvent, &s.BidStrategy, &s.BidAmount,
		&s.DailyBudget, &s.LifetimeBudget, &s.Status, &targeting, &promoted,
		&s.RemoteAccountID, &remoteCID, &remoteASID, &s.StartTime, &s.EndTime,
		&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if remoteCID != nil {
		s.RemoteCampaignID = *remoteCID
	}
	if remoteASID != nil {
		s.RemoteAdSetID = *remoteASID
	}
	if len(targeting) > 0 {
		if err = json.Unmarshal(targeting, &s.Targeting); err != nil {
			return nil, err
		}
	}
	if len(promoted) > 0 {
		if err = json.Unmarshal(promoted, &s.PromotedObject); err != nil {
			return nil, err
		}
	}
	return &s, nil
}
