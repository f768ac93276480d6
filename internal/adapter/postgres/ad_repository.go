package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
)

const adColumns = `id, owner_id, remote_ad_id, name, adset_id, campaign_id,
creative_id, status, effective_status, configured_status, bid_amount,
tracking_specs, metrics, last_insights_at, created_at, updated_at`

// AdRepository implements port.AdRepository.
type AdRepository struct {
	pool *pgxpool.Pool
}

// NewAdRepository returns a new repository instance.
func NewAdRepository(pool *pgxpool.Pool) *AdRepository {
	return &AdRepository{pool: pool}
}

// Create inserts the ad row. The remote ad id must already be known; ads are
// created remote-first.
func (r *AdRepository) Create(ctx context.Context, a *domain.Ad) error {
	tracking, err := marshalSpecs(a.TrackingSpecs)
	if err != nil {
		return err
	}
	metrics, err := json.Marshal(a.Metrics)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	_, err = r.pool.Exec(ctx, `INSERT INTO ads (`+adColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		a.ID, a.OwnerID, a.RemoteAdID, a.Name, a.AdSetID, a.CampaignID,
		a.CreativeID, a.Status, a.EffectiveStatus, a.ConfiguredStatus,
		a.BidAmount, tracking, metrics, a.LastInsightsAt, a.CreatedAt, a.UpdatedAt)
	return err
}

// Update rewrites the mutable columns of the ad row.
func (r *AdRepository) Update(ctx context.Context, a *domain.Ad) error {
	tracking, err := marshalSpecs(a.TrackingSpecs)
	if err != nil {
		return err
	}
	metrics, err := json.Marshal(a.Metrics)
	if err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()
	_, err = r.pool.Exec(ctx, `UPDATE ads SET
name=$2, adset_id=$3, campaign_id=$4, creative_id=$5, status=$6,
effective_status=$7, configured_status=$8, bid_amount=$9, tracking_specs=$10,
metrics=$11, last_insights_at=$12, updated_at=$13
WHERE id=$1`,
		a.ID, a.Name, a.AdSetID, a.CampaignID, a.CreativeID, a.Status,
		a.EffectiveStatus, a.ConfiguredStatus, a.BidAmount, tracking, metrics,
		a.LastInsightsAt, a.UpdatedAt)
	return err
}

// GetByID returns the ad or (nil, nil) when absent.
func (r *AdRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+adColumns+` FROM ads WHERE id=$1`, id)
	return scanAd(row)
}

// GetByRemoteID returns the owner's ad with the given remote id.
func (r *AdRepository) GetByRemoteID(ctx context.Context, ownerID, remoteAdID string) (*domain.Ad, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+adColumns+` FROM ads WHERE owner_id=$1 AND remote_ad_id=$2`,
		ownerID, remoteAdID)
	return scanAd(row)
}

var adSortColumns = map[string]string{
	"name":       "name",
	"status":     "status",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// List returns one page of the owner's ads plus the unpaginated total.
func (r *AdRepository) List(ctx context.Context, f port.AdFilter) ([]domain.Ad, int64, error) {
	where := `WHERE owner_id=$1`
	args := []any{f.OwnerID}
	if f.Status != nil {
		args = append(args, *f.Status)
		where += fmt.Sprintf(` AND status=$%d`, len(args))
	}
	if f.AdSetID != "" {
		args = append(args, f.AdSetID)
		where += fmt.Sprintf(` AND adset_id=$%d`, len(args))
	}
	if f.CampaignID != "" {
		args = append(args, f.CampaignID)
		where += fmt.Sprintf(` AND campaign_id=$%d`, len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM ads `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := adSortColumns[f.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT `+adColumns+` FROM ads %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		where, sortCol, dir, len(args)+1, len(args)+2)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Ad, error) {
		a, err := scanAd(row)
		if err != nil || a == nil {
			return domain.Ad{}, err
		}
		return *a, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanAd(row pgx.Row) (*domain.Ad, error) {
	var (
		a        domain.Ad
		tracking []byte
		metrics  []byte
	)
	err := row.Scan(&a.ID, &a.OwnerID, &a.RemoteAdID, &a.Name, &a.AdSetID,
		&a.CampaignID, &a.CreativeID, &a.Status, &a.EffectiveStatus,
		&a.ConfiguredStatus, &a.BidAmount, &tracking, &metrics,
		&a.LastInsightsAt, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(tracking) > 0 {
		if err = json.Unmarshal(tracking, &a.TrackingSpecs); err != nil {
			return nil, err
		}
	}
	if len(metrics) > 0 {
		if err = json.Unmarshal(metrics, &a.Metrics); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

func marshalSpecs(specs []map[string]any) ([]byte, error) {
	if specs == nil {
		return nil, nil
	}
	return json.Marshal(specs)
}
