// Package postgres implements the local mirror repositories on pgxpool.
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

const campaignColumns = `id, owner_id, name, objective, status, effective_status,
daily_budget, lifetime_budget, bid_strategy, bid_amount, start_time, end_time,
targeting, special_ad_categories, remote_account_id, remote_campaign_id,
created_at, updated_at`

// CampaignRepository implements port.CampaignRepository.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Create inserts the campaign row.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	targeting, err := marshalNullable(c.Targeting)
	if err != nil {
		return err
	}
	cats, err := json.Marshal(orEmpty(c.SpecialAdCategories))
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err = r.pool.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		c.ID, c.OwnerID, c.Name, c.Objective, c.Status, c.EffectiveStatus,
		c.DailyBudget, c.LifetimeBudget, c.BidStrategy, c.BidAmount,
		c.StartTime, c.EndTime, targeting, cats, c.RemoteAccountID,
		nullable(c.RemoteCampaignID), c.CreatedAt, c.UpdatedAt)
	return err
}

// Update rewrites the mutable columns of the campaign row.
func (r *CampaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	targeting, err := marshalNullable(c.Targeting)
	if err != nil {
		return err
	}
	cats, err := json.Marshal(orEmpty(c.SpecialAdCategories))
	if err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	_, err = r.pool.Exec(ctx, `UPDATE campaigns SET
name=$2, objective=$3, status=$4, effective_status=$5, daily_budget=$6,
lifetime_budget=$7, bid_strategy=$8, bid_amount=$9, start_time=$10,
end_time=$11, targeting=$12, special_ad_categories=$13,
remote_account_id=$14, remote_campaign_id=$15, updated_at=$16
WHERE id=$1`,
		c.ID, c.Name, c.Objective, c.Status, c.EffectiveStatus, c.DailyBudget,
		c.LifetimeBudget, c.BidStrategy, c.BidAmount, c.StartTime, c.EndTime,
		targeting, cats, c.RemoteAccountID, nullable(c.RemoteCampaignID), c.UpdatedAt)
	return err
}

// GetByID returns the campaign or (nil, nil) when absent.
func (r *CampaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id=$1`, id)
	return scanCampaign(row)
}

// GetByRemoteID returns the owner's campaign with the given remote id, or
// (nil, nil) when absent.
func (r *CampaignRepository) GetByRemoteID(ctx context.Context, ownerID, remoteID string) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE owner_id=$1 AND remote_campaign_id=$2`,
		ownerID, remoteID)
	return scanCampaign(row)
}

// campaignSortColumns whitelists sortable columns; anything else falls back
// to created_at.
var campaignSortColumns = map[string]string{
	"name":       "name",
	"status":     "status",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// List returns one page of the owner's campaigns plus the unpaginated total.
func (r *CampaignRepository) List(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, int64, error) {
	where := `WHERE owner_id=$1`
	args := []any{f.OwnerID}
	if f.Status != nil {
		where += ` AND status=$2`
		args = append(args, *f.Status)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM campaigns `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := campaignSortColumns[f.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT `+campaignColumns+` FROM campaigns %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		where, sortCol, dir, len(args)+1, len(args)+2)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil || c == nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c         domain.Campaign
		targeting []byte
		cats      []byte
		remoteID  *string
	)
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Objective, &c.Status,
		&c.EffectiveStatus, &c.DailyBudget, &c.LifetimeBudget, &c.BidStrategy,
		&c.BidAmount, &c.StartTime, &c.EndTime, &targeting, &cats,
		&c.RemoteAccountID, &remoteID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if remoteID != nil {
		c.RemoteCampaignID = *remoteID
	}
	if len(targeting) > 0 {
		if err = json.Unmarshal(targeting, &c.Targeting); err != nil {
			return nil, err
		}
	}
	if len(cats) > 0 {
		if err = json.Unmarshal(cats, &c.SpecialAdCategories); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// nullable maps the empty string onto SQL NULL, so partial unique indexes on
// remote ids ignore unsynced rows.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// marshalNullable JSON-encodes v, passing nil pointers through as SQL NULL.
func marshalNullable(v any) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case *domain.Targeting:
		if t == nil {
			return nil, nil
		}
	case *domain.PromotedObject:
		if t == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
