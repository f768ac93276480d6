package remote

import (
	"context"
	"net/url"
	"strings"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
	"adbridge/internal/errs"
)

var campaignFields = strings.Join([]string{
	"id", "name", "objective", "status", "effective_status",
	"daily_budget", "lifetime_budget", "bid_strategy", "bid_amount",
	"start_time", "stop_time", "special_ad_categories",
}, ",")

// campaignNode is the platform's campaign object. Money fields arrive as
// string-encoded minor units.
type campaignNode struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Objective           string   `json:"objective"`
	Status              string   `json:"status"`
	EffectiveStatus     string   `json:"effective_status"`
	DailyBudget         string   `json:"daily_budget"`
	LifetimeBudget      string   `json:"lifetime_budget"`
	BidStrategy         string   `json:"bid_strategy"`
	BidAmount           string   `json:"bid_amount"`
	StartTime           string   `json:"start_time"`
	StopTime            string   `json:"stop_time"`
	SpecialAdCategories []string `json:"special_ad_categories"`
}

func (n *campaignNode) toPort() port.RemoteCampaign {
	return port.RemoteCampaign{
		ID:                  n.ID,
		Name:                n.Name,
		Objective:           n.Objective,
		Status:              n.Status,
		EffectiveStatus:     n.EffectiveStatus,
		DailyBudget:         FromMinorUnits(n.DailyBudget),
		LifetimeBudget:      FromMinorUnits(n.LifetimeBudget),
		BidStrategy:         n.BidStrategy,
		BidAmount:           FromMinorUnits(n.BidAmount),
		StartTime:           parseWireTime(n.StartTime),
		EndTime:             parseWireTime(n.StopTime),
		SpecialAdCategories: n.SpecialAdCategories,
	}
}

// CreateCampaign creates the campaign under the owner's ad account and reads
// the created object back so the caller can merge the platform-confirmed
// fields.
func (c *Client) CreateCampaign(ctx context.Context, token, accountID string, cmp *domain.Campaign) (*port.RemoteCampaign, error) {
	p := newParams()
	p.Set("name", cmp.Name)
	p.Set("objective", cmp.Objective)
	p.Set("status", string(cmp.Status))
	p.SetMoney("daily_budget", cmp.DailyBudget)
	p.SetMoney("lifetime_budget", cmp.LifetimeBudget)
	p.SetIf("bid_strategy", string(cmp.BidStrategy))
	setGatedBid(p, cmp.BidStrategy, cmp.BidAmount)
	p.SetTime("start_time", cmp.StartTime)
	p.SetTime("stop_time", cmp.EndTime)
	if cmp.Targeting != nil {
		p.SetJSON("targeting", cmp.Targeting)
	}
	// special_ad_categories is required by the platform even when empty.
	cats := cmp.SpecialAdCategories
	if cats == nil {
		cats = []string{}
	}
	p.SetJSON("special_ad_categories", cats)

	body, err := c.postForm(ctx, accountPath(accountID, "campaigns"), token, p)
	if err != nil {
		return nil, err
	}
	var created struct {
		ID string `json:"id"`
	}
	if err = decode(body, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, &errs.RemoteError{Message: "campaign create returned no id"}
	}
	return c.GetCampaign(ctx, token, created.ID)
}

// GetCampaign reads one campaign by remote id.
func (c *Client) GetCampaign(ctx context.Context, token, remoteID string) (*port.RemoteCampaign, error) {
	q := url.Values{}
	q.Set("fields", campaignFields)
	body, err := c.get(ctx, "/"+remoteID, token, q)
	if err != nil {
		return nil, err
	}
	var node campaignNode
	if err = decode(body, &node); err != nil {
		return nil, err
	}
	rc := node.toPort()
	return &rc, nil
}

// UpdateCampaign pushes the set fields of the patch to the platform.
func (c *Client) UpdateCampaign(ctx context.Context, token, remoteID string, p domain.CampaignPatch) error {
	f := newParams()
	if p.Name != nil {
		f.Set("name", *p.Name)
	}
	if p.Status != nil {
		f.Set("status", string(*p.Status))
	}
	if p.Objective != nil {
		f.Set("objective", *p.Objective)
	}
	f.SetMoney("daily_budget", p.DailyBudget)
	f.SetMoney("lifetime_budget", p.LifetimeBudget)
	if p.BidStrategy != nil {
		f.Set("bid_strategy", string(*p.BidStrategy))
		setGatedBid(f, *p.BidStrategy, p.BidAmount)
	} else if p.BidAmount != nil && *p.BidAmount > 0 {
		f.SetMoney("bid_amount", p.BidAmount)
	}
	f.SetTime("start_time", p.StartTime)
	f.SetTime("stop_time", p.EndTime)
	if p.Targeting != nil {
		f.SetJSON("targeting", p.Targeting)
	}
	_, err := c.postForm(ctx, "/"+remoteID, token, f)
	return err
}

// DeleteCampaign removes the remote campaign. The platform implements this
// as a status transition to DELETED.
func (c *Client) DeleteCampaign(ctx context.Context, token, remoteID string) error {
	return c.delete(ctx, "/"+remoteID, token)
}

// ListCampaigns returns all campaigns of the ad account.
func (c *Client) ListCampaigns(ctx context.Context, token, accountID string) ([]port.RemoteCampaign, error) {
	q := url.Values{}
	q.Set("fields", campaignFields)
	body, err := c.get(ctx, accountPath(accountID, "campaigns"), token, q)
	if err != nil {
		return nil, err
	}
	var page struct {
		Data []campaignNode `json:"data"`
	}
	if err = decode(body, &page); err != nil {
		return nil, err
	}
	out := make([]port.RemoteCampaign, 0, len(page.Data))
	for i := range page.Data {
		out = append(out, page.Data[i].toPort())
	}
	return out, nil
}

// CampaignInsights fetches the campaign performance snapshot, optionally
// bounded by a date range.
func (c *Client) CampaignInsights(ctx context.Context, token, remoteID string, tr *domain.TimeRange) (*domain.Insights, error) {
	return c.insights(ctx, token, remoteID, tr)
}
