package remote

import (
	"context"
	"net/url"
	"strings"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
	"adbridge/internal/errs"
)

var adSetFields = strings.Join([]string{
	"id", "name", "campaign_id", "status", "effective_status",
	"optimization_goal", "billing_event", "bid_strategy", "bid_amount",
	"daily_budget", "lifetime_budget", "start_time", "end_time",
}, ",")

type adSetNode struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	CampaignID       string `json:"campaign_id"`
	Status           string `json:"status"`
	EffectiveStatus  string `json:"effective_status"`
	OptimizationGoal string `json:"optimization_goal"`
	BillingEvent     string `json:"billing_event"`
	BidStrategy      string `json:"bid_strategy"`
	BidAmount        string `json:"bid_amount"`
	DailyBudget      string `json:"daily_budget"`
	LifetimeBudget   string `json:"lifetime_budget"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
}

func (n *adSetNode) toPort() port.RemoteAdSet {
	return port.RemoteAdSet{
		ID:               n.ID,
		Name:             n.Name,
		CampaignID:       n.CampaignID,
		Status:           n.Status,
		EffectiveStatus:  n.EffectiveStatus,
		OptimizationGoal: n.OptimizationGoal,
		BillingEvent:     n.BillingEvent,
		BidStrategy:      n.BidStrategy,
		BidAmount:        FromMinorUnits(n.BidAmount),
		DailyBudget:      FromMinorUnits(n.DailyBudget),
		LifetimeBudget:   FromMinorUnits(n.LifetimeBudget),
		StartTime:        parseWireTime(n.StartTime),
		EndTime:          parseWireTime(n.EndTime),
	}
}

// CreateAdSet creates the ad set under its remote ad account. Budget fields
// are mutually exclusive here as well; the check is repeated at this boundary
// because the payload builder is reachable without the validator. The bid
// amount is strategy-gated: for the uncapped strategy it is stripped even if
// the caller supplied one.
func (c *Client) CreateAdSet(ctx context.Context, token string, s *domain.AdSet) (*port.RemoteAdSet, error) {
	if s.DailyBudget != nil && s.LifetimeBudget != nil {
		return nil, errs.Validationf("daily and lifetime budget are mutually exclusive")
	}
	p := newParams()
	p.Set("name", s.Name)
	p.Set("campaign_id", s.RemoteCampaignID)
	p.Set("status", string(s.Status))
	p.Set("optimization_goal", s.OptimizationGoal)
	p.Set("billing_event", s.BillingEvent)
	p.SetMoney("daily_budget", s.DailyBudget)
	p.SetMoney("lifetime_budget", s.LifetimeBudget)
	p.SetIf("bid_strategy", string(s.BidStrategy))
	setGatedBid(p, s.BidStrategy, s.BidAmount)
	p.SetJSON("targeting", s.Targeting)
	if s.PromotedObject != nil {
		p.SetJSON("promoted_object", s.PromotedObject)
	}
	start, end := s.StartTime, s.EndTime
	p.SetTime("start_time", &start)
	p.SetTime("end_time", &end)

	body, err := c.postForm(ctx, accountPath(s.RemoteAccountID, "adsets"), token, p)
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
		return nil, &errs.RemoteError{Message: "ad set create returned no id"}
	}
	return c.GetAdSet(ctx, token, created.ID)
}

// setGatedBid attaches bid_amount according to the strategy. Uncapped never
// sends one, capped strategies always do, min-ROAS only when positive. The
// validator enforces the same rules earlier; this strip is deliberate
// duplication so a bypassed validator still cannot leak a forbidden bid.
func setGatedBid(p params, strategy domain.BidStrategy, bid *float64) {
	if strategy == "" {
		strategy = domain.BidLowestCost
	}
	switch {
	case strategy == domain.BidLowestCost:
		// never sent
	case strategy.RequiresBid():
		p.SetMoney("bid_amount", bid)
	default: // BidMinROAS
		if bid != nil && *bid > 0 {
			p.SetMoney("bid_amount", bid)
		}
	}
}

// UpdateAdSet pushes the set fields of the patch.
func (c *Client) UpdateAdSet(ctx context.Context, token, remoteID string, p domain.AdSetPatch) error {
	if p.DailyBudget != nil && p.LifetimeBudget != nil {
		return errs.Validationf("daily and lifetime budget are mutually exclusive")
	}
	f := newParams()
	if p.Name != nil {
		f.Set("name", *p.Name)
	}
	if p.Status != nil {
		f.Set("status", string(*p.Status))
	}
	if p.OptimizationGoal != nil {
		f.Set("optimization_goal", *p.OptimizationGoal)
	}
	if p.BillingEvent != nil {
		f.Set("billing_event", *p.BillingEvent)
	}
	f.SetMoney("daily_budget", p.DailyBudget)
	f.SetMoney("lifetime_budget", p.LifetimeBudget)
	if p.BidStrategy != nil {
		f.Set("bid_strategy", string(*p.BidStrategy))
		setGatedBid(f, *p.BidStrategy, p.BidAmount)
	} else {
		f.SetMoney("bid_amount", p.BidAmount)
	}
	if p.Targeting != nil {
		f.SetJSON("targeting", p.Targeting)
	}
	if p.PromotedObject != nil {
		f.SetJSON("promoted_object", p.PromotedObject)
	}
	f.SetTime("start_time", p.StartTime)
	f.SetTime("end_time", p.EndTime)
	_, err := c.postForm(ctx, "/"+remoteID, token, f)
	return err
}

// DeleteAdSet removes the remote ad set.
func (c *Client) DeleteAdSet(ctx context.Context, token, remoteID string) error {
	return c.delete(ctx, "/"+remoteID, token)
}

// ListAdSets returns the account's ad sets, optionally filtered to one
// remote campaign.
func (c *Client) ListAdSets(ctx context.Context, token, accountID, remoteCampaignID string) ([]port.RemoteAdSet, error) {
	q := url.Values{}
	q.Set("fields", adSetFields)
	path := accountPath(accountID, "adsets")
	if remoteCampaignID != "" {
		path = "/" + remoteCampaignID + "/adsets"
	}
	body, err := c.get(ctx, path, token, q)
	if err != nil {
		return nil, err
	}
	var page struct {
		Data []adSetNode `json:"data"`
	}
	if err = decode(body, &page); err != nil {
		return nil, err
	}
	out := make([]port.RemoteAdSet, 0, len(page.Data))
	for i := range page.Data {
		out = append(out, page.Data[i].toPort())
	}
	return out, nil
}

// GetAdSet reads one ad set by remote id.
func (c *Client) GetAdSet(ctx context.Context, token, remoteID string) (*port.RemoteAdSet, error) {
	q := url.Values{}
	q.Set("fields", adSetFields)
	body, err := c.get(ctx, "/"+remoteID, token, q)
	if err != nil {
		return nil, err
	}
	var node adSetNode
	if err = decode(body, &node); err != nil {
		return nil, err
	}
	rs := node.toPort()
	return &rs, nil
}

// AdSetInsights fetches the ad set performance snapshot.
func (c *Client) AdSetInsights(ctx context.Context, token, remoteID string, tr *domain.TimeRange) (*domain.Insights, error) {
	return c.insights(ctx, token, remoteID, tr)
}
