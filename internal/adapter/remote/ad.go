package remote

import (
	"context"
	"net/url"
	"strings"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
	"adbridge/internal/errs"
)

var adFields = strings.Join([]string{
	"id", "name", "adset_id", "campaign_id", "status", "effective_status",
	"configured_status", "bid_amount", "creative", "tracking_specs",
	"ad_review_feedback", "issues_info", "recommendations", "preview_shareable_link",
}, ",")

type adNode struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	AdSetID          string `json:"adset_id"`
	CampaignID       string `json:"campaign_id"`
	Status           string `json:"status"`
	EffectiveStatus  string `json:"effective_status"`
	ConfiguredStatus string `json:"configured_status"`
	BidAmount        string `json:"bid_amount"`
	Creative         struct {
		ID string `json:"id"`
	} `json:"creative"`
	TrackingSpecs    []map[string]any `json:"tracking_specs"`
	AdReviewFeedback struct {
		Global map[string]string `json:"global"`
	} `json:"ad_review_feedback"`
	IssuesInfo []struct {
		ErrorMessage string `json:"error_message"`
	} `json:"issues_info"`
	Recommendations []struct {
		Title string `json:"title"`
	} `json:"recommendations"`
	PreviewShareableLink string `json:"preview_shareable_link"`
}

func (n *adNode) toPort() port.RemoteAd {
	ra := port.RemoteAd{
		ID:               n.ID,
		Name:             n.Name,
		AdSetID:          n.AdSetID,
		CampaignID:       n.CampaignID,
		CreativeID:       n.Creative.ID,
		Status:           n.Status,
		EffectiveStatus:  n.EffectiveStatus,
		ConfiguredStatus: n.ConfiguredStatus,
		BidAmount:        FromMinorUnits(n.BidAmount),
		TrackingSpecs:    n.TrackingSpecs,
		ReviewFeedback:   n.AdReviewFeedback.Global,
		PreviewLink:      n.PreviewShareableLink,
	}
	for _, i := range n.IssuesInfo {
		ra.Issues = append(ra.Issues, i.ErrorMessage)
	}
	for _, r := range n.Recommendations {
		ra.Recommendations = append(ra.Recommendations, r.Title)
	}
	return ra
}

// CreateAd creates the ad under the account. Ads are remote-first: the
// caller persists locally only after this returns the platform's view.
func (c *Client) CreateAd(ctx context.Context, token, accountID string, a *domain.Ad) (*port.RemoteAd, error) {
	p := newParams()
	p.Set("name", a.Name)
	p.Set("adset_id", a.AdSetID)
	p.Set("status", string(a.Status))
	p.SetJSON("creative", map[string]string{"creative_id": a.CreativeID})
	p.SetMoney("bid_amount", a.BidAmount)
	if len(a.TrackingSpecs) > 0 {
		p.SetJSON("tracking_specs", a.TrackingSpecs)
	}
	body, err := c.postForm(ctx, accountPath(accountID, "ads"), token, p)
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
		return nil, &errs.RemoteError{Message: "ad create returned no id"}
	}
	return c.GetAd(ctx, token, created.ID)
}

// UpdateAd pushes the set fields of the patch.
func (c *Client) UpdateAd(ctx context.Context, token, remoteID string, p domain.AdPatch) error {
	f := newParams()
	if p.Name != nil {
		f.Set("name", *p.Name)
	}
	if p.Status != nil {
		f.Set("status", string(*p.Status))
	}
	if p.CreativeID != nil {
		f.SetJSON("creative", map[string]string{"creative_id": *p.CreativeID})
	}
	f.SetMoney("bid_amount", p.BidAmount)
	if len(p.TrackingSpecs) > 0 {
		f.SetJSON("tracking_specs", p.TrackingSpecs)
	}
	_, err := c.postForm(ctx, "/"+remoteID, token, f)
	return err
}

// DeleteAd removes the remote ad.
func (c *Client) DeleteAd(ctx context.Context, token, remoteID string) error {
	return c.delete(ctx, "/"+remoteID, token)
}

// GetAd reads one ad by remote id, including the volatile review fields.
func (c *Client) GetAd(ctx context.Context, token, remoteID string) (*port.RemoteAd, error) {
	q := url.Values{}
	q.Set("fields", adFields)
	body, err := c.get(ctx, "/"+remoteID, token, q)
	if err != nil {
		return nil, err
	}
	var node adNode
	if err = decode(body, &node); err != nil {
		return nil, err
	}
	ra := node.toPort()
	return &ra, nil
}

// AdInsights fetches the ad performance snapshot.
func (c *Client) AdInsights(ctx context.Context, token, remoteID string, tr *domain.TimeRange) (*domain.Insights, error) {
	return c.insights(ctx, token, remoteID, tr)
}

// AdPreview renders the ad in the requested format and returns the preview
// markup.
func (c *Client) AdPreview(ctx context.Context, token, remoteID, format string) (string, error) {
	q := url.Values{}
	q.Set("ad_format", format)
	body, err := c.get(ctx, "/"+remoteID+"/previews", token, q)
	if err != nil {
		return "", err
	}
	var page struct {
		Data []struct {
			Body string `json:"body"`
		} `json:"data"`
	}
	if err = decode(body, &page); err != nil {
		return "", err
	}
	if len(page.Data) == 0 {
		return "", &errs.RemoteError{Message: "no preview returned for format " + format}
	}
	return page.Data[0].Body, nil
}
