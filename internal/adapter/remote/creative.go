package remote

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"adbridge/internal/core/domain"
	"adbridge/internal/core/port"
	"adbridge/internal/errs"
)

var creativeFields = strings.Join([]string{
	"id", "name", "title", "body", "image_url", "image_hash", "video_id",
	"thumbnail_url", "object_story_spec", "asset_feed_spec", "adlabels",
	"url_tags", "call_to_action_type", "link_url", "object_type", "status",
}, ",")

// CreateCreative creates the creative and returns its remote id. Every
// optional field is attached only when present; nested specs are JSON-encoded
// string values per the platform's form-encoding rules.
func (c *Client) CreateCreative(ctx context.Context, token, accountID string, cr *domain.Creative) (string, error) {
	p := newParams()
	p.Set("name", cr.Name)
	p.SetIf("title", cr.Title)
	p.SetIf("body", cr.Body)
	p.SetIf("image_url", cr.ImageURL)
	p.SetIf("image_hash", cr.ImageHash)
	p.SetIf("video_id", cr.VideoID)
	p.SetIf("url_tags", cr.URLTags)
	p.SetIf("call_to_action_type", cr.CallToActionType)
	p.SetIf("link_url", cr.LinkURL)
	p.SetIf("object_type", cr.ObjectType)
	if cr.ObjectStorySpec != nil {
		p.SetJSON("object_story_spec", cr.ObjectStorySpec)
	}
	if cr.AssetFeedSpec != nil {
		p.SetJSON("asset_feed_spec", cr.AssetFeedSpec)
	}
	if len(cr.AdLabels) > 0 {
		p.SetJSON("adlabels", cr.AdLabels)
	}
	body, err := c.postForm(ctx, accountPath(accountID, "adcreatives"), token, p)
	if err != nil {
		return "", err
	}
	var created struct {
		ID string `json:"id"`
	}
	if err = decode(body, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", &errs.RemoteError{Message: "creative create returned no id"}
	}
	return created.ID, nil
}

// UpdateCreative pushes the set fields of the patch.
func (c *Client) UpdateCreative(ctx context.Context, token, remoteID string, p domain.CreativePatch) error {
	f := newParams()
	if p.Name != nil {
		f.Set("name", *p.Name)
	}
	if p.Title != nil {
		f.Set("title", *p.Title)
	}
	if p.Body != nil {
		f.Set("body", *p.Body)
	}
	if p.ImageURL != nil {
		f.Set("image_url", *p.ImageURL)
	}
	if p.ImageHash != nil {
		f.Set("image_hash", *p.ImageHash)
	}
	if p.URLTags != nil {
		f.Set("url_tags", *p.URLTags)
	}
	if p.CallToActionType != nil {
		f.Set("call_to_action_type", *p.CallToActionType)
	}
	if p.Status != nil {
		f.Set("status", *p.Status)
	}
	if p.ObjectStorySpec != nil {
		f.SetJSON("object_story_spec", p.ObjectStorySpec)
	}
	if p.AssetFeedSpec != nil {
		f.SetJSON("asset_feed_spec", p.AssetFeedSpec)
	}
	if len(p.AdLabels) > 0 {
		f.SetJSON("adlabels", p.AdLabels)
	}
	_, err := c.postForm(ctx, "/"+remoteID, token, f)
	return err
}

// DeleteCreative removes the remote creative.
func (c *Client) DeleteCreative(ctx context.Context, token, remoteID string) error {
	return c.delete(ctx, "/"+remoteID, token)
}

// GetCreative reads one creative. A nil or empty fields slice requests the
// full default field set.
func (c *Client) GetCreative(ctx context.Context, token, remoteID string, fields []string) (*domain.Creative, error) {
	q := url.Values{}
	if len(fields) == 0 {
		q.Set("fields", creativeFields)
	} else {
		q.Set("fields", strings.Join(fields, ","))
	}
	body, err := c.get(ctx, "/"+remoteID, token, q)
	if err != nil {
		return nil, err
	}
	var cr domain.Creative
	if err = decode(body, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

// ListCreatives returns one cursor page of the account's creatives together
// with the cursor for the next page (empty when exhausted).
func (c *Client) ListCreatives(ctx context.Context, token, accountID string, lq port.CreativeListQuery) ([]domain.Creative, string, error) {
	q := url.Values{}
	if len(lq.Fields) == 0 {
		q.Set("fields", creativeFields)
	} else {
		q.Set("fields", strings.Join(lq.Fields, ","))
	}
	if lq.Limit > 0 {
		q.Set("limit", strconv.Itoa(lq.Limit))
	}
	if lq.After != "" {
		q.Set("after", lq.After)
	}
	body, err := c.get(ctx, accountPath(accountID, "adcreatives"), token, q)
	if err != nil {
		return nil, "", err
	}
	var page struct {
		Data   []domain.Creative `json:"data"`
		Paging struct {
			Cursors struct {
				After string `json:"after"`
			} `json:"cursors"`
			Next string `json:"next"`
		} `json:"paging"`
	}
	if err = decode(body, &page); err != nil {
		return nil, "", err
	}
	after := ""
	if page.Paging.Next != "" {
		after = page.Paging.Cursors.After
	}
	return page.Data, after, nil
}

// CreativePreview renders the creative in the requested format.
func (c *Client) CreativePreview(ctx context.Context, token, remoteID, format string) (string, error) {
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

// CreativeInsights fetches the creative performance snapshot.
func (c *Client) CreativeInsights(ctx context.Context, token, remoteID string, tr *domain.TimeRange) (*domain.Insights, error) {
	return c.insights(ctx, token, remoteID, tr)
}
