package remote

import (
	"context"
	"net/url"
	"strings"

	"adbridge/internal/core/domain"
)

var insightsFields = strings.Join([]string{
	"impressions", "clicks", "spend", "reach", "ctr", "cpc", "cpm",
	"frequency", "actions", "date_start", "date_stop",
}, ",")

// insightsRow is one entry of the platform's insights data array. Numeric
// metrics arrive string-encoded.
type insightsRow struct {
	Impressions string `json:"impressions"`
	Clicks      string `json:"clicks"`
	Spend       string `json:"spend"`
	Reach       string `json:"reach"`
	CTR         string `json:"ctr"`
	CPC         string `json:"cpc"`
	CPM         string `json:"cpm"`
	Frequency   string `json:"frequency"`
	DateStart   string `json:"date_start"`
	DateStop    string `json:"date_stop"`
	Actions     []struct {
		ActionType string `json:"action_type"`
		Value      string `json:"value"`
	} `json:"actions"`
}

// insights fetches /{id}/insights for any entity type; the endpoint shape is
// identical for campaigns, ad sets, ads and creatives. An empty data array
// yields a zero-valued snapshot, not an error.
func (c *Client) insights(ctx context.Context, token, remoteID string, tr *domain.TimeRange) (*domain.Insights, error) {
	q := url.Values{}
	q.Set("fields", insightsFields)
	if tr != nil {
		p := newParams()
		p.SetTimeRange(tr)
		q.Set("time_range", p.values().Get("time_range"))
	}
	body, err := c.get(ctx, "/"+remoteID+"/insights", token, q)
	if err != nil {
		return nil, err
	}
	var page struct {
		Data []insightsRow `json:"data"`
	}
	if err = decode(body, &page); err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return &domain.Insights{}, nil
	}
	row := page.Data[0]
	out := &domain.Insights{
		Impressions: parseWireInt(row.Impressions),
		Clicks:      parseWireInt(row.Clicks),
		Spend:       parseWireFloat(row.Spend),
		Reach:       parseWireInt(row.Reach),
		CTR:         parseWireFloat(row.CTR),
		CPC:         parseWireFloat(row.CPC),
		CPM:         parseWireFloat(row.CPM),
		Frequency:   parseWireFloat(row.Frequency),
		DateStart:   row.DateStart,
		DateStop:    row.DateStop,
	}
	if len(row.Actions) > 0 {
		out.Actions = make(map[string]float64, len(row.Actions))
		for _, a := range row.Actions {
			out.Actions[a.ActionType] = parseWireFloat(a.Value)
		}
		if v, ok := out.Actions["offsite_conversion"]; ok {
			out.Conversions = int64(v)
		}
	}
	return out, nil
}
