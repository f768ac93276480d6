package domain

// Insights is a performance snapshot for a campaign, ad set, ad or creative.
// Spend is reported in major currency units. A zero value is the degraded
// result returned when the remote platform cannot be reached.
type Insights struct {
	Impressions int64              `json:"impressions"`
	Clicks      int64              `json:"clicks"`
	Spend       float64            `json:"spend"`
	Reach       int64              `json:"reach"`
	CTR         float64            `json:"ctr"`
	CPC         float64            `json:"cpc"`
	CPM         float64            `json:"cpm"`
	Frequency   float64            `json:"frequency"`
	Conversions int64              `json:"conversions"`
	Actions     map[string]float64 `json:"actions,omitempty"`
	DateStart   string             `json:"date_start,omitempty"`
	DateStop    string             `json:"date_stop,omitempty"`
}

// TimeRange bounds an insights query. Dates are YYYY-MM-DD, inclusive, and
// the pair is serialized as one JSON-encoded {since,until} parameter.
type TimeRange struct {
	Since string `json:"since"`
	Until string `json:"until"`
}
