package remote

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"time"

	"adbridge/internal/core/domain"
)

// params assembles a form payload from a closed set of optional fields. Each
// setter attaches its key only when the value is present, so the serializer
// never emits empty or placeholder parameters the platform would reject.
type params struct {
	v url.Values
}

func newParams() params {
	return params{v: url.Values{}}
}

func (p params) values() url.Values { return p.v }

// Set attaches a required string field.
func (p params) Set(key, val string) {
	p.v.Set(key, val)
}

// SetIf attaches the field only when the value is non-empty.
func (p params) SetIf(key, val string) {
	if val != "" {
		p.v.Set(key, val)
	}
}

// SetMoney converts a major-unit amount to the platform's minor currency
// unit (×100, rounded to nearest) and attaches it when present.
func (p params) SetMoney(key string, amount *float64) {
	if amount != nil {
		p.v.Set(key, strconv.FormatInt(ToMinorUnits(*amount), 10))
	}
}

// SetJSON attaches the field as a JSON-encoded string value, which is how
// the platform expects nested objects inside form payloads.
func (p params) SetJSON(key string, val any) {
	if val == nil {
		return
	}
	b, err := json.Marshal(val)
	if err != nil {
		return
	}
	p.v.Set(key, string(b))
}

// SetTime attaches an RFC3339 timestamp when present.
func (p params) SetTime(key string, t *time.Time) {
	if t != nil && !t.IsZero() {
		p.v.Set(key, t.Format(time.RFC3339))
	}
}

// SetTimeRange attaches an insights date range as a single JSON-encoded
// {since,until} parameter.
func (p params) SetTimeRange(tr *domain.TimeRange) {
	if tr != nil {
		p.SetJSON("time_range", tr)
	}
}

// ToMinorUnits converts a major-unit money amount to the platform's integer
// minor unit: 12.34 → 1234.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits parses the platform's string-encoded minor-unit amount back
// into major units: "1234" → 12.34. Unparseable or empty input yields nil.
func FromMinorUnits(s string) *float64 {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	v := float64(n) / 100
	return &v
}

func parseWireTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseWireInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseWireFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
