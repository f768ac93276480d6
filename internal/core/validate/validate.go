// Package validate holds the pure cross-field checks run before any remote
// call is attempted. Everything here is side-effect free; callers decide what
// to do with a returned error.
package validate

import (
	"strconv"

	"github.com/google/uuid"

	"adbridge/internal/core/domain"
	"adbridge/internal/errs"
)

// Bid checks the bid amount against the strategy's requirements. The empty
// strategy defaults to LOWEST_COST_WITHOUT_CAP. A positive bid amount under
// the uncapped strategy is a hard failure here; the wire layer additionally
// strips it, but neither layer relies on the other.
func Bid(strategy domain.BidStrategy, bid *float64) error {
	if strategy == "" {
		strategy = domain.BidLowestCost
	}
	if !strategy.Valid() {
		return errs.Validationf("unknown bid strategy %q", strategy)
	}
	switch {
	case strategy == domain.BidLowestCost:
		if bid != nil && *bid > 0 {
			return errs.Validationf("bid amount must not be set with %s", strategy)
		}
	case strategy.RequiresBid():
		if bid == nil || *bid <= 0 {
			return errs.Validationf("bid strategy %s requires a positive bid amount", strategy)
		}
	}
	// BidMinROAS: optional, any value accepted; non-positive values are simply not sent.
	return nil
}

// CampaignBudget enforces budget exclusivity: exactly one of daily and
// lifetime budget must be set and positive.
func CampaignBudget(daily, lifetime *float64) error {
	switch {
	case daily != nil && lifetime != nil:
		return errs.Validationf("daily and lifetime budget are mutually exclusive")
	case daily == nil && lifetime == nil:
		return errs.Validationf("either daily or lifetime budget is required")
	case daily != nil && *daily <= 0:
		return errs.Validationf("daily budget must be positive")
	case lifetime != nil && *lifetime <= 0:
		return errs.Validationf("lifetime budget must be positive")
	}
	return nil
}

// Campaign checks a campaign before create. Schedule bounds are optional but
// must be ordered when both are present.
func Campaign(c *domain.Campaign) error {
	if c.Name == "" {
		return errs.Validationf("campaign name is required")
	}
	if c.Objective == "" {
		return errs.Validationf("campaign objective is required")
	}
	if err := CampaignBudget(c.DailyBudget, c.LifetimeBudget); err != nil {
		return err
	}
	if err := Bid(c.BidStrategy, c.BidAmount); err != nil {
		return err
	}
	if c.StartTime != nil && c.EndTime != nil && !c.EndTime.After(*c.StartTime) {
		return errs.Validationf("end time must be after start time")
	}
	return nil
}

// AdSet checks an ad set before create. The budget pair is optional (the
// parent campaign may carry the budget, which this package cannot see, so a
// missing budget is the caller's warning path) but still mutually exclusive.
func AdSet(s *domain.AdSet) error {
	switch {
	case s.Name == "":
		return errs.Validationf("ad set name is required")
	case s.CampaignID == uuid.Nil:
		return errs.Validationf("campaign id is required")
	case s.OptimizationGoal == "":
		return errs.Validationf("optimization goal is required")
	case s.BillingEvent == "":
		return errs.Validationf("billing event is required")
	case s.StartTime.IsZero():
		return errs.Validationf("start time is required")
	case s.EndTime.IsZero():
		return errs.Validationf("end time is required")
	}
	if !s.EndTime.After(s.StartTime) {
		return errs.Validationf("end time must be after start time")
	}
	if s.Targeting.GeoLocations == nil || len(s.Targeting.GeoLocations.Countries) == 0 {
		return errs.Validationf("targeting with at least one country is required")
	}
	if s.DailyBudget != nil && s.LifetimeBudget != nil {
		return errs.Validationf("daily and lifetime budget are mutually exclusive")
	}
	return Bid(s.BidStrategy, s.BidAmount)
}

// Ad checks an ad before the remote-first create. Ad set and creative ids
// reference remote objects and must be numeric.
func Ad(a *domain.Ad) error {
	if a.Name == "" {
		return errs.Validationf("ad name is required")
	}
	if err := RemoteID("adset id", a.AdSetID); err != nil {
		return err
	}
	return RemoteID("creative id", a.CreativeID)
}

// RemoteID rejects values that cannot be remote platform identifiers, which
// are decimal numerics.
func RemoteID(field, id string) error {
	if id == "" {
		return errs.Validationf("%s is required", field)
	}
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return errs.Validationf("%s %q is not a valid remote identifier", field, id)
	}
	return nil
}
