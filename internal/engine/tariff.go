package engine

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidUnits = errors.New("consumed units must be a non-negative number")
	ErrEmptyTariff  = errors.New("tariff table has no tiers")
	ErrBadTariff    = errors.New("tariff table is malformed")
)

// TariffTier is one progressive billing slab. UpperBound is the inclusive
// upper limit in units for the tier; 0 marks the final unbounded tier.
type TariffTier struct {
	UpperBound float64 `json:"upper_bound"`
	Rate       float64 `json:"rate"`
}

// LESCOTariff is the canonical residential slab table in PKR per kWh,
// shared by every caller.
var LESCOTariff = []TariffTier{
	{UpperBound: 100, Rate: 3.95},
	{UpperBound: 200, Rate: 7.34},
	{UpperBound: 300, Rate: 10.06},
	{UpperBound: 400, Rate: 16.10},
	{UpperBound: 500, Rate: 20.00},
	{UpperBound: 0, Rate: 22.00},
}

// ValidateTariff checks that tiers are ascending, contiguous, positively
// priced and terminated by a single unbounded tier.
func ValidateTariff(tiers []TariffTier) error {
	if len(tiers) == 0 {
		return ErrEmptyTariff
	}
	prev := 0.0
	for i, t := range tiers {
		if t.Rate <= 0 {
			return fmt.Errorf("%w: tier %d has non-positive rate %.2f", ErrBadTariff, i, t.Rate)
		}
		if i == len(tiers)-1 {
			if t.UpperBound != 0 {
				return fmt.Errorf("%w: last tier must be unbounded", ErrBadTariff)
			}
			continue
		}
		if t.UpperBound <= prev {
			return fmt.Errorf("%w: tier %d bound %.0f not above %.0f", ErrBadTariff, i, t.UpperBound, prev)
		}
		prev = t.UpperBound
	}
	return nil
}

// ComputeBill walks the slab table and bills each portion of units at its
// tier's marginal rate. Only the final total is rounded, to the nearest
// whole rupee; intermediate charges stay unrounded so tier transitions
// never double-charge or skip units.
func ComputeBill(units float64, tiers []TariffTier) (float64, error) {
	if math.IsNaN(units) || math.IsInf(units, 0) || units < 0 {
		return 0, ErrInvalidUnits
	}
	if err := ValidateTariff(tiers); err != nil {
		return 0, err
	}

	bill := 0.0
	prev := 0.0
	remaining := units
	for _, t := range tiers {
		if remaining <= 0 {
			break
		}
		if t.UpperBound == 0 {
			bill += remaining * t.Rate
			remaining = 0
			break
		}
		span := t.UpperBound - prev
		billed := math.Min(remaining, span)
		bill += billed * t.Rate
		remaining -= billed
		prev = t.UpperBound
	}

	return math.Round(bill), nil
}

// SlabCharge is one line of a bill breakdown
type SlabCharge struct {
	Label string  `json:"label"`
	Units float64 `json:"units"`
	Rate  float64 `json:"rate"`
	Cost  float64 `json:"cost"`
}

// BillBreakdown is the detailed slab-wise view of a monthly bill, including
// the 15% government surcharge applied on top of the energy cost.
type BillBreakdown struct {
	Units           float64      `json:"units"`
	Slabs           []SlabCharge `json:"slabs"`
	TotalCost       float64      `json:"total_cost"`
	GovCharges      float64      `json:"gov_charges"`
	TotalWithGov    float64      `json:"total_with_gov"`
	CurrentSlab     string       `json:"current_slab"`
	CurrentRate     float64      `json:"current_rate"`
	UnitsToNextSlab float64      `json:"units_to_next_slab"`
	// Saving if consumption dropped to the previous slab boundary
	DropSlabSavings float64 `json:"drop_slab_savings"`
}

const govChargeRate = 0.15

// ComputeBillBreakdown produces the per-slab line items for a consumption
// quantity along with the caller's position in the slab schedule.
func ComputeBillBreakdown(units float64, tiers []TariffTier) (*BillBreakdown, error) {
	total, err := ComputeBill(units, tiers)
	if err != nil {
		return nil, err
	}

	b := &BillBreakdown{Units: units, TotalCost: total}

	prev := 0.0
	remaining := units
	for _, t := range tiers {
		if remaining <= 0 {
			break
		}
		var billed float64
		if t.UpperBound == 0 {
			billed = remaining
		} else {
			billed = math.Min(remaining, t.UpperBound-prev)
		}
		b.Slabs = append(b.Slabs, SlabCharge{
			Label: slabLabel(prev, t.UpperBound),
			Units: billed,
			Rate:  t.Rate,
			Cost:  round2(billed * t.Rate),
		})
		remaining -= billed
		prev = t.UpperBound
	}

	b.GovCharges = round2(total * govChargeRate)
	b.TotalWithGov = round2(total + b.GovCharges)

	slab, rate, toNext := slabFor(units, tiers)
	b.CurrentSlab = slab
	b.CurrentRate = rate
	b.UnitsToNextSlab = toNext

	if lower := slabLowerBound(units, tiers); lower > 0 {
		atBoundary, err := ComputeBill(lower, tiers)
		if err == nil {
			b.DropSlabSavings = total - atBoundary
		}
	}

	return b, nil
}

// slabLowerBound is the boundary a consumer would have to drop to in order to
// leave their current slab; 0 when already in the first slab.
func slabLowerBound(units float64, tiers []TariffTier) float64 {
	prev := 0.0
	for _, t := range tiers {
		if t.UpperBound == 0 || units <= t.UpperBound {
			return prev
		}
		prev = t.UpperBound
	}
	return prev
}

// slabFor locates the marginal slab for a consumption quantity and the
// distance to the next slab boundary (0 when already in the top slab).
func slabFor(units float64, tiers []TariffTier) (label string, rate float64, toNext float64) {
	prev := 0.0
	for _, t := range tiers {
		if t.UpperBound == 0 || units <= t.UpperBound {
			label = slabLabel(prev, t.UpperBound)
			rate = t.Rate
			if t.UpperBound != 0 {
				toNext = t.UpperBound - units
			}
			return label, rate, toNext
		}
		prev = t.UpperBound
	}
	return "", 0, 0
}

func slabLabel(lower, upper float64) string {
	if upper == 0 {
		return fmt.Sprintf("%.0f+ units", lower+1)
	}
	return fmt.Sprintf("%.0f-%.0f units", lower+1, upper)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
