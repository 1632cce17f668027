package engine

import (
	"errors"
	"math"
	"testing"
)

func TestComputeBill(t *testing.T) {
	tests := []struct {
		name  string
		units float64
		want  float64
	}{
		{"zero units", 0, 0},
		{"mid first slab", 50, 198},             // 50 * 3.95 = 197.50, rounds half up
		{"first slab boundary", 100, 395},       // 100 * 3.95
		{"one unit into second slab", 101, 402}, // 395 + 7.34 = 402.34
		{"second slab boundary", 200, 1129},     // 395 + 734
		{"third slab boundary", 300, 2135},      // 395 + 734 + 1006
		{"fourth slab boundary", 400, 3745},     // 2135 + 1610
		{"fifth slab boundary", 500, 5745},      // 3745 + 2000
		{"into unbounded slab", 550, 6845},      // 5745 + 50*22
		{"fractional units", 360, 3101},         // 2135 + 60*16.10
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBill(tt.units, LESCOTariff)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputeBill(%.0f) = %.2f, want %.2f", tt.units, got, tt.want)
			}
		})
	}
}

func TestComputeBillRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		units float64
	}{
		{"negative", -1},
		{"NaN", math.NaN()},
		{"positive infinity", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeBill(tt.units, LESCOTariff)
			if !errors.Is(err, ErrInvalidUnits) {
				t.Errorf("ComputeBill(%v) error = %v, want ErrInvalidUnits", tt.units, err)
			}
		})
	}
}

func TestComputeBillEmptyTariff(t *testing.T) {
	if _, err := ComputeBill(100, nil); !errors.Is(err, ErrEmptyTariff) {
		t.Errorf("expected ErrEmptyTariff, got %v", err)
	}
}

func TestComputeBillMonotonic(t *testing.T) {
	// Progressive rates never decrease cumulative cost
	prev := -1.0
	for units := 0.0; units <= 1200; units += 7 {
		bill, err := ComputeBill(units, LESCOTariff)
		if err != nil {
			t.Fatalf("unexpected error at %.0f units: %v", units, err)
		}
		if bill < prev {
			t.Fatalf("bill decreased: %.2f units -> %.2f (previous %.2f)", units, bill, prev)
		}
		prev = bill
	}
}

func TestValidateTariff(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []TariffTier
		wantErr error
	}{
		{"canonical table", LESCOTariff, nil},
		{"empty", nil, ErrEmptyTariff},
		{
			"missing unbounded tail",
			[]TariffTier{{UpperBound: 100, Rate: 3.95}},
			ErrBadTariff,
		},
		{
			"non-ascending bounds",
			[]TariffTier{{UpperBound: 200, Rate: 3.95}, {UpperBound: 100, Rate: 7.34}, {UpperBound: 0, Rate: 22}},
			ErrBadTariff,
		},
		{
			"non-positive rate",
			[]TariffTier{{UpperBound: 100, Rate: 0}, {UpperBound: 0, Rate: 22}},
			ErrBadTariff,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTariff(tt.tiers)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestComputeBillBreakdown(t *testing.T) {
	b, err := ComputeBillBreakdown(360, LESCOTariff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(b.Slabs) != 4 {
		t.Fatalf("got %d slab lines, want 4", len(b.Slabs))
	}

	wantLines := []SlabCharge{
		{Label: "1-100 units", Units: 100, Rate: 3.95, Cost: 395},
		{Label: "101-200 units", Units: 100, Rate: 7.34, Cost: 734},
		{Label: "201-300 units", Units: 100, Rate: 10.06, Cost: 1006},
		{Label: "301-400 units", Units: 60, Rate: 16.10, Cost: 966},
	}
	for i, want := range wantLines {
		if b.Slabs[i] != want {
			t.Errorf("slab %d = %+v, want %+v", i, b.Slabs[i], want)
		}
	}

	if b.TotalCost != 3101 {
		t.Errorf("TotalCost = %.2f, want 3101", b.TotalCost)
	}
	if b.GovCharges != 465.15 {
		t.Errorf("GovCharges = %.2f, want 465.15", b.GovCharges)
	}
	if b.TotalWithGov != 3566.15 {
		t.Errorf("TotalWithGov = %.2f, want 3566.15", b.TotalWithGov)
	}
	if b.CurrentSlab != "301-400 units" || b.CurrentRate != 16.10 {
		t.Errorf("slab position = %q @ %.2f, want 301-400 units @ 16.10", b.CurrentSlab, b.CurrentRate)
	}
	if b.UnitsToNextSlab != 40 {
		t.Errorf("UnitsToNextSlab = %.0f, want 40", b.UnitsToNextSlab)
	}
	// 3101 - ComputeBill(300) = 3101 - 2135
	if b.DropSlabSavings != 966 {
		t.Errorf("DropSlabSavings = %.2f, want 966", b.DropSlabSavings)
	}
}

func TestComputeBillBreakdownFirstSlab(t *testing.T) {
	b, err := ComputeBillBreakdown(80, LESCOTariff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.CurrentSlab != "1-100 units" {
		t.Errorf("CurrentSlab = %q, want 1-100 units", b.CurrentSlab)
	}
	if b.DropSlabSavings != 0 {
		t.Errorf("DropSlabSavings = %.2f, want 0 in the first slab", b.DropSlabSavings)
	}
}

func TestComputeBillBreakdownTopSlab(t *testing.T) {
	b, err := ComputeBillBreakdown(620, LESCOTariff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.CurrentSlab != "501+ units" {
		t.Errorf("CurrentSlab = %q, want 501+ units", b.CurrentSlab)
	}
	if b.UnitsToNextSlab != 0 {
		t.Errorf("UnitsToNextSlab = %.0f, want 0 in the top slab", b.UnitsToNextSlab)
	}
}
