package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/secpars/secpars/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeedDefaults(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SeedDefaults())

	apps, err := s.GetAppliances()
	require.NoError(t, err)
	assert.Len(t, apps, len(engine.DefaultAppliances()))

	// Seeding again must not duplicate or overwrite
	fridge, err := s.GetAppliance("refrigerator")
	require.NoError(t, err)
	fridge.HoursPerDay = 12
	require.NoError(t, s.SaveAppliance(fridge))

	require.NoError(t, s.SeedDefaults())

	apps, err = s.GetAppliances()
	require.NoError(t, err)
	assert.Len(t, apps, len(engine.DefaultAppliances()))

	fridge, err = s.GetAppliance("refrigerator")
	require.NoError(t, err)
	assert.Equal(t, 12.0, fridge.HoursPerDay, "user edit survives reseeding")
}

func TestSaveAppliance(t *testing.T) {
	s := newTestStore(t)

	a := engine.Appliance{
		Name:        "Water Pump",
		Category:    engine.CategoryCustom,
		Efficiency:  engine.EfficiencyMedium,
		Wattage:     750,
		HoursPerDay: 2,
	}
	require.NoError(t, s.SaveAppliance(&a))
	assert.NotEmpty(t, a.ID, "missing ID is assigned")
	assert.Equal(t, 1, a.Quantity, "zero quantity is floored to 1")

	got, err := s.GetAppliance(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Water Pump", got.Name)
	assert.Equal(t, engine.CategoryCustom, got.Category)
	assert.Equal(t, 750.0, got.Wattage)

	// Save with the same ID updates in place
	a.Wattage = 1000
	a.Selected = true
	require.NoError(t, s.SaveAppliance(&a))

	got, err = s.GetAppliance(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got.Wattage)
	assert.True(t, got.Selected)

	apps, err := s.GetAppliances()
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestSelectedAppliances(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SeedDefaults())

	selected, err := s.SelectedAppliances()
	require.NoError(t, err)
	assert.Empty(t, selected, "defaults start unselected")

	ac, err := s.GetAppliance("air-conditioner")
	require.NoError(t, err)
	ac.Selected = true
	require.NoError(t, s.SaveAppliance(ac))

	fan, err := s.GetAppliance("fan")
	require.NoError(t, err)
	fan.Selected = true
	require.NoError(t, s.SaveAppliance(fan))

	selected, err = s.SelectedAppliances()
	require.NoError(t, err)
	require.Len(t, selected, 2)
	for _, a := range selected {
		assert.True(t, a.Selected)
	}
}

func TestDeleteAppliance(t *testing.T) {
	s := newTestStore(t)

	a := engine.Appliance{Name: "Heater", Category: engine.CategoryCustom, Wattage: 2000, HoursPerDay: 4}
	require.NoError(t, s.SaveAppliance(&a))

	require.NoError(t, s.DeleteAppliance(a.ID))

	_, err := s.GetAppliance(a.ID)
	assert.Error(t, err)

	// Deleting a missing ID is not an error
	assert.NoError(t, s.DeleteAppliance("no-such-id"))
}

func TestAppendHistory(t *testing.T) {
	s := newTestStore(t)

	e := engine.HistoryEntry{ConsumedUnits: 360, BillPrice: 3101, Prediction: `{"source":"local"}`}
	require.NoError(t, s.AppendHistory(&e))
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())

	entries, err := s.GetHistory()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)
	assert.Equal(t, 360.0, entries[0].ConsumedUnits)
	assert.Equal(t, 3101.0, entries[0].BillPrice)
	assert.Equal(t, `{"source":"local"}`, entries[0].Prediction)
}

func TestGetHistoryNewestFirst(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		e := engine.HistoryEntry{
			Timestamp:     base.Add(time.Duration(i) * time.Hour),
			ConsumedUnits: float64(100 * (i + 1)),
		}
		require.NoError(t, s.AppendHistory(&e))
	}

	entries, err := s.GetHistory()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 300.0, entries[0].ConsumedUnits)
	assert.Equal(t, 100.0, entries[2].ConsumedUnits)
}

func TestHistoryCap(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < HistoryCap+20; i++ {
		e := engine.HistoryEntry{
			ID:            fmt.Sprintf("entry-%04d", i),
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
			ConsumedUnits: float64(i),
		}
		require.NoError(t, s.AppendHistory(&e))
	}

	n, err := s.HistoryCount()
	require.NoError(t, err)
	assert.Equal(t, HistoryCap, n, "append keeps the log at the cap")

	entries, err := s.GetHistory()
	require.NoError(t, err)
	require.Len(t, entries, HistoryCap)
	assert.Equal(t, "entry-0119", entries[0].ID, "newest entry survives")
	assert.Equal(t, "entry-0020", entries[len(entries)-1].ID, "oldest overflow is gone")
}

func TestPruneHistory(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		e := engine.HistoryEntry{
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
			ConsumedUnits: float64(i),
		}
		require.NoError(t, s.AppendHistory(&e))
	}

	removed, err := s.PruneHistory(4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), removed)

	entries, err := s.GetHistory()
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, 9.0, entries[0].ConsumedUnits)
	assert.Equal(t, 6.0, entries[3].ConsumedUnits)

	// Pruning under the cap is a no-op
	removed, err = s.PruneHistory(100)
	require.NoError(t, err)
	assert.Zero(t, removed)

	// Negative keep clears the log
	removed, err = s.PruneHistory(-1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)

	n, err := s.HistoryCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteHistoryEntry(t *testing.T) {
	s := newTestStore(t)

	e := engine.HistoryEntry{ConsumedUnits: 200, BillPrice: 1129}
	require.NoError(t, s.AppendHistory(&e))

	require.NoError(t, s.DeleteHistoryEntry(e.ID))

	entries, err := s.GetHistory()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
