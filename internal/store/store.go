package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/secpars/secpars/internal/engine"
	_ "modernc.org/sqlite"
)

// HistoryCap bounds the prediction history log to the most recent entries.
// The log is append-only otherwise; without a cap it grows forever.
const HistoryCap = 100

// Store handles persistent storage using SQLite
type Store struct {
	db *sql.DB
}

// NewStore creates a new store and initializes the database
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initialize creates the database schema
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS appliances (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		efficiency TEXT DEFAULT 'Medium',
		energy_rating TEXT DEFAULT 'B',
		wattage REAL NOT NULL,
		hours_per_day REAL NOT NULL,
		quantity INTEGER DEFAULT 1,
		selected INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS prediction_history (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		consumed_units REAL NOT NULL,
		bill_price REAL NOT NULL,
		prediction TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON prediction_history(timestamp);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SeedDefaults inserts the default appliance catalog for rows that do not
// already exist. Safe to call repeatedly; user edits are not overwritten.
func (s *Store) SeedDefaults() error {
	query := `INSERT OR IGNORE INTO appliances
		(id, name, category, efficiency, energy_rating, wattage, hours_per_day, quantity, selected)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)`

	for _, a := range engine.DefaultAppliances() {
		if _, err := s.db.Exec(query, a.ID, a.Name, string(a.Category), string(a.Efficiency),
			string(a.EnergyRating), a.Wattage, a.HoursPerDay, a.Quantity); err != nil {
			return fmt.Errorf("seeding %s: %w", a.Name, err)
		}
	}
	return nil
}

// SaveAppliance saves or updates an appliance, assigning an ID when missing
func (s *Store) SaveAppliance(a *engine.Appliance) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Quantity < 1 {
		a.Quantity = 1
	}

	query := `INSERT OR REPLACE INTO appliances
		(id, name, category, efficiency, energy_rating, wattage, hours_per_day, quantity, selected, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query, a.ID, a.Name, string(a.Category), string(a.Efficiency),
		string(a.EnergyRating), a.Wattage, a.HoursPerDay, a.Quantity, boolToInt(a.Selected), time.Now())
	return err
}

// GetAppliance retrieves a single appliance by ID
func (s *Store) GetAppliance(id string) (*engine.Appliance, error) {
	query := `SELECT id, name, category, efficiency, energy_rating, wattage, hours_per_day, quantity, selected
		FROM appliances WHERE id = ?`

	var a engine.Appliance
	var category, efficiency, rating string
	var selectedInt int

	err := s.db.QueryRow(query, id).Scan(&a.ID, &a.Name, &category, &efficiency, &rating,
		&a.Wattage, &a.HoursPerDay, &a.Quantity, &selectedInt)
	if err != nil {
		return nil, err
	}

	a.Category = engine.Category(category)
	a.Efficiency = engine.Efficiency(efficiency)
	a.EnergyRating = engine.EnergyRating(rating)
	a.Selected = selectedInt == 1

	return &a, nil
}

// GetAppliances retrieves the whole appliance catalog
func (s *Store) GetAppliances() ([]engine.Appliance, error) {
	query := `SELECT id, name, category, efficiency, energy_rating, wattage, hours_per_day, quantity, selected
		FROM appliances ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appliances := []engine.Appliance{}
	for rows.Next() {
		var a engine.Appliance
		var category, efficiency, rating string
		var selectedInt int

		if err := rows.Scan(&a.ID, &a.Name, &category, &efficiency, &rating,
			&a.Wattage, &a.HoursPerDay, &a.Quantity, &selectedInt); err != nil {
			return nil, err
		}

		a.Category = engine.Category(category)
		a.Efficiency = engine.Efficiency(efficiency)
		a.EnergyRating = engine.EnergyRating(rating)
		a.Selected = selectedInt == 1

		appliances = append(appliances, a)
	}

	return appliances, rows.Err()
}

// SelectedAppliances returns only the appliances marked for estimation
func (s *Store) SelectedAppliances() ([]engine.Appliance, error) {
	all, err := s.GetAppliances()
	if err != nil {
		return nil, err
	}
	selected := []engine.Appliance{}
	for _, a := range all {
		if a.Selected {
			selected = append(selected, a)
		}
	}
	return selected, nil
}

// DeleteAppliance deletes an appliance by ID
func (s *Store) DeleteAppliance(id string) error {
	_, err := s.db.Exec(`DELETE FROM appliances WHERE id = ?`, id)
	return err
}

// AppendHistory stores one prediction run and prunes the log down to
// HistoryCap entries, newest kept.
func (s *Store) AppendHistory(e *engine.HistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	query := `INSERT INTO prediction_history (id, timestamp, consumed_units, bill_price, prediction)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.Exec(query, e.ID, e.Timestamp.Format(time.RFC3339), e.ConsumedUnits, e.BillPrice, e.Prediction); err != nil {
		return err
	}

	_, err := s.PruneHistory(HistoryCap)
	return err
}

// GetHistory returns the history log, newest first
func (s *Store) GetHistory() ([]engine.HistoryEntry, error) {
	query := `SELECT id, timestamp, consumed_units, bill_price, prediction
		FROM prediction_history ORDER BY timestamp DESC, id DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []engine.HistoryEntry{}
	for rows.Next() {
		var e engine.HistoryEntry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.ConsumedUnits, &e.BillPrice, &e.Prediction); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.Timestamp = t
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// DeleteHistoryEntry deletes a single history entry by ID
func (s *Store) DeleteHistoryEntry(id string) error {
	_, err := s.db.Exec(`DELETE FROM prediction_history WHERE id = ?`, id)
	return err
}

// PruneHistory deletes everything but the newest keep entries and reports
// how many rows were removed.
func (s *Store) PruneHistory(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.Exec(`DELETE FROM prediction_history WHERE id NOT IN (
		SELECT id FROM prediction_history ORDER BY timestamp DESC, id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// HistoryCount returns the current size of the history log
func (s *Store) HistoryCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM prediction_history`).Scan(&n)
	return n, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
