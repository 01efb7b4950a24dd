package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store persists sector definitions in SQLite. The engine only ever reads
// from it; writes happen once, when an empty database is seeded from the
// built-in defaults.
type Store struct {
	conn *sql.DB
	log  zerolog.Logger
}

// OpenStore opens (creating if needed) the catalog database at path and
// seeds it from DefaultSectors when empty.
func OpenStore(path string, log zerolog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	s := &Store{
		conn: conn,
		log:  log.With().Str("store", "catalog").Logger(),
	}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := s.seedIfEmpty(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS catalog_snapshots (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	CREATE TABLE IF NOT EXISTS sectors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		margin_min REAL NOT NULL,
		margin_max REAL NOT NULL,
		multiple_min REAL NOT NULL,
		multiple_max REAL NOT NULL,
		growth_min REAL NOT NULL,
		growth_max REAL NOT NULL,
		revenue_min INTEGER NOT NULL,
		revenue_max INTEGER NOT NULL,
		quality_ceiling INTEGER NOT NULL,
		capex_rate REAL NOT NULL,
		client_concentration TEXT NOT NULL,
		sub_types TEXT NOT NULL,
		affinity_groups TEXT NOT NULL,
		sub_type_modifiers TEXT NOT NULL,
		position INTEGER NOT NULL
	);`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to run catalog migrations: %w", err)
	}
	return nil
}

func (s *Store) seedIfEmpty() error {
	var count int
	if err := s.conn.QueryRow("SELECT COUNT(*) FROM sectors").Scan(&count); err != nil {
		return fmt.Errorf("failed to count sectors: %w", err)
	}
	if count > 0 {
		return nil
	}

	sectors := DefaultSectors()
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for i, sec := range sectors {
		subTypes, _ := json.Marshal(sec.SubTypes)
		groups, _ := json.Marshal(sec.AffinityGroups)
		modifiers, _ := json.Marshal(sec.SubTypeModifiers)
		_, err := tx.Exec(`
			INSERT INTO sectors
			    (id, name, margin_min, margin_max, multiple_min, multiple_max,
			     growth_min, growth_max, revenue_min, revenue_max,
			     quality_ceiling, capex_rate, client_concentration,
			     sub_types, affinity_groups, sub_type_modifiers, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sec.ID, sec.Name,
			sec.MarginRange.Min, sec.MarginRange.Max,
			sec.MultipleRange.Min, sec.MultipleRange.Max,
			sec.GrowthRange.Min, sec.GrowthRange.Max,
			sec.RevenueRange.Min, sec.RevenueRange.Max,
			sec.QualityCeiling, sec.CapexRate, string(sec.ClientConcentration),
			string(subTypes), string(groups), string(modifiers), i,
		)
		if err != nil {
			return fmt.Errorf("failed to seed sector %s: %w", sec.ID, err)
		}
	}
	if _, err := tx.Exec("INSERT INTO catalog_snapshots (id) VALUES (?)", uuid.NewString()); err != nil {
		return fmt.Errorf("failed to record catalog snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog seed: %w", err)
	}

	s.log.Info().Int("sectors", len(sectors)).Msg("Seeded sector catalog from defaults")
	return nil
}

// Load reads the full catalog into an immutable in-memory view
func (s *Store) Load() (*MemoryCatalog, error) {
	rows, err := s.conn.Query(`
		SELECT id, name, margin_min, margin_max, multiple_min, multiple_max,
		       growth_min, growth_max, revenue_min, revenue_max,
		       quality_ceiling, capex_rate, client_concentration,
		       sub_types, affinity_groups, sub_type_modifiers
		FROM sectors
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sectors: %w", err)
	}
	defer rows.Close()

	var sectors []Sector
	for rows.Next() {
		var sec Sector
		var concentration, subTypes, groups, modifiers string
		if err := rows.Scan(
			&sec.ID, &sec.Name,
			&sec.MarginRange.Min, &sec.MarginRange.Max,
			&sec.MultipleRange.Min, &sec.MultipleRange.Max,
			&sec.GrowthRange.Min, &sec.GrowthRange.Max,
			&sec.RevenueRange.Min, &sec.RevenueRange.Max,
			&sec.QualityCeiling, &sec.CapexRate, &concentration,
			&subTypes, &groups, &modifiers,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		sec.ClientConcentration = ConcentrationTier(concentration)
		if err := json.Unmarshal([]byte(subTypes), &sec.SubTypes); err != nil {
			return nil, fmt.Errorf("failed to decode sub_types for %s: %w", sec.ID, err)
		}
		if err := json.Unmarshal([]byte(groups), &sec.AffinityGroups); err != nil {
			return nil, fmt.Errorf("failed to decode affinity_groups for %s: %w", sec.ID, err)
		}
		if err := json.Unmarshal([]byte(modifiers), &sec.SubTypeModifiers); err != nil {
			return nil, fmt.Errorf("failed to decode sub_type_modifiers for %s: %w", sec.ID, err)
		}
		sectors = append(sectors, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sectors: %w", err)
	}
	return NewMemoryCatalog(sectors), nil
}
