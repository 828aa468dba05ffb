package seed

import (
	"database/sql"
	"fmt"
)

// defaultMaterials are the filament presets installed on first start.
// Densities are the commonly published values per polymer.
var defaultMaterials = []struct {
	name      string
	density   float64
	diameter  float64
	costPerKg float64
}{
	{"PLA (Generic)", 1.24, 1.75, 20},
	{"PETG (Generic)", 1.27, 1.75, 22},
	{"ABS (Generic)", 1.04, 1.75, 18},
	{"TPU (Generic)", 1.21, 1.75, 30},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run installs the default material presets in an idempotent way: presets
// already present (by name) are left untouched, including any edits the
// user made to them.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, m := range defaultMaterials {
		if err := ensureMaterial(tx, m.name, m.density, m.diameter, m.costPerKg, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureMaterial(tx *sql.Tx, name string, density, diameter, costPerKg float64, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM materials WHERE name = ? LIMIT 1)`, name).Scan(&exists); err != nil {
		return fmt.Errorf("check material existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO materials (name, density_g_cm3, diameter_mm, cost_per_kg, notes, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, name, density, diameter, costPerKg, "", true); err != nil {
		return fmt.Errorf("insert material preset: %w", err)
	}
	stats.Inserts++
	return nil
}
