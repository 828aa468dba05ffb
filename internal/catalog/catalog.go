// Package catalog manages filament material presets. A preset carries the
// physical properties the analyzer needs (density, diameter) together with
// a default price per kilogram.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a material id does not exist.
var ErrNotFound = errors.New("material not found")

// Material is one filament preset.
type Material struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	DensityGCm3 float64 `json:"densityGCm3"`
	DiameterMm  float64 `json:"diameterMm"`
	CostPerKg   float64 `json:"costPerKg"`
	Notes       string  `json:"notes"`
	Active      bool    `json:"active"`
}

// Validate checks the fields a preset must carry to be usable.
func (m Material) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if m.DensityGCm3 <= 0 {
		return fmt.Errorf("density must be greater than 0")
	}
	if m.DiameterMm <= 0 {
		return fmt.Errorf("diameter must be greater than 0")
	}
	if m.CostPerKg < 0 {
		return fmt.Errorf("cost per kg must be 0 or greater")
	}
	return nil
}

// Catalog reads and writes material presets in SQLite.
type Catalog struct {
	db *sql.DB
}

// New wraps an opened database.
func New(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// List returns all presets, newest first.
func (c *Catalog) List() ([]Material, error) {
	rows, err := c.db.Query(`
		SELECT id, name, density_g_cm3, diameter_mm, cost_per_kg, COALESCE(notes, ''), active
		FROM materials
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]Material, 0)
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.DensityGCm3, &m.DiameterMm, &m.CostPerKg, &m.Notes, &m.Active); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}

	return materials, nil
}

// Get returns one preset by id.
func (c *Catalog) Get(id int64) (Material, error) {
	var m Material
	err := c.db.QueryRow(`
		SELECT id, name, density_g_cm3, diameter_mm, cost_per_kg, COALESCE(notes, ''), active
		FROM materials
		WHERE id = ?
	`, id).Scan(&m.ID, &m.Name, &m.DensityGCm3, &m.DiameterMm, &m.CostPerKg, &m.Notes, &m.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return Material{}, ErrNotFound
	}
	if err != nil {
		return Material{}, fmt.Errorf("query material: %w", err)
	}
	return m, nil
}

// Create inserts a preset and returns it with its assigned id.
func (c *Catalog) Create(m Material) (Material, error) {
	if err := m.Validate(); err != nil {
		return Material{}, err
	}

	result, err := c.db.Exec(`
		INSERT INTO materials (name, density_g_cm3, diameter_mm, cost_per_kg, notes, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, strings.TrimSpace(m.Name), m.DensityGCm3, m.DiameterMm, m.CostPerKg, m.Notes, m.Active)
	if err != nil {
		return Material{}, fmt.Errorf("insert material: %w", err)
	}

	m.ID, err = result.LastInsertId()
	if err != nil {
		return Material{}, fmt.Errorf("read inserted material id: %w", err)
	}
	return m, nil
}

// Update replaces a preset's fields.
func (c *Catalog) Update(m Material) error {
	if m.ID <= 0 {
		return fmt.Errorf("invalid material id")
	}
	if err := m.Validate(); err != nil {
		return err
	}

	result, err := c.db.Exec(`
		UPDATE materials
		SET
			name = ?,
			density_g_cm3 = ?,
			diameter_mm = ?,
			cost_per_kg = ?,
			notes = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, strings.TrimSpace(m.Name), m.DensityGCm3, m.DiameterMm, m.CostPerKg, m.Notes, m.Active, m.ID)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
