package catalog

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/printforge/printcost/internal/db"
	"github.com/printforge/printcost/internal/migrations"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "catalog-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return New(database)
}

func TestCreateGetUpdate(t *testing.T) {
	t.Parallel()

	c := openTestCatalog(t)

	created, err := c.Create(Material{
		Name:        "PETG (Generic)",
		DensityGCm3: 1.27,
		DiameterMm:  1.75,
		CostPerKg:   22,
		Active:      true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("created id = %d, want > 0", created.ID)
	}

	got, err := c.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "PETG (Generic)" || got.DensityGCm3 != 1.27 {
		t.Fatalf("unexpected material: %+v", got)
	}

	got.CostPerKg = 19.5
	got.Active = false
	if err := c.Update(got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	updated, err := c.Get(created.ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if updated.CostPerKg != 19.5 || updated.Active {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestList_NewestFirst(t *testing.T) {
	t.Parallel()

	c := openTestCatalog(t)

	for _, name := range []string{"PLA", "ABS"} {
		if _, err := c.Create(Material{Name: name, DensityGCm3: 1.1, DiameterMm: 1.75, CostPerKg: 20, Active: true}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	materials, err := c.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(materials) != 2 {
		t.Fatalf("List returned %d materials, want 2", len(materials))
	}
	if materials[0].Name != "ABS" {
		t.Fatalf("first material = %q, want newest (ABS)", materials[0].Name)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		m    Material
	}{
		{"empty name", Material{DensityGCm3: 1.24, DiameterMm: 1.75}},
		{"zero density", Material{Name: "PLA", DiameterMm: 1.75}},
		{"zero diameter", Material{Name: "PLA", DensityGCm3: 1.24}},
		{"negative cost", Material{Name: "PLA", DensityGCm3: 1.24, DiameterMm: 1.75, CostPerKg: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.m.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestGetUnknownID(t *testing.T) {
	t.Parallel()

	c := openTestCatalog(t)
	if _, err := c.Get(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	err := c.Update(Material{ID: 9999, Name: "PLA", DensityGCm3: 1.24, DiameterMm: 1.75})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("update err = %v, want ErrNotFound", err)
	}
}
