package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/printforge/printcost/internal/gcode"
	"github.com/printforge/printcost/internal/history"
	"github.com/printforge/printcost/internal/pricing"
)

// defaultCostInput is the starting point for estimates produced by the
// drop folder, where no user is present to fill in the form.
func defaultCostInput() pricing.CostInput {
	return pricing.CostInput{
		Currency:         "USD",
		FilamentDiameter: gcode.DefaultDiameterMm,
		FilamentWeight:   50,
		FilamentPrice:    25,

		IncludeElectricity: true,
		PrintTimeHours:     4,
		ElectricityCost:    0.15,

		IncludeLabor:     true,
		LaborTimeMinutes: 30,
		LaborRate:        15,

		IncludePostProcessing: true,
		PostProcessingHours:   1,
		PostProcessingRate:    10,

		Markup: 200,
	}
}

// handleDroppedFile analyzes a file that appeared in the drop folder and
// saves an estimate for it using the default cost parameters.
func (s *server) handleDroppedFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("drop folder: read %s: %v", path, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), deepScanTimeout)
	defer cancel()

	result, err := s.analyzer.Analyze(ctx, filepath.Base(path), content)
	if err != nil {
		log.Printf("drop folder: analyze %s: %v", path, err)
		return
	}

	in := defaultCostInput()
	in.PrintName = result.JobName
	in.FilamentWeight = gcode.ResolveWeight(result.Extraction, in.FilamentWeight, in.FilamentDiameter, gcode.DefaultDensityGPerCm3)
	in.PrintTimeHours, in.PrintTimeMinutes, in.PrintTimeSeconds = gcode.SplitTime(result.Extraction)

	cur, err := s.currencies.Get(in.Currency)
	if err != nil {
		log.Printf("drop folder: %v", err)
		return
	}

	entry := history.Entry{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Data:      in,
		Costs:     pricing.Calculate(in),
		Currency:  cur,
	}
	if err := s.history.Append(entry); err != nil {
		log.Printf("drop folder: save estimate for %s: %v", path, err)
		return
	}

	log.Printf("drop folder: saved estimate %q (%s, final price %.2f %s)",
		in.PrintName, result.Method, entry.Costs.FinalPrice, in.Currency)
}
