package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/printforge/printcost/internal/pricing"
)

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var in pricing.CostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid cost input")
		return
	}

	if err := validateCostInput(in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pricing.Calculate(in))
}

func (s *server) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currencies)
}

type convertRequest struct {
	Data pricing.CostInput `json:"data"`
	To   string            `json:"to"`
}

// handleConvert rewrites the rate-bearing fields of a cost input into a
// new currency.
func (s *server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversion request")
		return
	}

	converted, err := s.currencies.Convert(req.Data, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, converted)
}

func validateCostInput(in pricing.CostInput) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"filamentWeight", in.FilamentWeight},
		{"filamentPrice", in.FilamentPrice},
		{"electricityCost", in.ElectricityCost},
		{"laborRate", in.LaborRate},
		{"postProcessingRate", in.PostProcessingRate},
		{"markup", in.Markup},
		{"printTimeHours", float64(in.PrintTimeHours)},
		{"printTimeMinutes", float64(in.PrintTimeMinutes)},
		{"printTimeSeconds", float64(in.PrintTimeSeconds)},
		{"laborTimeHours", float64(in.LaborTimeHours)},
		{"laborTimeMinutes", float64(in.LaborTimeMinutes)},
		{"postProcessingHours", float64(in.PostProcessingHours)},
		{"postProcessingMinutes", float64(in.PostProcessingMinutes)},
	}

	for _, c := range checks {
		if c.value < 0 {
			return fmt.Errorf("%s must be 0 or greater", c.name)
		}
	}
	return nil
}
