package currency

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/printforge/printcost/internal/pricing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestConvert_RateFieldsScaleProportionally(t *testing.T) {
	table := Table{
		"USD": {Name: "US Dollar", Symbol: "$", Rate: 1},
		"PHP": {Name: "Philippine Peso", Symbol: "₱", Rate: 58.75},
	}

	in := pricing.CostInput{
		Currency:           "USD",
		FilamentPrice:      25,
		ElectricityCost:    0.15,
		LaborRate:          15,
		PostProcessingRate: 10,
		FilamentWeight:     50,
		Markup:             200,
	}

	out, err := table.Convert(in, "PHP")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	nearlyEqual(t, "filamentPrice", out.FilamentPrice, 25*58.75)
	nearlyEqual(t, "electricityCost", out.ElectricityCost, 0.15*58.75)
	nearlyEqual(t, "laborRate", out.LaborRate, 15*58.75)
	nearlyEqual(t, "postProcessingRate", out.PostProcessingRate, 10*58.75)

	// Quantities and percentages must not change.
	nearlyEqual(t, "filamentWeight", out.FilamentWeight, 50)
	nearlyEqual(t, "markup", out.Markup, 200)
	if out.Currency != "PHP" {
		t.Fatalf("currency = %q, want PHP", out.Currency)
	}
}

func TestConvert_RoundTripRestoresValues(t *testing.T) {
	table := Defaults()
	in := pricing.CostInput{Currency: "USD", FilamentPrice: 25, LaborRate: 15}

	eur, err := table.Convert(in, "EUR")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	back, err := table.Convert(eur, "USD")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	nearlyEqual(t, "filamentPrice", back.FilamentPrice, 25)
	nearlyEqual(t, "laborRate", back.LaborRate, 15)
}

func TestConvert_UnknownCurrency(t *testing.T) {
	table := Defaults()

	if _, err := table.Convert(pricing.CostInput{Currency: "USD"}, "XXX"); err == nil {
		t.Fatalf("expected error for unknown target currency")
	}
	if _, err := table.Convert(pricing.CostInput{Currency: "XXX"}, "USD"); err == nil {
		t.Fatalf("expected error for unknown source currency")
	}
}

func TestLoad_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currencies.yaml")
	content := []byte(`
USD:
  name: US Dollar
  symbol: "$"
  rate: 1.0
MXN:
  name: Mexican Peso
  symbol: "$"
  rate: 18.2
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	mxn, err := table.Get("MXN")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	nearlyEqual(t, "rate", mxn.Rate, 18.2)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	table, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := table.Get("USD"); err != nil {
		t.Fatalf("defaults missing USD: %v", err)
	}
	if len(table.Codes()) != 7 {
		t.Fatalf("defaults define %d currencies, want 7", len(table.Codes()))
	}
}

func TestLoad_RejectsNonPositiveRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currencies.yaml")
	if err := os.WriteFile(path, []byte("USD:\n  name: US Dollar\n  symbol: \"$\"\n  rate: 0\n"), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for zero rate")
	}
}
