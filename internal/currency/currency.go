// Package currency holds the supported currency table and the
// proportional conversion applied to rate fields when the user switches
// currency.
package currency

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/printforge/printcost/internal/pricing"
)

// Currency describes one supported currency. Rate is relative to USD.
type Currency struct {
	Name   string  `yaml:"name" json:"name"`
	Symbol string  `yaml:"symbol" json:"symbol"`
	Rate   float64 `yaml:"rate" json:"rate"`
}

// Table maps currency codes to their definitions.
type Table map[string]Currency

// Defaults returns the built-in currency table.
func Defaults() Table {
	return Table{
		"USD": {Name: "US Dollar", Symbol: "$", Rate: 1.00},
		"PHP": {Name: "Philippine Peso", Symbol: "₱", Rate: 58.75},
		"EUR": {Name: "Euro", Symbol: "€", Rate: 0.92},
		"GBP": {Name: "British Pound", Symbol: "£", Rate: 0.79},
		"CAD": {Name: "Canadian Dollar", Symbol: "C$", Rate: 1.37},
		"AUD": {Name: "Australian Dollar", Symbol: "A$", Rate: 1.50},
		"JPY": {Name: "Japanese Yen", Symbol: "¥", Rate: 157.30},
	}
}

// Load reads a currency table from a YAML file. An empty path returns the
// built-in defaults.
func Load(path string) (Table, error) {
	if path == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read currency table: %w", err)
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse currency table: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("currency table %s defines no currencies", path)
	}
	for code, c := range table {
		if c.Rate <= 0 {
			return nil, fmt.Errorf("currency %s has non-positive rate %v", code, c.Rate)
		}
	}
	return table, nil
}

// Get looks up a currency by code.
func (t Table) Get(code string) (Currency, error) {
	c, ok := t[code]
	if !ok {
		return Currency{}, fmt.Errorf("unknown currency %q", code)
	}
	return c, nil
}

// Codes returns the supported codes in sorted order.
func (t Table) Codes() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Convert rewrites the four rate-bearing fields of a cost input from its
// current currency to the target one, proportionally by the two rates, and
// stamps the new currency code. Quantities (weight, times, percentages)
// are untouched.
func (t Table) Convert(in pricing.CostInput, to string) (pricing.CostInput, error) {
	from, err := t.Get(in.Currency)
	if err != nil {
		return in, err
	}
	target, err := t.Get(to)
	if err != nil {
		return in, err
	}

	factor := target.Rate / from.Rate
	in.FilamentPrice *= factor
	in.ElectricityCost *= factor
	in.LaborRate *= factor
	in.PostProcessingRate *= factor
	in.Currency = to
	return in, nil
}
