// Package history persists saved calculations. The whole collection is
// small and read as one unit, so stores keep it under a single key rather
// than one record per key.
package history

import (
	"errors"
	"time"

	"github.com/printforge/printcost/internal/currency"
	"github.com/printforge/printcost/internal/pricing"
)

// ErrNotFound is returned when no entry carries the requested id.
var ErrNotFound = errors.New("history entry not found")

// Entry is one saved calculation: the inputs, the breakdown they produced,
// and the currency it was priced in at save time.
type Entry struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Data      pricing.CostInput `json:"data"`
	Costs     pricing.Breakdown `json:"costs"`
	Currency  currency.Currency `json:"currency"`
}

// Store is the persistence boundary for saved calculations. Append and
// Remove are the only mutations.
type Store interface {
	// List returns all entries in insertion order.
	List() ([]Entry, error)

	// Append adds an entry to the collection.
	Append(e Entry) error

	// Remove deletes the entry with the given id. Removing an unknown id
	// returns ErrNotFound.
	Remove(id string) error
}

// Find returns the entry with the given id from a listing.
func Find(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
