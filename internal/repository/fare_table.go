package repository

import (
	"github.com/railbook/railbook/internal/domain"
)

// MemoryFareTable implements FareTable over a fixed set of fares. The table
// is built once at startup and is read-only afterwards, so no locking is
// needed.
type MemoryFareTable struct {
	prices map[domain.Journey]float64
}

// NewMemoryFareTable builds a fare table from the given fares. Later entries
// for the same journey overwrite earlier ones.
func NewMemoryFareTable(fares []domain.Fare) *MemoryFareTable {
	prices := make(map[domain.Journey]float64, len(fares))
	for _, fare := range fares {
		prices[fare.Journey.Normalized()] = fare.Price
	}
	return &MemoryFareTable{prices: prices}
}

// PriceFor returns the fare for the journey, matching stations
// case-insensitively. The second return is false for unknown journeys;
// callers must treat that as a failure, never as a zero fare.
func (t *MemoryFareTable) PriceFor(from, to string) (float64, bool) {
	price, exists := t.prices[domain.Journey{From: from, To: to}.Normalized()]
	return price, exists
}
