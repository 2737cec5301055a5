// Package cache defines the persistence contract of the shared rate table.
package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateEntry is one directed rate of a persisted table.
type RateEntry struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// RateSnapshot is a whole rate table as stored in a cache.
type RateSnapshot struct {
	Rates     []RateEntry `json:"rates"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RateTableCache stores the latest rate table so a restarted process can
// serve conversions before its first refresh. Load reports false on a miss.
type RateTableCache interface {
	Load(ctx context.Context) (RateSnapshot, bool, error)
	Save(ctx context.Context, snap RateSnapshot) error
}
