package exchange

import (
	"sort"
	"time"

	"github.com/amirasaad/finledger/pkg/cache"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/amirasaad/finledger/pkg/provider"
	"github.com/shopspring/decimal"
)

// Pair is an ordered currency pair.
type Pair struct {
	From money.Code
	To   money.Code
}

// Rate is one directed entry of a table.
type Rate struct {
	From money.Code     `json:"from"`
	To   money.Code     `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// Table is an immutable snapshot of exchange rates. Updates produce a new
// Table, so readers never observe a half-applied refresh.
type Table struct {
	rates     map[Pair]decimal.Decimal
	updatedAt time.Time
}

// NewTable returns a table holding a copy of rates.
func NewTable(rates map[Pair]decimal.Decimal, updatedAt time.Time) *Table {
	cp := make(map[Pair]decimal.Decimal, len(rates))
	for p, r := range rates {
		cp[p] = r
	}
	return &Table{rates: cp, updatedAt: updatedAt}
}

// Rate returns the stored rate for from→to.
func (t *Table) Rate(from, to money.Code) (decimal.Decimal, bool) {
	r, ok := t.rates[Pair{From: from, To: to}]
	return r, ok
}

// Len returns the number of stored rates.
func (t *Table) Len() int {
	return len(t.rates)
}

// UpdatedAt returns when the table was last changed.
func (t *Table) UpdatedAt() time.Time {
	return t.updatedAt
}

// Rates returns every entry ordered by pair.
func (t *Table) Rates() []Rate {
	out := make([]Rate, 0, len(t.rates))
	for p, r := range t.rates {
		out = append(out, Rate{From: p.From, To: p.To, Rate: r})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// with returns a copy of t with from→to set to rate.
func (t *Table) with(p Pair, rate decimal.Decimal, at time.Time) *Table {
	next := NewTable(t.rates, at)
	next.rates[p] = rate
	return next
}

// buildTable turns upstream quotes into a full table: each quote, its
// inverse, and every cross rate reachable through USD.
func buildTable(quotes []provider.Quote, at time.Time) *Table {
	one := decimal.NewFromInt(1)
	rates := make(map[Pair]decimal.Decimal)
	for _, q := range quotes {
		rates[Pair{From: q.From, To: q.To}] = q.Rate
		rates[Pair{From: q.To, To: q.From}] = one.Div(q.Rate)
	}
	for _, a := range money.Supported() {
		toUSD, ok := rates[Pair{From: a, To: money.USD}]
		if !ok {
			continue
		}
		for _, b := range money.Supported() {
			if a == b || b == money.USD {
				continue
			}
			fromUSD, ok := rates[Pair{From: money.USD, To: b}]
			if !ok {
				continue
			}
			if _, exists := rates[Pair{From: a, To: b}]; !exists {
				rates[Pair{From: a, To: b}] = toUSD.Mul(fromUSD)
			}
		}
	}
	return &Table{rates: rates, updatedAt: at}
}

// DefaultQuotes are the seed rates used before the first refresh when
// seeding is enabled.
func DefaultQuotes() []provider.Quote {
	return []provider.Quote{
		{From: money.USD, To: money.IDR, Rate: decimal.NewFromInt(15000)},
		{From: money.BTC, To: money.USD, Rate: decimal.NewFromInt(45000)},
	}
}

func (t *Table) snapshot() cache.RateSnapshot {
	rates := t.Rates()
	snap := cache.RateSnapshot{Rates: make([]cache.RateEntry, 0, len(rates)), UpdatedAt: t.updatedAt}
	for _, r := range rates {
		snap.Rates = append(snap.Rates, cache.RateEntry{From: r.From.String(), To: r.To.String(), Rate: r.Rate})
	}
	return snap
}

// tableFromSnapshot rebuilds a table, dropping entries outside the supported set.
func tableFromSnapshot(snap cache.RateSnapshot) *Table {
	rates := make(map[Pair]decimal.Decimal, len(snap.Rates))
	for _, e := range snap.Rates {
		from, to := money.Code(e.From), money.Code(e.To)
		if !from.IsValid() || !to.IsValid() || !e.Rate.IsPositive() {
			continue
		}
		rates[Pair{From: from, To: to}] = e.Rate
	}
	return &Table{rates: rates, updatedAt: snap.UpdatedAt}
}
