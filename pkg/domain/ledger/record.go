// Package ledger holds a single caller's financial record and the engines
// that validate and mutate it. Everything here is pure: no I/O, no clocks.
// Callers pass the current time where an operation stamps timestamps.
package ledger

import (
	"time"

	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// Record is the complete per-caller ledger.
//
// Invariant: for every currency C, Balances[C] equals the sum of incoming
// amounts minus the sum of outgoing amounts over the transactions present
// in C. Every mutation path in this package preserves it.
type Record struct {
	Transactions    []Transaction                  `json:"transactions"`
	Budgets         []Budget                       `json:"budgets"`
	Goals           []Goal                         `json:"goals"`
	Notifications   []Notification                 `json:"notifications"`
	Balances        map[money.Code]decimal.Decimal `json:"balances"`
	WalletAddresses map[string]string              `json:"wallet_addresses"`
	CurrencyRates   CurrencyRates                  `json:"currency_rates"`

	NextTxID           uint64 `json:"next_tx_id"`
	NextBudgetID       uint64 `json:"next_budget_id"`
	NextGoalID         uint64 `json:"next_goal_id"`
	NextNotificationID uint64 `json:"next_notification_id"`
}

// CurrencyRates is the caller's snapshot of the rates used for portfolio
// valuation. A zero rate means "not loaded".
type CurrencyRates struct {
	USDToIDR    decimal.Decimal `json:"usd_to_idr"`
	BTCToUSD    decimal.Decimal `json:"btc_to_usd"`
	ETHToUSD    decimal.Decimal `json:"eth_to_usd"`
	SOLToUSD    decimal.Decimal `json:"sol_to_usd"`
	LastUpdated time.Time       `json:"last_updated"`
}

// Loaded reports whether every rate in the snapshot has been set.
func (r CurrencyRates) Loaded() bool {
	return r.USDToIDR.IsPositive() && r.BTCToUSD.IsPositive() &&
		r.ETHToUSD.IsPositive() && r.SOLToUSD.IsPositive()
}

// NewRecord returns the zero-value default record of a caller that has
// never written anything.
func NewRecord() *Record {
	r := &Record{}
	r.ensure()
	return r
}

// ensure initialises nil collections, e.g. after decoding an old blob.
func (r *Record) ensure() {
	if r.Transactions == nil {
		r.Transactions = []Transaction{}
	}
	if r.Budgets == nil {
		r.Budgets = []Budget{}
	}
	if r.Goals == nil {
		r.Goals = []Goal{}
	}
	if r.Notifications == nil {
		r.Notifications = []Notification{}
	}
	if r.Balances == nil {
		r.Balances = make(map[money.Code]decimal.Decimal)
	}
	if r.WalletAddresses == nil {
		r.WalletAddresses = make(map[string]string)
	}
}

// Reset returns the record to its default state.
func (r *Record) Reset() {
	*r = Record{}
	r.ensure()
}

// SetCurrencyRates replaces the caller's rate snapshot. Rates must be
// non-negative; a zero rate marks that pair as not loaded.
func (r *Record) SetCurrencyRates(rates CurrencyRates, now time.Time) error {
	for name, v := range map[string]decimal.Decimal{
		"usd_to_idr": rates.USDToIDR,
		"btc_to_usd": rates.BTCToUSD,
		"eth_to_usd": rates.ETHToUSD,
		"sol_to_usd": rates.SOLToUSD,
	} {
		if v.IsNegative() {
			return validationNegative(name)
		}
	}
	rates.LastUpdated = now
	r.CurrencyRates = rates
	return nil
}
