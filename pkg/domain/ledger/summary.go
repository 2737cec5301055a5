package ledger

import (
	"fmt"
	"strings"

	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// UserSummary counts the entities in a record.
type UserSummary struct {
	Transactions        int `json:"transactions"`
	Budgets             int `json:"budgets"`
	Goals               int `json:"goals"`
	UnreadNotifications int `json:"unread_notifications"`
	WalletAddresses     int `json:"wallet_addresses"`
}

// Summary returns the entity counts of the record.
func (r *Record) Summary() UserSummary {
	return UserSummary{
		Transactions:        len(r.Transactions),
		Budgets:             len(r.Budgets),
		Goals:               len(r.Goals),
		UnreadNotifications: r.UnreadCount(),
		WalletAddresses:     len(r.WalletAddresses),
	}
}

// CurrencyBalance is the lifetime income, expense and balance in one currency.
type CurrencyBalance struct {
	Currency money.Code      `json:"currency"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Balance  decimal.Decimal `json:"balance"`
}

// BalanceSummary returns one entry per supported currency.
func (r *Record) BalanceSummary() []CurrencyBalance {
	out := make([]CurrencyBalance, 0, len(money.Supported()))
	for _, c := range money.Supported() {
		out = append(out, CurrencyBalance{
			Currency: c,
			Income:   r.TotalIncome(c, ""),
			Expense:  r.TotalExpense(c, ""),
			Balance:  r.Balances[c],
		})
	}
	return out
}

// AssetValue is a balance and its USD value. Priced is false when the
// rate needed for the valuation is not loaded, in which case USDValue is zero.
type AssetValue struct {
	Currency money.Code      `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	USDValue decimal.Decimal `json:"usd_value"`
	Priced   bool            `json:"priced"`
}

// BalanceBreakdown values every balance in USD using the record's rate snapshot.
type BalanceBreakdown struct {
	Assets         []AssetValue    `json:"assets"`
	TotalUSD       decimal.Decimal `json:"total_usd_value"`
	IsNegative     bool            `json:"is_negative"`
	NegativeReason string          `json:"negative_reason,omitempty"`
}

// usdValue converts balance in c to USD with the snapshot rates.
func (rates CurrencyRates) usdValue(c money.Code, balance decimal.Decimal) (decimal.Decimal, bool) {
	switch c {
	case money.USD:
		return balance, true
	case money.IDR:
		if rates.USDToIDR.IsPositive() {
			return balance.Div(rates.USDToIDR), true
		}
	case money.BTC:
		if rates.BTCToUSD.IsPositive() {
			return balance.Mul(rates.BTCToUSD), true
		}
	case money.ETH:
		if rates.ETHToUSD.IsPositive() {
			return balance.Mul(rates.ETHToUSD), true
		}
	case money.SOL:
		if rates.SOLToUSD.IsPositive() {
			return balance.Mul(rates.SOLToUSD), true
		}
	}
	return decimal.Zero, false
}

// BalanceBreakdown returns the USD valuation of every supported asset.
func (r *Record) BalanceBreakdown() BalanceBreakdown {
	bd := BalanceBreakdown{Assets: make([]AssetValue, 0, len(money.Supported()))}
	total := decimal.Zero
	for _, c := range money.Supported() {
		bal := r.Balances[c]
		v, ok := r.CurrencyRates.usdValue(c, bal)
		bd.Assets = append(bd.Assets, AssetValue{Currency: c, Balance: bal, USDValue: v, Priced: ok})
		total = total.Add(v)
	}
	bd.TotalUSD = total
	if total.IsNegative() {
		bd.IsNegative = true
		parts := make([]string, 0, len(bd.Assets))
		for _, a := range bd.Assets {
			parts = append(parts, fmt.Sprintf("%s $%s", a.Currency, a.USDValue.StringFixed(2)))
		}
		bd.NegativeReason = "Total balance is negative: " + strings.Join(parts, ", ")
	}
	return bd
}

// TotalBalanceUSD returns the USD value of every balance.
func (r *Record) TotalBalanceUSD() decimal.Decimal {
	return r.BalanceBreakdown().TotalUSD
}

// PortfolioSummary is the allocation view of a record.
type PortfolioSummary struct {
	TotalUSD             decimal.Decimal                `json:"total_value_usd"`
	TotalIDR             decimal.Decimal                `json:"total_value_idr"`
	Allocation           map[money.Code]decimal.Decimal `json:"asset_allocation"`
	Breakdown            BalanceBreakdown               `json:"balance_breakdown"`
	DiversificationScore decimal.Decimal                `json:"diversification_score"`
}

// PortfolioSummary returns allocation percentages per asset and a
// diversification score of 100 minus the largest allocation, or 0 when
// fewer than two assets are held. Allocations are only computed for a
// positive total.
func (r *Record) PortfolioSummary() PortfolioSummary {
	bd := r.BalanceBreakdown()
	ps := PortfolioSummary{
		TotalUSD:             bd.TotalUSD,
		TotalIDR:             decimal.Zero,
		Allocation:           make(map[money.Code]decimal.Decimal),
		Breakdown:            bd,
		DiversificationScore: decimal.Zero,
	}
	if r.CurrencyRates.USDToIDR.IsPositive() {
		ps.TotalIDR = bd.TotalUSD.Mul(r.CurrencyRates.USDToIDR)
	}
	if !bd.TotalUSD.IsPositive() {
		return ps
	}
	largest := decimal.Zero
	held := 0
	for _, a := range bd.Assets {
		share := percent(a.USDValue, bd.TotalUSD)
		ps.Allocation[a.Currency] = share
		if share.IsPositive() {
			held++
		}
		if share.GreaterThan(largest) {
			largest = share
		}
	}
	if held > 1 {
		ps.DiversificationScore = decimal.Max(decimal.Zero, decimal.NewFromInt(100).Sub(largest))
	}
	return ps
}
