package ledger

import (
	"context"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/exchange"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// Conversion is the result of converting an amount between two assets.
type Conversion struct {
	Amount    decimal.Decimal `json:"amount"`
	From      money.Code      `json:"from"`
	To        money.Code      `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	Converted decimal.Decimal `json:"converted_amount"`
}

// GetRate returns the stored rate for from→to.
func (s *Service) GetRate(from, to money.Code) (decimal.Decimal, error) {
	return s.rates.GetRate(from, to)
}

// Convert converts amount with the stored rate.
func (s *Service) Convert(amount decimal.Decimal, from, to money.Code) (Conversion, error) {
	rate, err := s.rates.GetRate(from, to)
	if err != nil {
		return Conversion{}, err
	}
	converted, err := s.rates.Convert(amount, from, to)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{Amount: amount, From: from, To: to, Rate: rate, Converted: converted}, nil
}

// ListRates returns every stored pair.
func (s *Service) ListRates() []exchange.Rate {
	return s.rates.ListRates()
}

// SetRate overrides one pair of the shared table.
func (s *Service) SetRate(ctx context.Context, caller domain.Caller, from, to money.Code, rate decimal.Decimal) error {
	logger := s.logger.With("context", "SetRate", "caller", caller.String(), "from", from, "to", to)
	if caller.IsAnonymous() {
		return domain.ErrAuthenticationRequired
	}
	if err := s.rates.SetRate(ctx, from, to, rate); err != nil {
		logger.Error("SetRate failed", "error", err)
		return err
	}
	logger.Info("Rate overridden", "rate", rate)
	return nil
}

// FetchRealTimeRates refreshes the shared table from the upstream
// providers and stores the resulting snapshot in the caller's record.
// Nothing changes when any provider fails.
func (s *Service) FetchRealTimeRates(ctx context.Context, caller domain.Caller) ([]exchange.Rate, error) {
	logger := s.logger.With("context", "FetchRealTimeRates", "caller", caller.String())
	if caller.IsAnonymous() {
		return nil, domain.ErrAuthenticationRequired
	}
	table, err := s.rates.Refresh(ctx)
	if err != nil {
		logger.Error("Refresh failed", "error", err)
		return nil, err
	}
	snapshot := currencyRatesFrom(table)
	if err := s.mutate(ctx, caller, "FetchRealTimeRates", func(rec *ledger.Record, now time.Time) error {
		return rec.SetCurrencyRates(snapshot, now)
	}); err != nil {
		return nil, err
	}
	logger.Info("Rates refreshed", "pairs", table.Len())
	return table.Rates(), nil
}

// currencyRatesFrom picks the valuation rates out of a table. Missing
// pairs stay zero.
func currencyRatesFrom(t *exchange.Table) ledger.CurrencyRates {
	pick := func(from, to money.Code) decimal.Decimal {
		r, _ := t.Rate(from, to)
		return r
	}
	return ledger.CurrencyRates{
		USDToIDR: pick(money.USD, money.IDR),
		BTCToUSD: pick(money.BTC, money.USD),
		ETHToUSD: pick(money.ETH, money.USD),
		SOLToUSD: pick(money.SOL, money.USD),
	}
}

// CurrencyRates returns the caller's valuation snapshot.
func (s *Service) CurrencyRates(ctx context.Context, caller domain.Caller) (ledger.CurrencyRates, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return ledger.CurrencyRates{}, err
	}
	return rec.CurrencyRates, nil
}

// SetCurrencyRates replaces the caller's valuation snapshot.
func (s *Service) SetCurrencyRates(
	ctx context.Context,
	caller domain.Caller,
	rates ledger.CurrencyRates,
) (stored ledger.CurrencyRates, err error) {
	err = s.mutate(ctx, caller, "SetCurrencyRates", func(rec *ledger.Record, now time.Time) error {
		if err := rec.SetCurrencyRates(rates, now); err != nil {
			return err
		}
		stored = rec.CurrencyRates
		return nil
	})
	return stored, err
}
