package ledger

import (
	"context"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/shopspring/decimal"
)

func (s *Service) UserSummary(ctx context.Context, caller domain.Caller) (ledger.UserSummary, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return ledger.UserSummary{}, err
	}
	return rec.Summary(), nil
}

func (s *Service) BalanceSummary(ctx context.Context, caller domain.Caller) ([]ledger.CurrencyBalance, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return nil, err
	}
	return rec.BalanceSummary(), nil
}

// CryptoBalances returns the balance summary restricted to crypto assets.
func (s *Service) CryptoBalances(ctx context.Context, caller domain.Caller) ([]ledger.CurrencyBalance, error) {
	all, err := s.BalanceSummary(ctx, caller)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.CurrencyBalance, 0, len(all))
	for _, b := range all {
		if b.Currency.IsCrypto() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Service) BalanceBreakdown(ctx context.Context, caller domain.Caller) (ledger.BalanceBreakdown, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return ledger.BalanceBreakdown{}, err
	}
	return rec.BalanceBreakdown(), nil
}

func (s *Service) PortfolioSummary(ctx context.Context, caller domain.Caller) (ledger.PortfolioSummary, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return ledger.PortfolioSummary{}, err
	}
	return rec.PortfolioSummary(), nil
}

func (s *Service) TotalBalanceUSD(ctx context.Context, caller domain.Caller) (decimal.Decimal, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return decimal.Zero, err
	}
	return rec.TotalBalanceUSD(), nil
}
