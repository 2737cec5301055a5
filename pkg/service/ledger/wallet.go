package ledger

import (
	"context"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
)

func (s *Service) SetWalletAddress(ctx context.Context, caller domain.Caller, chain, address string) error {
	return s.mutate(ctx, caller, "SetWalletAddress", func(rec *ledger.Record, _ time.Time) error {
		return rec.SetWalletAddress(chain, address, s.network)
	})
}

func (s *Service) WalletAddress(ctx context.Context, caller domain.Caller, chain string) (string, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return "", err
	}
	return rec.WalletAddress(chain)
}

func (s *Service) ListWalletAddresses(ctx context.Context, caller domain.Caller) ([]ledger.WalletAddress, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return nil, err
	}
	return rec.ListWalletAddresses(), nil
}

func (s *Service) DeleteWalletAddress(ctx context.Context, caller domain.Caller, chain string) error {
	return s.mutate(ctx, caller, "DeleteWalletAddress", func(rec *ledger.Record, _ time.Time) error {
		return rec.DeleteWalletAddress(chain)
	})
}
