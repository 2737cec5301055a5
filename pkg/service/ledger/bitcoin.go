package ledger

import (
	"context"
	"time"

	"github.com/amirasaad/finledger/pkg/bitcoin"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/shopspring/decimal"
)

// BitcoinBalance is the on-chain balance of the caller's BTC address.
type BitcoinBalance struct {
	Address   string          `json:"address"`
	Satoshis  uint64          `json:"satoshis"`
	BTC       decimal.Decimal `json:"btc"`
	Formatted string          `json:"formatted"`
}

func (s *Service) btcAddress(ctx context.Context, caller domain.Caller) (string, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return "", err
	}
	return rec.WalletAddress(ledger.ChainBTC)
}

// BitcoinBalance asks the chain source for the balance of the caller's
// registered BTC address.
func (s *Service) BitcoinBalance(ctx context.Context, caller domain.Caller) (BitcoinBalance, error) {
	addr, err := s.btcAddress(ctx, caller)
	if err != nil {
		return BitcoinBalance{}, err
	}
	sats, err := s.chain.Balance(ctx, addr)
	if err != nil {
		s.logger.Error("Balance fetch failed", "caller", caller.String(), "source", s.chain.Name(), "error", err)
		return BitcoinBalance{}, err
	}
	btc := bitcoin.SatoshisToBTC(sats)
	return BitcoinBalance{Address: addr, Satoshis: sats, BTC: btc, Formatted: bitcoin.FormatAmount(btc)}, nil
}

// FetchUTXOs lists the unspent outputs of the caller's BTC address.
func (s *Service) FetchUTXOs(ctx context.Context, caller domain.Caller) ([]bitcoin.UTXO, error) {
	addr, err := s.btcAddress(ctx, caller)
	if err != nil {
		return nil, err
	}
	utxos, err := s.chain.UTXOs(ctx, addr)
	if err != nil {
		s.logger.Error("UTXO fetch failed", "caller", caller.String(), "source", s.chain.Name(), "error", err)
		return nil, err
	}
	return utxos, nil
}

// SyncBitcoin records every new UTXO of the caller's BTC address as an
// incoming transaction. The UTXOs are fetched before the record is
// updated; if the address changed in between the sync fails with a
// conflict instead of recording outputs of the old address.
func (s *Service) SyncBitcoin(ctx context.Context, caller domain.Caller) (res ledger.SyncResult, err error) {
	logger := s.logger.With("context", "SyncBitcoin", "caller", caller.String())
	if caller.IsAnonymous() {
		return res, domain.ErrAuthenticationRequired
	}
	addr, err := s.btcAddress(ctx, caller)
	if err != nil {
		return res, err
	}
	utxos, err := s.chain.UTXOs(ctx, addr)
	if err != nil {
		logger.Error("UTXO fetch failed", "source", s.chain.Name(), "error", err)
		return res, err
	}

	err = s.mutate(ctx, caller, "SyncBitcoin", func(rec *ledger.Record, now time.Time) error {
		current, err := rec.WalletAddress(ledger.ChainBTC)
		if err != nil {
			return err
		}
		if current != addr {
			return domain.Conflictf("BTC address changed during sync")
		}
		res, err = rec.SyncUTXOs(utxos, now)
		return err
	})
	if err != nil {
		return ledger.SyncResult{}, err
	}
	logger.Info("Sync completed", "fetched", res.Fetched, "recorded", res.Recorded, "skipped", res.Skipped)
	return res, nil
}
