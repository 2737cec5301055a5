// Package mockprovider provides function-field fakes for the rate and chain
// provider interfaces.
package mockprovider

import (
	"context"
	"sync/atomic"

	"github.com/amirasaad/finledger/pkg/bitcoin"
	"github.com/amirasaad/finledger/pkg/provider"
)

// RateFetcher is a configurable provider.RateFetcher.
type RateFetcher struct {
	NameValue      string
	FetchRatesFunc func(ctx context.Context) ([]provider.Quote, error)

	calls atomic.Int32
}

var _ provider.RateFetcher = (*RateFetcher)(nil)

func (m *RateFetcher) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

func (m *RateFetcher) FetchRates(ctx context.Context) ([]provider.Quote, error) {
	m.calls.Add(1)
	if m.FetchRatesFunc != nil {
		return m.FetchRatesFunc(ctx)
	}
	return nil, nil
}

// Calls returns how many times FetchRates ran.
func (m *RateFetcher) Calls() int { return int(m.calls.Load()) }

// ChainSource is a configurable provider.ChainSource.
type ChainSource struct {
	BalanceFunc func(ctx context.Context, address string) (uint64, error)
	UTXOsFunc   func(ctx context.Context, address string) ([]bitcoin.UTXO, error)
}

var _ provider.ChainSource = (*ChainSource)(nil)

func (m *ChainSource) Name() string { return "mock-chain" }

func (m *ChainSource) Balance(ctx context.Context, address string) (uint64, error) {
	if m.BalanceFunc != nil {
		return m.BalanceFunc(ctx, address)
	}
	return 0, nil
}

func (m *ChainSource) UTXOs(ctx context.Context, address string) ([]bitcoin.UTXO, error) {
	if m.UTXOsFunc != nil {
		return m.UTXOsFunc(ctx, address)
	}
	return nil, nil
}
