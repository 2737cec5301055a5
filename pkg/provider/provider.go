// Package provider defines the outbound data sources the ledger depends
// on. Implementations live in infra/provider.
package provider

import (
	"context"

	"github.com/amirasaad/finledger/pkg/bitcoin"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// Quote is one directed rate reported by an upstream source.
type Quote struct {
	From money.Code
	To   money.Code
	Rate decimal.Decimal
}

// RateFetcher reports current quotes from one upstream source.
type RateFetcher interface {
	// FetchRates returns the source's quotes. Any failure fails the
	// whole call; partial results are never returned.
	FetchRates(ctx context.Context) ([]Quote, error)

	// Name returns the provider's name for logging and identification.
	Name() string
}

// ChainSource reads address state from a Bitcoin data source.
type ChainSource interface {
	// Balance returns the confirmed balance of address in satoshis.
	Balance(ctx context.Context, address string) (uint64, error)

	// UTXOs returns the unspent outputs of address.
	UTXOs(ctx context.Context, address string) ([]bitcoin.UTXO, error)

	// Name returns the source's name for logging and identification.
	Name() string
}
