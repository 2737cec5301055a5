// Package ledger is the caller-facing service of the finance ledger. Every
// operation takes the caller explicitly: mutations reject the anonymous
// caller before touching storage, queries on behalf of the anonymous caller
// see the empty default record.
//
// Mutations run as one atomic read-modify-write of the caller's record.
// Operations that talk to an upstream service (rate refresh, UTXO fetch)
// finish the call first and then re-read the record inside the update, so a
// write never carries a stale snapshot back to the store.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/finledger/pkg/bitcoin"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/exchange"
	"github.com/amirasaad/finledger/pkg/provider"
	"github.com/amirasaad/finledger/pkg/repository"
)

// Service implements the ledger operations on top of a RecordStore.
type Service struct {
	store  repository.RecordStore
	rates  *exchange.Service
	chain   provider.ChainSource
	network bitcoin.Network
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNetwork sets the Bitcoin network wallet addresses are validated
// against. The default is Mainnet.
func WithNetwork(net bitcoin.Network) Option {
	return func(s *Service) { s.network = net }
}

// New creates a Service.
func New(
	store repository.RecordStore,
	rates *exchange.Service,
	chain provider.ChainSource,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		store:   store,
		rates:   rates,
		chain:   chain,
		network: bitcoin.Mainnet,
		logger:  logger.With("service", "ledger"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Network returns the Bitcoin network of the ledger.
func (s *Service) Network() bitcoin.Network { return s.network }

// Rates exposes the shared exchange service.
func (s *Service) Rates() *exchange.Service { return s.rates }

// view loads the caller's record for reading.
func (s *Service) view(ctx context.Context, caller domain.Caller) (*ledger.Record, error) {
	if caller.IsAnonymous() {
		return ledger.NewRecord(), nil
	}
	return s.store.Get(ctx, caller.String())
}

// mutate runs fn inside the caller's atomic update. fn receives the fresh
// record and the time of the operation.
func (s *Service) mutate(
	ctx context.Context,
	caller domain.Caller,
	op string,
	fn func(rec *ledger.Record, now time.Time) error,
) error {
	logger := s.logger.With("context", op, "caller", caller.String())
	if caller.IsAnonymous() {
		logger.Warn("Rejected anonymous caller")
		return domain.ErrAuthenticationRequired
	}
	now := s.now()
	if err := s.store.Update(ctx, caller.String(), func(rec *ledger.Record) error {
		return fn(rec, now)
	}); err != nil {
		logger.Error("Update failed", "error", err)
		return err
	}
	logger.Debug("Update committed")
	return nil
}

// Reset returns the caller's record to the empty default.
func (s *Service) Reset(ctx context.Context, caller domain.Caller) error {
	return s.mutate(ctx, caller, "Reset", func(rec *ledger.Record, _ time.Time) error {
		rec.Reset()
		return nil
	})
}
