// Package exchange owns the process-wide rate table: conversions, manual
// overrides and caller-triggered refreshes from upstream providers.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/amirasaad/finledger/pkg/cache"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/amirasaad/finledger/pkg/provider"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Service holds the current rate table. The table is replaced as a whole;
// concurrent writers are last-writer-wins.
type Service struct {
	fetchers []provider.RateFetcher
	cache    cache.RateTableCache
	logger   *slog.Logger
	now      func() time.Time

	table atomic.Pointer[Table]
	group singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithCache persists every table change to c and lets Warm restore from it.
func WithCache(c cache.RateTableCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithClock overrides the clock used to stamp table updates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDefaultRates seeds the table with DefaultQuotes.
func WithDefaultRates() Option {
	return func(s *Service) { s.table.Store(buildTable(DefaultQuotes(), s.now())) }
}

// New creates a Service with an empty table.
func New(logger *slog.Logger, fetchers []provider.RateFetcher, opts ...Option) *Service {
	s := &Service{
		fetchers: fetchers,
		logger:   logger.With("service", "exchange"),
		now:      time.Now,
	}
	s.table.Store(NewTable(nil, time.Time{}))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the current snapshot.
func (s *Service) Table() *Table {
	return s.table.Load()
}

// Warm restores the table from the cache when nothing is loaded yet.
func (s *Service) Warm(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	snap, ok, err := s.cache.Load(ctx)
	if err != nil {
		return fmt.Errorf("load rate table: %w", err)
	}
	if !ok {
		s.logger.Debug("No cached rate table")
		return nil
	}
	t := tableFromSnapshot(snap)
	cur := s.table.Load()
	if cur.Len() == 0 && s.table.CompareAndSwap(cur, t) {
		s.logger.Info("Rate table restored from cache", "rates", t.Len(), "updated_at", t.UpdatedAt())
	}
	return nil
}

func validatePair(from, to money.Code) error {
	if !from.IsValid() {
		return domain.Validationf("invalid currency %q", from)
	}
	if !to.IsValid() {
		return domain.Validationf("invalid currency %q", to)
	}
	return nil
}

// GetRate returns the rate for from→to. Identical codes have rate 1.
func (s *Service) GetRate(from, to money.Code) (decimal.Decimal, error) {
	if err := validatePair(from, to); err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	t := s.table.Load()
	if t.Len() == 0 {
		return decimal.Zero, domain.ErrRatesNotLoaded
	}
	r, ok := t.Rate(from, to)
	if !ok {
		return decimal.Zero, domain.NotFoundf("no rate for %s/%s", from, to)
	}
	return r, nil
}

// Convert returns amount expressed in to. Identical codes return amount unchanged.
func (s *Service) Convert(amount decimal.Decimal, from, to money.Code) (decimal.Decimal, error) {
	r, err := s.GetRate(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return amount, nil
	}
	return amount.Mul(r), nil
}

// SetRate manually overrides the rate for from→to.
func (s *Service) SetRate(ctx context.Context, from, to money.Code, rate decimal.Decimal) error {
	if err := validatePair(from, to); err != nil {
		return err
	}
	if from == to {
		return domain.Validationf("cannot set a rate from %s to itself", from)
	}
	if !rate.IsPositive() {
		return domain.Validationf("rate must be positive")
	}
	var next *Table
	for {
		cur := s.table.Load()
		next = cur.with(Pair{From: from, To: to}, rate, s.now())
		if s.table.CompareAndSwap(cur, next) {
			break
		}
	}
	s.logger.Info("Rate overridden", "from", from, "to", to, "rate", rate)
	s.persist(ctx, next)
	return nil
}

// ListRates returns every stored rate.
func (s *Service) ListRates() []Rate {
	return s.table.Load().Rates()
}

// Refresh fetches every provider and replaces the whole table on success.
// If any provider fails the table is left untouched. Concurrent calls
// share one upstream round.
func (s *Service) Refresh(ctx context.Context) (*Table, error) {
	v, err, shared := s.group.Do("refresh", func() (any, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Refresh result shared with a concurrent caller")
	}
	return v.(*Table), nil
}

func (s *Service) refresh(ctx context.Context) (*Table, error) {
	logger := s.logger.With("context", "Refresh")
	if len(s.fetchers) == 0 {
		return nil, &domain.ExternalServiceError{Service: "exchange", Message: "no rate providers configured"}
	}

	results := make([][]provider.Quote, len(s.fetchers))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range s.fetchers {
		g.Go(func() error {
			quotes, err := f.FetchRates(gctx)
			if err != nil {
				return wrapProviderError(f.Name(), err)
			}
			for _, q := range quotes {
				if !q.From.IsValid() || !q.To.IsValid() || !q.Rate.IsPositive() {
					return &domain.ExternalServiceError{
						Service: f.Name(),
						Message: fmt.Sprintf("invalid quote %s/%s=%s", q.From, q.To, q.Rate),
					}
				}
			}
			results[i] = quotes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Rate refresh failed", "error", err)
		return nil, err
	}

	var quotes []provider.Quote
	for _, qs := range results {
		quotes = append(quotes, qs...)
	}
	t := buildTable(quotes, s.now())
	s.table.Store(t)
	logger.Info("Rate table refreshed", "quotes", len(quotes), "rates", t.Len())
	s.persist(ctx, t)
	return t, nil
}

func wrapProviderError(name string, err error) error {
	var ext *domain.ExternalServiceError
	if errors.As(err, &ext) {
		return err
	}
	return &domain.ExternalServiceError{Service: name, Message: err.Error(), Err: err}
}

// persist writes t to the cache. The in-memory table stays authoritative,
// so a cache failure is logged rather than returned.
func (s *Service) persist(ctx context.Context, t *Table) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(ctx, t.snapshot()); err != nil {
		s.logger.Warn("Failed to persist rate table", "error", err)
	}
}
