package exchange_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amirasaad/finledger/pkg/cache"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/exchange"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/amirasaad/finledger/pkg/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

var fixedNow = time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeFetcher struct {
	name   string
	quotes []provider.Quote
	err    error
	calls  atomic.Int32
	delay  time.Duration
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) FetchRates(ctx context.Context) ([]provider.Quote, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.quotes, f.err
}

type fakeCache struct {
	mu    sync.Mutex
	snap  *cache.RateSnapshot
	saves int
}

func (c *fakeCache) Load(context.Context) (cache.RateSnapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil {
		return cache.RateSnapshot{}, false, nil
	}
	return *c.snap, true, nil
}

func (c *fakeCache) Save(_ context.Context, snap cache.RateSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = &snap
	c.saves++
	return nil
}

func newService(fetchers []provider.RateFetcher, opts ...exchange.Option) *exchange.Service {
	opts = append([]exchange.Option{exchange.WithClock(func() time.Time { return fixedNow })}, opts...)
	return exchange.New(slog.Default(), fetchers, opts...)
}

func fxFetcher() *fakeFetcher {
	return &fakeFetcher{name: "fx", quotes: []provider.Quote{{From: money.USD, To: money.IDR, Rate: dec("16000")}}}
}

func cryptoFetcher() *fakeFetcher {
	return &fakeFetcher{name: "crypto", quotes: []provider.Quote{
		{From: money.BTC, To: money.USD, Rate: dec("60000")},
		{From: money.ETH, To: money.USD, Rate: dec("3000")},
		{From: money.SOL, To: money.USD, Rate: dec("150")},
	}}
}

func TestConvert_Identity(t *testing.T) {
	t.Parallel()
	svc := newService(nil)

	for _, c := range money.Supported() {
		got, err := svc.Convert(dec("12.34"), c, c)
		require.NoError(t, err)
		assert.True(t, got.Equal(dec("12.34")), c)
	}
}

func TestConvert_NotLoadedAndMissing(t *testing.T) {
	t.Parallel()
	svc := newService(nil)

	_, err := svc.Convert(dec("1"), money.USD, money.IDR)
	require.ErrorIs(t, err, domain.ErrRatesNotLoaded)

	require.NoError(t, svc.SetRate(context.Background(), money.USD, money.IDR, dec("16000")))
	_, err = svc.Convert(dec("1"), money.BTC, money.IDR)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Convert(dec("1"), money.USD, "EUR")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestSetRateThenConvert(t *testing.T) {
	t.Parallel()
	svc := newService(nil)

	require.NoError(t, svc.SetRate(context.Background(), money.USD, money.IDR, dec("16000")))
	got, err := svc.Convert(dec("10"), money.USD, money.IDR)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("160000")), got.String())
	assert.Equal(t, fixedNow, svc.Table().UpdatedAt())

	require.ErrorIs(t, svc.SetRate(context.Background(), "XXX", money.IDR, dec("1")), domain.ErrValidation)
	require.ErrorIs(t, svc.SetRate(context.Background(), money.USD, money.IDR, dec("0")), domain.ErrValidation)
	require.ErrorIs(t, svc.SetRate(context.Background(), money.USD, money.USD, dec("2")), domain.ErrValidation)
}

func TestDefaultRates(t *testing.T) {
	t.Parallel()
	svc := newService(nil, exchange.WithDefaultRates())

	r, err := svc.GetRate(money.USD, money.IDR)
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("15000")))

	r, err = svc.GetRate(money.BTC, money.IDR)
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("675000000")))

	r, err = svc.GetRate(money.USD, money.BTC)
	require.NoError(t, err)
	assert.True(t, r.Mul(dec("45000")).Round(8).Equal(dec("1")))
}

func TestRefresh_ReplacesWholeTable(t *testing.T) {
	t.Parallel()
	c := &fakeCache{}
	svc := newService([]provider.RateFetcher{fxFetcher(), cryptoFetcher()}, exchange.WithCache(c))
	require.NoError(t, svc.SetRate(context.Background(), money.USD, money.IDR, dec("1")))

	table, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Same(t, table, svc.Table())

	r, _ := svc.GetRate(money.USD, money.IDR)
	assert.True(t, r.Equal(dec("16000")))
	r, _ = svc.GetRate(money.BTC, money.IDR)
	assert.True(t, r.Equal(dec("960000000")))
	r, _ = svc.GetRate(money.ETH, money.BTC)
	assert.True(t, r.Round(8).Equal(dec("0.05")), r.String())
	_, err = svc.GetRate(money.IDR, money.USD)
	require.NoError(t, err)

	assert.Equal(t, 2, c.saves)
	require.NotNil(t, c.snap)
	assert.Len(t, c.snap.Rates, table.Len())
}

func TestRefresh_AnyFailureLeavesTableUntouched(t *testing.T) {
	t.Parallel()
	broken := cryptoFetcher()
	broken.err = &domain.ExternalServiceError{Service: "crypto", Status: 503, Message: "maintenance"}
	svc := newService([]provider.RateFetcher{fxFetcher(), broken}, exchange.WithDefaultRates())
	before := svc.Table()

	_, err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrExternalService)
	var ext *domain.ExternalServiceError
	require.ErrorAs(t, err, &ext)
	assert.Equal(t, 503, ext.Status)
	assert.Same(t, before, svc.Table())
}

func TestRefresh_WrapsPlainErrorsAndBadQuotes(t *testing.T) {
	t.Parallel()

	plain := fxFetcher()
	plain.err = errors.New("dial tcp: timeout")
	_, err := newService([]provider.RateFetcher{plain}).Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrExternalService)
	assert.Contains(t, err.Error(), "dial tcp: timeout")

	bad := fxFetcher()
	bad.quotes = []provider.Quote{{From: money.USD, To: money.IDR, Rate: dec("0")}}
	_, err = newService([]provider.RateFetcher{bad}).Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrExternalService)

	_, err = newService(nil).Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrExternalService)
}

func TestRefresh_CoalescesConcurrentCallers(t *testing.T) {
	t.Parallel()
	slow := fxFetcher()
	slow.delay = 50 * time.Millisecond
	svc := newService([]provider.RateFetcher{slow})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Refresh(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Less(t, slow.calls.Load(), int32(5))
}

func TestWarm_RestoresFromCache(t *testing.T) {
	t.Parallel()
	c := &fakeCache{snap: &cache.RateSnapshot{
		Rates: []cache.RateEntry{
			{From: "USD", To: "IDR", Rate: dec("15500")},
			{From: "EUR", To: "USD", Rate: dec("1.1")},
		},
		UpdatedAt: fixedNow,
	}}
	svc := newService(nil, exchange.WithCache(c))
	require.NoError(t, svc.Warm(context.Background()))

	rates := svc.ListRates()
	require.Len(t, rates, 1)
	assert.Equal(t, money.USD, rates[0].From)
	assert.True(t, rates[0].Rate.Equal(dec("15500")))
}
