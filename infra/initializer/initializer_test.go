package initializer

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/amirasaad/finledger/pkg/bitcoin"
	"github.com/amirasaad/finledger/pkg/config"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.App {
	return &config.App{
		Env: "test",
		Log: &config.Log{Format: "text"},
		DB:  &config.DB{Url: "memory://"},
		Auth: &config.Auth{Jwt: &config.Jwt{
			Secret: "test-secret",
			Issuer: "finledger",
		}},
		Redis:        &config.Redis{},
		ExchangeRate: &config.ExchangeRate{SeedDefaults: true, CacheKey: "rates:table"},
		ExchangeRateAPIProviders: &config.ExchangeRateProviders{
			ExchangeRateApi: &config.ExchangeRateApi{},
			CoinGecko:       &config.CoinGecko{ApiUrl: "http://127.0.0.1:1"},
		},
		Bitcoin: &config.Bitcoin{Network: "testnet", EsploraUrl: "http://127.0.0.1:1"},
	}
}

func TestInitializeDependencies_InMemory(t *testing.T) {
	deps, err := InitializeDependencies(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	assert.NotNil(t, deps.Store)
	assert.NotNil(t, deps.ChainSource)
	assert.Equal(t, bitcoin.Testnet, deps.Network)
	require.NotNil(t, deps.Exchange)
	rate, err := deps.Exchange.GetRate(money.USD, money.IDR)
	require.NoError(t, err)
	assert.Equal(t, "15000", rate.String())
}

func TestInitializeDependencies_UnknownBitcoinNetwork(t *testing.T) {
	cfg := testConfig()
	cfg.Bitcoin.Network = "signet"
	_, err := InitializeDependencies(cfg)
	assert.ErrorIs(t, err, bitcoin.ErrUnknownNetwork)
}

func TestRateFetchers_FallsBackToStaticFiat(t *testing.T) {
	cfg := testConfig().ExchangeRateAPIProviders
	fetchers := rateFetchers(cfg, slog.Default())
	require.Len(t, fetchers, 2)
	assert.Equal(t, "static-fiat", fetchers[0].Name())

	quotes, err := fetchers[0].FetchRates(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, quotes)
	for _, q := range quotes {
		assert.False(t, q.From.IsCrypto())
		assert.False(t, q.To.IsCrypto())
	}
}

func TestRateFetchers_WithAPIKey(t *testing.T) {
	cfg := testConfig().ExchangeRateAPIProviders
	cfg.ExchangeRateApi.ApiKey = "key"
	fetchers := rateFetchers(cfg, slog.Default())
	require.Len(t, fetchers, 2)
	assert.Equal(t, "exchangerate-api", fetchers[0].Name())
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Log{Format: "json", Prefix: "[finledger]"})
	logger.Info("Rate table refreshed", "rates", 4)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Rate table refreshed", line["msg"])
	assert.EqualValues(t, 4, line["rates"])
}
