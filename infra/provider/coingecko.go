package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/amirasaad/finledger/pkg/config"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/amirasaad/finledger/pkg/provider"
	"github.com/shopspring/decimal"
)

const coinGeckoName = "coingecko"

// coinGeckoIDs maps tracked assets to CoinGecko coin ids.
var coinGeckoIDs = map[money.Code]string{
	money.BTC: "bitcoin",
	money.ETH: "ethereum",
	money.SOL: "solana",
}

// CoinGeckoProvider fetches crypto→USD prices from the CoinGecko simple price API.
type CoinGeckoProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ provider.RateFetcher = (*CoinGeckoProvider)(nil)

// NewCoinGeckoProvider creates a CoinGeckoProvider from config.
func NewCoinGeckoProvider(cfg *config.CoinGecko, logger *slog.Logger) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		apiKey:     cfg.ApiKey,
		baseURL:    strings.TrimRight(cfg.ApiUrl, "/"),
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger.With("provider", coinGeckoName),
	}
}

func (p *CoinGeckoProvider) Name() string { return coinGeckoName }

// FetchRates returns one X→USD quote per tracked crypto asset.
func (p *CoinGeckoProvider) FetchRates(ctx context.Context) ([]provider.Quote, error) {
	codes := money.CryptoCodes()
	ids := make([]string, 0, len(codes))
	for _, c := range codes {
		ids = append(ids, coinGeckoIDs[c])
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	endpoint := p.baseURL + "/simple/price?" + q.Encode()

	var header http.Header
	if p.apiKey != "" {
		header = http.Header{"X-Cg-Demo-Api-Key": []string{p.apiKey}}
	}

	var prices map[string]map[string]decimal.Decimal
	if err := getJSON(ctx, p.httpClient, coinGeckoName, endpoint, header, &prices); err != nil {
		return nil, err
	}

	quotes := make([]provider.Quote, 0, len(codes))
	for _, c := range codes {
		usd, ok := prices[coinGeckoIDs[c]]["usd"]
		if !ok {
			return nil, &domain.ExternalServiceError{
				Service: coinGeckoName,
				Message: fmt.Sprintf("price for %s not found in response", c),
			}
		}
		quotes = append(quotes, provider.Quote{From: c, To: money.USD, Rate: usd})
	}
	p.logger.Info("Crypto prices fetched", "count", len(quotes))
	return quotes, nil
}
