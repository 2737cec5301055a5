package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/amirasaad/finledger/pkg/config"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/amirasaad/finledger/pkg/provider"
	"github.com/shopspring/decimal"
)

const exchangeRateAPIName = "exchangerate-api"

// ExchangeRateAPIProvider fetches fiat rates from exchangerate-api.com (v6).
type ExchangeRateAPIProvider struct {
	apiKey     string
	baseURL    string
	base       money.Code
	targets    []money.Code
	httpClient *http.Client
	logger     *slog.Logger
}

var _ provider.RateFetcher = (*ExchangeRateAPIProvider)(nil)

// ExchangeRateAPIResponseV6 represents the v6 response from the ExchangeRate API
// See: https://www.exchangerate-api.com/docs/standard-requests
type ExchangeRateAPIResponseV6 struct {
	Result             string                     `json:"result"`
	TimeLastUpdateUnix int64                      `json:"time_last_update_unix"`
	BaseCode           string                     `json:"base_code"`
	ConversionRates    map[string]decimal.Decimal `json:"conversion_rates"`
	ErrorType          string                     `json:"error-type,omitempty"`
}

// NewExchangeRateAPIProvider creates a provider quoting USD against IDR.
func NewExchangeRateAPIProvider(cfg *config.ExchangeRateApi, logger *slog.Logger) *ExchangeRateAPIProvider {
	return &ExchangeRateAPIProvider{
		apiKey:     cfg.ApiKey,
		baseURL:    strings.TrimRight(cfg.ApiUrl, "/"),
		base:       money.USD,
		targets:    []money.Code{money.IDR},
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger.With("provider", exchangeRateAPIName),
	}
}

func (p *ExchangeRateAPIProvider) Name() string { return exchangeRateAPIName }

// FetchRates returns base→target quotes for every configured target.
func (p *ExchangeRateAPIProvider) FetchRates(ctx context.Context) ([]provider.Quote, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", p.baseURL, p.apiKey, p.base)
	p.logger.Debug("Fetching exchange rates", "base", p.base)

	var apiResp ExchangeRateAPIResponseV6
	if err := getJSON(ctx, p.httpClient, exchangeRateAPIName, url, nil, &apiResp); err != nil {
		return nil, err
	}
	if apiResp.Result != "success" {
		return nil, &domain.ExternalServiceError{
			Service: exchangeRateAPIName,
			Message: fmt.Sprintf("API returned result=%s %s", apiResp.Result, apiResp.ErrorType),
		}
	}

	quotes := make([]provider.Quote, 0, len(p.targets))
	for _, to := range p.targets {
		rate, ok := apiResp.ConversionRates[to.String()]
		if !ok {
			return nil, &domain.ExternalServiceError{
				Service: exchangeRateAPIName,
				Message: fmt.Sprintf("currency %s not found in response", to),
			}
		}
		quotes = append(quotes, provider.Quote{From: p.base, To: to, Rate: rate})
	}
	p.logger.Info("Exchange rates fetched", "base", p.base, "count", len(quotes))
	return quotes, nil
}
