package webapi_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/amirasaad/finledger/pkg/bitcoin"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/amirasaad/finledger/pkg/provider"
	"github.com/amirasaad/finledger/webapi/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const btcAddress = "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq"

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

type envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type problem struct {
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors"`
}

type WebAPITestSuite struct {
	testutils.E2ETestSuite
}

func TestWebAPITestSuite(t *testing.T) {
	suite.Run(t, new(WebAPITestSuite))
}

func (s *WebAPITestSuite) TestRootRoute() {
	resp := s.MakeRequest(http.MethodGet, "/", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *WebAPITestSuite) TestNotFoundRoute() {
	resp := s.MakeRequest(http.MethodGet, "/doesnotexist", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *WebAPITestSuite) TestAnonymousMutationRejected() {
	resp := s.MakeRequest(http.MethodPost, "/api/transactions",
		`{"amount": 100, "currency": "USD", "is_income": true}`, "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("application/problem+json", resp.Header.Get("Content-Type"))
	var p problem
	s.Decode(resp, &p)
	s.Equal(http.StatusUnauthorized, p.Status)
	s.Zero(s.Store.Len(), "an anonymous request must not create a record")
}

func (s *WebAPITestSuite) TestAnonymousQuerySeesEmptyRecord() {
	resp := s.MakeRequest(http.MethodGet, "/api/summary", "", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	var out envelope[map[string]int]
	s.Decode(resp, &out)
	s.Zero(out.Data["transactions"])
	s.Zero(s.Store.Len())
}

func (s *WebAPITestSuite) TestInvalidTokenRejected() {
	resp := s.MakeRequest(http.MethodGet, "/api/summary", "", "not-a-token")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *WebAPITestSuite) TestIssueTokenAndAddTransaction() {
	resp := s.MakeRequest(http.MethodPost, "/auth/token", `{"caller": "alice"}`, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var tok envelope[map[string]string]
	s.Decode(resp, &tok)
	token := tok.Data["token"]
	s.Require().NotEmpty(token)

	resp = s.MakeRequest(http.MethodPost, "/api/transactions",
		`{"amount": 100, "currency": "USD", "is_income": true, "category": "salary"}`, token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var added envelope[map[string]any]
	s.Decode(resp, &added)
	s.EqualValues(1, added.Data["id"])
	s.Equal("income", added.Data["transaction_type"])

	resp = s.MakeRequest(http.MethodPost, "/api/transactions",
		`{"amount": 30.5, "currency": "USD", "category": "food"}`, token)
	resp.Body.Close() //nolint: errcheck
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, "/api/balance?currency=USD", "", token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var bal envelope[map[string]any]
	s.Decode(resp, &bal)
	// Amounts are plain JSON numbers.
	s.InDelta(69.5, bal.Data["amount"], 1e-9)
	s.Equal("USD", bal.Data["currency"])
	s.Equal(1, s.Store.Len())
}

func (s *WebAPITestSuite) TestValidationProblem() {
	token := s.Token("alice")
	resp := s.MakeRequest(http.MethodPost, "/api/transactions/manual",
		`{"amount": 10, "currency": "USD", "type": "gift"}`, token)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	var p problem
	s.Decode(resp, &p)
	s.Equal("Validation failed", p.Title)
	s.Equal("oneof", p.Errors["Type"])
	s.Equal("required", p.Errors["Description"])
}

func (s *WebAPITestSuite) TestDomainValidationAndNotFound() {
	token := s.Token("alice")
	resp := s.MakeRequest(http.MethodPost, "/api/transactions",
		`{"amount": -5, "currency": "USD"}`, token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.MakeRequest(http.MethodPost, "/api/transactions",
		`{"amount": 5, "currency": "DOGE"}`, token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, "/api/transactions/99", "", token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, "/api/transactions/abc", "", token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *WebAPITestSuite) TestBudgetConflict() {
	token := s.Token("alice")
	body := `{"category": "food", "amount": 200, "currency": "USD", "period": "2024-03"}`
	resp := s.MakeRequest(http.MethodPost, "/api/budgets", body, token)
	resp.Body.Close() //nolint: errcheck
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.MakeRequest(http.MethodPost, "/api/budgets", body, token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *WebAPITestSuite) TestConvertUsesRateTable() {
	resp := s.MakeRequest(http.MethodGet, "/api/rates/convert?amount=10&from=USD&to=IDR", "", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var out envelope[map[string]any]
	s.Decode(resp, &out)
	s.InDelta(150000, out.Data["converted_amount"], 1e-9)
}

func (s *WebAPITestSuite) TestRefreshRates() {
	token := s.Token("alice")
	s.Rates.FetchRatesFunc = func(context.Context) ([]provider.Quote, error) {
		return nil, errors.New("upstream down")
	}
	resp := s.MakeRequest(http.MethodPost, "/api/rates/refresh", "", token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusBadGateway, resp.StatusCode)

	s.Rates.FetchRatesFunc = func(context.Context) ([]provider.Quote, error) {
		return []provider.Quote{
			{From: money.USD, To: money.IDR, Rate: decimal.NewFromInt(16000)},
			{From: money.BTC, To: money.USD, Rate: decimal.NewFromInt(60000)},
		}, nil
	}
	resp = s.MakeRequest(http.MethodPost, "/api/rates/refresh", "", "")
	resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp = s.MakeRequest(http.MethodPost, "/api/rates/refresh", "", token)
	resp.Body.Close() //nolint: errcheck
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, "/api/rates/snapshot", "", token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var snap envelope[map[string]any]
	s.Decode(resp, &snap)
	s.InDelta(16000, snap.Data["usd_to_idr"], 1e-9)
	s.InDelta(60000, snap.Data["btc_to_usd"], 1e-9)
}

func (s *WebAPITestSuite) TestBitcoinSync() {
	token := s.Token("alice")
	s.Chain.UTXOsFunc = func(_ context.Context, address string) ([]bitcoin.UTXO, error) {
		return []bitcoin.UTXO{{TxID: "aa", Vout: 0, Value: 150_000, Confirmations: 2}}, nil
	}

	resp := s.MakeRequest(http.MethodPost, "/api/bitcoin/sync", "", token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusNotFound, resp.StatusCode, "no BTC address registered yet")

	resp = s.MakeRequest(http.MethodPut, "/api/wallets/BTC", `{"address": "`+btcAddress+`"}`, token)
	resp.Body.Close() //nolint: errcheck
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.MakeRequest(http.MethodPost, "/api/bitcoin/sync", "", token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var first envelope[map[string]any]
	s.Decode(resp, &first)
	s.EqualValues(1, first.Data["recorded"])

	resp = s.MakeRequest(http.MethodPost, "/api/bitcoin/sync", "", token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var second envelope[map[string]any]
	s.Decode(resp, &second)
	s.EqualValues(0, second.Data["recorded"])
	s.EqualValues(1, second.Data["skipped"])
}

func (s *WebAPITestSuite) TestValidateBitcoinAddress() {
	resp := s.MakeRequest(http.MethodGet, "/api/bitcoin/validate/"+btcAddress, "", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var out envelope[map[string]any]
	s.Decode(resp, &out)
	s.Equal(true, out.Data["valid"])
	s.Equal("mainnet", out.Data["network"])
}

func (s *WebAPITestSuite) TestValidateBitcoinAddress_Network() {
	const testnetAddress = "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx"

	resp := s.MakeRequest(http.MethodGet, "/api/bitcoin/validate/"+testnetAddress, "", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var onMainnet envelope[map[string]any]
	s.Decode(resp, &onMainnet)
	s.Equal(false, onMainnet.Data["valid"])

	resp = s.MakeRequest(http.MethodGet, "/api/bitcoin/validate/"+testnetAddress+"?network=testnet", "", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var onTestnet envelope[map[string]any]
	s.Decode(resp, &onTestnet)
	s.Equal(true, onTestnet.Data["valid"])

	resp = s.MakeRequest(http.MethodGet, "/api/bitcoin/validate/"+testnetAddress+"?network=signet", "", "")
	resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *WebAPITestSuite) TestSetWalletAddress_BadChecksum() {
	token := s.Token("alice")
	resp := s.MakeRequest(http.MethodPut, "/api/wallets/BTC", `{"address": "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb"}`, token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *WebAPITestSuite) TestConvertBitcoinAmount_OutOfRange() {
	resp := s.MakeRequest(http.MethodGet, "/api/bitcoin/convert?btc=100000000000", "", "")
	resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, "/api/bitcoin/convert?btc=0.0015", "", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var out envelope[map[string]any]
	s.Decode(resp, &out)
	s.EqualValues(150000, out.Data["satoshis"])
}

type ProductionTestSuite struct {
	testutils.E2ETestSuite
}

func TestProductionTestSuite(t *testing.T) {
	s := new(ProductionTestSuite)
	s.Cfg = testutils.NewTestConfig()
	s.Cfg.Env = "production"
	suite.Run(t, s)
}

func (s *ProductionTestSuite) TestTokenEndpointNotMounted() {
	resp := s.MakeRequest(http.MethodPost, "/auth/token", `{"caller": "alice"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
