// Package testutils builds a fully wired API on in-memory infrastructure
// for handler and end-to-end tests.
package testutils

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	infra_cache "github.com/amirasaad/finledger/infra/cache"
	"github.com/amirasaad/finledger/infra/provider/mockprovider"
	infra_repository "github.com/amirasaad/finledger/infra/repository"
	"github.com/amirasaad/finledger/pkg/app"
	"github.com/amirasaad/finledger/pkg/config"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/exchange"
	"github.com/amirasaad/finledger/pkg/provider"
	"github.com/amirasaad/finledger/webapi"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

// NewTestConfig returns a configuration suitable for in-process tests.
func NewTestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:       &config.Log{Format: "text"},
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour, Issuer: "finledger"}},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
}

// E2ETestSuite provides a test suite with a wired API, an in-memory record
// store and fake upstream providers.
type E2ETestSuite struct {
	suite.Suite
	App     *fiber.App
	Cfg     *config.App
	Deps    *app.Deps
	Store   *infra_repository.MemoryStore
	Rates   *mockprovider.RateFetcher
	Chain   *mockprovider.ChainSource
	appDeps *app.App
}

// SetupTest rebuilds the API so every test starts from empty state.
func (s *E2ETestSuite) SetupTest() {
	if s.Cfg == nil {
		s.Cfg = NewTestConfig()
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Store = infra_repository.NewMemoryStore()
	s.Rates = &mockprovider.RateFetcher{NameValue: "mock-rates"}
	s.Chain = &mockprovider.ChainSource{}
	fetchers := []provider.RateFetcher{s.Rates}
	s.Deps = &app.Deps{
		Store:        s.Store,
		ChainSource:  s.Chain,
		RateFetchers: fetchers,
		Exchange: exchange.New(logger, fetchers,
			exchange.WithCache(infra_cache.NewMemoryCache()),
			exchange.WithDefaultRates(),
		),
		Logger: logger,
		Close:  func() error { return nil },
	}
	s.appDeps = app.New(s.Deps, s.Cfg)
	s.App = webapi.SetupApp(s.appDeps)
}

// Token returns a bearer token for caller.
func (s *E2ETestSuite) Token(caller string) string {
	token, err := s.appDeps.AuthService.GenerateToken(domain.Caller(caller))
	s.Require().NoError(err)
	return token
}

// MakeRequest sends a request through the app. An empty token sends no
// Authorization header.
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	return MakeRequestWithApp(s.App, method, path, body, token)
}

// Decode reads a JSON body into out and closes it.
func (s *E2ETestSuite) Decode(resp *http.Response, out any) {
	defer resp.Body.Close() //nolint: errcheck
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

// MakeRequestWithApp sends a request through app.
func MakeRequestWithApp(app *fiber.App, method, path, body, token string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}
	return resp
}
