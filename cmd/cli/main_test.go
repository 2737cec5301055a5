package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/finledger/infra/provider/mockprovider"
	infra_repository "github.com/amirasaad/finledger/infra/repository"
	"github.com/amirasaad/finledger/pkg/app"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/exchange"
	"github.com/amirasaad/finledger/pkg/provider"
	"github.com/amirasaad/finledger/webapi/testutils"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T) (*cli, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetchers := []provider.RateFetcher{&mockprovider.RateFetcher{}}
	deps := &app.Deps{
		Store:        infra_repository.NewMemoryStore(),
		Exchange:     exchange.New(logger, fetchers, exchange.WithDefaultRates()),
		ChainSource:  &mockprovider.ChainSource{},
		RateFetchers: fetchers,
		Logger:       logger,
	}
	var out bytes.Buffer
	return newCLI(app.New(deps, testutils.NewTestConfig()), &out), &out
}

func TestCLI_AddAndBalance(t *testing.T) {
	c, out := newTestCLI(t)
	ctx := context.Background()

	require.NoError(t, c.exec(ctx, []string{"add", "alice", "income", "100", "USD", "salary"}))
	assert.Contains(t, out.String(), "Recorded income #1: $ 100.00")

	out.Reset()
	require.NoError(t, c.exec(ctx, []string{"balance", "alice"}))
	assert.Contains(t, out.String(), "USD  $ 100.00")

	out.Reset()
	require.NoError(t, c.exec(ctx, []string{"summary", "alice"}))
	assert.Contains(t, out.String(), "transactions  1")
}

func TestCLI_Token(t *testing.T) {
	c, out := newTestCLI(t)
	require.NoError(t, c.exec(context.Background(), []string{"token", "alice"}))

	caller, err := c.app.AuthService.ParseToken(string(bytes.TrimSpace(out.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, domain.Caller("alice"), caller)
}

func TestCLI_Rates(t *testing.T) {
	c, out := newTestCLI(t)
	require.NoError(t, c.exec(context.Background(), []string{"rates"}))
	assert.Contains(t, out.String(), "USD/IDR 15000")
}

func TestCLI_Errors(t *testing.T) {
	c, _ := newTestCLI(t)
	ctx := context.Background()

	assert.ErrorIs(t, c.exec(ctx, []string{"bogus"}), errUsage)
	assert.ErrorIs(t, c.exec(ctx, []string{"add", "alice", "income"}), errUsage)
	assert.ErrorIs(t, c.exec(ctx, []string{"add", "alice", "gift", "1", "USD"}), errUsage)
	assert.ErrorIs(t, c.exec(ctx, []string{"add", "", "income", "1", "USD"}), domain.ErrAuthenticationRequired)
}
