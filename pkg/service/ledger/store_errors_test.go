package ledger_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/amirasaad/finledger/infra/provider/mockprovider"
	"github.com/amirasaad/finledger/internal/fixtures/mocks"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/exchange"
	"github.com/amirasaad/finledger/pkg/money"
	svc "github.com/amirasaad/finledger/pkg/service/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMockedService(t *testing.T) (*svc.Service, *mocks.RecordStore) {
	t.Helper()
	store := mocks.NewRecordStore(t)
	rates := exchange.New(slog.Default(), nil, exchange.WithDefaultRates())
	return svc.New(store, rates, &mockprovider.ChainSource{}, slog.Default()), store
}

func TestService_StoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	storeDown := errors.New("connection refused")

	t.Run("query", func(t *testing.T) {
		s, store := newMockedService(t)
		store.EXPECT().Get(mock.Anything, "alice").Return(nil, storeDown).Once()

		_, err := s.ListTransactions(ctx, alice, svc.TransactionFilter{})
		assert.ErrorIs(t, err, storeDown)
	})

	t.Run("conflict", func(t *testing.T) {
		s, store := newMockedService(t)
		store.EXPECT().Update(mock.Anything, "alice", mock.Anything).Return(domain.ErrConflict).Once()

		_, err := s.AddTransaction(ctx, alice, usd("10", true, "salary"), "")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestService_AnonymousNeverReachesStore(t *testing.T) {
	ctx := context.Background()
	s, _ := newMockedService(t)

	_, err := s.AddTransaction(ctx, domain.AnonymousCaller, usd("10", true, "salary"), "")
	assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)
	require.ErrorIs(t, s.Reset(ctx, ""), domain.ErrAuthenticationRequired)

	balance, err := s.Balance(ctx, domain.AnonymousCaller, money.USD, "")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestService_ValidationFailureDiscardsUpdate(t *testing.T) {
	ctx := context.Background()
	s, store := newMockedService(t)
	rec := ledger.NewRecord()
	store.EXPECT().
		Update(mock.Anything, "alice", mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, fn func(*ledger.Record) error) error {
			return fn(rec)
		}).
		Once()

	bad := usd("10", true, "salary")
	bad.Currency = "DOGE"
	_, err := s.AddTransaction(ctx, alice, bad, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, rec.Transactions)
}
