package ledger_test

import (
	"testing"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPortfolio(t *testing.T) *ledger.Record {
	t.Helper()
	r := ledger.NewRecord()
	_, err := r.AddTransaction(usdTx("500", true, march), march)
	require.NoError(t, err)
	btc := usdTx("0.01", true, march)
	btc.Currency = money.BTC
	_, err = r.AddTransaction(btc, march)
	require.NoError(t, err)
	return r
}

func TestBalanceBreakdown_WithoutRates(t *testing.T) {
	t.Parallel()
	r := seedPortfolio(t)

	bd := r.BalanceBreakdown()
	assert.True(t, bd.TotalUSD.Equal(dec("500")))
	assert.False(t, bd.IsNegative)
	for _, a := range bd.Assets {
		if a.Currency == money.BTC {
			assert.False(t, a.Priced)
			assert.True(t, a.USDValue.IsZero())
			assert.True(t, a.Balance.Equal(dec("0.01")))
		}
	}

	ps := r.PortfolioSummary()
	assert.True(t, ps.TotalIDR.IsZero())
	assert.True(t, ps.Allocation[money.USD].Equal(dec("100")))
	assert.True(t, ps.DiversificationScore.IsZero())
}

func TestPortfolioSummary_WithRates(t *testing.T) {
	t.Parallel()
	r := seedPortfolio(t)
	require.NoError(t, r.SetCurrencyRates(ledger.CurrencyRates{
		USDToIDR: dec("16000"),
		BTCToUSD: dec("50000"),
		ETHToUSD: dec("3000"),
		SOLToUSD: dec("150"),
	}, april))
	assert.True(t, r.CurrencyRates.Loaded())
	assert.Equal(t, april, r.CurrencyRates.LastUpdated)

	ps := r.PortfolioSummary()
	assert.True(t, ps.TotalUSD.Equal(dec("1000")))
	assert.True(t, ps.TotalIDR.Equal(dec("16000000")))
	assert.True(t, ps.Allocation[money.USD].Equal(dec("50")))
	assert.True(t, ps.Allocation[money.BTC].Equal(dec("50")))
	assert.True(t, ps.Allocation[money.ETH].IsZero())
	assert.True(t, ps.DiversificationScore.Equal(dec("50")))
	assert.True(t, r.TotalBalanceUSD().Equal(dec("1000")))
}

func TestBalanceBreakdown_Negative(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	_, err := r.AddTransaction(usdTx("25", false, march), march)
	require.NoError(t, err)

	bd := r.BalanceBreakdown()
	assert.True(t, bd.IsNegative)
	assert.Contains(t, bd.NegativeReason, "USD $-25.00")
	assert.Empty(t, r.PortfolioSummary().Allocation)
}

func TestSetCurrencyRates_RejectsNegative(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	err := r.SetCurrencyRates(ledger.CurrencyRates{BTCToUSD: dec("-1")}, april)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, r.CurrencyRates.Loaded())
}

func TestSummaryCounts(t *testing.T) {
	t.Parallel()
	r := seedPortfolio(t)
	_, err := r.AddBudget(foodBudget("100"), march)
	require.NoError(t, err)
	_, err = r.GoalCompletedAlert("Car", march)
	require.NoError(t, err)

	s := r.Summary()
	assert.Equal(t, 2, s.Transactions)
	assert.Equal(t, 1, s.Budgets)
	assert.Equal(t, 0, s.Goals)
	assert.Equal(t, 1, s.UnreadNotifications)

	balances := r.BalanceSummary()
	require.Len(t, balances, len(money.Supported()))
	assert.Equal(t, money.USD, balances[0].Currency)
	assert.True(t, balances[0].Balance.Equal(dec("500")))
}

func TestCodec(t *testing.T) {
	t.Parallel()

	empty, err := ledger.Decode(nil)
	require.NoError(t, err)
	assert.NotNil(t, empty.Balances)
	assert.NotNil(t, empty.WalletAddresses)

	r := seedPortfolio(t)
	cp, err := r.Clone()
	require.NoError(t, err)
	_, err = cp.AddTransaction(usdTx("1", true, april), april)
	require.NoError(t, err)
	assert.Len(t, r.Transactions, 2)
	assert.Len(t, cp.Transactions, 3)
	assert.True(t, cp.Balances[money.BTC].Equal(dec("0.01")))
	assert.Equal(t, uint64(3), cp.NextTxID)

	_, err = ledger.Decode([]byte("{not json"))
	require.Error(t, err)
}
