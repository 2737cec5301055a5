package ledger_test

import (
	"testing"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	march = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
	april = time.Date(2025, time.April, 2, 9, 30, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func usdTx(amount string, income bool, at time.Time) ledger.Transaction {
	return ledger.Transaction{
		Amount:      dec(amount),
		Currency:    money.USD,
		Description: "test",
		IsIncome:    income,
		Timestamp:   at,
		Date:        at.Format(time.DateOnly),
		Category:    "General",
	}
}

// assertBalanceInvariant checks every balance against the transactions.
func assertBalanceInvariant(t *testing.T, r *ledger.Record) {
	t.Helper()
	for _, c := range money.Supported() {
		want := r.TotalIncome(c, "").Sub(r.TotalExpense(c, ""))
		assert.True(t, want.Equal(r.Balances[c]), "balance %s: want %s got %s", c, want, r.Balances[c])
	}
}

func TestAddTransaction_IncomeAndExpense(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()

	in, err := r.AddTransaction(usdTx("100", true, march), march)
	require.NoError(t, err)
	out, err := r.AddTransaction(usdTx("40", false, march), march)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), in.ID)
	assert.Equal(t, uint64(1), out.ID)
	assert.Equal(t, ledger.TypeIncome, in.Type)
	assert.Equal(t, ledger.TypeExpense, out.Type)
	assert.Equal(t, ledger.SourceManual, in.Source)

	assert.True(t, r.Balance(money.USD, "").Equal(dec("60")))
	assert.True(t, r.TotalIncome(money.USD, "").Equal(dec("100")))
	assert.True(t, r.TotalExpense(money.USD, "").Equal(dec("40")))
	assertBalanceInvariant(t, r)
}

func TestAddTransaction_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tx   ledger.Transaction
	}{
		{"zero amount", usdTx("0", true, march)},
		{"negative amount", usdTx("-5", true, march)},
		{"unsupported currency", func() ledger.Transaction {
			tx := usdTx("5", true, march)
			tx.Currency = "EUR"
			return tx
		}()},
		{"type contradicts direction", func() ledger.Transaction {
			tx := usdTx("5", true, march)
			tx.Type = ledger.TypeSent
			return tx
		}()},
		{"unknown source", func() ledger.Transaction {
			tx := usdTx("5", true, march)
			tx.Source = "exchange"
			return tx
		}()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := ledger.NewRecord()
			_, err := r.AddTransaction(tc.tx, march)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, r.Transactions)
			assert.Equal(t, uint64(0), r.NextTxID)
			assert.Empty(t, r.Balances)
		})
	}
}

func TestAddTransaction_StampsMissingTimestamp(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()

	tx := usdTx("1", true, time.Time{})
	got, err := r.AddTransaction(tx, april)
	require.NoError(t, err)
	assert.Equal(t, april, got.Timestamp)
}

func TestDeleteTransaction_ReversesBalance(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	_, err := r.AddTransaction(usdTx("100", true, march), march)
	require.NoError(t, err)
	exp, err := r.AddTransaction(usdTx("40", false, march), march)
	require.NoError(t, err)

	_, err = r.DeleteTransaction(exp.ID)
	require.NoError(t, err)
	assert.True(t, r.Balances[money.USD].Equal(dec("100")))
	assertBalanceInvariant(t, r)

	_, err = r.DeleteTransaction(exp.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionIDsAreNeverReused(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()

	seen := map[uint64]bool{}
	for i := 0; i < 5; i++ {
		tx, err := r.AddTransaction(usdTx("1", true, march), march)
		require.NoError(t, err)
		assert.False(t, seen[tx.ID])
		seen[tx.ID] = true
		if i%2 == 0 {
			_, err = r.DeleteTransaction(tx.ID)
			require.NoError(t, err)
		}
	}
	next, err := r.AddTransaction(usdTx("1", true, march), march)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), next.ID)
	assertBalanceInvariant(t, r)
}

func TestUpdateTransaction(t *testing.T) {
	t.Parallel()

	t.Run("replaces effect across currencies", func(t *testing.T) {
		r := ledger.NewRecord()
		tx, err := r.AddTransaction(usdTx("50", false, march), march)
		require.NoError(t, err)

		repl := usdTx("0.5", true, time.Time{})
		repl.Currency = money.BTC
		got, err := r.UpdateTransaction(tx.ID, repl)
		require.NoError(t, err)

		assert.Equal(t, tx.ID, got.ID)
		assert.Equal(t, march, got.Timestamp)
		assert.True(t, r.Balances[money.USD].IsZero())
		assert.True(t, r.Balances[money.BTC].Equal(dec("0.5")))
		assertBalanceInvariant(t, r)
	})

	t.Run("invalid replacement leaves record untouched", func(t *testing.T) {
		r := ledger.NewRecord()
		tx, err := r.AddTransaction(usdTx("50", false, march), march)
		require.NoError(t, err)

		_, err = r.UpdateTransaction(tx.ID, usdTx("-1", true, march))
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.True(t, r.Balances[money.USD].Equal(dec("-50")))
		stored, ok := r.Transaction(tx.ID)
		require.True(t, ok)
		assert.True(t, stored.Amount.Equal(dec("50")))
	})

	t.Run("missing id", func(t *testing.T) {
		r := ledger.NewRecord()
		_, err := r.UpdateTransaction(9, usdTx("1", true, march))
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTransactionQueries(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()

	salary := usdTx("1000", true, march)
	salary.Category = "Salary"
	_, err := r.AddTransaction(salary, march)
	require.NoError(t, err)
	_, err = r.AddTransaction(usdTx("200", false, march), march)
	require.NoError(t, err)
	_, err = r.AddTransaction(usdTx("300", false, april), april)
	require.NoError(t, err)
	btc := usdTx("0.01", true, april)
	btc.Currency = money.BTC
	btc.Type = ledger.TypeReceived
	btc.Source = ledger.SourceBlockchain
	_, err = r.AddTransaction(btc, april)
	require.NoError(t, err)

	assert.Len(t, r.ListTransactions(), 4)
	assert.Len(t, r.TransactionsByPeriod("2025-03"), 2)
	assert.Len(t, r.TransactionsByPeriod("2025-04"), 2)
	assert.Empty(t, r.TransactionsByPeriod("2024-03"))
	assert.Len(t, r.TransactionsByType(true), 2)
	assert.Len(t, r.TransactionsByCategory("Salary"), 1)
	assert.Len(t, r.TransactionsByCurrency(money.BTC), 1)
	assert.Len(t, r.TransactionsBySource(ledger.SourceBlockchain), 1)

	assert.True(t, r.Balance(money.USD, "2025-03").Equal(dec("800")))
	assert.True(t, r.Balance(money.USD, "2025-04").Equal(dec("-300")))
	assert.True(t, r.TotalExpense(money.USD, "2025-04").Equal(dec("300")))
	assert.True(t, r.Balance(money.USD, "").Equal(dec("500")))
	assert.True(t, r.Balance(money.USD, "").Equal(r.TotalIncome(money.USD, "").Sub(r.TotalExpense(money.USD, ""))))
}

func TestYearMonthUsesCalendarMonths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024-02", ledger.YearMonth(time.Date(2024, time.February, 29, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01", ledger.YearMonth(time.Date(2024, time.December, 31, 23, 0, 0, 0, time.FixedZone("UTC-2", -2*3600))))
	require.NoError(t, ledger.ValidatePeriod("2025-12"))
	require.ErrorIs(t, ledger.ValidatePeriod("2025-13"), domain.ErrValidation)
	require.ErrorIs(t, ledger.ValidatePeriod("March"), domain.ErrValidation)
}
