package ledger_test

import (
	"testing"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func foodBudget(amount string) ledger.Budget {
	return ledger.Budget{Category: "Food", Amount: dec(amount), Currency: money.USD, Period: "2025-03"}
}

func TestAddBudget(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	_, err := r.AddTransaction(usdTx("40", false, march), march)
	require.NoError(t, err)

	b := foodBudget("100")
	b.Spent = dec("9999")
	got, err := r.AddBudget(b, march)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got.ID)
	assert.True(t, got.Spent.Equal(dec("40")), "spent is derived, not caller supplied")
	assert.Equal(t, march, got.CreatedAt)

	_, err = r.AddBudget(foodBudget("250"), march)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, r.Budgets, 1)

	other := foodBudget("250")
	other.Period = "2025-04"
	_, err = r.AddBudget(other, march)
	require.NoError(t, err)
}

func TestAddBudget_Validation(t *testing.T) {
	t.Parallel()

	bad := map[string]ledger.Budget{
		"non-positive amount": foodBudget("0"),
		"currency":            {Category: "Food", Amount: dec("1"), Currency: "EUR", Period: "2025-03"},
		"period":              {Category: "Food", Amount: dec("1"), Currency: money.USD, Period: "03/2025"},
		"category":            {Category: "  ", Amount: dec("1"), Currency: money.USD, Period: "2025-03"},
	}
	for name, b := range bad {
		t.Run(name, func(t *testing.T) {
			r := ledger.NewRecord()
			_, err := r.AddBudget(b, march)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, uint64(0), r.NextBudgetID)
		})
	}
}

func TestRecomputeSpent_IsIdempotent(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	b, err := r.AddBudget(foodBudget("100"), march)
	require.NoError(t, err)

	_, err = r.AddTransaction(usdTx("30", false, march), march)
	require.NoError(t, err)
	_, err = r.AddTransaction(usdTx("25", false, march), march)
	require.NoError(t, err)
	_, err = r.AddTransaction(usdTx("500", true, march), march)
	require.NoError(t, err)
	_, err = r.AddTransaction(usdTx("70", false, april), april)
	require.NoError(t, err)

	r.RecomputeSpent(april)
	first, _ := r.Budget(b.ID)
	r.RecomputeSpent(april)
	second, _ := r.Budget(b.ID)

	assert.True(t, first.Spent.Equal(dec("55")))
	assert.True(t, first.Spent.Equal(second.Spent))
	assert.Equal(t, april, second.UpdatedAt)
}

func TestRecomputeSpent_AlertsOnceWhenThresholdCrossed(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	_, err := r.AddBudget(foodBudget("100"), march)
	require.NoError(t, err)

	_, err = r.AddTransaction(usdTx("85", false, march), march)
	require.NoError(t, err)

	alerts := r.RecomputeSpent(march)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Budget Alert", alerts[0].Title)
	assert.Equal(t, "Budget Food has reached 85.0%", alerts[0].Message)
	assert.Equal(t, ledger.NotificationWarning, alerts[0].Type)
	assert.Equal(t, ledger.CategoryBudget, alerts[0].Category)

	assert.Empty(t, r.RecomputeSpent(march))
	assert.Equal(t, 1, r.UnreadCount())
}

func TestAddBudget_AlertsWhenCreatedOverThreshold(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	_, err := r.AddTransaction(usdTx("90", false, march), march)
	require.NoError(t, err)

	_, err = r.AddBudget(foodBudget("100"), march)
	require.NoError(t, err)
	unread := r.UnreadNotifications()
	require.Len(t, unread, 1)
	assert.Equal(t, "Budget Food has reached 90.0%", unread[0].Message)
	assert.Equal(t, ledger.CategoryBudget, unread[0].Category)

	assert.Empty(t, r.RecomputeSpent(april), "already alerted")
	assert.Equal(t, 1, r.UnreadCount())

	rent := foodBudget("1000")
	rent.Category = "Rent"
	_, err = r.AddBudget(rent, march)
	require.NoError(t, err)
	assert.Equal(t, 1, r.UnreadCount(), "9% spent stays quiet")
}

func TestBudgetProgressUpdateDelete(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	_, err := r.AddTransaction(usdTx("40", false, march), march)
	require.NoError(t, err)
	b, err := r.AddBudget(foodBudget("200"), march)
	require.NoError(t, err)

	p, ok := r.BudgetProgress(b.ID)
	require.True(t, ok)
	assert.True(t, p.Target.Equal(dec("200")))
	assert.True(t, p.Spent.Equal(dec("40")))
	assert.True(t, p.Percent.Equal(dec("20")))

	_, ok = r.BudgetProgress(42)
	assert.False(t, ok)

	upd := foodBudget("50")
	updated, err := r.UpdateBudget(b.ID, upd, april)
	require.NoError(t, err)
	assert.Equal(t, b.ID, updated.ID)
	assert.Equal(t, march, updated.CreatedAt)
	assert.Equal(t, april, updated.UpdatedAt)
	assert.True(t, updated.Spent.Equal(dec("40")))
	require.Len(t, r.UnreadNotifications(), 1, "shrinking the budget to 50 crosses 80%")
	assert.Equal(t, "Budget Food has reached 80.0%", r.UnreadNotifications()[0].Message)

	_, err = r.UpdateBudget(99, upd, april)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, r.DeleteBudget(b.ID))
	require.ErrorIs(t, r.DeleteBudget(b.ID), domain.ErrNotFound)
	assert.Empty(t, r.ListBudgets())
}

func TestUpdateBudget_RejectsCollision(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	_, err := r.AddBudget(foodBudget("100"), march)
	require.NoError(t, err)
	rent := foodBudget("900")
	rent.Category = "Rent"
	b, err := r.AddBudget(rent, march)
	require.NoError(t, err)

	_, err = r.UpdateBudget(b.ID, foodBudget("900"), april)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestBudgetTotalsAndFilters(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	_, err := r.AddBudget(foodBudget("100"), march)
	require.NoError(t, err)
	next := foodBudget("150")
	next.Period = "2025-04"
	_, err = r.AddBudget(next, march)
	require.NoError(t, err)
	btc := foodBudget("1")
	btc.Currency = money.BTC
	_, err = r.AddBudget(btc, march)
	require.NoError(t, err)

	assert.Len(t, r.BudgetsByPeriod("2025-03"), 2)
	assert.Len(t, r.BudgetsByCurrency(money.USD), 2)
	assert.True(t, r.TotalBudget(money.USD, "").Equal(dec("250")))
	assert.True(t, r.TotalBudget(money.USD, "2025-04").Equal(dec("150")))
	assert.True(t, r.TotalSpent(money.USD, "").IsZero())
}
