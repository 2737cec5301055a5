package ledger_test

import (
	"testing"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laptopGoal(target, current string) ledger.Goal {
	return ledger.Goal{
		Title:    "Laptop",
		Target:   dec(target),
		Current:  dec(current),
		Currency: money.USD,
		Deadline: "2025-12-31",
		Category: "Tech",
		Priority: ledger.PriorityHigh,
	}
}

func TestAddGoal_DerivesStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target, current string
		want            ledger.GoalStatus
	}{
		{"500", "500", ledger.GoalCompleted},
		{"500", "600", ledger.GoalCompleted},
		{"500", "499.99", ledger.GoalActive},
		{"500", "0", ledger.GoalActive},
	}
	for _, tc := range tests {
		t.Run(tc.target+"/"+tc.current, func(t *testing.T) {
			r := ledger.NewRecord()
			g := laptopGoal(tc.target, tc.current)
			g.Status = ledger.GoalCompleted
			got, err := r.AddGoal(g, march)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Status)
			assert.Equal(t, march, got.CreatedAt)
			assert.Equal(t, march, got.UpdatedAt)
		})
	}
}

func TestAddGoal_Validation(t *testing.T) {
	t.Parallel()

	bad := map[string]func(g *ledger.Goal){
		"priority":        func(g *ledger.Goal) { g.Priority = "urgent" },
		"currency":        func(g *ledger.Goal) { g.Currency = "JPY" },
		"target":          func(g *ledger.Goal) { g.Target = dec("0") },
		"negative amount": func(g *ledger.Goal) { g.Current = dec("-1") },
		"title":           func(g *ledger.Goal) { g.Title = "" },
	}
	for name, mutate := range bad {
		t.Run(name, func(t *testing.T) {
			r := ledger.NewRecord()
			g := laptopGoal("100", "0")
			mutate(&g)
			_, err := r.AddGoal(g, march)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, r.Goals)
		})
	}
}

func TestUpdateGoalProgress(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	g, err := r.AddGoal(laptopGoal("500", "100"), march)
	require.NoError(t, err)

	got, err := r.UpdateGoalProgress(g.ID, dec("500"), april)
	require.NoError(t, err)
	assert.Equal(t, ledger.GoalCompleted, got.Status)
	assert.Equal(t, april, got.UpdatedAt)

	require.Len(t, r.Notifications, 1)
	assert.Equal(t, "Goal Achieved!", r.Notifications[0].Title)
	assert.Equal(t, "Congratulations! Goal 'Laptop' has been completed!", r.Notifications[0].Message)
	assert.Equal(t, ledger.CategoryGoal, r.Notifications[0].Category)

	// staying completed does not alert again
	_, err = r.UpdateGoalProgress(g.ID, dec("600"), april)
	require.NoError(t, err)
	assert.Len(t, r.Notifications, 1)

	got, err = r.UpdateGoalProgress(g.ID, dec("10"), april)
	require.NoError(t, err)
	assert.Equal(t, ledger.GoalActive, got.Status)

	_, err = r.UpdateGoalProgress(g.ID, dec("-1"), april)
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = r.UpdateGoalProgress(77, dec("1"), april)
	require.ErrorIs(t, err, domain.ErrNotFound)

	p, ok := r.GoalProgress(g.ID)
	require.True(t, ok)
	assert.True(t, p.Percent.Equal(dec("2")))
}

func TestUpdateAndDeleteGoal(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	g, err := r.AddGoal(laptopGoal("500", "100"), march)
	require.NoError(t, err)

	repl := laptopGoal("200", "250")
	repl.Title = "Tablet"
	got, err := r.UpdateGoal(g.ID, repl, april)
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)
	assert.Equal(t, ledger.GoalCompleted, got.Status)
	assert.Equal(t, march, got.CreatedAt)
	assert.Len(t, r.Notifications, 1)

	_, err = r.UpdateGoal(g.ID, laptopGoal("200", "-5"), april)
	require.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, r.DeleteGoal(g.ID))
	require.ErrorIs(t, r.DeleteGoal(g.ID), domain.ErrNotFound)
}

func TestGoalFiltersAndTotals(t *testing.T) {
	t.Parallel()
	r := ledger.NewRecord()
	_, err := r.AddGoal(laptopGoal("500", "500"), march)
	require.NoError(t, err)
	low := laptopGoal("300", "100")
	low.Priority = ledger.PriorityLow
	_, err = r.AddGoal(low, march)
	require.NoError(t, err)

	assert.Len(t, r.GoalsByStatus(ledger.GoalCompleted), 1)
	assert.Len(t, r.GoalsByPriority(ledger.PriorityLow), 1)
	assert.Len(t, r.GoalsByCurrency(money.USD), 2)
	assert.True(t, r.TotalGoalTarget(money.USD, "").Equal(dec("800")))
	assert.True(t, r.TotalGoalCurrent(money.USD, ledger.GoalActive).Equal(dec("100")))
}
