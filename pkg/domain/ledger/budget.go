package ledger

import (
	"strings"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// BudgetAlertThreshold is the spent percentage at which a budget alert fires.
var BudgetAlertThreshold = decimal.NewFromInt(80)

// Budget caps spending in one category for one month and currency.
// Spent is always derived from the transactions; caller values are ignored.
type Budget struct {
	ID        uint64          `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Spent     decimal.Decimal `json:"spent"`
	Currency  money.Code      `json:"currency"`
	Period    string          `json:"period"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BudgetProgress is the target, spent and spent percentage of a budget.
type BudgetProgress struct {
	Target  decimal.Decimal `json:"target"`
	Spent   decimal.Decimal `json:"spent"`
	Percent decimal.Decimal `json:"percent"`
}

func (b *Budget) validate() error {
	b.Category = strings.TrimSpace(b.Category)
	if err := requireText("category", b.Category); err != nil {
		return err
	}
	if err := requireCurrency(b.Currency); err != nil {
		return err
	}
	if err := requirePositive("budget amount", b.Amount); err != nil {
		return err
	}
	return ValidatePeriod(b.Period)
}

func (b Budget) sameSlot(o Budget) bool {
	return b.Category == o.Category && b.Period == o.Period && b.Currency == o.Currency
}

// AddBudget validates b, rejects a second budget for the same category,
// period and currency, and stores it with its spent amount computed. A
// budget created at or above BudgetAlertThreshold gets its alert at once.
func (r *Record) AddBudget(b Budget, now time.Time) (Budget, error) {
	if err := b.validate(); err != nil {
		return Budget{}, err
	}
	for _, existing := range r.Budgets {
		if existing.sameSlot(b) {
			return Budget{}, domain.Conflictf("budget for %s in %s (%s) already exists", b.Category, b.Period, b.Currency)
		}
	}
	b.ID = r.NextBudgetID
	r.NextBudgetID++
	b.CreatedAt = now
	r.refreshSpent(&b, decimal.Zero, now)
	r.Budgets = append(r.Budgets, b)
	return b, nil
}

// UpdateBudget replaces the budget with id, keeping its id and creation
// time. A change that moves the budget across BudgetAlertThreshold alerts.
func (r *Record) UpdateBudget(id uint64, b Budget, now time.Time) (Budget, error) {
	i := r.budgetIndex(id)
	if i < 0 {
		return Budget{}, domain.NotFoundf("budget %d", id)
	}
	if err := b.validate(); err != nil {
		return Budget{}, err
	}
	for _, existing := range r.Budgets {
		if existing.ID != id && existing.sameSlot(b) {
			return Budget{}, domain.Conflictf("budget for %s in %s (%s) already exists", b.Category, b.Period, b.Currency)
		}
	}
	prev := r.Budgets[i]
	b.ID = id
	b.CreatedAt = prev.CreatedAt
	r.refreshSpent(&b, percent(prev.Spent, prev.Amount), now)
	r.Budgets[i] = b
	return b, nil
}

// DeleteBudget removes the budget with id.
func (r *Record) DeleteBudget(id uint64) error {
	i := r.budgetIndex(id)
	if i < 0 {
		return domain.NotFoundf("budget %d", id)
	}
	r.Budgets = append(r.Budgets[:i], r.Budgets[i+1:]...)
	return nil
}

// RecomputeSpent recomputes every budget's spent amount from scratch.
// A budget whose progress crosses BudgetAlertThreshold during this call
// gets a budget alert; the alerts created are returned.
func (r *Record) RecomputeSpent(now time.Time) []Notification {
	var alerts []Notification
	for i := range r.Budgets {
		b := &r.Budgets[i]
		if n, ok := r.refreshSpent(b, percent(b.Spent, b.Amount), now); ok {
			alerts = append(alerts, n)
		}
	}
	return alerts
}

// refreshSpent derives b.Spent from the transactions and raises a budget
// alert when the progress moves from below the threshold (before) to at or
// above it.
func (r *Record) refreshSpent(b *Budget, before decimal.Decimal, now time.Time) (Notification, bool) {
	b.Spent = r.TotalExpense(b.Currency, b.Period)
	b.UpdatedAt = now
	after := percent(b.Spent, b.Amount)
	if before.GreaterThanOrEqual(BudgetAlertThreshold) || after.LessThan(BudgetAlertThreshold) {
		return Notification{}, false
	}
	n, err := r.BudgetAlert(b.Category, after, now)
	return n, err == nil
}

// BudgetProgress returns the progress of the budget with id.
func (r *Record) BudgetProgress(id uint64) (BudgetProgress, bool) {
	i := r.budgetIndex(id)
	if i < 0 {
		return BudgetProgress{}, false
	}
	b := r.Budgets[i]
	return BudgetProgress{Target: b.Amount, Spent: b.Spent, Percent: percent(b.Spent, b.Amount)}, true
}

// Budget returns the budget with id.
func (r *Record) Budget(id uint64) (Budget, bool) {
	if i := r.budgetIndex(id); i >= 0 {
		return r.Budgets[i], true
	}
	return Budget{}, false
}

func (r *Record) budgetIndex(id uint64) int {
	for i := range r.Budgets {
		if r.Budgets[i].ID == id {
			return i
		}
	}
	return -1
}

// ListBudgets returns every budget.
func (r *Record) ListBudgets() []Budget {
	return r.filterBudgets(func(Budget) bool { return true })
}

// BudgetsByPeriod returns the budgets of the "YYYY-MM" month.
func (r *Record) BudgetsByPeriod(period string) []Budget {
	return r.filterBudgets(func(b Budget) bool { return b.Period == period })
}

// BudgetsByCurrency returns the budgets denominated in c.
func (r *Record) BudgetsByCurrency(c money.Code) []Budget {
	return r.filterBudgets(func(b Budget) bool { return b.Currency == c })
}

func (r *Record) filterBudgets(keep func(Budget) bool) []Budget {
	out := []Budget{}
	for _, b := range r.Budgets {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// TotalBudget sums budget targets in c, optionally limited to one period.
func (r *Record) TotalBudget(c money.Code, period string) decimal.Decimal {
	total := decimal.Zero
	for _, b := range r.Budgets {
		if b.Currency == c && (period == "" || b.Period == period) {
			total = total.Add(b.Amount)
		}
	}
	return total
}

// TotalSpent sums budget spent amounts in c, optionally limited to one period.
func (r *Record) TotalSpent(c money.Code, period string) decimal.Decimal {
	total := decimal.Zero
	for _, b := range r.Budgets {
		if b.Currency == c && (period == "" || b.Period == period) {
			total = total.Add(b.Spent)
		}
	}
	return total
}
