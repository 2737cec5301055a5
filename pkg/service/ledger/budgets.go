package ledger

import (
	"context"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// BudgetFilter narrows ListBudgets.
type BudgetFilter struct {
	Period   string
	Currency money.Code
}

// BudgetTotals sums budget targets and spent amounts in one currency.
type BudgetTotals struct {
	Currency money.Code      `json:"currency"`
	Period   string          `json:"period,omitempty"`
	Budget   decimal.Decimal `json:"total_budget"`
	Spent    decimal.Decimal `json:"total_spent"`
}

// RecomputeResult is the outcome of a spent recomputation.
type RecomputeResult struct {
	Budgets []ledger.Budget       `json:"budgets"`
	Alerts  []ledger.Notification `json:"alerts"`
}

func (s *Service) AddBudget(ctx context.Context, caller domain.Caller, b ledger.Budget) (added ledger.Budget, err error) {
	err = s.mutate(ctx, caller, "AddBudget", func(rec *ledger.Record, now time.Time) error {
		added, err = rec.AddBudget(b, now)
		return err
	})
	return added, err
}

func (s *Service) UpdateBudget(
	ctx context.Context,
	caller domain.Caller,
	id uint64,
	b ledger.Budget,
) (updated ledger.Budget, err error) {
	err = s.mutate(ctx, caller, "UpdateBudget", func(rec *ledger.Record, now time.Time) error {
		updated, err = rec.UpdateBudget(id, b, now)
		return err
	})
	return updated, err
}

func (s *Service) DeleteBudget(ctx context.Context, caller domain.Caller, id uint64) error {
	return s.mutate(ctx, caller, "DeleteBudget", func(rec *ledger.Record, _ time.Time) error {
		return rec.DeleteBudget(id)
	})
}

// RecomputeSpent derives every budget's spent amount from the transactions
// and returns the alerts raised by budgets that crossed the threshold.
func (s *Service) RecomputeSpent(ctx context.Context, caller domain.Caller) (res RecomputeResult, err error) {
	err = s.mutate(ctx, caller, "RecomputeSpent", func(rec *ledger.Record, now time.Time) error {
		res.Alerts = rec.RecomputeSpent(now)
		res.Budgets = rec.ListBudgets()
		return nil
	})
	return res, err
}

func (s *Service) ListBudgets(ctx context.Context, caller domain.Caller, f BudgetFilter) ([]ledger.Budget, error) {
	if f.Period != "" {
		if err := ledger.ValidatePeriod(f.Period); err != nil {
			return nil, err
		}
	}
	if f.Currency != "" && !f.Currency.IsValid() {
		return nil, domain.Validationf("invalid currency %q", f.Currency)
	}
	rec, err := s.view(ctx, caller)
	if err != nil {
		return nil, err
	}
	budgets := rec.ListBudgets()
	if f.Period != "" {
		budgets = rec.BudgetsByPeriod(f.Period)
	}
	if f.Currency == "" {
		return budgets, nil
	}
	out := []ledger.Budget{}
	for _, b := range budgets {
		if b.Currency == f.Currency {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Service) Budget(ctx context.Context, caller domain.Caller, id uint64) (ledger.Budget, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return ledger.Budget{}, err
	}
	b, ok := rec.Budget(id)
	if !ok {
		return ledger.Budget{}, domain.NotFoundf("budget %d", id)
	}
	return b, nil
}

func (s *Service) BudgetProgress(ctx context.Context, caller domain.Caller, id uint64) (ledger.BudgetProgress, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return ledger.BudgetProgress{}, err
	}
	p, ok := rec.BudgetProgress(id)
	if !ok {
		return ledger.BudgetProgress{}, domain.NotFoundf("budget %d", id)
	}
	return p, nil
}

func (s *Service) BudgetTotals(ctx context.Context, caller domain.Caller, c money.Code, period string) (BudgetTotals, error) {
	if err := validateTotalsQuery(c, period); err != nil {
		return BudgetTotals{}, err
	}
	rec, err := s.view(ctx, caller)
	if err != nil {
		return BudgetTotals{}, err
	}
	return BudgetTotals{
		Currency: c,
		Period:   period,
		Budget:   rec.TotalBudget(c, period),
		Spent:    rec.TotalSpent(c, period),
	}, nil
}
