package ledger

import (
	"context"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// GoalFilter narrows ListGoals. Zero fields match everything.
type GoalFilter struct {
	Status   ledger.GoalStatus
	Priority ledger.Priority
	Currency money.Code
}

func (f *GoalFilter) validate() error {
	if f.Status != "" {
		st, err := ledger.ParseGoalStatus(string(f.Status))
		if err != nil {
			return err
		}
		f.Status = st
	}
	if f.Priority != "" {
		p, err := ledger.ParsePriority(string(f.Priority))
		if err != nil {
			return err
		}
		f.Priority = p
	}
	if f.Currency != "" && !f.Currency.IsValid() {
		return domain.Validationf("invalid currency %q", f.Currency)
	}
	return nil
}

// GoalTotals sums goal targets and current amounts in one currency.
type GoalTotals struct {
	Currency money.Code        `json:"currency"`
	Status   ledger.GoalStatus `json:"status,omitempty"`
	Target   decimal.Decimal   `json:"total_target"`
	Current  decimal.Decimal   `json:"total_current"`
}

func (s *Service) AddGoal(ctx context.Context, caller domain.Caller, g ledger.Goal) (added ledger.Goal, err error) {
	err = s.mutate(ctx, caller, "AddGoal", func(rec *ledger.Record, now time.Time) error {
		added, err = rec.AddGoal(g, now)
		return err
	})
	return added, err
}

// UpdateGoal replaces a goal and re-derives its status.
func (s *Service) UpdateGoal(ctx context.Context, caller domain.Caller, id uint64, g ledger.Goal) (updated ledger.Goal, err error) {
	err = s.mutate(ctx, caller, "UpdateGoal", func(rec *ledger.Record, now time.Time) error {
		updated, err = rec.UpdateGoal(id, g, now)
		return err
	})
	return updated, err
}

// UpdateGoalProgress sets the current amount of a goal.
func (s *Service) UpdateGoalProgress(
	ctx context.Context,
	caller domain.Caller,
	id uint64,
	current decimal.Decimal,
) (updated ledger.Goal, err error) {
	err = s.mutate(ctx, caller, "UpdateGoalProgress", func(rec *ledger.Record, now time.Time) error {
		updated, err = rec.UpdateGoalProgress(id, current, now)
		return err
	})
	return updated, err
}

func (s *Service) DeleteGoal(ctx context.Context, caller domain.Caller, id uint64) error {
	return s.mutate(ctx, caller, "DeleteGoal", func(rec *ledger.Record, _ time.Time) error {
		return rec.DeleteGoal(id)
	})
}

func (s *Service) Goal(ctx context.Context, caller domain.Caller, id uint64) (ledger.Goal, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return ledger.Goal{}, err
	}
	g, ok := rec.Goal(id)
	if !ok {
		return ledger.Goal{}, domain.NotFoundf("goal %d", id)
	}
	return g, nil
}

func (s *Service) ListGoals(ctx context.Context, caller domain.Caller, f GoalFilter) ([]ledger.Goal, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	rec, err := s.view(ctx, caller)
	if err != nil {
		return nil, err
	}
	goals := rec.ListGoals()
	if f.Status != "" {
		goals = rec.GoalsByStatus(f.Status)
	}
	out := []ledger.Goal{}
	for _, g := range goals {
		if (f.Priority == "" || g.Priority == f.Priority) && (f.Currency == "" || g.Currency == f.Currency) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *Service) GoalProgress(ctx context.Context, caller domain.Caller, id uint64) (ledger.GoalProgress, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return ledger.GoalProgress{}, err
	}
	p, ok := rec.GoalProgress(id)
	if !ok {
		return ledger.GoalProgress{}, domain.NotFoundf("goal %d", id)
	}
	return p, nil
}

func (s *Service) GoalTotals(ctx context.Context, caller domain.Caller, c money.Code, st ledger.GoalStatus) (GoalTotals, error) {
	f := GoalFilter{Status: st, Currency: c}
	if err := f.validate(); err != nil {
		return GoalTotals{}, err
	}
	if !c.IsValid() {
		return GoalTotals{}, domain.Validationf("invalid currency %q", c)
	}
	rec, err := s.view(ctx, caller)
	if err != nil {
		return GoalTotals{}, err
	}
	return GoalTotals{
		Currency: c,
		Status:   f.Status,
		Target:   rec.TotalGoalTarget(c, f.Status),
		Current:  rec.TotalGoalCurrent(c, f.Status),
	}, nil
}
