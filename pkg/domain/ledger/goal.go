package ledger

import (
	"strings"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// Priority ranks a goal.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority returns the priority named by s.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", domain.Validationf("invalid priority %q", s)
}

// GoalStatus is derived from a goal's amounts and never set by callers.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

// ParseGoalStatus returns the status named by s.
func ParseGoalStatus(s string) (GoalStatus, error) {
	switch st := GoalStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case GoalActive, GoalCompleted:
		return st, nil
	}
	return "", domain.Validationf("invalid goal status %q", s)
}

// Goal is a savings target.
type Goal struct {
	ID          uint64          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Target      decimal.Decimal `json:"target_amount"`
	Current     decimal.Decimal `json:"current_amount"`
	Currency    money.Code      `json:"currency"`
	Deadline    string          `json:"deadline"`
	Category    string          `json:"category"`
	Priority    Priority        `json:"priority"`
	Status      GoalStatus      `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// GoalProgress is the target, current amount and completion percentage of a goal.
type GoalProgress struct {
	Target  decimal.Decimal `json:"target"`
	Current decimal.Decimal `json:"current"`
	Percent decimal.Decimal `json:"percent"`
}

func statusFor(current, target decimal.Decimal) GoalStatus {
	if current.GreaterThanOrEqual(target) {
		return GoalCompleted
	}
	return GoalActive
}

func (g *Goal) validate() error {
	g.Title = strings.TrimSpace(g.Title)
	if err := requireText("title", g.Title); err != nil {
		return err
	}
	if err := requireCurrency(g.Currency); err != nil {
		return err
	}
	p, err := ParsePriority(string(g.Priority))
	if err != nil {
		return err
	}
	g.Priority = p
	if err := requirePositive("target amount", g.Target); err != nil {
		return err
	}
	if g.Current.IsNegative() {
		return validationNegative("current amount")
	}
	g.Status = statusFor(g.Current, g.Target)
	return nil
}

// AddGoal validates g, derives its status and stores it.
func (r *Record) AddGoal(g Goal, now time.Time) (Goal, error) {
	if err := g.validate(); err != nil {
		return Goal{}, err
	}
	g.ID = r.NextGoalID
	r.NextGoalID++
	g.CreatedAt = now
	g.UpdatedAt = now
	r.Goals = append(r.Goals, g)
	return g, nil
}

// UpdateGoal replaces the goal with id, keeping its id and creation time.
// Moving a goal into the completed state emits a goal-completed alert.
func (r *Record) UpdateGoal(id uint64, g Goal, now time.Time) (Goal, error) {
	i := r.goalIndex(id)
	if i < 0 {
		return Goal{}, domain.NotFoundf("goal %d", id)
	}
	if err := g.validate(); err != nil {
		return Goal{}, err
	}
	prev := r.Goals[i]
	g.ID = id
	g.CreatedAt = prev.CreatedAt
	g.UpdatedAt = now
	r.Goals[i] = g
	r.alertCompletion(prev.Status, g, now)
	return g, nil
}

// UpdateGoalProgress sets the goal's current amount and re-derives its status.
func (r *Record) UpdateGoalProgress(id uint64, current decimal.Decimal, now time.Time) (Goal, error) {
	i := r.goalIndex(id)
	if i < 0 {
		return Goal{}, domain.NotFoundf("goal %d", id)
	}
	if current.IsNegative() {
		return Goal{}, validationNegative("current amount")
	}
	g := &r.Goals[i]
	prev := g.Status
	g.Current = current
	g.Status = statusFor(g.Current, g.Target)
	g.UpdatedAt = now
	r.alertCompletion(prev, *g, now)
	return *g, nil
}

func (r *Record) alertCompletion(prev GoalStatus, g Goal, now time.Time) {
	if prev != GoalCompleted && g.Status == GoalCompleted {
		_, _ = r.GoalCompletedAlert(g.Title, now)
	}
}

// DeleteGoal removes the goal with id.
func (r *Record) DeleteGoal(id uint64) error {
	i := r.goalIndex(id)
	if i < 0 {
		return domain.NotFoundf("goal %d", id)
	}
	r.Goals = append(r.Goals[:i], r.Goals[i+1:]...)
	return nil
}

// GoalProgress returns the progress of the goal with id.
func (r *Record) GoalProgress(id uint64) (GoalProgress, bool) {
	i := r.goalIndex(id)
	if i < 0 {
		return GoalProgress{}, false
	}
	g := r.Goals[i]
	return GoalProgress{Target: g.Target, Current: g.Current, Percent: percent(g.Current, g.Target)}, true
}

// Goal returns the goal with id.
func (r *Record) Goal(id uint64) (Goal, bool) {
	if i := r.goalIndex(id); i >= 0 {
		return r.Goals[i], true
	}
	return Goal{}, false
}

func (r *Record) goalIndex(id uint64) int {
	for i := range r.Goals {
		if r.Goals[i].ID == id {
			return i
		}
	}
	return -1
}

// ListGoals returns every goal.
func (r *Record) ListGoals() []Goal {
	return r.filterGoals(func(Goal) bool { return true })
}

// GoalsByStatus returns the active or completed goals.
func (r *Record) GoalsByStatus(st GoalStatus) []Goal {
	return r.filterGoals(func(g Goal) bool { return g.Status == st })
}

// GoalsByPriority returns the goals with priority p.
func (r *Record) GoalsByPriority(p Priority) []Goal {
	return r.filterGoals(func(g Goal) bool { return g.Priority == p })
}

// GoalsByCurrency returns the goals denominated in c.
func (r *Record) GoalsByCurrency(c money.Code) []Goal {
	return r.filterGoals(func(g Goal) bool { return g.Currency == c })
}

func (r *Record) filterGoals(keep func(Goal) bool) []Goal {
	out := []Goal{}
	for _, g := range r.Goals {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

// TotalGoalTarget sums goal targets in c, optionally limited to one status.
func (r *Record) TotalGoalTarget(c money.Code, st GoalStatus) decimal.Decimal {
	total := decimal.Zero
	for _, g := range r.Goals {
		if g.Currency == c && (st == "" || g.Status == st) {
			total = total.Add(g.Target)
		}
	}
	return total
}

// TotalGoalCurrent sums goal current amounts in c, optionally limited to one status.
func (r *Record) TotalGoalCurrent(c money.Code, st GoalStatus) decimal.Decimal {
	total := decimal.Zero
	for _, g := range r.Goals {
		if g.Currency == c && (st == "" || g.Status == st) {
			total = total.Add(g.Current)
		}
	}
	return total
}
