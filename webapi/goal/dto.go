package goal

import (
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// GoalRequest is the body of POST and PUT /api/goals. Status is derived
// from the amounts and cannot be set.
type GoalRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	Target      decimal.Decimal `json:"target_amount" swaggertype:"number"`
	Current     decimal.Decimal `json:"current_amount" swaggertype:"number"`
	Currency    string          `json:"currency" validate:"required"`
	Deadline    string          `json:"deadline"`
	Category    string          `json:"category" validate:"max=100"`
	Priority    string          `json:"priority" validate:"required"`
}

func (r GoalRequest) toDomain() (ledger.Goal, error) {
	c, err := money.ParseCode(r.Currency)
	if err != nil {
		return ledger.Goal{}, err
	}
	return ledger.Goal{
		Title:       r.Title,
		Description: r.Description,
		Target:      r.Target,
		Current:     r.Current,
		Currency:    c,
		Deadline:    r.Deadline,
		Category:    r.Category,
		Priority:    ledger.Priority(r.Priority),
	}, nil
}

// ProgressRequest is the body of PATCH /api/goals/:id/progress.
type ProgressRequest struct {
	Current decimal.Decimal `json:"current_amount" swaggertype:"number"`
}
