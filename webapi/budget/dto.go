package budget

import (
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// BudgetRequest is the body of POST and PUT /api/budgets. Spent is derived
// and cannot be set.
type BudgetRequest struct {
	Category string          `json:"category" validate:"required,max=100"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"number"`
	Currency string          `json:"currency" validate:"required"`
	Period   string          `json:"period" validate:"required,len=7"`
}

func (r BudgetRequest) toDomain() (ledger.Budget, error) {
	c, err := money.ParseCode(r.Currency)
	if err != nil {
		return ledger.Budget{}, err
	}
	return ledger.Budget{Category: r.Category, Amount: r.Amount, Currency: c, Period: r.Period}, nil
}
