package transaction

import (
	"time"

	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// TransactionRequest is the body of POST and PUT /api/transactions.
type TransactionRequest struct {
	Amount          decimal.Decimal  `json:"amount" swaggertype:"number"`
	Currency        string           `json:"currency" validate:"required"`
	Description     string           `json:"description" validate:"max=500"`
	Category        string           `json:"category" validate:"max=100"`
	IsIncome        bool             `json:"is_income"`
	Date            string           `json:"date"`
	Timestamp       *time.Time       `json:"timestamp"`
	Type            string           `json:"transaction_type" validate:"omitempty,oneof=income expense received sent"`
	Source          string           `json:"source" validate:"omitempty,oneof=manual blockchain"`
	TxID            string           `json:"txid"`
	Vout            *uint32          `json:"vout"`
	Fee             *decimal.Decimal `json:"fee" swaggertype:"number"`
	DisplayCurrency string           `json:"display_currency"`
}

func (r TransactionRequest) toDomain() (ledger.Transaction, error) {
	c, err := money.ParseCode(r.Currency)
	if err != nil {
		return ledger.Transaction{}, err
	}
	tx := ledger.Transaction{
		Amount:      r.Amount,
		Currency:    c,
		Description: r.Description,
		Category:    r.Category,
		IsIncome:    r.IsIncome,
		Date:        r.Date,
		Type:        ledger.TransactionType(r.Type),
		Source:      ledger.Source(r.Source),
		TxID:        r.TxID,
		Vout:        r.Vout,
		Fee:         r.Fee,
	}
	if r.Timestamp != nil {
		tx.Timestamp = r.Timestamp.UTC()
	}
	return tx, nil
}

// ManualTransactionRequest is the body of POST /api/transactions/manual.
type ManualTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" swaggertype:"number"`
	Currency    string          `json:"currency" validate:"required"`
	Description string          `json:"description" validate:"required,max=500"`
	Category    string          `json:"category" validate:"required,max=100"`
	Date        string          `json:"date" validate:"required"`
	Type        string          `json:"type" validate:"required,oneof=income expense"`
}

// TotalResponse is the body of the balance, income and expense endpoints.
type TotalResponse struct {
	Currency  money.Code      `json:"currency"`
	Period    string          `json:"period,omitempty"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"number"`
	Formatted string          `json:"formatted"`
}
