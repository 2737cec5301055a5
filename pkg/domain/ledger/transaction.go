package ledger

import (
	"strings"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction and origin of a transaction.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeReceived TransactionType = "received"
	TypeSent     TransactionType = "sent"
)

// ParseTransactionType returns the transaction type named by s.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeIncome, TypeExpense, TypeReceived, TypeSent:
		return t, nil
	}
	return "", domain.Validationf("invalid transaction type %q", s)
}

// IsIncome reports whether the type increases the balance.
func (t TransactionType) IsIncome() bool {
	return t == TypeIncome || t == TypeReceived
}

// Source records where a transaction came from.
type Source string

const (
	SourceManual     Source = "manual"
	SourceBlockchain Source = "blockchain"
)

// ParseSource returns the source named by s.
func ParseSource(s string) (Source, error) {
	switch src := Source(strings.ToLower(strings.TrimSpace(s))); src {
	case SourceManual, SourceBlockchain:
		return src, nil
	}
	return "", domain.Validationf("invalid transaction source %q", s)
}

// Transaction is a single ledger entry. Amount is always a positive
// magnitude; IsIncome decides its sign when applied to a balance.
type Transaction struct {
	ID                uint64           `json:"id"`
	Amount            decimal.Decimal  `json:"amount"`
	Currency          money.Code       `json:"currency"`
	Description       string           `json:"description"`
	IsIncome          bool             `json:"is_income"`
	Timestamp         time.Time        `json:"timestamp"`
	Date              string           `json:"date"`
	Category          string           `json:"category"`
	ConvertedAmount   *decimal.Decimal `json:"converted_amount,omitempty"`
	ConvertedCurrency money.Code       `json:"converted_currency,omitempty"`
	ConversionRate    *decimal.Decimal `json:"conversion_rate,omitempty"`
	Type              TransactionType  `json:"transaction_type"`
	Source            Source           `json:"source"`
	TxID              string           `json:"txid,omitempty"`
	Vout              *uint32          `json:"vout,omitempty"`
	Confirmations     uint32           `json:"confirmations,omitempty"`
	Fee               *decimal.Decimal `json:"fee,omitempty"`
}

// Period returns the "YYYY-MM" bucket the transaction belongs to.
func (t Transaction) Period() string {
	return YearMonth(t.Timestamp)
}

// signed returns the effect of t on its currency balance.
func (t Transaction) signed() decimal.Decimal {
	if t.IsIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// normalize validates t and fills the derived type and source defaults.
func (t *Transaction) normalize() error {
	if !t.Currency.IsValid() {
		return domain.Validationf("invalid currency %q", t.Currency)
	}
	if !t.Amount.IsPositive() {
		return domain.Validationf("amount must be positive")
	}
	if t.Type == "" {
		t.Type = TypeExpense
		if t.IsIncome {
			t.Type = TypeIncome
		}
	} else {
		typ, err := ParseTransactionType(string(t.Type))
		if err != nil {
			return err
		}
		if typ.IsIncome() != t.IsIncome {
			return domain.Validationf("transaction type %q contradicts is_income=%t", typ, t.IsIncome)
		}
		t.Type = typ
	}
	if t.Source == "" {
		t.Source = SourceManual
	} else {
		src, err := ParseSource(string(t.Source))
		if err != nil {
			return err
		}
		t.Source = src
	}
	if t.Fee != nil && t.Fee.IsNegative() {
		return domain.Validationf("fee cannot be negative")
	}
	if t.ConvertedCurrency != "" && !t.ConvertedCurrency.IsValid() {
		return domain.Validationf("invalid converted currency %q", t.ConvertedCurrency)
	}
	return nil
}
