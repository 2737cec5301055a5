package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// manualDateLayouts are the accepted forms of a manual transaction date.
var manualDateLayouts = []string{time.RFC3339, time.DateTime, time.DateOnly}

// ManualTransaction is a transaction typed in by the caller.
type ManualTransaction struct {
	Amount      decimal.Decimal
	Currency    money.Code
	Description string
	Category    string
	Date        string
	Type        string
}

// TransactionFilter narrows ListTransactions. Zero fields match everything.
type TransactionFilter struct {
	Period   string
	Currency money.Code
	Source   ledger.Source
	Category string
	IsIncome *bool
}

func (f TransactionFilter) validate() error {
	if f.Period != "" {
		if err := ledger.ValidatePeriod(f.Period); err != nil {
			return err
		}
	}
	if f.Currency != "" && !f.Currency.IsValid() {
		return domain.Validationf("invalid currency %q", f.Currency)
	}
	if f.Source != "" {
		if _, err := ledger.ParseSource(string(f.Source)); err != nil {
			return err
		}
	}
	return nil
}

func (f TransactionFilter) match(t ledger.Transaction) bool {
	switch {
	case f.Period != "" && t.Period() != f.Period:
		return false
	case f.Currency != "" && t.Currency != f.Currency:
		return false
	case f.Source != "" && t.Source != f.Source:
		return false
	case f.Category != "" && t.Category != f.Category:
		return false
	case f.IsIncome != nil && t.IsIncome != *f.IsIncome:
		return false
	}
	return true
}

// withDisplay fills the converted fields of tx for the display currency.
func (s *Service) withDisplay(tx ledger.Transaction, display money.Code) (ledger.Transaction, error) {
	if display == "" {
		return tx, nil
	}
	rate, err := s.rates.GetRate(tx.Currency, display)
	if err != nil {
		return tx, err
	}
	converted := tx.Amount.Mul(rate)
	tx.ConvertedAmount = &converted
	tx.ConvertedCurrency = display
	tx.ConversionRate = &rate
	return tx, nil
}

// AddTransaction records tx for the caller. When display is set the
// transaction also carries its amount converted at the current rate.
func (s *Service) AddTransaction(
	ctx context.Context,
	caller domain.Caller,
	tx ledger.Transaction,
	display money.Code,
) (added ledger.Transaction, err error) {
	if caller.IsAnonymous() {
		return ledger.Transaction{}, domain.ErrAuthenticationRequired
	}
	if tx, err = s.withDisplay(tx, display); err != nil {
		return ledger.Transaction{}, err
	}
	err = s.mutate(ctx, caller, "AddTransaction", func(rec *ledger.Record, now time.Time) error {
		added, err = rec.AddTransaction(tx, now)
		return err
	})
	return added, err
}

// AddManualTransaction validates a caller-entered transaction and records it.
func (s *Service) AddManualTransaction(
	ctx context.Context,
	caller domain.Caller,
	m ManualTransaction,
) (ledger.Transaction, error) {
	if caller.IsAnonymous() {
		return ledger.Transaction{}, domain.ErrAuthenticationRequired
	}
	tx, err := m.transaction()
	if err != nil {
		return ledger.Transaction{}, err
	}
	return s.AddTransaction(ctx, caller, tx, "")
}

func (m ManualTransaction) transaction() (ledger.Transaction, error) {
	desc := strings.TrimSpace(m.Description)
	category := strings.TrimSpace(m.Category)
	date := strings.TrimSpace(m.Date)
	switch {
	case desc == "":
		return ledger.Transaction{}, domain.Validationf("description is required")
	case category == "":
		return ledger.Transaction{}, domain.Validationf("category is required")
	case date == "":
		return ledger.Transaction{}, domain.Validationf("date is required")
	}
	typ, err := ledger.ParseTransactionType(m.Type)
	if err != nil {
		return ledger.Transaction{}, err
	}
	if typ != ledger.TypeIncome && typ != ledger.TypeExpense {
		return ledger.Transaction{}, domain.Validationf("manual transaction type must be income or expense")
	}
	ts, err := parseManualDate(date)
	if err != nil {
		return ledger.Transaction{}, err
	}
	return ledger.Transaction{
		Amount:      m.Amount,
		Currency:    m.Currency,
		Description: desc,
		Category:    category,
		Date:        date,
		Timestamp:   ts,
		IsIncome:    typ.IsIncome(),
		Type:        typ,
		Source:      ledger.SourceManual,
	}, nil
}

func parseManualDate(date string) (time.Time, error) {
	for _, layout := range manualDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.Validationf("invalid date %q", date)
}

// UpdateTransaction replaces a transaction, keeping its id.
func (s *Service) UpdateTransaction(
	ctx context.Context,
	caller domain.Caller,
	id uint64,
	tx ledger.Transaction,
) (updated ledger.Transaction, err error) {
	err = s.mutate(ctx, caller, "UpdateTransaction", func(rec *ledger.Record, _ time.Time) error {
		updated, err = rec.UpdateTransaction(id, tx)
		return err
	})
	return updated, err
}

// DeleteTransaction removes a transaction and reverses its balance effect.
func (s *Service) DeleteTransaction(ctx context.Context, caller domain.Caller, id uint64) error {
	return s.mutate(ctx, caller, "DeleteTransaction", func(rec *ledger.Record, _ time.Time) error {
		_, err := rec.DeleteTransaction(id)
		return err
	})
}

// Transaction returns one transaction of the caller.
func (s *Service) Transaction(ctx context.Context, caller domain.Caller, id uint64) (ledger.Transaction, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return ledger.Transaction{}, err
	}
	tx, ok := rec.Transaction(id)
	if !ok {
		return ledger.Transaction{}, domain.NotFoundf("transaction %d", id)
	}
	return tx, nil
}

// ListTransactions returns the caller's transactions matching f in
// insertion order.
func (s *Service) ListTransactions(
	ctx context.Context,
	caller domain.Caller,
	f TransactionFilter,
) ([]ledger.Transaction, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	rec, err := s.view(ctx, caller)
	if err != nil {
		return nil, err
	}
	out := []ledger.Transaction{}
	for _, t := range rec.ListTransactions() {
		if f.match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func validateTotalsQuery(c money.Code, period string) error {
	if !c.IsValid() {
		return domain.Validationf("invalid currency %q", c)
	}
	if period != "" {
		return ledger.ValidatePeriod(period)
	}
	return nil
}

// Balance returns the caller's balance in c, for one period or lifetime.
func (s *Service) Balance(ctx context.Context, caller domain.Caller, c money.Code, period string) (decimal.Decimal, error) {
	return s.total(ctx, caller, c, period, (*ledger.Record).Balance)
}

// TotalIncome sums the caller's incoming amounts in c.
func (s *Service) TotalIncome(ctx context.Context, caller domain.Caller, c money.Code, period string) (decimal.Decimal, error) {
	return s.total(ctx, caller, c, period, (*ledger.Record).TotalIncome)
}

// TotalExpense sums the caller's outgoing amounts in c.
func (s *Service) TotalExpense(ctx context.Context, caller domain.Caller, c money.Code, period string) (decimal.Decimal, error) {
	return s.total(ctx, caller, c, period, (*ledger.Record).TotalExpense)
}

func (s *Service) total(
	ctx context.Context,
	caller domain.Caller,
	c money.Code,
	period string,
	fn func(*ledger.Record, money.Code, string) decimal.Decimal,
) (decimal.Decimal, error) {
	if err := validateTotalsQuery(c, period); err != nil {
		return decimal.Zero, err
	}
	rec, err := s.view(ctx, caller)
	if err != nil {
		return decimal.Zero, err
	}
	return fn(rec, c, period), nil
}
