package ledger

import (
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

// AddTransaction validates tx, assigns it the next transaction id, appends
// it and applies it to the balance of its currency. A zero timestamp is
// replaced with now.
func (r *Record) AddTransaction(tx Transaction, now time.Time) (Transaction, error) {
	if err := tx.normalize(); err != nil {
		return Transaction{}, err
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = now
	}
	tx.ID = r.NextTxID
	r.NextTxID++
	r.Transactions = append(r.Transactions, tx)
	r.applyBalance(tx.Currency, tx.signed())
	return tx, nil
}

// DeleteTransaction removes the transaction and reverses its balance effect.
func (r *Record) DeleteTransaction(id uint64) (Transaction, error) {
	i := r.transactionIndex(id)
	if i < 0 {
		return Transaction{}, domain.NotFoundf("transaction %d", id)
	}
	old := r.Transactions[i]
	r.Transactions = append(r.Transactions[:i], r.Transactions[i+1:]...)
	r.applyBalance(old.Currency, old.signed().Neg())
	return old, nil
}

// UpdateTransaction replaces the transaction with id by tx, keeping its id.
// The new value is validated before anything changes, so the reversal of
// the old effect and the application of the new one happen together or
// not at all. A zero timestamp keeps the original one.
func (r *Record) UpdateTransaction(id uint64, tx Transaction) (Transaction, error) {
	i := r.transactionIndex(id)
	if i < 0 {
		return Transaction{}, domain.NotFoundf("transaction %d", id)
	}
	if err := tx.normalize(); err != nil {
		return Transaction{}, err
	}
	old := r.Transactions[i]
	tx.ID = id
	if tx.Timestamp.IsZero() {
		tx.Timestamp = old.Timestamp
	}
	r.applyBalance(old.Currency, old.signed().Neg())
	r.Transactions[i] = tx
	r.applyBalance(tx.Currency, tx.signed())
	return tx, nil
}

// Transaction returns the transaction with id.
func (r *Record) Transaction(id uint64) (Transaction, bool) {
	if i := r.transactionIndex(id); i >= 0 {
		return r.Transactions[i], true
	}
	return Transaction{}, false
}

func (r *Record) transactionIndex(id uint64) int {
	for i := range r.Transactions {
		if r.Transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Record) applyBalance(c money.Code, delta decimal.Decimal) {
	r.Balances[c] = r.Balances[c].Add(delta)
}

// ListTransactions returns every transaction in insertion order.
func (r *Record) ListTransactions() []Transaction {
	return r.filterTransactions(func(Transaction) bool { return true })
}

// TransactionsByPeriod returns the transactions whose timestamp falls in
// the "YYYY-MM" month.
func (r *Record) TransactionsByPeriod(period string) []Transaction {
	return r.filterTransactions(func(t Transaction) bool { return t.Period() == period })
}

// TransactionsByType returns the incoming (true) or outgoing (false) transactions.
func (r *Record) TransactionsByType(isIncome bool) []Transaction {
	return r.filterTransactions(func(t Transaction) bool { return t.IsIncome == isIncome })
}

// TransactionsByCategory returns the transactions in category.
func (r *Record) TransactionsByCategory(category string) []Transaction {
	return r.filterTransactions(func(t Transaction) bool { return t.Category == category })
}

// TransactionsByCurrency returns the transactions denominated in c.
func (r *Record) TransactionsByCurrency(c money.Code) []Transaction {
	return r.filterTransactions(func(t Transaction) bool { return t.Currency == c })
}

// TransactionsBySource returns the manual or blockchain transactions.
func (r *Record) TransactionsBySource(src Source) []Transaction {
	return r.filterTransactions(func(t Transaction) bool { return t.Source == src })
}

func (r *Record) filterTransactions(keep func(Transaction) bool) []Transaction {
	out := []Transaction{}
	for _, t := range r.Transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// TotalIncome sums incoming amounts in c. An empty period means all time.
func (r *Record) TotalIncome(c money.Code, period string) decimal.Decimal {
	return r.sum(c, period, true)
}

// TotalExpense sums outgoing amounts in c. An empty period means all time.
func (r *Record) TotalExpense(c money.Code, period string) decimal.Decimal {
	return r.sum(c, period, false)
}

func (r *Record) sum(c money.Code, period string, income bool) decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Transactions {
		if t.Currency != c || t.IsIncome != income {
			continue
		}
		if period != "" && t.Period() != period {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}

// Balance returns income minus expense in c, recomputed from the
// transactions in period. Without a period it returns the running balance.
func (r *Record) Balance(c money.Code, period string) decimal.Decimal {
	if period == "" {
		return r.Balances[c]
	}
	return r.TotalIncome(c, period).Sub(r.TotalExpense(c, period))
}
