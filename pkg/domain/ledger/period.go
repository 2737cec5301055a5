package ledger

import (
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
)

// PeriodLayout is the layout of a budget period and of the monthly bucket
// a transaction falls into.
const PeriodLayout = "2006-01"

// YearMonth returns the calendar "YYYY-MM" bucket of t in UTC.
func YearMonth(t time.Time) string {
	return t.UTC().Format(PeriodLayout)
}

// ValidatePeriod checks that p is a "YYYY-MM" month.
func ValidatePeriod(p string) error {
	if _, err := time.Parse(PeriodLayout, p); err != nil {
		return domain.Validationf("period must be formatted as YYYY-MM, got %q", p)
	}
	return nil
}
