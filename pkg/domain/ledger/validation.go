package ledger

import (
	"strings"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
)

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return domain.Validationf("%s is required", field)
	}
	return nil
}

func requireCurrency(c money.Code) error {
	if !c.IsValid() {
		return domain.Validationf("invalid currency %q", c)
	}
	return nil
}

func requirePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return domain.Validationf("%s must be positive", field)
	}
	return nil
}

func validationNegative(field string) error {
	return domain.Validationf("%s cannot be negative", field)
}

// percent returns part/whole*100 rounded to two places, or zero for a
// non-positive whole.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
}
