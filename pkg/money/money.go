// Package money defines the closed set of assets a ledger may hold and
// the helpers for parsing and formatting amounts in them.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidCurrency is returned when a code is outside the supported set.
var ErrInvalidCurrency = errors.New("invalid currency code")

// IsValid reports whether c is one of the supported asset codes.
func (c Code) IsValid() bool {
	_, ok := currencies[c]
	return ok
}

// IsCrypto reports whether c is a crypto asset.
func (c Code) IsCrypto() bool {
	return currencies[c].Crypto
}

// String returns the string representation of the code.
func (c Code) String() string {
	return string(c)
}

// Currency returns the metadata for c and whether c is supported.
func (c Code) Currency() (Currency, bool) {
	cur, ok := currencies[c]
	return cur, ok
}

// ParseCode normalises s and returns the matching supported code.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
	return c, nil
}

// Supported returns every supported code in presentation order.
func Supported() []Code {
	out := make([]Code, len(order))
	copy(out, order)
	return out
}

// CryptoCodes returns the supported crypto asset codes.
func CryptoCodes() []Code {
	var out []Code
	for _, c := range order {
		if c.IsCrypto() {
			out = append(out, c)
		}
	}
	return out
}

// Format renders amount with the asset symbol, e.g. "$ 12.50" or "₿ 0.00010000".
// Ether is shown with 8 places; its 18 native decimals are unreadable.
func Format(amount decimal.Decimal, c Code) string {
	cur, ok := currencies[c]
	if !ok {
		return amount.String() + " " + string(c)
	}
	places := cur.Decimals
	if places > 8 {
		places = 8
	}
	return cur.Symbol + " " + amount.StringFixed(places)
}

// Round rounds amount to the native precision of c.
func Round(amount decimal.Decimal, c Code) decimal.Decimal {
	cur, ok := currencies[c]
	if !ok {
		return amount
	}
	return amount.Round(cur.Decimals)
}
