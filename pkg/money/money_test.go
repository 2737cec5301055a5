package money_test

import (
	"testing"

	"github.com/amirasaad/finledger/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    money.Code
		wantErr bool
	}{
		{in: "USD", want: money.USD},
		{in: " btc ", want: money.BTC},
		{in: "idr", want: money.IDR},
		{in: "EUR", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := money.ParseCode(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, money.ErrInvalidCurrency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCodeClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, money.BTC.IsCrypto())
	assert.False(t, money.IDR.IsCrypto())
	assert.False(t, money.Code("DOGE").IsValid())
	assert.Equal(t, []money.Code{money.BTC, money.ETH, money.SOL}, money.CryptoCodes())
	assert.Len(t, money.Supported(), 5)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "₿ 0.00010000", money.Format(decimal.RequireFromString("0.0001"), money.BTC))
	assert.Equal(t, "$ 12.50", money.Format(decimal.RequireFromString("12.5"), money.USD))
	assert.Equal(t, "Ξ 1.00000000", money.Format(decimal.NewFromInt(1), money.ETH))
	assert.Equal(t, "3 XYZ", money.Format(decimal.NewFromInt(3), money.Code("XYZ")))
}

func TestRound(t *testing.T) {
	t.Parallel()

	got := money.Round(decimal.RequireFromString("1.23456"), money.USD)
	assert.True(t, got.Equal(decimal.RequireFromString("1.23")), got.String())
}
