// Package bitcoin holds the Bitcoin helpers used by the blockchain sync:
// UTXO values, satoshi conversion and network aware address checks.
package bitcoin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/shopspring/decimal"
)

// SatoshisPerBTC is the number of satoshis in one bitcoin.
const SatoshisPerBTC = 100_000_000

var (
	satsPerBTC = decimal.NewFromInt(SatoshisPerBTC)
	maxSats    = decimal.NewFromInt(btcutil.MaxSatoshi)
)

var (
	ErrUnknownNetwork = errors.New("unknown bitcoin network")
	ErrAmountRange    = errors.New("bitcoin amount out of range")
)

// Network selects the address encoding and data source a deployment talks to.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
)

// ParseNetwork returns the network named by s. An empty name is Mainnet.
func ParseNetwork(s string) (Network, error) {
	n := Network(strings.ToLower(strings.TrimSpace(s)))
	if n == "" {
		return Mainnet, nil
	}
	if _, err := n.Params(); err != nil {
		return "", err
	}
	return n, nil
}

// Params returns the chain parameters of n.
func (n Network) Params() (*chaincfg.Params, error) {
	switch n {
	case Mainnet, "":
		return &chaincfg.MainNetParams, nil
	case Testnet:
		return &chaincfg.TestNet3Params, nil
	case Regtest:
		return &chaincfg.RegressionNetParams, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, string(n))
}

// UTXO is an unspent output owned by a watched address.
type UTXO struct {
	TxID          string `json:"txid"`
	Vout          uint32 `json:"vout"`
	Value         uint64 `json:"value"`
	Height        uint32 `json:"height"`
	Confirmations uint32 `json:"confirmations"`
}

// SatoshisToBTC converts an integer satoshi value to a BTC amount.
func SatoshisToBTC(sats uint64) decimal.Decimal {
	return decimal.NewFromUint64(sats).Div(satsPerBTC)
}

// BTCToSatoshis converts a BTC amount to satoshis, truncating sub-satoshi
// precision. Amounts below zero or above the 21M BTC supply are rejected.
func BTCToSatoshis(btc decimal.Decimal) (uint64, error) {
	sats := btc.Mul(satsPerBTC).Truncate(0)
	if sats.IsNegative() || sats.GreaterThan(maxSats) {
		return 0, fmt.Errorf("%w: %s", ErrAmountRange, btc)
	}
	return uint64(sats.IntPart()), nil
}

// FormatAmount renders a BTC amount as "₿ 0.00000000".
func FormatAmount(btc decimal.Decimal) string {
	return "₿ " + btc.StringFixed(8)
}

// ValidateAddress reports whether address decodes with a valid checksum
// and belongs to net. Unknown networks validate nothing.
func ValidateAddress(address string, net Network) bool {
	params, err := net.Params()
	if err != nil || address == "" {
		return false
	}
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return false
	}
	return addr.IsForNet(params)
}
