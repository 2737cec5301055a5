package ledger

import (
	"sort"
	"strings"

	"github.com/amirasaad/finledger/pkg/bitcoin"
	"github.com/amirasaad/finledger/pkg/domain"
)

// ChainBTC is the chain key of the Bitcoin wallet address.
const ChainBTC = "BTC"

// WalletAddress is a chain and the address registered for it.
type WalletAddress struct {
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

func normalizeChain(chain string) string {
	return strings.ToUpper(strings.TrimSpace(chain))
}

// SetWalletAddress registers address for chain, replacing any previous one.
// BTC addresses must decode on net.
func (r *Record) SetWalletAddress(chain, address string, net bitcoin.Network) error {
	chain = normalizeChain(chain)
	address = strings.TrimSpace(address)
	if err := requireText("chain", chain); err != nil {
		return err
	}
	if err := requireText("address", address); err != nil {
		return err
	}
	if chain == ChainBTC && !bitcoin.ValidateAddress(address, net) {
		return domain.Validationf("invalid %s BTC address %q", net, address)
	}
	r.WalletAddresses[chain] = address
	return nil
}

// WalletAddress returns the address registered for chain.
func (r *Record) WalletAddress(chain string) (string, error) {
	chain = normalizeChain(chain)
	addr, ok := r.WalletAddresses[chain]
	if !ok {
		return "", domain.NotFoundf("%s address not set", chain)
	}
	return addr, nil
}

// DeleteWalletAddress removes the address registered for chain.
func (r *Record) DeleteWalletAddress(chain string) error {
	chain = normalizeChain(chain)
	if _, ok := r.WalletAddresses[chain]; !ok {
		return domain.NotFoundf("%s address not set", chain)
	}
	delete(r.WalletAddresses, chain)
	return nil
}

// ListWalletAddresses returns the registered addresses ordered by chain.
func (r *Record) ListWalletAddresses() []WalletAddress {
	out := make([]WalletAddress, 0, len(r.WalletAddresses))
	for chain, addr := range r.WalletAddresses {
		out = append(out, WalletAddress{Chain: chain, Address: addr})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Chain < out[j].Chain })
	return out
}
