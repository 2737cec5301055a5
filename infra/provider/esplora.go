package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amirasaad/finledger/pkg/bitcoin"
	"github.com/amirasaad/finledger/pkg/config"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/provider"
)

const esploraName = "esplora"

// EsploraClient reads balances and UTXOs from an Esplora compatible
// HTTP API (blockstream.info, mempool.space or a self hosted electrs).
type EsploraClient struct {
	baseURL    string
	network    bitcoin.Network
	httpClient *http.Client
	logger     *slog.Logger
}

var _ provider.ChainSource = (*EsploraClient)(nil)

type esploraStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight uint32 `json:"block_height"`
}

type esploraUTXO struct {
	TxID   string        `json:"txid"`
	Vout   uint32        `json:"vout"`
	Value  uint64        `json:"value"`
	Status esploraStatus `json:"status"`
}

type esploraStats struct {
	FundedTxoSum uint64 `json:"funded_txo_sum"`
	SpentTxoSum  uint64 `json:"spent_txo_sum"`
}

type esploraAddress struct {
	Address    string       `json:"address"`
	ChainStats esploraStats `json:"chain_stats"`
}

// NewEsploraClient creates an EsploraClient from config. It fails on an
// unknown network name.
func NewEsploraClient(cfg *config.Bitcoin, logger *slog.Logger) (*EsploraClient, error) {
	net, err := bitcoin.ParseNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}
	return &EsploraClient{
		baseURL:    strings.TrimRight(cfg.EsploraUrl, "/"),
		network:    net,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger.With("provider", esploraName, "network", net),
	}, nil
}

func (c *EsploraClient) Name() string { return esploraName }

// Network returns the network the client queries.
func (c *EsploraClient) Network() bitcoin.Network { return c.network }

// checkAddress rejects addresses of another network before they reach
// the upstream API.
func (c *EsploraClient) checkAddress(address string) error {
	if !bitcoin.ValidateAddress(address, c.network) {
		return domain.Validationf("invalid %s address %q", c.network, address)
	}
	return nil
}

// Balance returns the confirmed balance of address in satoshis.
func (c *EsploraClient) Balance(ctx context.Context, address string) (uint64, error) {
	if err := c.checkAddress(address); err != nil {
		return 0, err
	}
	var info esploraAddress
	endpoint := fmt.Sprintf("%s/address/%s", c.baseURL, url.PathEscape(address))
	if err := getJSON(ctx, c.httpClient, esploraName, endpoint, nil, &info); err != nil {
		return 0, err
	}
	s := info.ChainStats
	if s.SpentTxoSum > s.FundedTxoSum {
		return 0, nil
	}
	return s.FundedTxoSum - s.SpentTxoSum, nil
}

// UTXOs lists the unspent outputs of address. Confirmation counts are
// derived from the current tip height; unconfirmed outputs report zero.
func (c *EsploraClient) UTXOs(ctx context.Context, address string) ([]bitcoin.UTXO, error) {
	if err := c.checkAddress(address); err != nil {
		return nil, err
	}
	var raw []esploraUTXO
	endpoint := fmt.Sprintf("%s/address/%s/utxo", c.baseURL, url.PathEscape(address))
	if err := getJSON(ctx, c.httpClient, esploraName, endpoint, nil, &raw); err != nil {
		return nil, err
	}

	var tip uint32
	for _, u := range raw {
		if u.Status.Confirmed {
			h, err := c.tipHeight(ctx)
			if err != nil {
				return nil, err
			}
			tip = h
			break
		}
	}

	utxos := make([]bitcoin.UTXO, 0, len(raw))
	for _, u := range raw {
		utxo := bitcoin.UTXO{TxID: u.TxID, Vout: u.Vout, Value: u.Value}
		if u.Status.Confirmed {
			utxo.Height = u.Status.BlockHeight
			if tip >= u.Status.BlockHeight {
				utxo.Confirmations = tip - u.Status.BlockHeight + 1
			}
		}
		utxos = append(utxos, utxo)
	}
	c.logger.Debug("UTXOs fetched", "address", address, "count", len(utxos))
	return utxos, nil
}

func (c *EsploraClient) tipHeight(ctx context.Context) (uint32, error) {
	body, err := get(ctx, c.httpClient, esploraName, c.baseURL+"/blocks/tip/height", nil)
	if err != nil {
		return 0, err
	}
	defer body.Close() //nolint:errcheck
	raw, err := io.ReadAll(io.LimitReader(body, 32))
	if err != nil {
		return 0, &domain.ExternalServiceError{Service: esploraName, Message: "failed to read tip height", Err: err}
	}
	h, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 32)
	if err != nil {
		return 0, &domain.ExternalServiceError{Service: esploraName, Message: "invalid tip height", Err: err}
	}
	return uint32(h), nil
}
