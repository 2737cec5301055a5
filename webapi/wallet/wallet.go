package wallet

import (
	"strconv"

	"github.com/amirasaad/finledger/pkg/bitcoin"
	"github.com/amirasaad/finledger/pkg/domain"
	ledgersvc "github.com/amirasaad/finledger/pkg/service/ledger"
	"github.com/amirasaad/finledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// AddressRequest is the body of PUT /api/wallets/:chain.
type AddressRequest struct {
	Address string `json:"address" validate:"required,max=128"`
}

// Routes registers the wallet address and Bitcoin endpoints.
func Routes(router fiber.Router, svc *ledgersvc.Service) {
	router.Get("/wallets", ListAddresses(svc))
	router.Get("/wallets/:chain", GetAddress(svc))
	router.Put("/wallets/:chain", SetAddress(svc))
	router.Delete("/wallets/:chain", DeleteAddress(svc))

	router.Get("/bitcoin/balance", BitcoinBalance(svc))
	router.Get("/bitcoin/utxos", UTXOs(svc))
	router.Post("/bitcoin/sync", Sync(svc))
	router.Get("/bitcoin/validate/:address", ValidateAddress(svc))
	router.Get("/bitcoin/convert", ConvertAmount())
}

// @Summary List wallet addresses
// @Tags wallets
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/wallets [get]
// @Security Bearer
func ListAddresses(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListWalletAddresses(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list wallet addresses", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet addresses fetched", list)
	}
}

// @Summary Get a wallet address
// @Tags wallets
// @Produce json
// @Param chain path string true "Chain, e.g. BTC"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/wallets/{chain} [get]
// @Security Bearer
func GetAddress(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		addr, err := svc.WalletAddress(c.Context(), common.CallerFrom(c), c.Params("chain"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Wallet address not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet address fetched",
			fiber.Map{"chain": c.Params("chain"), "address": addr})
	}
}

// SetAddress registers the caller's address on one chain.
// @Summary Set a wallet address
// @Tags wallets
// @Accept json
// @Produce json
// @Param chain path string true "Chain (BTC)"
// @Param request body AddressRequest true "Address"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/wallets/{chain} [put]
// @Security Bearer
func SetAddress(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AddressRequest](c)
		if input == nil {
			return err
		}
		if err := svc.SetWalletAddress(c.Context(), common.CallerFrom(c), c.Params("chain"), input.Address); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to set wallet address", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet address saved",
			fiber.Map{"chain": c.Params("chain"), "address": input.Address})
	}
}

// @Summary Delete a wallet address
// @Tags wallets
// @Produce json
// @Param chain path string true "Chain, e.g. BTC"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/wallets/{chain} [delete]
// @Security Bearer
func DeleteAddress(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteWalletAddress(c.Context(), common.CallerFrom(c), c.Params("chain")); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete wallet address", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet address deleted", nil)
	}
}

// BitcoinBalance returns the on-chain balance of the caller's BTC address.
// @Summary Bitcoin balance
// @Tags bitcoin
// @Produce json
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/bitcoin/balance [get]
// @Security Bearer
func BitcoinBalance(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bal, err := svc.BitcoinBalance(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch Bitcoin balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bitcoin balance fetched", bal)
	}
}

// UTXOs lists the unspent outputs of the caller's BTC address.
// @Summary List UTXOs
// @Tags bitcoin
// @Produce json
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/bitcoin/utxos [get]
// @Security Bearer
func UTXOs(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		utxos, err := svc.FetchUTXOs(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch UTXOs", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "UTXOs fetched", utxos)
	}
}

// Sync records new UTXOs of the caller's BTC address as transactions.
// @Summary Sync Bitcoin transactions
// @Tags bitcoin
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/bitcoin/sync [post]
// @Security Bearer
func Sync(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.SyncBitcoin(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Bitcoin sync failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bitcoin sync completed", res)
	}
}

// ValidateAddress checks a Bitcoin address
// @Summary Validate a Bitcoin address
// @Description Decodes the address and checks its checksum against the ledger's network, or the network query parameter when given.
// @Tags bitcoin
// @Produce json
// @Param address path string true "Bitcoin address"
// @Param network query string false "mainnet, testnet or regtest"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/bitcoin/validate/{address} [get]
func ValidateAddress(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		addr := c.Params("address")
		net := svc.Network()
		if raw := c.Query("network"); raw != "" {
			parsed, err := bitcoin.ParseNetwork(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid network", domain.Validationf("%v", err))
			}
			net = parsed
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Address checked",
			fiber.Map{"address": addr, "network": net, "valid": bitcoin.ValidateAddress(addr, net)})
	}
}

// ConvertAmount converts between satoshis and BTC. Exactly one of the
// satoshis and btc query parameters must be set.
// @Summary Convert between satoshis and BTC
// @Tags bitcoin
// @Produce json
// @Param satoshis query int false "Satoshis"
// @Param btc query string false "BTC amount"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/bitcoin/convert [get]
func ConvertAmount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		satsRaw, btcRaw := c.Query("satoshis"), c.Query("btc")
		switch {
		case satsRaw != "" && btcRaw == "":
			sats, err := strconv.ParseUint(satsRaw, 10, 64)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid satoshis", domain.Validationf("invalid satoshis %q", satsRaw))
			}
			btc := bitcoin.SatoshisToBTC(sats)
			return common.SuccessResponseJSON(c, fiber.StatusOK, "Amount converted",
				fiber.Map{"satoshis": sats, "btc": btc, "formatted": bitcoin.FormatAmount(btc)})
		case btcRaw != "" && satsRaw == "":
			btc, err := common.QueryDecimal(c, "btc")
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid btc", err)
			}
			sats, err := bitcoin.BTCToSatoshis(btc)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid btc", domain.Validationf("%v", err))
			}
			return common.SuccessResponseJSON(c, fiber.StatusOK, "Amount converted",
				fiber.Map{"satoshis": sats, "btc": btc, "formatted": bitcoin.FormatAmount(btc)})
		default:
			return common.ProblemDetailsJSON(c, "Invalid query",
				domain.Validationf("exactly one of satoshis or btc is required"))
		}
	}
}
