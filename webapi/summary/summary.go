package summary

import (
	ledgersvc "github.com/amirasaad/finledger/pkg/service/ledger"
	"github.com/amirasaad/finledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the summary endpoints and the record reset.
func Routes(router fiber.Router, svc *ledgersvc.Service) {
	router.Get("/summary", UserSummary(svc))
	router.Get("/summary/balances", BalanceSummary(svc))
	router.Get("/summary/crypto", CryptoBalances(svc))
	router.Get("/summary/breakdown", Breakdown(svc))
	router.Get("/summary/portfolio", Portfolio(svc))
	router.Get("/summary/total-usd", TotalUSD(svc))
	router.Delete("/me", Reset(svc))
}

// UserSummary returns entity counts of the caller's record.
// @Summary User summary
// @Tags summary
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/summary [get]
// @Security Bearer
func UserSummary(svc *ledgersvc.Service) fiber.Handler {
	return view(svc.UserSummary, "User summary fetched")
}

// BalanceSummary returns income, expense and balance per asset.
// @Summary Balances per asset
// @Tags summary
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/summary/balances [get]
// @Security Bearer
func BalanceSummary(svc *ledgersvc.Service) fiber.Handler {
	return view(svc.BalanceSummary, "Balance summary fetched")
}

// @Summary Crypto balances
// @Tags summary
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/summary/crypto [get]
// @Security Bearer
func CryptoBalances(svc *ledgersvc.Service) fiber.Handler {
	return view(svc.CryptoBalances, "Crypto balances fetched")
}

// Breakdown values every balance in USD with the caller's valuation rates.
// @Summary Balance breakdown in USD
// @Tags summary
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/summary/breakdown [get]
// @Security Bearer
func Breakdown(svc *ledgersvc.Service) fiber.Handler {
	return view(svc.BalanceBreakdown, "Balance breakdown fetched")
}

// @Summary Portfolio allocation
// @Tags summary
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/summary/portfolio [get]
// @Security Bearer
func Portfolio(svc *ledgersvc.Service) fiber.Handler {
	return view(svc.PortfolioSummary, "Portfolio summary fetched")
}

// @Summary Total balance in USD
// @Tags summary
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/summary/total-usd [get]
// @Security Bearer
func TotalUSD(svc *ledgersvc.Service) fiber.Handler {
	return view(svc.TotalBalanceUSD, "Total USD balance fetched")
}

// Reset clears the caller's record.
// @Summary Reset the caller's ledger
// @Tags summary
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/me [delete]
// @Security Bearer
func Reset(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Reset(c.Context(), common.CallerFrom(c)); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to reset ledger", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Ledger reset", nil)
	}
}
