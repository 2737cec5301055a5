package rate

import (
	"time"

	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	ledgersvc "github.com/amirasaad/finledger/pkg/service/ledger"
	"github.com/amirasaad/finledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// SetRateRequest is the body of PUT /api/rates/:from/:to.
type SetRateRequest struct {
	Rate decimal.Decimal `json:"rate" swaggertype:"number"`
}

// SnapshotRequest is the body of PUT /api/rates/snapshot.
type SnapshotRequest struct {
	USDToIDR decimal.Decimal `json:"usd_to_idr" swaggertype:"number"`
	BTCToUSD decimal.Decimal `json:"btc_to_usd" swaggertype:"number"`
	ETHToUSD decimal.Decimal `json:"eth_to_usd" swaggertype:"number"`
	SOLToUSD decimal.Decimal `json:"sol_to_usd" swaggertype:"number"`
}

// RateResponse is one pair of the shared table.
type RateResponse struct {
	From      money.Code      `json:"from"`
	To        money.Code      `json:"to"`
	Rate      decimal.Decimal `json:"rate" swaggertype:"number"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Routes registers the rate endpoints.
func Routes(router fiber.Router, svc *ledgersvc.Service) {
	router.Get("/rates", ListRates(svc))
	router.Get("/rates/convert", Convert(svc))
	router.Post("/rates/refresh", Refresh(svc))
	router.Get("/rates/snapshot", GetSnapshot(svc))
	router.Put("/rates/snapshot", SetSnapshot(svc))
	router.Get("/rates/:from/:to", GetRate(svc))
	router.Put("/rates/:from/:to", SetRate(svc))
}

func parsePair(c *fiber.Ctx) (from, to money.Code, err error) {
	if from, err = money.ParseCode(c.Params("from")); err != nil {
		return "", "", err
	}
	if to, err = money.ParseCode(c.Params("to")); err != nil {
		return "", "", err
	}
	return from, to, nil
}

// ListRates returns every pair of the shared table.
// @Summary List exchange rates
// @Tags rates
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/rates [get]
func ListRates(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rates fetched", svc.ListRates())
	}
}

// GetRate returns the stored rate of one pair.
// @Summary Get an exchange rate
// @Tags rates
// @Produce json
// @Param from path string true "Source asset"
// @Param to path string true "Target asset"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/rates/{from}/{to} [get]
func GetRate(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parsePair(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency", err)
		}
		r, err := svc.GetRate(from, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Rate unavailable", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate fetched", RateResponse{
			From: from, To: to, Rate: r, UpdatedAt: svc.Rates().Table().UpdatedAt(),
		})
	}
}

// SetRate overrides one pair.
// @Summary Override an exchange rate
// @Tags rates
// @Accept json
// @Produce json
// @Param from path string true "Source asset"
// @Param to path string true "Target asset"
// @Param request body SetRateRequest true "Rate"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/rates/{from}/{to} [put]
// @Security Bearer
func SetRate(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parsePair(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency", err)
		}
		input, err := common.BindAndValidate[SetRateRequest](c)
		if input == nil {
			return err
		}
		if err := svc.SetRate(c.Context(), common.CallerFrom(c), from, to, input.Rate); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to set rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate updated", RateResponse{
			From: from, To: to, Rate: input.Rate, UpdatedAt: svc.Rates().Table().UpdatedAt(),
		})
	}
}

// Convert converts an amount with the stored rate.
// @Summary Convert an amount
// @Tags rates
// @Produce json
// @Param amount query number true "Amount"
// @Param from query string true "Source asset"
// @Param to query string true "Target asset"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/rates/convert [get]
func Convert(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		amount, err := common.QueryDecimal(c, "amount")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err)
		}
		from, err := money.ParseCode(c.Query("from"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency", err)
		}
		to, err := money.ParseCode(c.Query("to"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency", err)
		}
		conv, err := svc.Convert(amount, from, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Conversion failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Amount converted", conv)
	}
}

// Refresh fetches fresh rates from the upstream providers.
// @Summary Refresh exchange rates
// @Tags rates
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/rates/refresh [post]
// @Security Bearer
func Refresh(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rates, err := svc.FetchRealTimeRates(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to refresh rates", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rates refreshed", rates)
	}
}

// GetSnapshot returns the caller's valuation rates.
// @Summary Get valuation rates
// @Tags rates
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/rates/snapshot [get]
// @Security Bearer
func GetSnapshot(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := svc.CurrencyRates(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch rate snapshot", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate snapshot fetched", snap)
	}
}

// SetSnapshot replaces the caller's valuation rates.
// @Summary Replace valuation rates
// @Tags rates
// @Accept json
// @Produce json
// @Param request body SnapshotRequest true "Valuation rates"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/rates/snapshot [put]
// @Security Bearer
func SetSnapshot(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SnapshotRequest](c)
		if input == nil {
			return err
		}
		stored, err := svc.SetCurrencyRates(c.Context(), common.CallerFrom(c), ledger.CurrencyRates{
			USDToIDR: input.USDToIDR,
			BTCToUSD: input.BTCToUSD,
			ETHToUSD: input.ETHToUSD,
			SOLToUSD: input.SOLToUSD,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to store rate snapshot", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate snapshot updated", stored)
	}
}
