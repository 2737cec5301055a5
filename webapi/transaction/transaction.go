package transaction

import (
	"context"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	ledgersvc "github.com/amirasaad/finledger/pkg/service/ledger"
	"github.com/amirasaad/finledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
)

// Routes registers the transaction endpoints.
//
//   - GET    /transactions          : list, filtered by period, currency, source, category, type
//   - POST   /transactions          : add a transaction
//   - POST   /transactions/manual   : add a manually entered transaction
//   - GET    /transactions/:id      : fetch one transaction
//   - PUT    /transactions/:id      : replace a transaction
//   - DELETE /transactions/:id      : delete a transaction
//   - GET    /balance, /income, /expense : totals per currency and optional period
func Routes(router fiber.Router, svc *ledgersvc.Service) {
	router.Get("/transactions", ListTransactions(svc))
	router.Post("/transactions", AddTransaction(svc))
	router.Post("/transactions/manual", AddManualTransaction(svc))
	router.Get("/transactions/:id", GetTransaction(svc))
	router.Put("/transactions/:id", UpdateTransaction(svc))
	router.Delete("/transactions/:id", DeleteTransaction(svc))

	router.Get("/balance", Total(svc, "Balance", svc.Balance))
	router.Get("/income", Total(svc, "Total income", svc.TotalIncome))
	router.Get("/expense", Total(svc, "Total expense", svc.TotalExpense))
}

// ListTransactions returns the caller's transactions.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param period query string false "Month (YYYY-MM)"
// @Param currency query string false "Asset code"
// @Param source query string false "manual or blockchain"
// @Param category query string false "Category"
// @Param type query string false "income or expense"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/transactions [get]
// @Security Bearer
func ListTransactions(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := ledgersvc.TransactionFilter{
			Period:   c.Query("period"),
			Source:   ledger.Source(c.Query("source")),
			Category: c.Query("category"),
		}
		if raw := c.Query("currency"); raw != "" {
			code, err := money.ParseCode(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid currency", err)
			}
			f.Currency = code
		}
		switch c.Query("type") {
		case "":
		case "income":
			income := true
			f.IsIncome = &income
		case "expense":
			income := false
			f.IsIncome = &income
		default:
			return common.ProblemDetailsJSON(c, "Invalid type", domain.Validationf("type must be income or expense"))
		}
		txs, err := svc.ListTransactions(c.Context(), common.CallerFrom(c), f)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", txs)
	}
}

// AddTransaction records a transaction for the caller.
// @Summary Add a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Transaction"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/transactions [post]
// @Security Bearer
func AddTransaction(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransactionRequest](c)
		if input == nil {
			return err
		}
		tx, err := input.toDomain()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction", err)
		}
		var display money.Code
		if input.DisplayCurrency != "" {
			if display, err = money.ParseCode(input.DisplayCurrency); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid display currency", err)
			}
		}
		added, err := svc.AddTransaction(c.Context(), common.CallerFrom(c), tx, display)
		if err != nil {
			log.Errorf("Failed to add transaction: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to add transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction added", added)
	}
}

// AddManualTransaction records a manually entered transaction.
// @Summary Add a manual transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body ManualTransactionRequest true "Manual transaction"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/transactions/manual [post]
// @Security Bearer
func AddManualTransaction(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ManualTransactionRequest](c)
		if input == nil {
			return err
		}
		code, err := money.ParseCode(input.Currency)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency", err)
		}
		added, err := svc.AddManualTransaction(c.Context(), common.CallerFrom(c), ledgersvc.ManualTransaction{
			Amount:      input.Amount,
			Currency:    code,
			Description: input.Description,
			Category:    input.Category,
			Date:        input.Date,
			Type:        input.Type,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction added", added)
	}
}

// GetTransaction returns one transaction.
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transactions/{id} [get]
// @Security Bearer
func GetTransaction(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		tx, err := svc.Transaction(c.Context(), common.CallerFrom(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction fetched", tx)
	}
}

// UpdateTransaction replaces a transaction.
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body TransactionRequest true "Transaction"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transactions/{id} [put]
// @Security Bearer
func UpdateTransaction(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		input, err := common.BindAndValidate[TransactionRequest](c)
		if input == nil {
			return err
		}
		tx, err := input.toDomain()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction", err)
		}
		updated, err := svc.UpdateTransaction(c.Context(), common.CallerFrom(c), id, tx)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", updated)
	}
}

// DeleteTransaction removes a transaction.
// @Summary Delete a transaction
// @Tags transactions
// @Param id path int true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transactions/{id} [delete]
// @Security Bearer
func DeleteTransaction(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		if err := svc.DeleteTransaction(c.Context(), common.CallerFrom(c), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction deleted", fiber.Map{"id": id})
	}
}

type totalFunc func(ctx context.Context, caller domain.Caller, c money.Code, period string) (decimal.Decimal, error)

// Total serves one of the per-currency totals.
// @Summary Balance, income or expense total
// @Tags transactions
// @Produce json
// @Param currency query string true "Asset code"
// @Param period query string false "Month (YYYY-MM)"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/balance [get]
// @Router /api/income [get]
// @Router /api/expense [get]
// @Security Bearer
func Total(svc *ledgersvc.Service, title string, fn totalFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := money.ParseCode(c.Query("currency", string(money.USD)))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency", err)
		}
		period := c.Query("period")
		amount, err := fn(c.Context(), common.CallerFrom(c), code, period)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute "+title, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, title+" fetched", TotalResponse{
			Currency:  code,
			Period:    period,
			Amount:    amount,
			Formatted: money.Format(amount, code),
		})
	}
}
