package budget

import (
	"github.com/amirasaad/finledger/pkg/money"
	ledgersvc "github.com/amirasaad/finledger/pkg/service/ledger"
	"github.com/amirasaad/finledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the budget endpoints.
func Routes(router fiber.Router, svc *ledgersvc.Service) {
	router.Get("/budgets", ListBudgets(svc))
	router.Post("/budgets", AddBudget(svc))
	router.Post("/budgets/recompute", RecomputeSpent(svc))
	router.Get("/budgets/totals", Totals(svc))
	router.Get("/budgets/:id", GetBudget(svc))
	router.Put("/budgets/:id", UpdateBudget(svc))
	router.Delete("/budgets/:id", DeleteBudget(svc))
	router.Get("/budgets/:id/progress", Progress(svc))
}

// ListBudgets returns the caller's budgets.
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Param period query string false "Month (YYYY-MM)"
// @Param currency query string false "Asset code"
// @Success 200 {object} common.Response
// @Router /api/budgets [get]
// @Security Bearer
func ListBudgets(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := ledgersvc.BudgetFilter{Period: c.Query("period")}
		if raw := c.Query("currency"); raw != "" {
			code, err := money.ParseCode(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid currency", err)
			}
			f.Currency = code
		}
		budgets, err := svc.ListBudgets(c.Context(), common.CallerFrom(c), f)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list budgets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budgets fetched", budgets)
	}
}

// AddBudget creates a budget.
// @Summary Add a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body BudgetRequest true "Budget"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/budgets [post]
// @Security Bearer
func AddBudget(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[BudgetRequest](c)
		if input == nil {
			return err
		}
		b, err := input.toDomain()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid budget", err)
		}
		added, err := svc.AddBudget(c.Context(), common.CallerFrom(c), b)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Budget added", added)
	}
}

// GetBudget returns one budget.
// @Summary Get a budget
// @Tags budgets
// @Produce json
// @Param id path int true "Budget ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/budgets/{id} [get]
// @Security Bearer
func GetBudget(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid budget ID", err)
		}
		b, err := svc.Budget(c.Context(), common.CallerFrom(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Budget not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget fetched", b)
	}
}

// UpdateBudget replaces a budget.
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path int true "Budget ID"
// @Param request body BudgetRequest true "Budget"
// @Success 200 {object} common.Response
// @Router /api/budgets/{id} [put]
// @Security Bearer
func UpdateBudget(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid budget ID", err)
		}
		input, err := common.BindAndValidate[BudgetRequest](c)
		if input == nil {
			return err
		}
		b, err := input.toDomain()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid budget", err)
		}
		updated, err := svc.UpdateBudget(c.Context(), common.CallerFrom(c), id, b)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget updated", updated)
	}
}

// DeleteBudget removes a budget.
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Param id path int true "Budget ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/budgets/{id} [delete]
// @Security Bearer
func DeleteBudget(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid budget ID", err)
		}
		if err := svc.DeleteBudget(c.Context(), common.CallerFrom(c), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget deleted", fiber.Map{"id": id})
	}
}

// RecomputeSpent re-derives every budget's spent amount.
// @Summary Recompute budget spending
// @Tags budgets
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/budgets/recompute [post]
// @Security Bearer
func RecomputeSpent(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.RecomputeSpent(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to recompute budgets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budgets recomputed", res)
	}
}

// Progress returns target, spent and percentage of one budget.
// @Summary Budget progress
// @Tags budgets
// @Produce json
// @Param id path int true "Budget ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/budgets/{id}/progress [get]
// @Security Bearer
func Progress(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid budget ID", err)
		}
		p, err := svc.BudgetProgress(c.Context(), common.CallerFrom(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Budget not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget progress fetched", p)
	}
}

// Totals sums budgets and spending in one currency.
// @Summary Budget totals
// @Tags budgets
// @Produce json
// @Param currency query string false "Asset code" default(USD)
// @Param period query string false "Month (YYYY-MM)"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/budgets/totals [get]
// @Security Bearer
func Totals(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := money.ParseCode(c.Query("currency", string(money.USD)))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency", err)
		}
		totals, err := svc.BudgetTotals(c.Context(), common.CallerFrom(c), code, c.Query("period"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute budget totals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget totals fetched", totals)
	}
}
