package goal

import (
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/money"
	ledgersvc "github.com/amirasaad/finledger/pkg/service/ledger"
	"github.com/amirasaad/finledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the goal endpoints.
func Routes(router fiber.Router, svc *ledgersvc.Service) {
	router.Get("/goals", ListGoals(svc))
	router.Post("/goals", AddGoal(svc))
	router.Get("/goals/totals", Totals(svc))
	router.Get("/goals/:id", GetGoal(svc))
	router.Put("/goals/:id", UpdateGoal(svc))
	router.Patch("/goals/:id/progress", UpdateProgress(svc))
	router.Get("/goals/:id/progress", Progress(svc))
	router.Delete("/goals/:id", DeleteGoal(svc))
}

// ListGoals returns the caller's goals.
// @Summary List goals
// @Tags goals
// @Produce json
// @Param status query string false "active or completed"
// @Param priority query string false "low, medium or high"
// @Param currency query string false "Asset code"
// @Success 200 {object} common.Response
// @Router /api/goals [get]
// @Security Bearer
func ListGoals(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := ledgersvc.GoalFilter{
			Status:   ledger.GoalStatus(c.Query("status")),
			Priority: ledger.Priority(c.Query("priority")),
		}
		if raw := c.Query("currency"); raw != "" {
			code, err := money.ParseCode(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid currency", err)
			}
			f.Currency = code
		}
		goals, err := svc.ListGoals(c.Context(), common.CallerFrom(c), f)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list goals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goals fetched", goals)
	}
}

// AddGoal creates a goal.
// @Summary Add a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param request body GoalRequest true "Goal"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/goals [post]
// @Security Bearer
func AddGoal(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[GoalRequest](c)
		if input == nil {
			return err
		}
		g, err := input.toDomain()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal", err)
		}
		added, err := svc.AddGoal(c.Context(), common.CallerFrom(c), g)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Goal added", added)
	}
}

// GetGoal returns one goal.
// @Summary Get a goal
// @Tags goals
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/goals/{id} [get]
// @Security Bearer
func GetGoal(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err)
		}
		g, err := svc.Goal(c.Context(), common.CallerFrom(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Goal not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal fetched", g)
	}
}

// UpdateGoal replaces a goal.
// @Summary Update a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param request body GoalRequest true "Goal"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/goals/{id} [put]
// @Security Bearer
func UpdateGoal(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err)
		}
		input, err := common.BindAndValidate[GoalRequest](c)
		if input == nil {
			return err
		}
		g, err := input.toDomain()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal", err)
		}
		updated, err := svc.UpdateGoal(c.Context(), common.CallerFrom(c), id, g)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal updated", updated)
	}
}

// UpdateProgress sets a goal's current amount.
// @Summary Update goal progress
// @Tags goals
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param request body ProgressRequest true "Current amount"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/goals/{id}/progress [patch]
// @Security Bearer
func UpdateProgress(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err)
		}
		input, err := common.BindAndValidate[ProgressRequest](c)
		if input == nil {
			return err
		}
		updated, err := svc.UpdateGoalProgress(c.Context(), common.CallerFrom(c), id, input.Current)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update goal progress", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal progress updated", updated)
	}
}

// @Summary Goal progress
// @Tags goals
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/goals/{id}/progress [get]
// @Security Bearer
func Progress(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err)
		}
		p, err := svc.GoalProgress(c.Context(), common.CallerFrom(c), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Goal not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal progress fetched", p)
	}
}

// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/goals/{id} [delete]
// @Security Bearer
func DeleteGoal(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err)
		}
		if err := svc.DeleteGoal(c.Context(), common.CallerFrom(c), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal deleted", fiber.Map{"id": id})
	}
}

// Totals sums goal targets and current amounts in one currency.
// @Summary Goal totals
// @Tags goals
// @Produce json
// @Param currency query string false "Asset code" default(USD)
// @Param status query string false "active or completed"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/goals/totals [get]
// @Security Bearer
func Totals(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := money.ParseCode(c.Query("currency", string(money.USD)))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency", err)
		}
		totals, err := svc.GoalTotals(c.Context(), common.CallerFrom(c), code, ledger.GoalStatus(c.Query("status")))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute goal totals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal totals fetched", totals)
	}
}
