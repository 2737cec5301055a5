package notification

import (
	"strconv"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	ledgersvc "github.com/amirasaad/finledger/pkg/service/ledger"
	"github.com/amirasaad/finledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// NotificationRequest is the body of POST /api/notifications.
type NotificationRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Message  string `json:"message" validate:"max=1000"`
	Type     string `json:"type" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// Routes registers the notification endpoints.
func Routes(router fiber.Router, svc *ledgersvc.Service) {
	router.Get("/notifications", ListNotifications(svc))
	router.Post("/notifications", AddNotification(svc))
	router.Get("/notifications/unread", Unread(svc))
	router.Get("/notifications/count", UnreadCount(svc))
	router.Get("/notifications/stats", Counts(svc))
	router.Post("/notifications/read-all", MarkAllRead(svc))
	router.Post("/notifications/:id/read", MarkRead(svc))
	router.Delete("/notifications/:id", DeleteNotification(svc))
}

// ListNotifications returns the caller's notifications.
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param category query string false "budget, goal, transaction, market, payment or ai"
// @Param type query string false "success, warning, danger or info"
// @Param show_read query bool false "Include read notifications"
// @Success 200 {object} common.Response
// @Router /api/notifications [get]
// @Security Bearer
func ListNotifications(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := common.CallerFrom(c)
		if typ := c.Query("type"); typ != "" {
			list, err := svc.NotificationsByType(c.Context(), caller, typ)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Failed to list notifications", err)
			}
			return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications fetched", list)
		}
		showRead := false
		if raw := c.Query("show_read"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid show_read", domain.Validationf("invalid show_read %q", raw))
			}
			showRead = v
		}
		list, err := svc.ListNotifications(c.Context(), caller, c.Query("category"), showRead)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications fetched", list)
	}
}

// AddNotification stores a notification for the caller.
// @Summary Add a notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body NotificationRequest true "Notification"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/notifications [post]
// @Security Bearer
func AddNotification(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NotificationRequest](c)
		if input == nil {
			return err
		}
		added, err := svc.AddNotification(c.Context(), common.CallerFrom(c), ledger.Notification{
			Title:    input.Title,
			Message:  input.Message,
			Type:     ledger.NotificationType(input.Type),
			Category: ledger.NotificationCategory(input.Category),
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add notification", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Notification added", added)
	}
}

// @Summary Unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/notifications/unread [get]
// @Security Bearer
func Unread(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.UnreadNotifications(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Unread notifications fetched", list)
	}
}

// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/notifications/count [get]
// @Security Bearer
func UnreadCount(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.UnreadCount(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to count notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Unread count fetched", fiber.Map{"unread": n})
	}
}

// Counts groups the caller's notifications by category and type.
// @Summary Notification statistics
// @Tags notifications
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/notifications/stats [get]
// @Security Bearer
func Counts(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, err := svc.NotificationCounts(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to count notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification stats fetched", counts)
	}
}

// MarkRead marks one notification read.
// @Summary Mark a notification read
// @Tags notifications
// @Param id path int true "Notification ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/notifications/{id}/read [post]
// @Security Bearer
func MarkRead(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid notification ID", err)
		}
		if err := svc.MarkNotificationRead(c.Context(), common.CallerFrom(c), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to mark notification read", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification marked read", fiber.Map{"id": id})
	}
}

// @Summary Mark every notification read
// @Tags notifications
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/notifications/read-all [post]
// @Security Bearer
func MarkAllRead(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.MarkAllNotificationsRead(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to mark notifications read", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications marked read", fiber.Map{"marked": n})
	}
}

// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/notifications/{id} [delete]
// @Security Bearer
func DeleteNotification(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid notification ID", err)
		}
		if err := svc.DeleteNotification(c.Context(), common.CallerFrom(c), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete notification", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification deleted", fiber.Map{"id": id})
	}
}
