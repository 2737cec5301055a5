// Package webapi provides the HTTP API of the ledger.
// It is organized into sub-packages per area:
// - transaction: income and expense entries and totals
// - budget, goal: budgets with alerts and savings goals
// - notification: the caller's notifications
// - rate: the shared rate table and the caller's rate snapshot
// - wallet: wallet addresses and Bitcoin sync
// - summary: aggregate views of the caller's record
// - auth: development token endpoint
package webapi

import (
	"errors"
	"strings"

	_ "github.com/amirasaad/finledger/cmd/server/swagger"
	"github.com/amirasaad/finledger/pkg/app"
	authweb "github.com/amirasaad/finledger/webapi/auth"
	budgetweb "github.com/amirasaad/finledger/webapi/budget"
	"github.com/amirasaad/finledger/webapi/common"
	goalweb "github.com/amirasaad/finledger/webapi/goal"
	notificationweb "github.com/amirasaad/finledger/webapi/notification"
	rateweb "github.com/amirasaad/finledger/webapi/rate"
	summaryweb "github.com/amirasaad/finledger/webapi/summary"
	transactionweb "github.com/amirasaad/finledger/webapi/transaction"
	walletweb "github.com/amirasaad/finledger/webapi/wallet"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	ledgerSvc := app.LedgerService
	authSvc := app.AuthService

	fiberApp := fiber.New(fiber.Config{
		AppName:     "finledger",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Uses X-Forwarded-For header when behind a proxy,
	// then X-Real-IP, then the direct IP
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        app.Config.RateLimit.MaxRequests,
		Expiration: app.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				// Take the first IP in the chain
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	fiberApp.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid} | ${error}\n",
	}))

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("finledger API is running! 🚀")
		},
	)

	if app.Config.Env != "production" {
		authweb.Routes(fiberApp, authSvc)
	}

	api := fiberApp.Group("/api", common.CallerMiddleware(authSvc))
	transactionweb.Routes(api, ledgerSvc)
	budgetweb.Routes(api, ledgerSvc)
	goalweb.Routes(api, ledgerSvc)
	notificationweb.Routes(api, ledgerSvc)
	rateweb.Routes(api, ledgerSvc)
	walletweb.Routes(api, ledgerSvc)
	summaryweb.Routes(api, ledgerSvc)
	return fiberApp
}
