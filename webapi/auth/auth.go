package auth

import (
	"github.com/amirasaad/finledger/pkg/domain"
	authsvc "github.com/amirasaad/finledger/pkg/service/auth"
	"github.com/amirasaad/finledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// TokenRequest is the body of POST /auth/token.
type TokenRequest struct {
	Caller string `json:"caller" validate:"required,min=1,max=191"`
}

// Routes registers the development token endpoint. It is only mounted
// outside production.
func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/token", IssueToken(authSvc))
}

// IssueToken returns a bearer token for the requested caller.
// @Summary Issue a development token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Caller"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /auth/token [post]
func IssueToken(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TokenRequest](c)
		if input == nil {
			return err
		}
		token, err := authSvc.GenerateToken(domain.Caller(input.Caller))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to issue token", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Token issued", fiber.Map{"token": token})
	}
}
