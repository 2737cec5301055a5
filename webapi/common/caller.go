package common

import (
	"github.com/amirasaad/finledger/pkg/domain"
	authsvc "github.com/amirasaad/finledger/pkg/service/auth"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const callerKey = "caller"

// CallerMiddleware resolves the caller of every request. A request without
// an Authorization header proceeds as the anonymous caller; a request with
// a bad or expired token is rejected with 401.
func CallerMiddleware(auth *authsvc.Service) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: auth.SigningKey()},
		Filter: func(c *fiber.Ctx) bool {
			return c.Get(fiber.HeaderAuthorization) == ""
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _ := c.Locals("user").(*jwt.Token)
			caller, err := authsvc.CallerFromToken(token)
			if err != nil {
				return ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
			}
			c.Locals(callerKey, caller)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		},
	})
}

// CallerFrom returns the caller resolved by CallerMiddleware.
func CallerFrom(c *fiber.Ctx) domain.Caller {
	if caller, ok := c.Locals(callerKey).(domain.Caller); ok && !caller.IsAnonymous() {
		return caller
	}
	return domain.AnonymousCaller
}
