package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/money"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"auth", domain.ErrAuthenticationRequired, fiber.StatusUnauthorized},
		{"validation", domain.Validationf("amount must be positive"), fiber.StatusBadRequest},
		{"currency", fmt.Errorf("parse: %w", money.ErrInvalidCurrency), fiber.StatusBadRequest},
		{"not found", domain.NotFoundf("goal %d", 3), fiber.StatusNotFound},
		{"conflict", domain.ErrConflict, fiber.StatusConflict},
		{"upstream", &domain.ExternalServiceError{Service: "esplora", Message: "timeout"}, fiber.StatusBadGateway},
		{"rates", domain.ErrRatesNotLoaded, fiber.StatusServiceUnavailable},
		{"fiber", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{"other", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorToStatusCode(tt.err))
		})
	}
}
