package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	err := domain.Validationf("amount must be positive, got %d", -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "amount must be positive, got -1")

	assert.ErrorIs(t, domain.NotFoundf("transaction %d", 3), domain.ErrNotFound)
	assert.ErrorIs(t, domain.Conflictf("budget"), domain.ErrConflict)
}

func TestExternalServiceError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := fmt.Errorf("refresh: %w", &domain.ExternalServiceError{
		Service: "coingecko",
		Status:  429,
		Message: "rate limited",
		Err:     cause,
	})

	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.ErrorIs(t, err, cause)

	var ext *domain.ExternalServiceError
	if assert.ErrorAs(t, err, &ext) {
		assert.Equal(t, 429, ext.Status)
		assert.Equal(t, "rate limited", ext.Message)
	}
	assert.Contains(t, err.Error(), "coingecko returned status 429: rate limited")
}

func TestCallerIsAnonymous(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.AnonymousCaller.IsAnonymous())
	assert.True(t, domain.Caller("").IsAnonymous())
	assert.False(t, domain.Caller("user-1").IsAnonymous())
}
