package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/finledger/pkg/config"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return New(&config.Jwt{Secret: "test-secret", Expiry: time.Hour, Issuer: "finledger"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()
	s := newTestService()

	token, err := s.GenerateToken("alice")
	require.NoError(t, err)

	caller, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Caller("alice"), caller)
}

func TestGenerateToken_RejectsAnonymous(t *testing.T) {
	t.Parallel()
	_, err := newTestService().GenerateToken(domain.AnonymousCaller)
	assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)
}

func TestParseToken_Invalid(t *testing.T) {
	t.Parallel()
	s := newTestService()

	expired := newTestService()
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken("alice")
	require.NoError(t, err)

	other := New(&config.Jwt{Secret: "other", Expiry: time.Hour, Issuer: "finledger"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	forged, err := other.GenerateToken("mallory")
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "finledger",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(s.SigningKey())
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":    "not-a-token",
		"expired":    old,
		"wrong key":  forged,
		"no subject": noSubject,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			caller, err := s.ParseToken(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.True(t, caller.IsAnonymous())
		})
	}
}
