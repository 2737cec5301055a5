// Package auth issues and verifies the bearer tokens that carry a caller's
// identity. The subject claim is the caller; a request without a token is
// served as the anonymous caller.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/finledger/pkg/config"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that do not name a caller.
var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	cfg    *config.Jwt
	logger *slog.Logger
	now    func() time.Time
}

func New(cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, logger: logger.With("service", "auth"), now: time.Now}
}

// SigningKey returns the HMAC key tokens are signed with.
func (s *Service) SigningKey() []byte {
	return []byte(s.cfg.Secret)
}

// GenerateToken issues a token for caller valid for the configured expiry.
func (s *Service) GenerateToken(caller domain.Caller) (string, error) {
	log := s.logger.With("context", "GenerateToken", "caller", caller.String())
	if caller.IsAnonymous() {
		log.Error("GenerateToken failed", "error", domain.ErrAuthenticationRequired)
		return "", domain.ErrAuthenticationRequired
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   caller.String(),
		ID:        uuid.NewString(),
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiry)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.SigningKey())
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Info("GenerateToken successful", "jti", claims.ID)
	return token, nil
}

// ParseToken verifies a raw token and returns the caller it names.
func (s *Service) ParseToken(raw string) (domain.Caller, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.SigningKey(), nil
	}, jwt.WithIssuer(s.cfg.Issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		s.logger.Debug("ParseToken failed", "error", err)
		return domain.AnonymousCaller, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return CallerFromToken(token)
}

// CallerFromToken extracts the caller from a verified token.
func CallerFromToken(token *jwt.Token) (domain.Caller, error) {
	if token == nil || !token.Valid {
		return domain.AnonymousCaller, ErrInvalidToken
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return domain.AnonymousCaller, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	caller := domain.Caller(strings.TrimSpace(sub))
	if caller.IsAnonymous() {
		return domain.AnonymousCaller, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return caller, nil
}
