// Package service implements the authentication operations behind the login
// and logout endpoints.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mssola/useragent"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/Flv72S/Eterna-Home-sub001/internal/auth/metrics"
	"github.com/Flv72S/Eterna-Home-sub001/internal/auth/models"
	"github.com/Flv72S/Eterna-Home-sub001/internal/auth/store/revocation"
	"github.com/Flv72S/Eterna-Home-sub001/internal/auth/store/user"
	jwttoken "github.com/Flv72S/Eterna-Home-sub001/internal/jwt_token"
	"github.com/Flv72S/Eterna-Home-sub001/internal/sentinel"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// Service coordinates user lookup, password verification, token issuance and
// revocation.
type Service struct {
	users   user.Store
	tokens  *jwttoken.Service
	revoked revocation.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// New constructs the auth service. Metrics may be nil in tests.
func New(users user.Store, tokens *jwttoken.Service, revoked revocation.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("auth/service"),
	}
}

// Login verifies credentials and issues an access token. Bad credentials are
// reported as CodeAuthentication without revealing whether the account
// exists. The userAgentRaw string is only used for a device display name in
// the audit log.
func (s *Service) Login(ctx context.Context, creds models.Credentials, userAgentRaw string) (*models.LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Login")
	defer span.End()

	start := time.Now()
	if s.metrics != nil {
		s.metrics.LoginAttempts.Inc()
	}

	email := strings.TrimSpace(strings.ToLower(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email and password are required")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.failLogin(ctx, email, "unknown account")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "user lookup failed")
	}

	if !u.IsActive {
		return nil, s.failLogin(ctx, email, "account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, s.failLogin(ctx, email, "password mismatch")
	}

	token, jti, err := s.tokens.GenerateAccessToken(u.ID, u.TenantID, u.Email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "token issuance failed")
	}

	span.SetAttributes(attribute.String("user.id", u.ID.String()))

	s.logger.InfoContext(ctx, "login succeeded",
		"user_id", u.ID.String(),
		"tenant_id", u.TenantID.String(),
		"device", deviceDisplayName(userAgentRaw),
	)
	if s.metrics != nil {
		s.metrics.LoginDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	}

	return &models.LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TokenTTL().Seconds()),
		JTI:         jti,
		User:        *u,
	}, nil
}

// Logout revokes the presented token's JTI. Revoking an already revoked or
// unknown JTI is a no-op, so logout is idempotent.
func (s *Service) Logout(ctx context.Context, jti string) error {
	ctx, span := s.tracer.Start(ctx, "auth.Logout")
	defer span.End()

	if jti == "" {
		return nil
	}
	if err := s.revoked.Revoke(ctx, jti, s.tokens.TokenTTL()); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "token revocation failed")
	}
	if s.metrics != nil {
		s.metrics.Logouts.Inc()
		s.metrics.TokensRevoked.Inc()
	}
	s.logger.InfoContext(ctx, "logout", "jti", jti)
	return nil
}

// failLogin records a failed attempt and returns the uniform credential
// error. The reason is logged, never surfaced to the caller.
func (s *Service) failLogin(ctx context.Context, email, reason string) error {
	if s.metrics != nil {
		s.metrics.LoginFailures.Inc()
	}
	s.logger.WarnContext(ctx, "login failed", "email", email, "reason", reason)
	return dErrors.New(dErrors.CodeAuthentication, "invalid email or password")
}

// deviceDisplayName derives a human-readable device label from a raw
// User-Agent header, e.g. "Chrome on Linux".
func deviceDisplayName(raw string) string {
	if raw == "" {
		return "unknown"
	}
	ua := useragent.New(raw)
	browser, _ := ua.Browser()
	if browser == "" {
		return "unknown"
	}
	if os := ua.OS(); os != "" {
		return browser + " on " + os
	}
	return browser
}
