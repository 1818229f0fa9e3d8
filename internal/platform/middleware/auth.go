package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Flv72S/Eterna-Home-sub001/internal/sentinel"
	httpjson "github.com/Flv72S/Eterna-Home-sub001/internal/transport/http/json"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error)
}

// TokenClaims is the subset of access-token claims the middleware needs.
type TokenClaims struct {
	UserID   id.UserID
	TenantID id.TenantID
	JTI      string
}

type contextKeyIdentity struct{}

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID   id.UserID
	TenantID id.TenantID
	JTI      string
}

// IdentityFrom retrieves the authenticated identity from the context.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(contextKeyIdentity{}).(Identity)
	return ident, ok
}

// RequireAuth validates the bearer token on every request and attaches the
// caller identity to the context. Failures are always session-level here:
// an expired or revoked token yields code "session_expired", anything else
// yields "invalid_token". House-scope denials are never produced by this
// middleware (see RequireHouse).
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing bearer token",
					"request_id", GetRequestID(ctx),
				)
				httpjson.WriteError(w, http.StatusUnauthorized, dErrors.CodeInvalidToken,
					"missing or malformed Authorization header")
				return
			}

			claims, err := validator.ValidateToken(ctx, token)
			if err != nil {
				code := dErrors.CodeInvalidToken
				if errors.Is(err, sentinel.ErrExpired) || errors.Is(err, sentinel.ErrRevoked) {
					code = dErrors.CodeSessionExpired
				}
				logger.WarnContext(ctx, "unauthorized access - token rejected",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				httpjson.WriteError(w, http.StatusUnauthorized, code, "token rejected")
				return
			}

			ctx = context.WithValue(ctx, contextKeyIdentity{}, Identity{
				UserID:   claims.UserID,
				TenantID: claims.TenantID,
				JTI:      claims.JTI,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
