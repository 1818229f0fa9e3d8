package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Flv72S/Eterna-Home-sub001/internal/sentinel"
	httpjson "github.com/Flv72S/Eterna-Home-sub001/internal/transport/http/json"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// HouseHeader carries the active house selection on every house-scoped call.
const HouseHeader = "X-House-ID"

// HouseAccessChecker resolves whether a user may act within a house.
// Implementations return sentinel.ErrNotFound when the house does not exist
// or the user has no membership in it.
type HouseAccessChecker interface {
	Access(ctx context.Context, userID id.UserID, tenantID id.TenantID, houseID id.HouseID) (HouseGrant, error)
}

// HouseGrant is the resolved house-level authorization for a request.
type HouseGrant struct {
	HouseID id.HouseID
	Role    string
	IsOwner bool
}

type contextKeyHouseGrant struct{}

// HouseGrantFrom retrieves the house grant from the context.
func HouseGrantFrom(ctx context.Context) (HouseGrant, bool) {
	g, ok := ctx.Value(contextKeyHouseGrant{}).(HouseGrant)
	return g, ok
}

// RequireHouse enforces the house-scope contract: the request must carry a
// valid X-House-ID the caller is a member of. Denials are strictly scope
// level (403, code "house_access_denied" or "house_not_found") and must
// never be conflated with session failures - the client reacts to these by
// clearing its active house, not by logging out.
func RequireHouse(checker HouseAccessChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ident, ok := IdentityFrom(ctx)
			if !ok {
				// RequireAuth must run first; treat as a wiring bug.
				httpjson.WriteError(w, http.StatusUnauthorized, dErrors.CodeInvalidToken,
					"no authenticated identity")
				return
			}

			houseID, err := id.ParseHouseID(r.Header.Get(HouseHeader))
			if err != nil {
				httpjson.WriteError(w, http.StatusForbidden, dErrors.CodeHouseNotFound,
					"missing or invalid "+HouseHeader+" header")
				return
			}

			grant, err := checker.Access(ctx, ident.UserID, ident.TenantID, houseID)
			if err != nil {
				code := dErrors.CodeHouseAccessDenied
				if errors.Is(err, sentinel.ErrNotFound) {
					code = dErrors.CodeHouseNotFound
				}
				logger.WarnContext(ctx, "house access denied",
					"user_id", ident.UserID.String(),
					"house_id", houseID.String(),
					"request_id", GetRequestID(ctx),
				)
				httpjson.WriteError(w, http.StatusForbidden, code, "house access denied")
				return
			}

			ctx = context.WithValue(ctx, contextKeyHouseGrant{}, grant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
