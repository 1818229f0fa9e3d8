package httptransport

import (
	"encoding/json"
	"net/http"

	authmodels "github.com/Flv72S/Eterna-Home-sub001/internal/auth/models"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/middleware"
	httpjson "github.com/Flv72S/Eterna-Home-sub001/internal/transport/http/json"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin implements POST /v1/auth/login.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, dErrors.CodeInvalidInput, "malformed JSON body")
		return
	}

	result, err := h.auth.Login(r.Context(), authmodels.Credentials{
		Email:    req.Email,
		Password: req.Password,
	}, r.UserAgent())
	if err != nil {
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, authmodels.LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresIn:   result.ExpiresIn,
		User:        authmodels.ProfileOf(result.User),
	})
}

// handleLogout implements POST /v1/auth/logout. Runs behind RequireAuth, so
// the identity is always present; revoking twice is a no-op.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	if err := h.auth.Logout(r.Context(), ident.JTI); err != nil {
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
