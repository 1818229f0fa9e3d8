// Package api is the HTTP client for the backend. It speaks the v1 wire
// format and translates error envelopes back into domain errors, so the
// rest of the client never sees raw status codes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Flv72S/Eterna-Home-sub001/internal/client/scope"
	"github.com/Flv72S/Eterna-Home-sub001/internal/client/session"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

const defaultTimeout = 15 * time.Second

// Client talks to the backend. Authenticated calls go through the
// authorizer transport; login uses a plain client so a wrong password is
// never mistaken for an expired session.
type Client struct {
	baseURL string
	authed  *http.Client
	plain   *http.Client
}

// New builds a client. authed carries the authorizer transport; pass nil
// to use a bare client (tests).
func New(baseURL string, authed *http.Client) *Client {
	if authed == nil {
		authed = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: baseURL,
		authed:  authed,
		plain:   &http.Client{Timeout: defaultTimeout},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profilePayload struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	TenantID string `json:"tenant_id"`
}

type loginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        profilePayload `json:"user"`
}

// Login implements session.Authenticator.
func (c *Client) Login(ctx context.Context, email, password string) (session.LoginResult, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return session.LoginResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "encoding login request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return session.LoginResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "building login request")
	}
	req.Header.Set("Content-Type", "application/json")

	var payload loginResponse
	if err := c.do(c.plain, req, &payload); err != nil {
		return session.LoginResult{}, err
	}

	userID, err := id.ParseUserID(payload.User.ID)
	if err != nil {
		return session.LoginResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "login response carries a bad user id")
	}
	tenantID, err := id.ParseTenantID(payload.User.TenantID)
	if err != nil {
		return session.LoginResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "login response carries a bad tenant id")
	}

	return session.LoginResult{
		Token: payload.AccessToken,
		User: session.Profile{
			ID:       userID,
			Email:    payload.User.Email,
			Username: payload.User.Username,
			FullName: payload.User.FullName,
			TenantID: tenantID,
		},
		TenantIDs: []id.TenantID{tenantID},
	}, nil
}

// Logout implements session.Authenticator. The caller treats failures as
// best effort.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/auth/logout", nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "building logout request")
	}
	return c.do(c.authed, req, nil)
}

type houseEntry struct {
	HouseID      int64  `json:"house_id"`
	HouseName    string `json:"house_name"`
	HouseAddress string `json:"house_address"`
	IsOwner      bool   `json:"is_owner"`
	RoleInHouse  string `json:"role_in_house"`
	IsActive     bool   `json:"is_active"`
}

type listHousesResponse struct {
	Houses []houseEntry `json:"houses"`
}

// ListHouses implements scope.HouseLister.
func (c *Client) ListHouses(ctx context.Context) ([]scope.House, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/houses", nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "building house list request")
	}
	var payload listHousesResponse
	if err := c.do(c.authed, req, &payload); err != nil {
		return nil, err
	}
	houses := make([]scope.House, 0, len(payload.Houses))
	for _, e := range payload.Houses {
		houses = append(houses, scope.House{
			ID:       id.HouseID(e.HouseID),
			Name:     e.HouseName,
			Address:  e.HouseAddress,
			IsOwner:  e.IsOwner,
			Role:     e.RoleInHouse,
			IsActive: e.IsActive,
		})
	}
	return houses, nil
}

// Document is one entry of the house-scoped document listing.
type Document struct {
	ID        string    `json:"id"`
	HouseID   int64     `json:"house_id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}

type listDocumentsResponse struct {
	Documents []Document `json:"documents"`
}

// ListDocuments fetches the documents of the active house. The authorizer
// transport supplies the house header; without an active house the backend
// rejects the call.
func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/documents", nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "building document list request")
	}
	var payload listDocumentsResponse
	if err := c.do(c.authed, req, &payload); err != nil {
		return nil, err
	}
	return payload.Documents, nil
}

// do sends the request, maps failures to domain errors, and decodes a
// successful body into out when out is non-nil.
func (c *Client) do(httpClient *http.Client, req *http.Request, out any) error {
	resp, err := httpClient.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "backend unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "decoding response")
	}
	return nil
}

func errorFromResponse(resp *http.Response) error {
	var envelope struct {
		Code        string `json:"error"`
		Description string `json:"error_description"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &envelope)

	code := dErrors.Code(envelope.Code)
	if envelope.Code == "" {
		code = fallbackCode(resp.StatusCode)
	}
	msg := envelope.Description
	if msg == "" {
		msg = fmt.Sprintf("backend returned %d", resp.StatusCode)
	}
	return dErrors.New(code, msg)
}

func fallbackCode(status int) dErrors.Code {
	switch {
	case status == http.StatusUnauthorized:
		return dErrors.CodeInvalidToken
	case status == http.StatusForbidden:
		return dErrors.CodeHouseAccessDenied
	case status == http.StatusNotFound:
		return dErrors.CodeNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return dErrors.CodeValidation
	case status >= 500:
		return dErrors.CodeUnavailable
	default:
		return dErrors.CodeInternal
	}
}
