// Package authorizer decorates outgoing API requests with the session
// bearer token and the active-house header, and classifies authorization
// failures coming back: session-level failures terminate the session,
// house-scope failures only clear the house selection.
package authorizer

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/middleware"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// TokenSource yields the current bearer token, "" when unauthenticated.
type TokenSource func() string

// HouseSource yields the active house scope, ok false when none selected.
type HouseSource func() (id.HouseID, bool)

// Transport is an http.RoundTripper. It never retries and never swallows
// the response: callers still see the status and body untouched.
type Transport struct {
	Base  http.RoundTripper
	Token TokenSource
	House HouseSource

	// OnSessionFailure fires when the backend says the session itself is
	// invalid or expired. The argument is the error code from the body.
	OnSessionFailure func(code dErrors.Code)
	// OnHouseFailure fires when the backend denies the house scope while
	// the session is still good.
	OnHouseFailure func(code dErrors.Code)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// RoundTrip attaches credentials, forwards the request, and inspects
// authorization failures. The request is cloned per the RoundTripper
// contract; the response body is re-buffered after peeking so downstream
// decoding still works.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	token := ""
	if t.Token != nil {
		token = t.Token()
	}
	if token != "" && out.Header.Get("Authorization") == "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}

	sentHouse := false
	if t.House != nil {
		if houseID, ok := t.House(); ok {
			out.Header.Set(middleware.HouseHeader, houseID.String())
			sentHouse = true
		}
	}

	resp, err := t.base().RoundTrip(out)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		code := peekErrorCode(resp)
		if code == "" {
			code = dErrors.CodeInvalidToken
		}
		if t.OnSessionFailure != nil {
			t.OnSessionFailure(code)
		}
	case http.StatusForbidden:
		code := peekErrorCode(resp)
		if code.HouseScopeLevel() || (code == "" && sentHouse) {
			if code == "" {
				code = dErrors.CodeHouseAccessDenied
			}
			if t.OnHouseFailure != nil {
				t.OnHouseFailure(code)
			}
		}
	}
	return resp, nil
}

// peekErrorCode reads the error envelope out of the body without consuming
// it: the bytes are buffered back so the caller can still decode them.
func peekErrorCode(resp *http.Response) dErrors.Code {
	if resp.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	rest, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(append(raw, rest...)))
	if err != nil {
		return ""
	}
	var envelope struct {
		Code string `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) != nil {
		return ""
	}
	return dErrors.Code(envelope.Code)
}
