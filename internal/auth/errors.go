package auth

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned before any network call when the client
// id or secret is empty.
var ErrMissingCredentials = errors.New("missing client id or client secret")

// ErrCallbackTimeout is returned when no redirect reaches the callback
// listener within the flow timeout.
var ErrCallbackTimeout = errors.New("timed out waiting for authorization callback")

// CallbackError is returned when the authorization server redirected back
// with an error parameter instead of a code.
type CallbackError struct {
	Reason string
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("authorization denied: %s", e.Reason)
}

// TokenExchangeError is returned on a non-200 response from the token
// endpoint. Body carries the raw response for diagnostics.
type TokenExchangeError struct {
	StatusCode int
	Body       string
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed: status %d: %s", e.StatusCode, e.Body)
}
