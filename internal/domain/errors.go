// internal/domain/errors.go
package domain

import "errors"

// ErrUnauthorized is returned by API clients when the marketplace responds
// with HTTP 401. Callers can check for it using errors.Is to prompt a re-auth.
var ErrUnauthorized = errors.New("unauthorized")
