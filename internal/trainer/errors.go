package trainer

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited: upstream said too many requests, the user should wait and retry.
	ErrRateLimited = errors.New("ai gateway rate limit exceeded")
	// ErrQuotaExceeded: upstream usage/billing limit, needs out-of-band action.
	ErrQuotaExceeded = errors.New("ai gateway usage limit reached")
	// ErrMalformedPlan: the model reply held no parseable plan object.
	ErrMalformedPlan = errors.New("malformed plan in ai response")
	// ErrNoAPIKey: no credential available, neither per-request nor configured.
	ErrNoAPIKey = errors.New("ai gateway api key not configured")
	// ErrEmptyResponse: a 2xx reply with no choices / no content.
	ErrEmptyResponse = errors.New("ai gateway returned no content")
)

// UpstreamError covers every non-success gateway status that is not a
// rate-limit or quota signal. Treated as transient by callers.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ai gateway error: status %d: %s", e.StatusCode, e.Detail)
}
