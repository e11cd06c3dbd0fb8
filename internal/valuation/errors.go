package valuation

import (
	"errors"
	"fmt"
	"time"
)

// Stable opaque codes surfaced to callers. Messages are templated and
// never carry upstream technical detail: no URLs, no stack fragments,
// no raw JSON.
const (
	CodeBilling       = "NW-1001"
	CodeRateLimited   = "NW-1002"
	CodeTimeout       = "NW-1003"
	CodeUnprocessable = "NW-1004"
	CodeTechnical     = "NW-1999"
)

// TransportError covers network failures and timed-out attempts
// against the remote estimator. Retryable.
type TransportError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("transport: %s timed out", e.Op)
	}
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RateLimitError means the remote estimator throttled us. Retryable.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string { return "remote estimator rate limited the request" }

// UnavailableError means our own load shedding (an open circuit
// breaker) is refusing calls to the remote estimator. Non-retryable
// within a request: the breaker stays open for its whole window, so
// backing off and retrying would only burn the retry budget.
type UnavailableError struct {
	RetryAfter time.Duration
}

func (e *UnavailableError) Error() string { return "remote estimator temporarily unavailable" }

// ValidationError marks a remote response that parsed but carried no
// usable market value. Non-retryable: a malformed answer will not fix
// itself on the next attempt.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid remote response: " + e.Reason }

// BillingError means the remote account is out of credit or otherwise
// blocked on payment. Non-retryable.
type BillingError struct {
	Err error
}

func (e *BillingError) Error() string { return "remote estimator rejected request for billing reasons" }
func (e *BillingError) Unwrap() error { return e.Err }

// UnprocessableError means the remote estimator refused the domain
// itself. Non-retryable.
type UnprocessableError struct {
	Domain string
}

func (e *UnprocessableError) Error() string {
	return fmt.Sprintf("domain %q rejected as unprocessable", e.Domain)
}

// ConfigurationError is fatal and surfaces before any work is done.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: missing or invalid %s", e.Field)
}

// CacheError wraps a cache backend failure. Always swallowed by the
// orchestrator after logging; never fails a request.
type CacheError struct {
	Op  string
	Err error
}

func (e *CacheError) Error() string { return fmt.Sprintf("cache %s: %v", e.Op, e.Err) }
func (e *CacheError) Unwrap() error { return e.Err }

// retryable reports whether another attempt against the remote
// estimator could plausibly succeed. Only rate-limit and transport
// (network/timeout) signatures qualify; everything else short-circuits
// to fallback.
func retryable(err error) bool {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return true
	}
	var tr *TransportError
	return errors.As(err, &tr)
}

// UserError is the sanitized, user-facing shape of a failed appraisal:
// a stable code plus a templated message safe to render anywhere.
type UserError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *UserError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

// Sanitize maps an internal error onto its user-facing shape. The
// original error text is deliberately discarded.
func Sanitize(err error) *UserError {
	var (
		billing       *BillingError
		rateLimit     *RateLimitError
		unavailable   *UnavailableError
		transport     *TransportError
		unprocessable *UnprocessableError
	)
	switch {
	case errors.As(err, &billing):
		return &UserError{Code: CodeBilling, Message: "Valuation service is unavailable for account reasons. Please contact support."}
	case errors.As(err, &rateLimit), errors.As(err, &unavailable):
		return &UserError{Code: CodeRateLimited, Message: "Valuation service is busy. Please retry in a few minutes."}
	case errors.As(err, &transport) && transport.Timeout:
		return &UserError{Code: CodeTimeout, Message: "Valuation timed out. Please retry."}
	case errors.As(err, &unprocessable):
		return &UserError{Code: CodeUnprocessable, Message: "This domain cannot be appraised automatically."}
	default:
		return &UserError{Code: CodeTechnical, Message: "Valuation failed due to a technical problem. Please retry later."}
	}
}
