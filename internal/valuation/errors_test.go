package valuation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_CodeMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"billing", &BillingError{Err: errors.New("402 payment required")}, CodeBilling},
		{"rate_limit", &RateLimitError{}, CodeRateLimited},
		{"breaker_open", &UnavailableError{}, CodeRateLimited},
		{"timeout", &TransportError{Op: "quote", Timeout: true}, CodeTimeout},
		{"unprocessable", &UnprocessableError{Domain: "weird..name"}, CodeUnprocessable},
		{"network", &TransportError{Op: "quote", Err: errors.New("connection reset")}, CodeTechnical},
		{"validation", &ValidationError{Reason: "no value"}, CodeTechnical},
		{"unknown", errors.New("boom"), CodeTechnical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ue := Sanitize(tc.err)
			assert.Equal(t, tc.code, ue.Code)
			assert.NotEmpty(t, ue.Message)
		})
	}
}

func TestSanitize_ScrubsUpstreamDetail(t *testing.T) {
	leaky := &TransportError{
		Op:  "quote",
		Err: fmt.Errorf(`POST https://estimator.internal/v1: 502 {"error":"upstream","trace":"goroutine 12"}`),
	}
	ue := Sanitize(leaky)

	assert.NotContains(t, ue.Message, "https://")
	assert.NotContains(t, ue.Message, "502")
	assert.NotContains(t, ue.Message, "{")
	assert.NotContains(t, ue.Message, "goroutine")
}

func TestSanitize_WrappedErrorsStillClassify(t *testing.T) {
	wrapped := fmt.Errorf("resolving valuation: %w", &RateLimitError{})
	assert.Equal(t, CodeRateLimited, Sanitize(wrapped).Code)
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(&RateLimitError{}))
	assert.True(t, retryable(&TransportError{Op: "quote", Timeout: true}))
	assert.True(t, retryable(&TransportError{Op: "quote", Err: errors.New("reset")}))

	assert.False(t, retryable(&UnavailableError{}), "an open breaker stays open, retrying is pointless")
	assert.False(t, retryable(&ValidationError{Reason: "bad"}))
	assert.False(t, retryable(&BillingError{}))
	assert.False(t, retryable(&UnprocessableError{Domain: "x"}))
	assert.False(t, retryable(errors.New("misc")))
}
