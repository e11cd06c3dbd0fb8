// Package appraisal implements the remote inference provider: an HTTP
// client for the external estimator that returns per-domain valuation
// triples. All transport failures are translated into the valuation
// error taxonomy before they leave this package.
package appraisal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/nameworth/nameworth/internal/valuation"
)

// breakerWindow is how long the circuit stays open after tripping.
const breakerWindow = 30 * time.Second

// Config holds the estimator endpoint and credentials. APIKey is
// validated at construction: the remote path is useless without it and
// must fail fast.
type Config struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	UserAgent string
}

// Client is a process-wide service: construct once with injected
// credentials and share. Safe for concurrent use.
type Client struct {
	http    *http.Client
	cfg     Config
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

// New builds a Client, or a ConfigurationError when credentials are
// missing.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, &valuation.ConfigurationError{Field: "inference base URL"}
	}
	if cfg.APIKey == "" {
		return nil, &valuation.ConfigurationError{Field: "inference API key"}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 6 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "nameworth/1.0"
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "inference",
		Timeout: breakerWindow,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		breaker: breaker,
		log:     log.With().Str("component", "inference").Logger(),
	}, nil
}

// request and response wire shapes.
type quoteRequest struct {
	Domains []string `json:"domains"`
}

// envelope is the object-with-list response shape; the other observed
// shape is a bare top-level array of records.
type envelope struct {
	Valuations     []valuation.QuoteRecord `json:"valuations"`
	EstimatedValue *float64                `json:"estimated_value"`
}

// Quote asks the estimator for valuations of a batch of domains. The
// caller's context bounds the attempt; the circuit breaker shields the
// estimator once it starts failing consistently.
func (c *Client) Quote(ctx context.Context, domains []string) (*valuation.Quote, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doQuote(ctx, domains)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &valuation.UnavailableError{RetryAfter: breakerWindow}
		}
		return nil, err
	}
	return result.(*valuation.Quote), nil
}

func (c *Client) doQuote(ctx context.Context, domains []string) (*valuation.Quote, error) {
	body, err := json.Marshal(quoteRequest{Domains: domains})
	if err != nil {
		return nil, &valuation.ValidationError{Reason: "request marshal failed"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/valuations", bytes.NewReader(body))
	if err != nil {
		return nil, &valuation.TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
			return nil, &valuation.TransportError{Op: "quote", Timeout: true, Err: err}
		}
		return nil, &valuation.TransportError{Op: "quote", Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().Int("status", resp.StatusCode).Dur("latency", time.Since(start)).
		Int("batch", len(domains)).Msg("estimator response")

	if err := classifyStatus(resp, domains); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &valuation.TransportError{Op: "read response", Err: err}
	}
	return parseQuote(raw)
}

func classifyStatus(resp *http.Response, domains []string) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusPaymentRequired:
		return &valuation.BillingError{Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &valuation.RateLimitError{RetryAfter: retryAfter(resp)}
	case resp.StatusCode == http.StatusUnprocessableEntity:
		d := ""
		if len(domains) > 0 {
			d = domains[0]
		}
		return &valuation.UnprocessableError{Domain: d}
	default:
		return &valuation.TransportError{Op: "quote", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}

// parseQuote is the tagged parse of the two observed response shapes.
// Anything else is a ValidationError, never an ad hoc field probe.
func parseQuote(raw []byte) (*valuation.Quote, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &valuation.ValidationError{Reason: "empty body"}
	}

	switch trimmed[0] {
	case '[':
		var records []valuation.QuoteRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, &valuation.ValidationError{Reason: "malformed record list"}
		}
		return &valuation.Quote{Records: records, Raw: json.RawMessage(trimmed)}, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, &valuation.ValidationError{Reason: "malformed response object"}
		}
		switch {
		case len(env.Valuations) > 0:
			return &valuation.Quote{Records: env.Valuations, Raw: json.RawMessage(trimmed)}, nil
		case env.EstimatedValue != nil:
			return &valuation.Quote{EstimatedValue: env.EstimatedValue, Raw: json.RawMessage(trimmed)}, nil
		default:
			return nil, &valuation.ValidationError{Reason: "object carried neither valuations nor estimated value"}
		}
	default:
		return nil, &valuation.ValidationError{Reason: "unrecognized response shape"}
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
