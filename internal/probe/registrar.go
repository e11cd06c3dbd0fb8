// Package probe checks which extensions of a name are still
// registrable. It is a boundary collaborator, not part of the
// valuation core: probes run sequentially with a fixed inter-request
// delay because registry frontends rate-limit aggressively.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Status of one probed domain.
type Status string

const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusError     Status = "error"
)

// Result is the outcome of probing one extension.
type Result struct {
	Domain    string    `json:"domain"`
	Status    Status    `json:"status"`
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error,omitempty"`
}

// Config for the prober. Delay sets the pace between probes.
type Config struct {
	BaseURL    string
	Extensions []string
	Delay      time.Duration
	Timeout    time.Duration
}

// Prober asks an RDAP-style endpoint about registration status,
// extension by extension. Deliberately not parallelized.
type Prober struct {
	http    *http.Client
	limiter *rate.Limiter
	cfg     Config
	log     zerolog.Logger
}

func New(cfg Config) *Prober {
	if cfg.Delay <= 0 {
		cfg.Delay = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{"com", "net", "org", "io"}
	}
	return &Prober{
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Every(cfg.Delay), 1),
		cfg:     cfg,
		log:     log.With().Str("component", "probe").Logger(),
	}
}

// Probe checks every configured extension for the given SLD, in
// order. A single failed probe is recorded as an error result and the
// sweep continues.
func (p *Prober) Probe(ctx context.Context, sld string) ([]Result, error) {
	if sld == "" {
		return nil, fmt.Errorf("empty name")
	}

	results := make([]Result, 0, len(p.cfg.Extensions))
	for _, ext := range p.cfg.Extensions {
		if err := p.limiter.Wait(ctx); err != nil {
			return results, err
		}
		results = append(results, p.probeOne(ctx, sld+"."+ext))
	}
	return results, nil
}

func (p *Prober) probeOne(ctx context.Context, domain string) Result {
	res := Result{Domain: domain, CheckedAt: time.Now().UTC()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/domain/"+domain, nil)
	if err != nil {
		res.Status = StatusError
		res.Error = "request build failed"
		return res
	}

	resp, err := p.http.Do(req)
	if err != nil {
		p.log.Warn().Str("domain", domain).Err(err).Msg("probe failed")
		res.Status = StatusError
		res.Error = "registry unreachable"
		return res
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		res.Status = StatusAvailable
	case http.StatusOK:
		res.Status = StatusTaken
	default:
		res.Status = StatusError
		res.Error = fmt.Sprintf("unexpected registry status %d", resp.StatusCode)
	}
	return res
}
