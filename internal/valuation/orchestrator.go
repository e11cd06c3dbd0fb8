package valuation

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nameworth/nameworth/internal/cache"
	"github.com/nameworth/nameworth/internal/domain"
	"github.com/nameworth/nameworth/internal/pricing"
)

// Source tags where a valuation came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Confidence grades how much weight downstream pricing should give a
// valuation. Remote estimates are High, local fallback is Medium.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
)

// Result is one resolved valuation. Never mutated after construction;
// cached by serialized value, including the true original source tag,
// so a fallback-produced result stays labeled local on later hits.
type Result struct {
	Source     Source              `json:"source"`
	Value      float64             `json:"value"`
	Confidence Confidence          `json:"confidence"`
	Tiers      *pricing.QuoteTiers `json:"tiers,omitempty"`
	Raw        json.RawMessage     `json:"raw,omitempty"`
}

// QuoteRecord is one per-domain valuation triple from the remote
// estimator.
type QuoteRecord struct {
	Domain      string  `json:"domain"`
	Auction     float64 `json:"auction"`
	Marketplace float64 `json:"marketplace"`
	Brokerage   float64 `json:"brokerage"`
}

// Quote is the tagged decomposition of the two remote response shapes:
// a list of per-domain records, or a single estimated value. Exactly
// one of Records / EstimatedValue is expected to be populated.
type Quote struct {
	Records        []QuoteRecord
	EstimatedValue *float64
	Raw            json.RawMessage
}

// marketValue extracts the usable market value from a quote, or a
// ValidationError when neither shape carries one.
func (q *Quote) marketValue() (float64, *pricing.QuoteTiers, error) {
	switch {
	case len(q.Records) > 0:
		rec := q.Records[0]
		if !validValue(rec.Marketplace) {
			return 0, nil, &ValidationError{Reason: "marketplace value missing or out of range"}
		}
		return rec.Marketplace, &pricing.QuoteTiers{
			Auction:     rec.Auction,
			Marketplace: rec.Marketplace,
			Brokerage:   rec.Brokerage,
		}, nil
	case q.EstimatedValue != nil:
		if !validValue(*q.EstimatedValue) {
			return 0, nil, &ValidationError{Reason: "estimated value missing or out of range"}
		}
		return *q.EstimatedValue, nil, nil
	default:
		return 0, nil, &ValidationError{Reason: "response carried no valuation shape"}
	}
}

func validValue(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Provider is the remote inference collaborator. Implementations own
// transport detail; the orchestrator only sees the taxonomy errors.
type Provider interface {
	Quote(ctx context.Context, domains []string) (*Quote, error)
}

// FallbackMode picks what happens when every remote attempt fails:
// degrade silently to the local model, or surface a sanitized error.
type FallbackMode string

const (
	FallbackSilent FallbackMode = "silent"
	FallbackError  FallbackMode = "error"
)

// Observer receives orchestration events for metrics. All methods must
// be safe for concurrent use.
type Observer interface {
	CacheHit()
	CacheMiss()
	RemoteAttempt(result string)
	Fallback()
}

// Config tunes the resilience envelope around the remote estimator.
type Config struct {
	AttemptTimeout time.Duration // per remote attempt, not per request
	MaxRetries     int           // retries after the first attempt
	BackoffUnit    time.Duration // attempt index multiplies this
	CacheTTL       time.Duration
	FallbackMode   FallbackMode
}

// DefaultConfig matches the production envelope: 5s attempts, two
// retries with linear backoff, 7-day cache, silent degradation.
func DefaultConfig() Config {
	return Config{
		AttemptTimeout: 5 * time.Second,
		MaxRetries:     2,
		BackoffUnit:    time.Second,
		CacheTTL:       7 * 24 * time.Hour,
		FallbackMode:   FallbackSilent,
	}
}

// Orchestrator resolves one domain to one Result through cache-aside,
// bounded retry against the remote estimator and local fallback. Raw
// transport detail never escapes it.
type Orchestrator struct {
	provider Provider
	store    cache.Store
	cfg      Config
	observer Observer
	sleep    func(time.Duration)
	log      zerolog.Logger
}

func NewOrchestrator(provider Provider, store cache.Store, cfg Config) *Orchestrator {
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = 5 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0 // the first attempt always runs
	}
	if cfg.BackoffUnit <= 0 {
		cfg.BackoffUnit = time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 7 * 24 * time.Hour
	}
	if cfg.FallbackMode == "" {
		cfg.FallbackMode = FallbackSilent
	}
	return &Orchestrator{
		provider: provider,
		store:    store,
		cfg:      cfg,
		sleep:    time.Sleep,
		log:      log.With().Str("component", "valuation").Logger(),
	}
}

// WithObserver attaches a metrics observer.
func (o *Orchestrator) WithObserver(obs Observer) *Orchestrator {
	o.observer = obs
	return o
}

func cacheKey(normalized string) string {
	return "nameworth:v1:" + normalized
}

// Value resolves the valuation for one domain: cache, then remote with
// bounded retry, then local fallback.
func (o *Orchestrator) Value(ctx context.Context, rawDomain string) (*Result, error) {
	normalized := domain.Normalize(rawDomain)
	key := cacheKey(normalized)

	if res := o.readCache(ctx, key); res != nil {
		return res, nil
	}

	res, err := o.remote(ctx, normalized)
	if err == nil {
		o.writeCache(ctx, key, res)
		return res, nil
	}

	o.log.Warn().Str("domain", normalized).Err(err).Msg("remote valuation failed, using local model")
	if o.observer != nil {
		o.observer.Fallback()
	}
	if o.cfg.FallbackMode == FallbackError {
		return nil, Sanitize(err)
	}
	return localResult(normalized), nil
}

// readCache returns a well-formed cached result or nil. Backend errors
// are logged and treated as misses.
func (o *Orchestrator) readCache(ctx context.Context, key string) *Result {
	if o.store == nil {
		return nil
	}
	raw, ok, err := o.store.Get(ctx, key)
	if err != nil {
		o.log.Warn().Err(&CacheError{Op: "get", Err: err}).Msg("cache read failed, treating as miss")
		if o.observer != nil {
			o.observer.CacheMiss()
		}
		return nil
	}
	if !ok {
		if o.observer != nil {
			o.observer.CacheMiss()
		}
		return nil
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil || !wellFormed(&res) {
		o.log.Warn().Str("key", key).Msg("cache entry malformed, treating as miss")
		if o.observer != nil {
			o.observer.CacheMiss()
		}
		return nil
	}
	if o.observer != nil {
		o.observer.CacheHit()
	}
	return &res
}

func wellFormed(res *Result) bool {
	if res.Source != SourceRemote && res.Source != SourceLocal {
		return false
	}
	return validValue(res.Value)
}

// writeCache persists a fresh result. Fire-and-forget: failure is
// logged and the request proceeds.
func (o *Orchestrator) writeCache(ctx context.Context, key string, res *Result) {
	if o.store == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		o.log.Warn().Err(err).Msg("cache marshal failed")
		return
	}
	if err := o.store.Set(ctx, key, raw, o.cfg.CacheTTL); err != nil {
		o.log.Warn().Err(&CacheError{Op: "set", Err: err}).Msg("cache write failed")
	}
}

// remote runs up to 1+MaxRetries attempts with linearly increasing
// backoff, retrying only on rate-limit and transport signatures.
func (o *Orchestrator) remote(ctx context.Context, normalized string) (*Result, error) {
	if o.provider == nil {
		return nil, &ConfigurationError{Field: "valuation provider"}
	}

	var lastErr error
	for attempt := 0; attempt <= o.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			o.sleep(time.Duration(attempt) * o.cfg.BackoffUnit)
		}

		quote, err := o.attempt(ctx, normalized)
		if err == nil {
			value, tiers, verr := quote.marketValue()
			if verr != nil {
				if o.observer != nil {
					o.observer.RemoteAttempt("invalid")
				}
				return nil, verr
			}
			if o.observer != nil {
				o.observer.RemoteAttempt("ok")
			}
			return &Result{
				Source:     SourceRemote,
				Value:      value,
				Confidence: ConfidenceHigh,
				Tiers:      tiers,
				Raw:        quote.Raw,
			}, nil
		}

		if o.observer != nil {
			o.observer.RemoteAttempt("error")
		}
		lastErr = err
		if !retryable(err) {
			o.log.Debug().Str("domain", normalized).Err(err).Msg("non-retryable remote error, short-circuiting")
			break
		}
		o.log.Debug().Str("domain", normalized).Int("attempt", attempt+1).Err(err).Msg("retryable remote error")
	}
	return nil, lastErr
}

func (o *Orchestrator) attempt(ctx context.Context, normalized string) (*Quote, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, o.cfg.AttemptTimeout)
	defer cancel()

	quote, err := o.provider.Quote(attemptCtx, []string{normalized})
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded {
			return nil, &TransportError{Op: "quote", Timeout: true, Err: err}
		}
		return nil, err
	}
	if quote == nil {
		return nil, &ValidationError{Reason: "empty response"}
	}
	return quote, nil
}

// localResult synthesizes a degraded valuation from the deterministic
// fallback pricer.
func localResult(normalized string) *Result {
	fb := pricing.Fallback(normalized)
	raw, _ := json.Marshal(fb)
	return &Result{
		Source:     SourceLocal,
		Value:      float64(fb.Price),
		Confidence: ConfidenceMedium,
		Raw:        raw,
	}
}
