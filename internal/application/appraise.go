// Package application wires the valuation orchestrator, brandability
// scorer and price composer into the appraisal pipeline the external
// surfaces consume.
package application

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nameworth/nameworth/internal/brand"
	"github.com/nameworth/nameworth/internal/domain"
	"github.com/nameworth/nameworth/internal/pricing"
	"github.com/nameworth/nameworth/internal/valuation"
)

// Row statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Row is the per-domain appraisal answer. Price pointers are nil on
// error rows so callers can tell "zero" from "unknown".
type Row struct {
	Domain     string `json:"domain"`
	Source     string `json:"source"`
	Status     string `json:"status"`
	Liquidity  *int   `json:"liquidity_price"`
	Market     *int   `json:"market_price"`
	BuyNow     *int   `json:"buy_now_price"`
	BrandLabel string `json:"brand_label"`
	BrandScore int    `json:"brand_score"`
	Length     int    `json:"length"`
	TLD        string `json:"tld"`
	WordCount  int    `json:"word_count"`
	Error      string `json:"error,omitempty"`
}

// Valuer is the orchestration dependency, narrowed so tests can
// substitute a fake.
type Valuer interface {
	Value(ctx context.Context, domain string) (*valuation.Result, error)
}

// Config bounds the bulk path.
type Config struct {
	Concurrency int // worker pool size
	MaxBatch    int // request cap, requests above it are rejected
}

func DefaultConfig() Config {
	return Config{Concurrency: 3, MaxBatch: 200}
}

// Appraiser runs single and bulk appraisals.
type Appraiser struct {
	valuer Valuer
	cfg    Config
	log    zerolog.Logger
}

func NewAppraiser(valuer Valuer, cfg Config) *Appraiser {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 3
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = 200
	}
	return &Appraiser{
		valuer: valuer,
		cfg:    cfg,
		log:    log.With().Str("component", "appraiser").Logger(),
	}
}

// Appraise values and prices one domain. Failures become error-flagged
// rows, never panics or raw upstream errors.
func (a *Appraiser) Appraise(ctx context.Context, rawDomain string) Row {
	normalized := domain.Normalize(rawDomain)
	row := a.describe(normalized)

	res, err := a.valuer.Value(ctx, normalized)
	if err != nil {
		row.Status = StatusError
		row.Error = valuation.Sanitize(err).Error()
		return row
	}

	tiers := pricing.Compose(res.Tiers, res.Value, pricing.Multiplier(row.BrandScore))
	row.Status = StatusOK
	row.Source = string(res.Source)
	row.Liquidity = &tiers.Liquidity
	row.Market = &tiers.Market
	row.BuyNow = &tiers.BuyNow
	return row
}

// describe fills the valuation-independent fields.
func (a *Appraiser) describe(normalized string) Row {
	name, _ := domain.Split(normalized)
	score := brand.Score(normalized)
	return Row{
		Domain:     normalized,
		BrandLabel: string(score.Label),
		BrandScore: score.Score,
		Length:     len(name.SLD),
		TLD:        name.TLD,
		WordCount:  pricing.WordEstimate(name.SLD),
	}
}

// AppraiseAll fans a batch out over a bounded worker pool. Each task's
// failure is contained at the task boundary; the batch always yields
// one row per input, sorted descending by market price.
func (a *Appraiser) AppraiseAll(ctx context.Context, domains []string) ([]Row, error) {
	if len(domains) == 0 {
		return nil, fmt.Errorf("empty batch")
	}
	if len(domains) > a.cfg.MaxBatch {
		return nil, fmt.Errorf("batch of %d exceeds the %d-domain cap", len(domains), a.cfg.MaxBatch)
	}

	batchID := uuid.NewString()
	a.log.Info().Str("batch_id", batchID).Int("count", len(domains)).Msg("bulk appraisal started")

	rows := make([]Row, len(domains))
	sem := make(chan struct{}, a.cfg.Concurrency)
	var wg sync.WaitGroup

	for i, d := range domains {
		wg.Add(1)
		go func(idx int, rawDomain string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			defer func() {
				if r := recover(); r != nil {
					a.log.Error().Str("batch_id", batchID).Str("domain", rawDomain).
						Interface("panic", r).Msg("appraisal task panicked")
					rows[idx] = errorRow(rawDomain)
				}
			}()

			rows[idx] = a.Appraise(ctx, rawDomain)
		}(i, d)
	}
	wg.Wait()

	sort.SliceStable(rows, func(i, j int) bool {
		return marketOf(rows[i]) > marketOf(rows[j])
	})

	a.log.Info().Str("batch_id", batchID).Msg("bulk appraisal finished")
	return rows, nil
}

func errorRow(rawDomain string) Row {
	return Row{
		Domain: domain.Normalize(rawDomain),
		Status: StatusError,
		Error:  (&valuation.UserError{Code: valuation.CodeTechnical, Message: "Appraisal failed due to a technical problem."}).Error(),
	}
}

// marketOf orders error rows (no market price) last.
func marketOf(r Row) int {
	if r.Market == nil {
		return -1
	}
	return *r.Market
}
