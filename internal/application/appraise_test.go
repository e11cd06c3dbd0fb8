package application

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nameworth/nameworth/internal/valuation"
)

// scriptedValuer returns a fixed value per domain, an error for
// domains in fail, and panics for domains in explode.
type scriptedValuer struct {
	mu      sync.Mutex
	values  map[string]float64
	fail    map[string]bool
	explode map[string]bool
	active  int
	peak    int
}

func (v *scriptedValuer) Value(_ context.Context, domain string) (*valuation.Result, error) {
	v.mu.Lock()
	v.active++
	if v.active > v.peak {
		v.peak = v.active
	}
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		v.active--
		v.mu.Unlock()
	}()

	if v.explode[domain] {
		panic("engineered mid-flight failure")
	}
	if v.fail[domain] {
		return nil, &valuation.TransportError{Op: "quote", Timeout: true}
	}
	return &valuation.Result{
		Source:     valuation.SourceRemote,
		Value:      v.values[domain],
		Confidence: valuation.ConfidenceHigh,
	}, nil
}

func TestAppraise_SingleDomainRow(t *testing.T) {
	valuer := &scriptedValuer{values: map[string]float64{"startup.io": 1000}}
	a := NewAppraiser(valuer, DefaultConfig())

	row := a.Appraise(context.Background(), "Startup.IO")

	assert.Equal(t, "startup.io", row.Domain)
	assert.Equal(t, StatusOK, row.Status)
	assert.Equal(t, "remote", row.Source)
	require.NotNil(t, row.Market)
	assert.Greater(t, *row.Market, 0)
	assert.Equal(t, 7, row.Length)
	assert.Equal(t, "io", row.TLD)
	assert.Equal(t, 1, row.WordCount)
	assert.NotEmpty(t, row.BrandLabel)
}

func TestAppraise_ErrorBecomesFlaggedRow(t *testing.T) {
	valuer := &scriptedValuer{fail: map[string]bool{"broken.com": true}}
	a := NewAppraiser(valuer, DefaultConfig())

	row := a.Appraise(context.Background(), "broken.com")

	assert.Equal(t, StatusError, row.Status)
	assert.Nil(t, row.Market)
	assert.Contains(t, row.Error, valuation.CodeTimeout)
	// Brand description still fills in: scoring needs no collaborator.
	assert.NotEmpty(t, row.BrandLabel)
}

func TestAppraiseAll_FiveDomainsOneFailure(t *testing.T) {
	valuer := &scriptedValuer{
		values: map[string]float64{
			"alpha.com": 5000,
			"bravo.io":  3000,
			"delta.net": 800,
			"echo.org":  200,
		},
		explode: map[string]bool{"charlie.ai": true},
	}
	a := NewAppraiser(valuer, DefaultConfig())

	rows, err := a.AppraiseAll(context.Background(),
		[]string{"alpha.com", "bravo.io", "charlie.ai", "delta.net", "echo.org"})
	require.NoError(t, err)
	require.Len(t, rows, 5, "one row per input, failure included")

	var failed, succeeded int
	for _, r := range rows {
		if r.Status == StatusError {
			failed++
			assert.Nil(t, r.Market)
		} else {
			succeeded++
			require.NotNil(t, r.Market)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 4, succeeded)

	// Sorted descending by market price, error row last.
	markets := make([]int, 0, len(rows))
	for _, r := range rows {
		markets = append(markets, marketOf(r))
	}
	assert.True(t, sort.SliceIsSorted(markets, func(i, j int) bool { return markets[i] > markets[j] }),
		"rows sorted descending by market price, got %v", markets)
	assert.Equal(t, StatusError, rows[len(rows)-1].Status)
}

func TestAppraiseAll_RespectsConcurrencyBound(t *testing.T) {
	values := map[string]float64{}
	domains := make([]string, 20)
	for i := range domains {
		d := string(rune('a'+i)) + "example.com"
		domains[i] = d
		values[d] = float64(100 * (i + 1))
	}
	valuer := &scriptedValuer{values: values}
	a := NewAppraiser(valuer, Config{Concurrency: 3, MaxBatch: 200})

	rows, err := a.AppraiseAll(context.Background(), domains)
	require.NoError(t, err)
	assert.Len(t, rows, 20)
	assert.LessOrEqual(t, valuer.peak, 3, "no more than three in-flight valuations")
}

func TestAppraiseAll_BatchCap(t *testing.T) {
	a := NewAppraiser(&scriptedValuer{}, Config{Concurrency: 3, MaxBatch: 200})

	domains := make([]string, 201)
	for i := range domains {
		domains[i] = "x.com"
	}
	_, err := a.AppraiseAll(context.Background(), domains)
	assert.Error(t, err)

	_, err = a.AppraiseAll(context.Background(), nil)
	assert.Error(t, err)
}
