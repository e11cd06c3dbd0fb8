package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nameworth/nameworth/internal/application"
)

// BulkAppraiser is the application dependency behind the appraise
// endpoint, narrowed so tests can fake it.
type BulkAppraiser interface {
	AppraiseAll(ctx context.Context, domains []string) ([]application.Row, error)
}

// Handlers carries the endpoint implementations.
type Handlers struct {
	appraiser BulkAppraiser
	maxBatch  int
	metrics   *MetricsRegistry
	log       zerolog.Logger
}

func NewHandlers(appraiser BulkAppraiser, maxBatch int, metrics *MetricsRegistry) *Handlers {
	if maxBatch <= 0 {
		maxBatch = 200
	}
	return &Handlers{
		appraiser: appraiser,
		maxBatch:  maxBatch,
		metrics:   metrics,
		log:       log.With().Str("component", "handlers").Logger(),
	}
}

type appraiseRequest struct {
	Domains []string `json:"domains"`
}

type appraiseResponse struct {
	Count   int               `json:"count"`
	Results []application.Row `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Appraise is the bulk endpoint: up to maxBatch domains in, one row
// per domain out, sorted descending by market price. A single bad
// domain never fails the batch; only malformed requests do.
func (h *Handlers) Appraise(w http.ResponseWriter, r *http.Request) {
	var req appraiseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}
	if len(req.Domains) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "domains list is required"})
		return
	}
	if len(req.Domains) > h.maxBatch {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "batch exceeds the maximum domain count"})
		return
	}

	start := time.Now()
	rows, err := h.appraiser.AppraiseAll(r.Context(), req.Domains)
	if err != nil {
		h.log.Error().Err(err).Str("request_id", requestID(r.Context())).Msg("bulk appraisal failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "appraisal failed"})
		return
	}
	if h.metrics != nil {
		h.metrics.BatchDuration.Observe(time.Since(start).Seconds())
		h.metrics.BatchSize.Observe(float64(len(req.Domains)))
	}

	writeJSON(w, http.StatusOK, appraiseResponse{Count: len(rows), Results: rows})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
