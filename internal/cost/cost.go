// Package cost tracks what a research run spends: Anthropic tokens per
// phase and actor compute units per source, plus pay-per-event charging
// when running on the Apify platform.
package cost

import (
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/company-researcher/pkg/anthropic"
)

// Charge event names reported to the platform.
const (
	EventSearch          = "web-search"
	EventSourceLookup    = "source-lookup"
	EventCompletion      = "model-completion"
	EventReportGenerated = "report-generated"
)

// Tracker accumulates per-run spend. Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	tokens map[string]anthropic.TokenUsage
	units  map[string]float64
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		tokens: map[string]anthropic.TokenUsage{},
		units:  map[string]float64{},
	}
}

// AddTokens records Anthropic token usage for a pipeline phase.
func (t *Tracker) AddTokens(phase string, usage anthropic.TokenUsage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := t.tokens[phase]
	cur.Add(usage)
	t.tokens[phase] = cur
}

// AddComputeUnits records actor compute units consumed by a source lookup.
func (t *Tracker) AddComputeUnits(source string, units float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.units[source] += units
}

// TokenUsage returns the summed token usage across all phases.
func (t *Tracker) TokenUsage() anthropic.TokenUsage {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total anthropic.TokenUsage
	for _, u := range t.tokens {
		total.Add(u)
	}
	return total
}

// ComputeUnits returns the summed actor compute units across all sources.
func (t *Tracker) ComputeUnits() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total float64
	for _, u := range t.units {
		total += u
	}
	return total
}

// LogSummary emits one structured line per spend category plus totals.
func (t *Tracker) LogSummary(model string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for phase, usage := range t.tokens {
		zap.L().Info("cost: token usage",
			zap.String("phase", phase),
			zap.Int64("input_tokens", usage.InputTokens),
			zap.Int64("output_tokens", usage.OutputTokens),
			zap.Int64("cache_read_tokens", usage.CacheReadInputTokens),
		)
	}
	for source, units := range t.units {
		zap.L().Info("cost: actor compute units",
			zap.String("source", source),
			zap.Float64("compute_units", units),
		)
	}

	var totalTokens anthropic.TokenUsage
	for _, u := range t.tokens {
		totalTokens.Add(u)
	}
	var totalUnits float64
	for _, u := range t.units {
		totalUnits += u
	}
	zap.L().Info("cost: run totals",
		zap.Int64("total_tokens", totalTokens.Total()),
		zap.Float64("estimated_token_cost_usd", totalTokens.EstimateCost(model)),
		zap.Float64("total_compute_units", totalUnits),
	)
}
