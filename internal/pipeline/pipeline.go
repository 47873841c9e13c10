// Package pipeline orchestrates a research run: agent research, source
// enrichment, and report synthesis.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/company-researcher/internal/adapters"
	"github.com/sells-group/company-researcher/internal/agent"
	"github.com/sells-group/company-researcher/internal/config"
	"github.com/sells-group/company-researcher/internal/cost"
	"github.com/sells-group/company-researcher/internal/enrich"
	"github.com/sells-group/company-researcher/internal/model"
	"github.com/sells-group/company-researcher/internal/report"
	"github.com/sells-group/company-researcher/internal/store"
	"github.com/sells-group/company-researcher/pkg/anthropic"
	"github.com/sells-group/company-researcher/pkg/apify"
)

const (
	phaseResearch = "research"
	phaseEnrich   = "enrich"
	phaseReport   = "report"
)

// Pipeline runs the three research phases for one company at a time.
type Pipeline struct {
	cfg   *config.Config
	store store.Store
	ai    anthropic.Client
	apify apify.Client
}

// New creates a Pipeline with all dependencies.
func New(cfg *config.Config, st store.Store, aiClient anthropic.Client, apifyClient apify.Client) *Pipeline {
	return &Pipeline{cfg: cfg, store: st, ai: aiClient, apify: apifyClient}
}

// Run researches one company end to end and records the outcome. The agent
// phase is the only one that can abort the run; enrichment and reporting
// degrade instead of failing where they can.
func (p *Pipeline) Run(ctx context.Context, companyName string) (*model.Run, error) {
	log := zap.L().With(zap.String("company", companyName))
	log.Info("pipeline: starting research run")

	run, err := p.store.CreateRun(ctx, companyName)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create run")
	}
	log = log.With(zap.String("run_id", run.ID))

	setStatus := func(status model.RunStatus) {
		if statusErr := p.store.UpdateRunStatus(ctx, run.ID, status); statusErr != nil {
			log.Warn("pipeline: failed to update status", zap.Error(statusErr))
		}
	}

	tracker := cost.NewTracker()
	charger := cost.NewCharger(p.apify, p.cfg.Apify.RunID)
	result := &model.RunResult{}

	trackPhase := func(name string, fn func() (int64, error)) error {
		start := time.Now()
		tokens, fnErr := fn()
		duration := time.Since(start).Milliseconds()

		phase := model.PhaseResult{
			Name:     name,
			Status:   model.PhaseStatusComplete,
			Duration: duration,
			Tokens:   tokens,
		}
		if fnErr != nil {
			phase.Status = model.PhaseStatusFailed
			phase.Error = fnErr.Error()
			log.Error("pipeline: phase failed",
				zap.String("phase", name),
				zap.Int64("duration_ms", duration),
				zap.Error(fnErr),
			)
		} else {
			log.Info("pipeline: phase complete",
				zap.String("phase", name),
				zap.Int64("duration_ms", duration),
				zap.Int64("tokens", tokens),
			)
		}
		result.Phases = append(result.Phases, phase)
		return fnErr
	}

	fail := func(cause error) (*model.Run, error) {
		result.Error = cause.Error()
		p.finalize(result, tracker)
		if failErr := p.store.FailRun(ctx, run.ID, result); failErr != nil {
			log.Warn("pipeline: failed to record failure", zap.Error(failErr))
		}
		run.Status = model.RunStatusFailed
		run.Result = result
		return run, cause
	}

	fetcher := adapters.New(p.apify, p.cfg.Apify)
	fetcher.OnRun = func(source string, actorRun *apify.Run) {
		tracker.AddComputeUnits(source, actorRun.ComputeUnits)
		charger.Charge(ctx, cost.EventSourceLookup, 1)
	}

	// ===== Phase 1: agent research =====
	setStatus(model.RunStatusResearching)

	driver := agent.NewDriver(p.ai, fetcher, p.cfg.Anthropic.HaikuModel, p.cfg.Agent)
	driver.OnSearchResults = func(query string, results []string) {
		p.storeSearchResults(ctx, query, results, log)
		charger.Charge(ctx, cost.EventSearch, 1)
	}
	driver.OnCompletion = func(usage anthropic.TokenUsage) {
		if usage.Total() > 0 {
			charger.Charge(ctx, cost.EventCompletion, 1)
		}
	}

	var basic *model.BasicProfile
	err = trackPhase(phaseResearch, func() (int64, error) {
		profile, usage, runErr := driver.Run(ctx, companyName)
		tracker.AddTokens(phaseResearch, usage)
		basic = profile
		return usage.Total(), runErr
	})
	if err != nil {
		return fail(eris.Wrap(err, "pipeline: research phase"))
	}

	// ===== Phase 2: source enrichment =====
	setStatus(model.RunStatusEnriching)

	var profile *model.CompanyProfile
	_ = trackPhase(phaseEnrich, func() (int64, error) {
		profile = enrich.New(fetcher).Enrich(ctx, basic)
		return 0, nil
	})

	// ===== Phase 3: report synthesis =====
	setStatus(model.RunStatusReporting)

	synth := report.NewSynthesizer(
		p.ai, p.cfg.Anthropic.SonnetModel, p.cfg.Report,
		p.apify, p.cfg.Apify.KeyValueStoreID,
	)
	err = trackPhase(phaseReport, func() (int64, error) {
		_, usage, genErr := synth.Generate(ctx, profile)
		tracker.AddTokens(phaseReport, usage)
		if usage.Total() > 0 {
			charger.Charge(ctx, cost.EventCompletion, 1)
		}
		return usage.Total(), genErr
	})
	if err != nil {
		return fail(eris.Wrap(err, "pipeline: report phase"))
	}
	charger.Charge(ctx, cost.EventReportGenerated, 1)

	p.pushProfile(ctx, profile, log)

	result.Profile = profile
	p.finalize(result, tracker)
	if err := p.store.UpdateRunResult(ctx, run.ID, result); err != nil {
		log.Warn("pipeline: failed to record result", zap.Error(err))
	}
	run.Status = model.RunStatusComplete
	run.Result = result

	log.Info("pipeline: run complete",
		zap.Int64("total_tokens", result.TotalTokens),
		zap.Float64("compute_units", result.ComputeUnits),
	)
	return run, nil
}

// finalize folds the tracker totals into the result and logs the spend.
func (p *Pipeline) finalize(result *model.RunResult, tracker *cost.Tracker) {
	usage := tracker.TokenUsage()
	result.TotalTokens = usage.Total()
	result.TokenCost = usage.EstimateCost(p.cfg.Anthropic.SonnetModel)
	result.ComputeUnits = tracker.ComputeUnits()
	tracker.LogSummary(p.cfg.Anthropic.SonnetModel)
}

// pushProfile emits the finished profile to the output dataset. Called once
// per run, only on success.
func (p *Pipeline) pushProfile(ctx context.Context, profile *model.CompanyProfile, log *zap.Logger) {
	if p.cfg.Apify.OutputDatasetID == "" {
		return
	}
	if err := p.apify.PushItems(ctx, p.cfg.Apify.OutputDatasetID, profile); err != nil {
		log.Warn("pipeline: failed to push profile to dataset", zap.Error(err))
	}
}

// storeSearchResults writes raw search output to the key-value store so each
// query's evidence can be inspected after the run.
func (p *Pipeline) storeSearchResults(ctx context.Context, query string, results []string, log *zap.Logger) {
	if p.cfg.Apify.KeyValueStoreID == "" {
		return
	}
	key := searchResultsKey(query)
	value := []byte(strings.Join(results, "\n\n---\n\n"))
	if err := p.apify.SetRecord(ctx, p.cfg.Apify.KeyValueStoreID, key, "text/markdown", value); err != nil {
		log.Warn("pipeline: failed to store search results",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// searchResultsKey derives a store-safe record key from a search query.
// Whitespace and quote characters are replaced with underscores.
func searchResultsKey(query string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\'', '"', '`':
			return '_'
		}
		return r
	}, query)
	return "search_results_" + sanitized
}
