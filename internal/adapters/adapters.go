// Package adapters normalizes the raw responses of the external data-source
// actors (web search, LinkedIn, Trustpilot, SimilarWeb, Google Maps) into the
// fixed record shapes of internal/model.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/sells-group/company-researcher/internal/config"
	"github.com/sells-group/company-researcher/internal/resilience"
	"github.com/sells-group/company-researcher/pkg/apify"
)

// Fetcher runs the per-source actors and maps their dataset rows into model
// records. A Fetcher holds no per-run state; it is safe to share across runs.
type Fetcher struct {
	client apify.Client
	cfg    config.ApifyConfig

	// OnRun, when set, is invoked after every completed actor call with the
	// source name and the finished run. Used for fire-and-forget usage
	// accounting; it must not block.
	OnRun func(source string, run *apify.Run)
}

// New creates a Fetcher over the given Apify client.
func New(client apify.Client, cfg config.ApifyConfig) *Fetcher {
	return &Fetcher{client: client, cfg: cfg}
}

func (f *Fetcher) runOpts() []apify.RunOption {
	var opts []apify.RunOption
	if f.cfg.ActorMemoryMB > 0 {
		opts = append(opts, apify.WithMemoryMB(f.cfg.ActorMemoryMB))
	}
	return opts
}

func (f *Fetcher) pollOpts() []apify.PollOption {
	var opts []apify.PollOption
	if f.cfg.PollIntervalSecs > 0 {
		opts = append(opts, apify.WithPollInterval(time.Duration(f.cfg.PollIntervalSecs)*time.Second))
	}
	if f.cfg.PollTimeoutSecs > 0 {
		opts = append(opts, apify.WithPollTimeout(time.Duration(f.cfg.PollTimeoutSecs)*time.Second))
	}
	return opts
}

type actorResult struct {
	rows []map[string]any
	run  *apify.Run
}

// call submits the actor job, awaits completion, and reads back the dataset
// rows. Transient platform errors are retried with backoff. The OnRun hook
// fires only for completed runs.
func (f *Fetcher) call(ctx context.Context, source, actorID string, input any) ([]map[string]any, error) {
	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.ShouldRetry = shouldRetryActor
	retryCfg.OnRetry = resilience.RetryLogger(source, "call-actor")

	res, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (actorResult, error) {
		rows, run, err := apify.CallActor(ctx, f.client, actorID, input, f.runOpts(), f.pollOpts()...)
		return actorResult{rows: rows, run: run}, err
	})
	if err != nil {
		return nil, err
	}
	if f.OnRun != nil {
		f.OnRun(source, res.run)
	}
	return res.rows, nil
}

func shouldRetryActor(err error) bool {
	var apiErr *apify.APIError
	if errors.As(err, &apiErr) {
		return resilience.IsTransientHTTPStatus(apiErr.StatusCode)
	}
	return resilience.IsTransient(err)
}
