package apify

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultPollInitial = 2 * time.Second
	defaultPollCap     = 15 * time.Second
	defaultPollTimeout = 5 * time.Minute
)

// PollOption configures polling behavior.
type PollOption func(*pollConfig)

type pollConfig struct {
	initial time.Duration
	cap     time.Duration
	timeout time.Duration
}

func defaultPollConfig() pollConfig {
	return pollConfig{
		initial: defaultPollInitial,
		cap:     defaultPollCap,
		timeout: defaultPollTimeout,
	}
}

// WithPollInterval overrides the initial poll interval.
func WithPollInterval(d time.Duration) PollOption {
	return func(c *pollConfig) {
		c.initial = d
	}
}

// WithPollCap overrides the maximum poll interval.
func WithPollCap(d time.Duration) PollOption {
	return func(c *pollConfig) {
		c.cap = d
	}
}

// WithPollTimeout overrides the default timeout (applied only if the parent
// context has no deadline).
func WithPollTimeout(d time.Duration) PollOption {
	return func(c *pollConfig) {
		c.timeout = d
	}
}

// PollRun polls GetRun until the run reaches a terminal status or the context
// expires. Uses exponential backoff: 2s -> 4s -> 8s -> 15s (capped). A run
// that terminates in any status other than SUCCEEDED is an error.
func PollRun(ctx context.Context, client Client, runID string, opts ...PollOption) (*Run, error) {
	cfg := defaultPollConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	interval := cfg.initial
	for {
		run, err := client.GetRun(ctx, runID)
		if err != nil {
			return nil, eris.Wrap(err, fmt.Sprintf("apify: poll run %s", runID))
		}

		if run.Finished() {
			if run.Status != StatusSucceeded {
				return nil, eris.Errorf("apify: run %s ended with status %s", runID, run.Status)
			}
			return run, nil
		}

		select {
		case <-ctx.Done():
			return nil, eris.Wrap(ctx.Err(), fmt.Sprintf("apify: poll run %s timed out", runID))
		case <-time.After(interval):
		}

		interval *= 2
		if interval > cfg.cap {
			interval = cfg.cap
		}
	}
}

// CallActor starts an actor run, waits for it to finish, and returns the rows
// of its default dataset together with the final run record.
func CallActor(ctx context.Context, client Client, actorID string, input any, runOpts []RunOption, pollOpts ...PollOption) ([]map[string]any, *Run, error) {
	run, err := client.StartActorRun(ctx, actorID, input, runOpts...)
	if err != nil {
		return nil, nil, eris.Wrap(err, fmt.Sprintf("apify: call actor %s", actorID))
	}

	run, err = PollRun(ctx, client, run.ID, pollOpts...)
	if err != nil {
		return nil, nil, eris.Wrap(err, fmt.Sprintf("apify: call actor %s", actorID))
	}

	items, err := client.ListDatasetItems(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, run, eris.Wrap(err, fmt.Sprintf("apify: call actor %s", actorID))
	}

	return items, run, nil
}
