package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/company-researcher/internal/pipeline"
	"github.com/sells-group/company-researcher/internal/store"
	anthropicpkg "github.com/sells-group/company-researcher/pkg/anthropic"
	"github.com/sells-group/company-researcher/pkg/apify"
)

// pipelineEnv holds the initialized store, clients, and pipeline needed by
// the research and serve commands.
type pipelineEnv struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initPipeline sets up the store and API clients and builds the Pipeline.
// Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	anthropicClient := anthropicpkg.NewClient(cfg.Anthropic.Key)
	apifyOpts := []apify.Option{}
	if cfg.Apify.BaseURL != "" {
		apifyOpts = append(apifyOpts, apify.WithBaseURL(cfg.Apify.BaseURL))
	}
	apifyClient := apify.NewClient(cfg.Apify.Token, apifyOpts...)

	return &pipelineEnv{
		Store:    st,
		Pipeline: pipeline.New(cfg, st, anthropicClient, apifyClient),
	}, nil
}

// researchTimeout bounds a single end-to-end run.
const researchTimeout = 30 * time.Minute

func runWithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, researchTimeout)
}
