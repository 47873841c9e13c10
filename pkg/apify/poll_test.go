package apify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns canned run states in order, then repeats the last.
type scriptedClient struct {
	Client
	states []Run
	calls  int
	items  []map[string]any
}

func (c *scriptedClient) StartActorRun(ctx context.Context, actorID string, input any, opts ...RunOption) (*Run, error) {
	r := c.states[0]
	return &r, nil
}

func (c *scriptedClient) GetRun(ctx context.Context, runID string) (*Run, error) {
	i := c.calls
	if i >= len(c.states) {
		i = len(c.states) - 1
	}
	c.calls++
	r := c.states[i]
	return &r, nil
}

func (c *scriptedClient) ListDatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error) {
	return c.items, nil
}

func TestPollRun_Succeeds(t *testing.T) {
	client := &scriptedClient{states: []Run{
		{ID: "r1", Status: StatusRunning},
		{ID: "r1", Status: StatusRunning},
		{ID: "r1", Status: StatusSucceeded, DefaultDatasetID: "ds-1"},
	}}

	run, err := PollRun(context.Background(), client, "r1", WithPollInterval(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, run.Status)
	assert.Equal(t, 3, client.calls)
}

func TestPollRun_TerminalFailure(t *testing.T) {
	client := &scriptedClient{states: []Run{
		{ID: "r1", Status: StatusFailed},
	}}

	_, err := PollRun(context.Background(), client, "r1", WithPollInterval(time.Millisecond))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FAILED")
}

func TestPollRun_ContextTimeout(t *testing.T) {
	client := &scriptedClient{states: []Run{
		{ID: "r1", Status: StatusRunning},
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := PollRun(ctx, client, "r1", WithPollInterval(10*time.Millisecond))
	require.Error(t, err)
}

func TestCallActor(t *testing.T) {
	client := &scriptedClient{
		states: []Run{
			{ID: "r1", Status: StatusSucceeded, DefaultDatasetID: "ds-1", ComputeUnits: 0.1},
		},
		items: []map[string]any{{"name": "Acme"}},
	}

	rows, run, err := CallActor(context.Background(), client, "apify/rag-web-browser", map[string]any{"query": "acme"}, nil, WithPollInterval(time.Millisecond))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0]["name"])
	assert.Equal(t, "ds-1", run.DefaultDatasetID)
}
