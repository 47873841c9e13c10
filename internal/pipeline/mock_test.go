package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/company-researcher/pkg/anthropic"
	"github.com/sells-group/company-researcher/pkg/apify"
)

// --- Anthropic Mock ---

type mockAnthropicClient struct {
	mock.Mock
}

var _ anthropic.Client = (*mockAnthropicClient)(nil)

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// --- Apify Mock ---

type mockApifyClient struct {
	mock.Mock
}

var _ apify.Client = (*mockApifyClient)(nil)

func (m *mockApifyClient) StartActorRun(ctx context.Context, actorID string, input any, opts ...apify.RunOption) (*apify.Run, error) {
	args := m.Called(ctx, actorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apify.Run), args.Error(1)
}

func (m *mockApifyClient) GetRun(ctx context.Context, runID string) (*apify.Run, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apify.Run), args.Error(1)
}

func (m *mockApifyClient) ListDatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error) {
	args := m.Called(ctx, datasetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *mockApifyClient) PushItems(ctx context.Context, datasetID string, items ...any) error {
	args := m.Called(ctx, datasetID, items)
	return args.Error(0)
}

func (m *mockApifyClient) SetRecord(ctx context.Context, storeID, key, contentType string, value any) error {
	args := m.Called(ctx, storeID, key, contentType, value)
	return args.Error(0)
}

func (m *mockApifyClient) ChargeRun(ctx context.Context, runID, eventName string, count int) error {
	args := m.Called(ctx, runID, eventName, count)
	return args.Error(0)
}

// expectActor wires the start/poll/read sequence for one actor, keyed by a
// distinct platform run ID so several actors can be scripted side by side.
func expectActor(m *mockApifyClient, actorID, runID string, rows []map[string]any) {
	run := &apify.Run{
		ID:               runID,
		Status:           apify.StatusSucceeded,
		DefaultDatasetID: "ds-" + runID,
		ComputeUnits:     0.1,
	}
	m.On("StartActorRun", mock.Anything, actorID, mock.Anything).Return(run, nil)
	m.On("GetRun", mock.Anything, runID).Return(run, nil)
	m.On("ListDatasetItems", mock.Anything, "ds-"+runID).Return(rows, nil)
}
