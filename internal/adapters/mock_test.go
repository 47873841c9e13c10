package adapters

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/company-researcher/pkg/apify"
)

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

// expectActorCall wires the start/poll/read sequence for one successful actor
// call that returns the given dataset rows.
func expectActorCall(m *mockApifyClient, actorID string, rows []map[string]any) {
	run := &apify.Run{
		ID:               "run-1",
		Status:           apify.StatusSucceeded,
		DefaultDatasetID: "ds-1",
		ComputeUnits:     0.05,
	}
	m.On("StartActorRun", mock.Anything, actorID, mock.Anything).Return(run, nil)
	m.On("GetRun", mock.Anything, "run-1").Return(run, nil)
	m.On("ListDatasetItems", mock.Anything, "ds-1").Return(rows, nil)
}
