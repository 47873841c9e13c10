package agent

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/company-researcher/pkg/anthropic"
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

// --- Searcher Mock ---

type mockSearcher struct {
	mock.Mock
}

var _ Searcher = (*mockSearcher)(nil)

func (m *mockSearcher) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	args := m.Called(ctx, query, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content:    []anthropic.ContentBlock{{Type: "text", Text: text}},
		StopReason: "end_turn",
		Usage:      anthropic.TokenUsage{InputTokens: 100, OutputTokens: 50},
	}
}

func toolUseResponse(id, query string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{
			{Type: "text", Text: "Searching for more information."},
			{Type: "tool_use", ID: id, Name: "search", Input: []byte(`{"query":"` + query + `"}`)},
		},
		StopReason: "tool_use",
		Usage:      anthropic.TokenUsage{InputTokens: 100, OutputTokens: 50},
	}
}
