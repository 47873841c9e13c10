package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-researcher/internal/config"
	"github.com/sells-group/company-researcher/internal/model"
	"github.com/sells-group/company-researcher/pkg/anthropic"
)

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

type mockRecordWriter struct {
	mock.Mock
}

var _ RecordWriter = (*mockRecordWriter)(nil)

func (m *mockRecordWriter) SetRecord(ctx context.Context, storeID, key, contentType string, value any) error {
	args := m.Called(ctx, storeID, key, contentType, value)
	return args.Error(0)
}

func testReportConfig() config.ReportConfig {
	return config.ReportConfig{MaxTokens: 8192, StoreKey: "business_report"}
}

func markdownResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage:   anthropic.TokenUsage{InputTokens: 500, OutputTokens: 900},
	}
}

func testProfile() *model.CompanyProfile {
	return model.NewCompanyProfile(model.NewBasicProfile("Acme Corp"))
}

func TestGenerate(t *testing.T) {
	ai := new(mockAnthropicClient)
	kv := new(mockRecordWriter)

	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(markdownResponse("# Acme Corp\n\n## Executive Summary\nAcme makes everything."), nil).Once()
	kv.On("SetRecord", mock.Anything, "kv-1", "business_report", "text/markdown", mock.Anything).
		Return(nil).Once()

	s := NewSynthesizer(ai, "claude-sonnet-4-5-20250929", testReportConfig(), kv, "kv-1")
	profile := testProfile()

	text, usage, err := s.Generate(context.Background(), profile)
	require.NoError(t, err)

	assert.Contains(t, text, "# Acme Corp")
	assert.EqualValues(t, 1400, usage.Total())
	require.NotNil(t, profile.Report)
	assert.Equal(t, text, *profile.Report)

	// The request carries no tools: the synthesis pass is one plain completion.
	req := ai.Calls[0].Arguments.Get(1).(anthropic.MessageRequest)
	assert.Empty(t, req.Tools)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, `"company_name": "Acme Corp"`)

	kv.AssertExpectations(t)
}

func TestGenerate_PersistFailureIsNonFatal(t *testing.T) {
	ai := new(mockAnthropicClient)
	kv := new(mockRecordWriter)

	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(markdownResponse("# Acme Corp\nReport body."), nil).Once()
	kv.On("SetRecord", mock.Anything, "kv-1", "business_report", "text/markdown", mock.Anything).
		Return(errors.New("store unavailable")).Once()

	s := NewSynthesizer(ai, "claude-sonnet-4-5-20250929", testReportConfig(), kv, "kv-1")
	_, _, err := s.Generate(context.Background(), testProfile())
	require.NoError(t, err)
}

func TestGenerate_NoStore(t *testing.T) {
	ai := new(mockAnthropicClient)
	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(markdownResponse("# Acme Corp\nReport body."), nil).Once()

	s := NewSynthesizer(ai, "claude-sonnet-4-5-20250929", testReportConfig(), nil, "")
	_, _, err := s.Generate(context.Background(), testProfile())
	require.NoError(t, err)
}

func TestGenerate_CompletionError(t *testing.T) {
	ai := new(mockAnthropicClient)
	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("overloaded")).Once()

	s := NewSynthesizer(ai, "claude-sonnet-4-5-20250929", testReportConfig(), nil, "")
	_, _, err := s.Generate(context.Background(), testProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create message")
}

func TestExtractReport(t *testing.T) {
	// Plain markdown passes through.
	assert.Equal(t, "# Acme\nBody.", extractReport("  # Acme\nBody.  "))

	// A JSON wrapper with a report key unwraps.
	assert.Equal(t, "# Acme", extractReport(`{"report": "# Acme"}`))
	assert.Equal(t, "# Acme", extractReport("```json\n{\"report\": \"# Acme\"}\n```"))

	// Malformed JSON degrades to the raw payload.
	raw := `{"report": truncated`
	assert.Equal(t, raw, extractReport(raw))

	// A JSON object without a report key degrades too.
	other := `{"summary": "# Acme"}`
	assert.Equal(t, other, extractReport(other))

	assert.Empty(t, extractReport("   "))
}

func TestProfileToMap_DropsReportField(t *testing.T) {
	profile := testProfile()
	existing := "old report"
	profile.Report = &existing

	data, err := profileToMap(profile)
	require.NoError(t, err)
	assert.NotContains(t, data, "report")
	assert.Equal(t, "Acme Corp", data["company_name"])
}
