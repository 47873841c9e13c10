// Package report turns a reconciled company profile into a narrative
// markdown business report.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/company-researcher/internal/config"
	"github.com/sells-group/company-researcher/internal/model"
	"github.com/sells-group/company-researcher/pkg/anthropic"
)

// RecordWriter persists the finished report. Writes are best effort.
type RecordWriter interface {
	SetRecord(ctx context.Context, storeID, key, contentType string, value any) error
}

// Synthesizer renders a company profile into a markdown report.
type Synthesizer struct {
	ai      anthropic.Client
	model   string
	cfg     config.ReportConfig
	store   RecordWriter
	storeID string
}

// NewSynthesizer creates a Synthesizer. store may be nil, in which case the
// report is not persisted.
func NewSynthesizer(ai anthropic.Client, model string, cfg config.ReportConfig, store RecordWriter, storeID string) *Synthesizer {
	return &Synthesizer{ai: ai, model: model, cfg: cfg, store: store, storeID: storeID}
}

// Generate produces the report for the given profile, attaches it to the
// profile, and persists it to the key-value store when one is configured.
// Persistence failures are logged and never fail the run.
func (s *Synthesizer) Generate(ctx context.Context, profile *model.CompanyProfile) (string, anthropic.TokenUsage, error) {
	var usage anthropic.TokenUsage

	data, err := profileToMap(profile)
	if err != nil {
		return "", usage, eris.Wrap(err, "report: serialize profile")
	}

	userPrompt, err := buildUserPrompt(profile.CompanyName, data)
	if err != nil {
		return "", usage, eris.Wrap(err, "report: build prompt")
	}

	resp, err := s.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.model,
		MaxTokens: int64(s.cfg.MaxTokens),
		System:    anthropic.BuildCachedSystemBlocks(reportSystemPrompt),
		Messages: []anthropic.Message{
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", usage, eris.Wrap(err, "report: create message")
	}
	usage.Add(resp.Usage)

	report := extractReport(resp.Text())
	if report == "" {
		return "", usage, eris.New("report: model returned empty report")
	}
	profile.Report = &report

	if s.store != nil && s.storeID != "" {
		if err := s.store.SetRecord(ctx, s.storeID, s.cfg.StoreKey, "text/markdown", []byte(report)); err != nil {
			zap.L().Warn("report: failed to persist report",
				zap.String("key", s.cfg.StoreKey),
				zap.Error(err),
			)
		}
	}

	zap.L().Info("report: generated",
		zap.String("company", profile.CompanyName),
		zap.Int("chars", len(report)),
	)
	return report, usage, nil
}

// profileToMap round-trips the profile through JSON so the prompt sees the
// same snake_case field names the rest of the system emits.
func profileToMap(profile *model.CompanyProfile) (map[string]any, error) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	delete(data, "report")
	return data, nil
}

func buildUserPrompt(companyName string, data map[string]any) (string, error) {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Company: %s\n\nResearch data:\n\n%s\n\nWrite the report now.", companyName, encoded), nil
}

// extractReport recovers the report text from the model output. The usual
// case is bare markdown. Some completions wrap the report in a JSON object
// under a "report" key; a malformed wrapper degrades to the stringified
// payload rather than losing the run.
func extractReport(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	if !looksLikeJSON(trimmed) {
		return trimmed
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(stripFences(trimmed)), &payload); err == nil {
		if report, ok := payload["report"].(string); ok && report != "" {
			return report
		}
	}

	zap.L().Warn("report: unexpected output shape, using raw payload")
	return trimmed
}

func looksLikeJSON(s string) bool {
	t := stripFences(s)
	return strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}")
}

func stripFences(s string) string {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}
