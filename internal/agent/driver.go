// Package agent drives the bounded, tool-augmented research loop that turns
// a company name into a first-pass structured profile.
package agent

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

// ErrGeneration marks a completion-service response that could not be turned
// into schema-conforming output. It is the only error class that aborts a
// whole research run.
var ErrGeneration = eris.New("generation: schema-nonconforming output")

// Searcher runs one web search and returns formatted result snippets.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}

// Driver runs the research agent loop.
type Driver struct {
	ai     anthropic.Client
	search Searcher
	model  string
	cfg    config.AgentConfig

	// OnSearchResults, when set, receives every search's raw formatted
	// results for side-channel persistence. It must not block; failures are
	// the hook's own problem.
	OnSearchResults func(query string, results []string)

	// OnCompletion, when set, receives the usage of every completion call,
	// including the one that fails to parse. It must not block.
	OnCompletion func(usage anthropic.TokenUsage)
}

// NewDriver creates a Driver using the given completion model.
func NewDriver(ai anthropic.Client, search Searcher, model string, cfg config.AgentConfig) *Driver {
	return &Driver{ai: ai, search: search, model: model, cfg: cfg}
}

type searchInput struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

func (d *Driver) searchTool() anthropic.ToolDefinition {
	return anthropic.ToolDefinition{
		Name:        "search",
		Description: "Search the web for the given query and return the page contents of the top results as markdown.",
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The query to search for",
			},
			"max_results": map[string]any{
				"type":        "integer",
				"description": "The maximum number of results to return",
				"default":     d.cfg.MaxSearchResults,
			},
		},
		Required: []string{"query"},
	}
}

// Run executes the agent loop for one company and returns its BasicProfile.
// The loop ends the first time the model answers without requesting a tool
// call; it never forces additional searches. Temperature is pinned to zero so
// a fixed input produces stable output.
func (d *Driver) Run(ctx context.Context, companyName string) (*model.BasicProfile, anthropic.TokenUsage, error) {
	log := zap.L().With(zap.String("company", companyName))

	var usage anthropic.TokenUsage
	temperature := 0.0

	messages := []anthropic.Message{
		{Role: "user", Content: fmt.Sprintf(researchUserPrompt, companyName)},
	}

	for iteration := 0; iteration < d.cfg.MaxIterations; iteration++ {
		resp, err := d.ai.CreateMessage(ctx, anthropic.MessageRequest{
			Model:       d.model,
			MaxTokens:   int64(d.cfg.MaxTokens),
			System:      anthropic.BuildCachedSystemBlocks(researchSystemPrompt),
			Messages:    messages,
			Tools:       []anthropic.ToolDefinition{d.searchTool()},
			Temperature: &temperature,
		})
		if err != nil {
			return nil, usage, eris.Wrap(err, "agent: create message")
		}
		usage.Add(resp.Usage)
		if d.OnCompletion != nil {
			d.OnCompletion(resp.Usage)
		}

		toolUses := resp.ToolUses()
		if len(toolUses) == 0 {
			profile, parseErr := parseProfile(resp.Text(), companyName)
			if parseErr != nil {
				log.Warn("agent: final answer did not conform to profile schema", zap.Error(parseErr))
				return nil, usage, eris.Wrap(ErrGeneration, parseErr.Error())
			}
			log.Info("agent: research complete",
				zap.Int("iterations", iteration+1),
				zap.Int64("tokens", usage.Total()),
			)
			return profile, usage, nil
		}

		messages = append(messages, anthropic.Message{
			Role:     "assistant",
			Content:  resp.Text(),
			ToolUses: toolUses,
		})

		var results []anthropic.ToolResult
		for _, tu := range toolUses {
			results = append(results, d.runTool(ctx, log, tu))
		}
		messages = append(messages, anthropic.Message{
			Role:        "user",
			ToolResults: results,
		})
	}

	return nil, usage, eris.Wrap(ErrGeneration, fmt.Sprintf("agent: no final answer after %d iterations", d.cfg.MaxIterations))
}

// runTool executes one tool invocation. Tool failures are reported back to
// the model as error results rather than aborting the loop.
func (d *Driver) runTool(ctx context.Context, log *zap.Logger, tu anthropic.ToolUse) anthropic.ToolResult {
	if tu.Name != "search" {
		return anthropic.ToolResult{
			ToolUseID: tu.ID,
			Content:   fmt.Sprintf("unknown tool %q", tu.Name),
			IsError:   true,
		}
	}

	var input searchInput
	if err := json.Unmarshal(tu.Input, &input); err != nil {
		return anthropic.ToolResult{
			ToolUseID: tu.ID,
			Content:   "invalid search input: " + err.Error(),
			IsError:   true,
		}
	}
	if input.MaxResults <= 0 {
		input.MaxResults = d.cfg.MaxSearchResults
	}

	log.Info("agent: searching",
		zap.String("query", input.Query),
		zap.Int("max_results", input.MaxResults),
	)

	results, err := d.search.Search(ctx, input.Query, input.MaxResults)
	if err != nil {
		log.Warn("agent: search failed", zap.String("query", input.Query), zap.Error(err))
		return anthropic.ToolResult{
			ToolUseID: tu.ID,
			Content:   "search failed: " + err.Error(),
			IsError:   true,
		}
	}

	if d.OnSearchResults != nil {
		d.OnSearchResults(input.Query, results)
	}

	log.Info("agent: search complete",
		zap.String("query", input.Query),
		zap.Int("results", len(results)),
	)

	content := strings.Join(results, "\n\n---\n\n")
	if content == "" {
		content = "No results found."
	}
	return anthropic.ToolResult{ToolUseID: tu.ID, Content: content}
}

// parseProfile decodes the model's final answer into a BasicProfile.
func parseProfile(text, companyName string) (*model.BasicProfile, error) {
	cleaned := cleanJSON(text)
	if cleaned == "" {
		return nil, eris.New("agent: empty final answer")
	}

	var profile model.BasicProfile
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		return nil, eris.Wrap(err, "agent: parse profile json")
	}
	if profile.CompanyName == "" {
		profile.CompanyName = companyName
	}
	profile.Normalize()
	return &profile, nil
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
