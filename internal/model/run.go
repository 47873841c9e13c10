package model

import "time"

// RunStatus represents the current state of a research run.
type RunStatus string

const (
	RunStatusQueued      RunStatus = "queued"
	RunStatusResearching RunStatus = "researching"
	RunStatusEnriching   RunStatus = "enriching"
	RunStatusReporting   RunStatus = "reporting"
	RunStatusComplete    RunStatus = "complete"
	RunStatusFailed      RunStatus = "failed"
)

// Run represents a single research run for a company.
type Run struct {
	ID          string     `json:"id"`
	CompanyName string     `json:"company_name"`
	Status      RunStatus  `json:"status"`
	Result      *RunResult `json:"result,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RunResult holds the final outcome of a run.
type RunResult struct {
	Profile      *CompanyProfile `json:"profile,omitempty"`
	TotalTokens  int64           `json:"total_tokens"`
	TokenCost    float64         `json:"token_cost"`
	ComputeUnits float64         `json:"compute_units"`
	Phases       []PhaseResult   `json:"phases"`
	Error        string          `json:"error,omitempty"`
}

// PhaseStatus represents the current state of a pipeline phase.
type PhaseStatus string

const (
	PhaseStatusRunning  PhaseStatus = "running"
	PhaseStatusComplete PhaseStatus = "complete"
	PhaseStatusFailed   PhaseStatus = "failed"
	PhaseStatusSkipped  PhaseStatus = "skipped"
)

// PhaseResult holds the outcome of a pipeline phase.
type PhaseResult struct {
	Name     string      `json:"name"`
	Status   PhaseStatus `json:"status"`
	Duration int64       `json:"duration_ms"`
	Tokens   int64       `json:"tokens"`
	Error    string      `json:"error,omitempty"`
}
