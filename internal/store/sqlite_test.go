package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-researcher/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestCreateAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "Acme Corp")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.CompanyName)
	assert.Equal(t, model.RunStatusQueued, got.Status)
	assert.Nil(t, got.Result)
}

func TestGetRun_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRun(context.Background(), "missing")
	require.Error(t, err)
}

func TestUpdateRunStatus_Transitions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "Acme Corp")
	require.NoError(t, err)

	for _, status := range []model.RunStatus{
		model.RunStatusResearching,
		model.RunStatusEnriching,
		model.RunStatusReporting,
	} {
		require.NoError(t, s.UpdateRunStatus(ctx, run.ID, status))
		got, err := s.GetRun(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}
}

func TestUpdateRunStatus_NotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateRunStatus(context.Background(), "missing", model.RunStatusResearching)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateRunResult(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "Acme Corp")
	require.NoError(t, err)

	profile := model.NewCompanyProfile(model.NewBasicProfile("Acme Corp"))
	result := &model.RunResult{
		Profile:     profile,
		TotalTokens: 1234,
		Phases: []model.PhaseResult{
			{Name: "research", Status: model.PhaseStatusComplete, Tokens: 1234},
		},
	}
	require.NoError(t, s.UpdateRunResult(ctx, run.ID, result))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Result)
	assert.EqualValues(t, 1234, got.Result.TotalTokens)
	require.NotNil(t, got.Result.Profile)
	assert.Equal(t, "Acme Corp", got.Result.Profile.CompanyName)
}

func TestFailRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "Acme Corp")
	require.NoError(t, err)

	require.NoError(t, s.FailRun(ctx, run.ID, &model.RunResult{Error: "generation failed"}))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Equal(t, "generation failed", got.Result.Error)
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r1, err := s.CreateRun(ctx, "Acme Corp")
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, "Globex")
	require.NoError(t, err)

	require.NoError(t, s.UpdateRunStatus(ctx, r1.ID, model.RunStatusFailed))

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	failed, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, r1.ID, failed[0].ID)

	byName, err := s.ListRuns(ctx, RunFilter{CompanyName: "Globex"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Globex", byName[0].CompanyName)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
