package workflows

import (
	"context"
	"errors"
	"testing"

	"greenmcp/internal/activities"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
)

func newImportEnv() *testsuite.TestWorkflowEnvironment {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(CorpusImportWorkflow)
	env.RegisterActivityWithOptions(func(context.Context, activities.ImportCorpusInput) (activities.ImportCorpusOutput, error) {
		return activities.ImportCorpusOutput{}, nil
	}, activity.RegisterOptions{Name: "ImportCorpusActivity"})
	return env
}

func TestCorpusImportWorkflowImported(t *testing.T) {
	env := newImportEnv()
	in := CorpusImportInput{MetadataPath: "m.csv", ChunksPath: "c.csv", Trigger: "cli"}
	env.OnActivity("ImportCorpusActivity", mock.Anything, activities.ImportCorpusInput{MetadataPath: "m.csv", ChunksPath: "c.csv", Trigger: "cli"}).
		Return(activities.ImportCorpusOutput{Written: 3, Failed: 1}, nil)

	env.ExecuteWorkflow(CorpusImportWorkflow, in)
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, StatusImported, out)

	val, err := env.QueryWorkflow(QueryGetImportStatus)
	require.NoError(t, err)
	var status CorpusImportStatus
	require.NoError(t, val.Get(&status))
	require.Equal(t, CorpusImportStatus{State: StatusImported, Written: 3, Failed: 1}, status)
}

func TestCorpusImportWorkflowSkipped(t *testing.T) {
	env := newImportEnv()
	env.OnActivity("ImportCorpusActivity", mock.Anything, mock.Anything).Return(activities.ImportCorpusOutput{Skipped: true}, nil)

	env.ExecuteWorkflow(CorpusImportWorkflow, CorpusImportInput{})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, StatusSkipped, out)
}

func TestCorpusImportWorkflowFailsWithoutRetry(t *testing.T) {
	env := newImportEnv()
	env.OnActivity("ImportCorpusActivity", mock.Anything, mock.Anything).
		Return(activities.ImportCorpusOutput{}, errors.New("metadata source unreadable")).Once()

	env.ExecuteWorkflow(CorpusImportWorkflow, CorpusImportInput{})
	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	env.AssertExpectations(t)
}
