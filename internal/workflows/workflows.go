package workflows

import (
	"time"

	"greenmcp/internal/activities"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// CorpusImportWorkflow runs the import activity exactly once. A failed import
// cannot resume, so there is no retry.
func CorpusImportWorkflow(ctx workflow.Context, input CorpusImportInput) (string, error) {
	status := CorpusImportStatus{State: StatusRunning}
	if err := workflow.SetQueryHandler(ctx, QueryGetImportStatus, func() (CorpusImportStatus, error) {
		return status, nil
	}); err != nil {
		return "", err
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Hour,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})
	var out activities.ImportCorpusOutput
	err := workflow.ExecuteActivity(ctx, "ImportCorpusActivity", activities.ImportCorpusInput{
		MetadataPath: input.MetadataPath,
		ChunksPath:   input.ChunksPath,
		Trigger:      input.Trigger,
	}).Get(ctx, &out)
	if err != nil {
		status.State = StatusFailed
		return "", err
	}
	status.Written, status.Failed = out.Written, out.Failed
	if out.Skipped {
		status.State = StatusSkipped
		return StatusSkipped, nil
	}
	status.State = StatusImported
	workflow.GetLogger(ctx).Info("corpus import finished", "written", out.Written, "failed", out.Failed)
	return StatusImported, nil
}
