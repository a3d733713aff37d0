package main

import (
	"fmt"

	"github.com/spf13/cobra"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	"greenmcp/internal/config"
	"greenmcp/internal/ingest"
	"greenmcp/internal/workflows"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the metadata and chunk CSV sources into the store",
	Long: `Load the metadata and chunk CSV sources into the store.

The import is skipped when the store already holds chunks. Use --reset to empty
the chunk table first; a partially failed import cannot be resumed.

With --temporal the import is started as a workflow on the configured task
queue and runs on a greenmcp worker instead of in this process.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("metadata", "", "metadata CSV (default GREENMCP_METADATA_CSV)")
	importCmd.Flags().String("chunks", "", "chunk/embedding CSV (default GREENMCP_CHUNKS_CSV)")
	importCmd.Flags().Bool("reset", false, "empty the chunk table before importing")
	importCmd.Flags().Bool("temporal", false, "run the import as a Temporal workflow")
	importCmd.Flags().Bool("wait", true, "with --temporal, wait for the workflow result")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	metaPath, _ := cmd.Flags().GetString("metadata")
	chunksPath, _ := cmd.Flags().GetString("chunks")
	reset, _ := cmd.Flags().GetBool("reset")
	viaTemporal, _ := cmd.Flags().GetBool("temporal")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if reset {
		if err := a.Chunks.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "chunk table emptied")
	}
	if viaTemporal {
		wait, _ := cmd.Flags().GetBool("wait")
		return startImportWorkflow(cmd, a.Cfg, metaPath, chunksPath, wait)
	}

	if metaPath == "" {
		metaPath = a.Cfg.MetadataCSV
	}
	if chunksPath == "" {
		chunksPath = a.Cfg.ChunksCSV
	}
	stats, err := a.Loader.Import(cmd.Context(), "cli", ingest.FileOpener(metaPath), ingest.FileOpener(chunksPath))
	if err != nil {
		return err
	}
	if stats.Skipped {
		fmt.Fprintln(cmd.OutOrStdout(), "store already populated, import skipped")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d chunks (%d rows failed)\n", stats.Written, stats.Failed)
	return nil
}

func startImportWorkflow(cmd *cobra.Command, cfg config.Config, metaPath, chunksPath string, wait bool) error {
	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		return fmt.Errorf("dial temporal: %w", err)
	}
	defer c.Close()

	run, err := c.ExecuteWorkflow(cmd.Context(), client.StartWorkflowOptions{
		ID:                                       workflows.ImportWorkflowID,
		TaskQueue:                                cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.CorpusImportWorkflow, workflows.CorpusImportInput{
		MetadataPath: metaPath,
		ChunksPath:   chunksPath,
		Trigger:      "temporal",
	})
	if err != nil {
		return fmt.Errorf("start import workflow: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "started workflow %s run %s\n", run.GetID(), run.GetRunID())
	if !wait {
		return nil
	}
	var result string
	if err := run.Get(cmd.Context(), &result); err != nil {
		return fmt.Errorf("import workflow: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "import workflow finished: %s\n", result)
	return nil
}
