package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent import runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		n, _ := cmd.Flags().GetInt("last")
		runs, err := a.ImportRuns.ListRecent(cmd.Context(), n)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "STARTED\tTRIGGER\tSTATUS\tWRITTEN\tFAILED")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", r.StartedAt.Local().Format(time.DateTime), r.Trigger, r.Status, r.Written, r.FailedRows)
		}
		return tw.Flush()
	},
}

func init() {
	runsCmd.Flags().Int("last", 10, "number of runs to show")
	rootCmd.AddCommand(runsCmd)
}
