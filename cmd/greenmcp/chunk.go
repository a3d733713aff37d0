package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk <id>",
	Short: "Show one stored chunk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("chunk id %q: %w", args[0], err)
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Chunks.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), c)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s [%s]\n", titleText(orDash(c.Title)), orDash(c.Topic))
		fmt.Fprintf(out, "%s #%d  %s\n", sourceText(orDash(c.Filename)), c.ChunkIndex, c.SourceURL)
		fmt.Fprintf(out, "embedding: %d components\n\n", len(c.Embedding))
		fmt.Fprintln(out, c.Content)
		return nil
	},
}

func init() {
	chunkCmd.Flags().Bool("json", false, "print the chunk as JSON")
	rootCmd.AddCommand(chunkCmd)
}
