package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"greenmcp/internal/models"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find the chunks nearest to a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.Tools.SearchChunks(cmd.Context(), strings.Join(args, " "), limitFlag(cmd))
		if err != nil {
			return err
		}
		return printResults(cmd, results)
	},
}

var withinCmd = &cobra.Command{
	Use:   "within <filename> <query>",
	Short: "Search inside documents whose filename contains <filename>",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.Tools.SearchWithinDocument(cmd.Context(), args[0], strings.Join(args[1:], " "), limitFlag(cmd))
		if err != nil {
			return err
		}
		return printResults(cmd, results)
	},
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List the searchable documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.Tools.ListDocuments(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), names)
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, withinCmd} {
		c.Flags().IntP("limit", "n", 0, "number of results (1-20, default 5)")
		c.Flags().Bool("json", false, "print results as JSON")
		rootCmd.AddCommand(c)
	}
	documentsCmd.Flags().Bool("json", false, "print documents as JSON")
	rootCmd.AddCommand(documentsCmd)
}

// limitFlag returns nil when --limit was not given, so the default applies.
func limitFlag(cmd *cobra.Command) *int {
	if !cmd.Flags().Changed("limit") {
		return nil
	}
	n, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return nil
	}
	return &n
}

var (
	titleText  = color.New(color.Bold).SprintFunc()
	sourceText = color.New(color.FgCyan).SprintFunc()
)

func printResults(cmd *cobra.Command, results []models.QueryResult) error {
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, results)
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "no results")
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(out, "%d. %s [%s]\n", i+1, titleText(orDash(r.Title)), orDash(r.Topic))
		fmt.Fprintf(out, "   %s  %s\n", sourceText(orDash(r.Filename)), r.SourceURL)
		fmt.Fprintf(out, "   %s\n\n", preview(r.Content, 240))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func preview(s string, maxRunes int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes]) + "…"
}
