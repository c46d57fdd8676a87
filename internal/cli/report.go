package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/retentionwatch/internal/wire"
)

// ReportCmd creates the report command
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <roster.csv>",
		Short: "Score a roster and print the attrition-risk summary",
		Long: `Report loads a roster CSV, assesses every scholar, and prints the
aggregate summary to the console. Nothing is persisted; use ingest to
record a run in history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildReportRequest(cmd, args[0])
			if err != nil {
				return err
			}

			jsonDest, _ := cmd.Flags().GetString("json")
			if jsonDest == "" {
				return wire.ReportAdapter().RenderText(cmd.Context(), req)
			}
			if jsonDest == "-" {
				return wire.ReportAdapter().RenderJSON(cmd.Context(), req)
			}

			f, err := os.Create(jsonDest)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", jsonDest, err)
			}
			defer f.Close()
			if err := wire.ReportAdapterWithOutput(f).RenderJSON(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote summary to %s\n", jsonDest)
			return nil
		},
	}

	addScoringFlags(cmd)
	cmd.Flags().String("json", "", "Write the summary as JSON to a file ('-' or no value for stdout)")
	cmd.Flags().Lookup("json").NoOptDefVal = "-"

	return cmd
}
