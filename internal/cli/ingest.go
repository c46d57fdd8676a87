package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/retentionwatch/internal/ports/primary"
	"github.com/example/retentionwatch/internal/wire"
)

// IngestCmd creates the ingest command
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <roster.csv>",
		Short: "Score a roster and persist the run to history",
		Long: `Ingest loads a roster CSV, assesses every scholar, and writes the run
header plus one snapshot per scholar to the run store in a single
transaction. The run then appears in history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := buildReportRequest(cmd, args[0])
			if err != nil {
				return err
			}

			label, _ := cmd.Flags().GetString("source-label")
			notes, _ := cmd.Flags().GetString("notes")

			adapter, err := wire.IngestAdapter(cmd.Context())
			if err != nil {
				return err
			}
			return adapter.Ingest(cmd.Context(), primary.IngestRequest{
				ReportRequest: report,
				SourceLabel:   label,
				Notes:         notes,
			})
		},
	}

	addScoringFlags(cmd)
	cmd.Flags().String("source-label", "", "Label for the data source (defaults to the CSV file name)")
	cmd.Flags().String("notes", "", "Free-text notes stored on the run")

	return cmd
}
