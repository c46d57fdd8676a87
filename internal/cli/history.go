package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/retentionwatch/internal/models"
	"github.com/example/retentionwatch/internal/ports/primary"
	"github.com/example/retentionwatch/internal/wire"
)

// HistoryCmd creates the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List persisted runs or inspect one run's snapshots",
		Long: `History lists recent ingested runs, newest first. With --run it shows
one run's header and per-scholar snapshots, optionally narrowed by
--tier and --cohort.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.HistoryAdapter(cmd.Context())
			if err != nil {
				return err
			}

			runID, _ := cmd.Flags().GetInt64("run")
			if runID > 0 {
				tier, _ := cmd.Flags().GetString("tier")
				cohort, _ := cmd.Flags().GetString("cohort")
				return adapter.ShowRun(cmd.Context(), primary.SnapshotQuery{
					RunID:  runID,
					Tier:   models.Tier(tier),
					Cohort: cohort,
				})
			}

			limit, _ := cmd.Flags().GetInt("limit")
			return adapter.ListRuns(cmd.Context(), limit)
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	cmd.Flags().Int64("run", 0, "Show snapshots for this run ID")
	cmd.Flags().String("tier", "", "With --run, only show snapshots in this tier (high, medium, low)")
	cmd.Flags().String("cohort", "", "With --run, only show snapshots from this cohort")

	return cmd
}
