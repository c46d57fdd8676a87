package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/retentionwatch/internal/cli"
	"github.com/example/retentionwatch/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "retentionwatch",
		Short:   "Retention Watch - scholar attrition-risk reporting",
		Version: version.String(),
		Long: `Retention Watch scores fellowship scholars for attrition risk from
roster CSV exports. It prints one-off summaries, persists scored runs
to a store, and lists run history for trend review.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.IngestCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
