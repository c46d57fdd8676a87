package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/retentionwatch/internal/wire"
)

// InitCmd creates the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the run store schema",
		Long: `Init connects to the configured run store and ensures its schema
exists. Running it against an initialized store is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := wire.RunStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.EnsureSchema(cmd.Context()); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Run store initialized")
			return nil
		},
	}
}
