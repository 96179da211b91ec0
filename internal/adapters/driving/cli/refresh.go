package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the search and catalog projections",
	Long: `Rebuilds the derived projections (catalog rule tables, search indexes)
from the content store and swaps them in atomically.

Run this after ingestion or catalog tooling has written to the content
store, or rely on the periodic background refresh of long-running
commands.`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := initServices(ctx); err != nil {
		return err
	}

	// initServices already performed a refresh; doing another here keeps
	// the command meaningful when services were injected ahead of time.
	if err := projectionService.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	age, err := projectionService.Age()
	if err != nil {
		return err
	}
	cmd.Printf("Projections rebuilt (age %s).\n", age.Round(time.Millisecond))
	return nil
}
