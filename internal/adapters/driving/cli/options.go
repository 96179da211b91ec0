package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

var optionsJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options [model-id]",
	Short: "List options relevant to a base model",
	Long: `Lists every option relevant to a base model with its declared
compatibility, dependencies, conflicts, and group memberships.

Options with no authored rule are shown as "unknown"; they do not block
validation.`,
	Args: cobra.ExactArgs(1),
	RunE: runOptions,
}

func init() {
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "output options as JSON")
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := initServices(ctx); err != nil {
		return err
	}

	options, err := configurationService.GetAvailableOptions(ctx, args[0])
	if err != nil {
		return fmt.Errorf("listing options failed: %w", err)
	}

	if optionsJSON {
		data, err := json.MarshalIndent(options, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal options: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputOptionsTable(cmd, options)
}

func outputOptionsTable(cmd *cobra.Command, options []domain.OptionInfo) error {
	if len(options) == 0 {
		cmd.Println("No options found.")
		return nil
	}

	for i := range options {
		o := &options[i]
		cmd.Printf("  %-24s %-12s %s\n", o.Option.ID, o.Status, o.Option.Name)
		if len(o.Requires) > 0 {
			cmd.Printf("      requires:  %s\n", strings.Join(o.Requires, ", "))
		}
		if len(o.ConflictsWith) > 0 {
			cmd.Printf("      conflicts: %s\n", strings.Join(o.ConflictsWith, ", "))
		}
		if len(o.GroupIDs) > 0 {
			cmd.Printf("      groups:    %s\n", strings.Join(o.GroupIDs, ", "))
		}
	}

	return nil
}
