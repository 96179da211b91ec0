package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate [model-id] [option-id...]",
	Short: "Validate an option configuration against a base model",
	Long: `Checks a candidate selection of options against a base model's
compatibility rules, mutual exclusions, option groups, and dependencies.

Rule violations are reported as findings, not errors; the command exits
non-zero only when the inputs are malformed (e.g. an unknown model).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := initServices(ctx); err != nil {
		return err
	}

	baseID, selected := args[0], args[1:]

	result, err := configurationService.ValidateConfiguration(ctx, baseID, selected)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownProduct) {
			return fmt.Errorf("unknown product: %w", err)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	if validateJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputValidationTable(cmd, result)
}

func outputValidationTable(cmd *cobra.Command, result *domain.ValidationResult) error {
	if result.IsValid {
		cmd.Println("Configuration is valid.")
		return nil
	}

	cmd.Printf("Configuration is NOT valid (%d violation(s)):\n\n", len(result.Violations))
	for _, v := range result.Violations {
		cmd.Printf("  [%s] %s\n", v.Kind, v.Message)
	}

	if len(result.SuggestedAdditions) > 0 {
		cmd.Printf("\nSuggested additions: %v\n", result.SuggestedAdditions)
	}
	if len(result.SuggestedRemovals) > 0 {
		cmd.Printf("Suggested removals:  %v\n", result.SuggestedRemovals)
	}

	return nil
}
