package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

var (
	searchLimit        int
	searchJSON         bool
	searchManufacturer string
	searchProduct      string
	searchDocType      string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search service documentation",
	Long: `Searches service manuals, parts catalogs, and bulletins.

The query can be free text, an error code, or a part number. Matching
combines token overlap, typo-tolerant fuzzy similarity, exact code
lookup, and (when an embedding provider is configured) semantic
similarity; a result's score is the strongest of those signals.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default 50)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchManufacturer, "manufacturer", "", "restrict to one manufacturer id")
	searchCmd.Flags().StringVar(&searchProduct, "product", "", "restrict to documents linked to one product id")
	searchCmd.Flags().StringVar(&searchDocType, "type", "", "restrict to one document type (service_manual, parts_catalog, bulletin, user_guide)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := initServices(ctx); err != nil {
		return err
	}

	filters := domain.SearchFilters{
		ManufacturerID: searchManufacturer,
		ProductID:      searchProduct,
		DocumentType:   domain.DocumentType(searchDocType),
	}

	matches, err := searchService.Search(ctx, args[0], filters, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, matches)
	}
	return outputSearchTable(cmd, matches)
}

func outputSearchJSON(cmd *cobra.Command, matches []domain.SearchMatch) error {
	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, matches []domain.SearchMatch) error {
	if len(matches) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range matches {
		title := matches[i].DocumentTitle
		if title == "" {
			title = matches[i].DocumentID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, matches[i].Score)
		if matches[i].Snippet != "" {
			cmd.Printf("      %s\n", matches[i].Snippet)
		}
		cmd.Println()
	}

	return nil
}
