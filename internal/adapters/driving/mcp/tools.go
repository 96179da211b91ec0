package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query          string `json:"query" jsonschema:"the search query: free text, an error code, or a part number"`
	ManufacturerID string `json:"manufacturer_id,omitempty" jsonschema:"restrict results to one manufacturer"`
	ProductID      string `json:"product_id,omitempty" jsonschema:"restrict results to documents linked to one product"`
	DocumentType   string `json:"document_type,omitempty" jsonschema:"restrict results to one document type (service_manual, parts_catalog, bulletin, user_guide)"`
	Limit          int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 50)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ChunkID       string  `json:"chunk_id"`
	DocumentID    string  `json:"document_id"`
	DocumentTitle string  `json:"document_title"`
	Score         float64 `json:"score"`
	Snippet       string  `json:"snippet,omitempty"`
}

// ValidateInput is the input schema for the validate_configuration tool.
type ValidateInput struct {
	BaseProductID     string   `json:"base_product_id" jsonschema:"the base model to validate against"`
	SelectedOptionIDs []string `json:"selected_option_ids" jsonschema:"the option product ids in the candidate configuration"`
}

// ValidateOutput is the output schema for the validate_configuration tool.
type ValidateOutput struct {
	IsValid            bool              `json:"is_valid"`
	Violations         []ViolationOutput `json:"violations"`
	SuggestedAdditions []string          `json:"suggested_additions,omitempty"`
	SuggestedRemovals  []string          `json:"suggested_removals,omitempty"`
}

// ViolationOutput represents one rule finding.
type ViolationOutput struct {
	Kind          string `json:"kind"`
	OptionID      string `json:"option_id,omitempty"`
	OtherOptionID string `json:"other_option_id,omitempty"`
	GroupID       string `json:"group_id,omitempty"`
	Message       string `json:"message"`
}

// OptionsInput is the input schema for the get_available_options tool.
type OptionsInput struct {
	ModelID string `json:"model_id" jsonschema:"the base model to list options for"`
}

// OptionsOutput is the output schema for the get_available_options tool.
type OptionsOutput struct {
	Options []OptionInfoOutput `json:"options"`
	Count   int                `json:"count"`
}

// OptionInfoOutput describes one option relative to the base model.
type OptionInfoOutput struct {
	OptionID      string   `json:"option_id"`
	Name          string   `json:"name"`
	Status        string   `json:"status"`
	Requires      []string `json:"requires,omitempty"`
	ConflictsWith []string `json:"conflicts_with,omitempty"`
	GroupIDs      []string `json:"group_ids,omitempty"`
	Priority      int      `json:"priority,omitempty"`
}

// RefreshInput is the input schema for the refresh_index tool.
type RefreshInput struct {
	Wait bool `json:"wait,omitempty" jsonschema:"rebuild synchronously instead of scheduling a background refresh"`
}

// RefreshOutput is the output schema for the refresh_index tool.
type RefreshOutput struct {
	Triggered  bool   `json:"triggered"`
	AgeSeconds *int64 `json:"age_seconds,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search service manuals, parts catalogs, and bulletins by text, error code, or part number",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_configuration",
		Description: "Validate a selection of options against a base model's compatibility rules",
	}, s.handleValidate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_available_options",
		Description: "List every option relevant to a base model with compatibility, dependencies, and group info",
	}, s.handleOptions)

	if s.ports.Projection != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "refresh_index",
			Description: "Rebuild the search and catalog projections from the content store",
		}, s.handleRefresh)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	filters := domain.SearchFilters{
		ManufacturerID: input.ManufacturerID,
		ProductID:      input.ProductID,
		DocumentType:   domain.DocumentType(input.DocumentType),
	}

	matches, err := s.ports.Search.Search(ctx, input.Query, filters, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(matches)),
		Count:   len(matches),
	}
	for i := range matches {
		output.Results[i] = SearchResultOutput{
			ChunkID:       matches[i].ChunkID,
			DocumentID:    matches[i].DocumentID,
			DocumentTitle: matches[i].DocumentTitle,
			Score:         matches[i].Score,
			Snippet:       matches[i].Snippet,
		}
	}

	return nil, output, nil
}

// handleValidate handles the validate_configuration tool invocation.
func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	result, err := s.ports.Configuration.ValidateConfiguration(ctx, input.BaseProductID, input.SelectedOptionIDs)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownProduct) {
			return nil, ValidateOutput{}, fmt.Errorf("unknown product: %w", err)
		}
		return nil, ValidateOutput{}, err
	}

	output := ValidateOutput{
		IsValid:            result.IsValid,
		Violations:         make([]ViolationOutput, len(result.Violations)),
		SuggestedAdditions: result.SuggestedAdditions,
		SuggestedRemovals:  result.SuggestedRemovals,
	}
	for i, v := range result.Violations {
		output.Violations[i] = ViolationOutput{
			Kind:          string(v.Kind),
			OptionID:      v.OptionID,
			OtherOptionID: v.OtherOptionID,
			GroupID:       v.GroupID,
			Message:       v.Message,
		}
	}

	return nil, output, nil
}

// handleOptions handles the get_available_options tool invocation.
func (s *Server) handleOptions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OptionsInput,
) (*mcp.CallToolResult, OptionsOutput, error) {
	options, err := s.ports.Configuration.GetAvailableOptions(ctx, input.ModelID)
	if err != nil {
		return nil, OptionsOutput{}, err
	}

	output := OptionsOutput{
		Options: make([]OptionInfoOutput, len(options)),
		Count:   len(options),
	}
	for i := range options {
		output.Options[i] = OptionInfoOutput{
			OptionID:      options[i].Option.ID,
			Name:          options[i].Option.Name,
			Status:        string(options[i].Status),
			Requires:      options[i].Requires,
			ConflictsWith: options[i].ConflictsWith,
			GroupIDs:      options[i].GroupIDs,
			Priority:      options[i].Priority,
		}
	}

	return nil, output, nil
}

// handleRefresh handles the refresh_index tool invocation.
func (s *Server) handleRefresh(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RefreshInput,
) (*mcp.CallToolResult, RefreshOutput, error) {
	if input.Wait {
		if err := s.ports.Projection.Refresh(ctx); err != nil {
			return nil, RefreshOutput{}, err
		}
	} else {
		s.ports.Projection.Trigger()
	}

	output := RefreshOutput{Triggered: true}
	if age, err := s.ports.Projection.Age(); err == nil {
		seconds := int64(age.Seconds())
		output.AgeSeconds = &seconds
	}

	return nil, output, nil
}
