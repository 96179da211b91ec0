package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Search == nil {
		ports.Search = &mockSearchService{}
	}
	if ports.Configuration == nil {
		ports.Configuration = &mockConfigurationService{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			matches: []domain.SearchMatch{
				{
					ChunkID:       "ch-1",
					DocumentID:    "doc-1",
					DocumentTitle: "C300 Service Manual",
					Score:         0.95,
					Snippet:       "SC542: fuser thermistor fault.",
				},
			},
		}

		server := newTestServer(t, &Ports{Search: mockSearch})

		input := SearchInput{Query: "sc542", Limit: 10}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "ch-1", output.Results[0].ChunkID)
		assert.Equal(t, "doc-1", output.Results[0].DocumentID)
		assert.Equal(t, "C300 Service Manual", output.Results[0].DocumentTitle)
		assert.Equal(t, 0.95, output.Results[0].Score)
		assert.Equal(t, "SC542: fuser thermistor fault.", output.Results[0].Snippet)
	})

	t.Run("passes filters through", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server := newTestServer(t, &Ports{Search: mockSearch})

		input := SearchInput{
			Query:          "paper jam",
			ManufacturerID: "mfr-1",
			ProductID:      "mdl-1",
			DocumentType:   "bulletin",
			Limit:          5,
		}
		_, _, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "paper jam", mockSearch.lastQuery)
		assert.Equal(t, "mfr-1", mockSearch.lastFilters.ManufacturerID)
		assert.Equal(t, "mdl-1", mockSearch.lastFilters.ProductID)
		assert.Equal(t, domain.DocumentTypeBulletin, mockSearch.lastFilters.DocumentType)
		assert.Equal(t, 5, mockSearch.lastLimit)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{err: errors.New("search failed")}
		server := newTestServer(t, &Ports{Search: mockSearch})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("maps a valid result", func(t *testing.T) {
		mockConfig := &mockConfigurationService{
			result: &domain.ValidationResult{IsValid: true},
		}
		server := newTestServer(t, &Ports{Configuration: mockConfig})

		input := ValidateInput{BaseProductID: "mdl-1", SelectedOptionIDs: []string{"opt-a"}}
		_, output, err := server.handleValidate(ctx, nil, input)

		require.NoError(t, err)
		assert.True(t, output.IsValid)
		assert.Empty(t, output.Violations)
	})

	t.Run("maps violations and suggestions", func(t *testing.T) {
		mockConfig := &mockConfigurationService{
			result: &domain.ValidationResult{
				IsValid: false,
				Violations: []domain.Violation{
					{
						Kind:          domain.ViolationMissingDependency,
						OptionID:      "opt-finisher",
						OtherOptionID: "opt-bridge",
						Message:       "opt-finisher requires opt-bridge",
					},
				},
				SuggestedAdditions: []string{"opt-bridge"},
			},
		}
		server := newTestServer(t, &Ports{Configuration: mockConfig})

		input := ValidateInput{BaseProductID: "mdl-1", SelectedOptionIDs: []string{"opt-finisher"}}
		_, output, err := server.handleValidate(ctx, nil, input)

		require.NoError(t, err)
		assert.False(t, output.IsValid)
		require.Len(t, output.Violations, 1)
		assert.Equal(t, "missing_dependency", output.Violations[0].Kind)
		assert.Equal(t, "opt-finisher", output.Violations[0].OptionID)
		assert.Equal(t, "opt-bridge", output.Violations[0].OtherOptionID)
		assert.Equal(t, []string{"opt-bridge"}, output.SuggestedAdditions)
	})

	t.Run("unknown product surfaces as error", func(t *testing.T) {
		mockConfig := &mockConfigurationService{err: domain.ErrUnknownProduct}
		server := newTestServer(t, &Ports{Configuration: mockConfig})

		_, _, err := server.handleValidate(ctx, nil, ValidateInput{BaseProductID: "nope"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownProduct)
	})
}

func TestServer_handleOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("maps option info", func(t *testing.T) {
		mockConfig := &mockConfigurationService{
			options: []domain.OptionInfo{
				{
					Option:        domain.Product{ID: "opt-a", Name: "Bridge Unit A"},
					Status:        domain.CompatibilityCompatible,
					Requires:      []string{"opt-b"},
					ConflictsWith: []string{"opt-c"},
					GroupIDs:      []string{"grp-1"},
					Priority:      2,
				},
			},
		}
		server := newTestServer(t, &Ports{Configuration: mockConfig})

		_, output, err := server.handleOptions(ctx, nil, OptionsInput{ModelID: "mdl-1"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Options, 1)
		assert.Equal(t, "opt-a", output.Options[0].OptionID)
		assert.Equal(t, "Bridge Unit A", output.Options[0].Name)
		assert.Equal(t, "compatible", output.Options[0].Status)
		assert.Equal(t, []string{"opt-b"}, output.Options[0].Requires)
		assert.Equal(t, []string{"opt-c"}, output.Options[0].ConflictsWith)
		assert.Equal(t, 2, output.Options[0].Priority)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mockConfig := &mockConfigurationService{err: domain.ErrCacheUnavailable}
		server := newTestServer(t, &Ports{Configuration: mockConfig})

		_, _, err := server.handleOptions(ctx, nil, OptionsInput{ModelID: "mdl-1"})

		assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
	})
}

func TestServer_handleRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("trigger schedules background refresh", func(t *testing.T) {
		mockProjection := &mockProjectionService{age: 30 * time.Second}
		server := newTestServer(t, &Ports{Projection: mockProjection})

		_, output, err := server.handleRefresh(ctx, nil, RefreshInput{})

		require.NoError(t, err)
		assert.True(t, output.Triggered)
		assert.True(t, mockProjection.triggered)
		assert.False(t, mockProjection.refreshed)
		require.NotNil(t, output.AgeSeconds)
		assert.Equal(t, int64(30), *output.AgeSeconds)
	})

	t.Run("wait refreshes synchronously", func(t *testing.T) {
		mockProjection := &mockProjectionService{}
		server := newTestServer(t, &Ports{Projection: mockProjection})

		_, output, err := server.handleRefresh(ctx, nil, RefreshInput{Wait: true})

		require.NoError(t, err)
		assert.True(t, output.Triggered)
		assert.True(t, mockProjection.refreshed)
	})

	t.Run("refresh failure surfaces", func(t *testing.T) {
		mockProjection := &mockProjectionService{refreshErr: errors.New("store gone")}
		server := newTestServer(t, &Ports{Projection: mockProjection})

		_, _, err := server.handleRefresh(ctx, nil, RefreshInput{Wait: true})

		require.Error(t, err)
	})

	t.Run("age unavailable omits age", func(t *testing.T) {
		mockProjection := &mockProjectionService{ageErr: domain.ErrCacheUnavailable}
		server := newTestServer(t, &Ports{Projection: mockProjection})

		_, output, err := server.handleRefresh(ctx, nil, RefreshInput{})

		require.NoError(t, err)
		assert.Nil(t, output.AgeSeconds)
	})
}
