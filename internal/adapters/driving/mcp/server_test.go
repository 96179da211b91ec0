package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		ports := &Ports{Configuration: &mockConfigurationService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("nil configuration service returns error", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingConfigurationService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Search:        &mockSearchService{},
			Configuration: &mockConfigurationService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("search and configuration are required", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingSearchService)

		ports.Search = &mockSearchService{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingConfigurationService)
	})

	t.Run("projection and catalog are optional", func(t *testing.T) {
		ports := &Ports{
			Search:        &mockSearchService{},
			Configuration: &mockConfigurationService{},
		}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Search:        &mockSearchService{},
			Configuration: &mockConfigurationService{},
			Projection:    &mockProjectionService{},
			Catalog:       &mockCatalogStore{},
		}
		assert.NoError(t, ports.Validate())
	})
}
