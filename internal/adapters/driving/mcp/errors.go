// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Techdex. It lets AI assistants search service documentation and validate
// equipment configurations.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingConfigurationService is returned when the configuration service is not provided.
var ErrMissingConfigurationService = errors.New("mcp: configuration service is required")
