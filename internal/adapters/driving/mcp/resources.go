package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Techdex resources.
	uriScheme = "techdex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing manufacturers.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "manufacturers",
		Name:        "manufacturers",
		Description: "List of all manufacturers in the catalog",
		MIMEType:    "application/json",
	}, s.handleManufacturersResource)

	// Template for a manufacturer's products.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "manufacturers/{manufacturerId}/products",
		Name:        "manufacturer-products",
		Description: "Series, models, and options for a specific manufacturer",
		MIMEType:    "application/json",
	}, s.handleProductsResource)
}

// handleManufacturersResource returns a list of all manufacturers.
func (s *Server) handleManufacturersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	manufacturers, err := s.ports.Catalog.ListManufacturers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing manufacturers: %w", err)
	}

	type manufacturerInfo struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	infos := make([]manufacturerInfo, len(manufacturers))
	for i, m := range manufacturers {
		infos[i] = manufacturerInfo{ID: m.ID, Name: m.Name}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling manufacturers: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleProductsResource returns the products of a specific manufacturer.
func (s *Server) handleProductsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract manufacturerId from URI: techdex://manufacturers/{manufacturerId}/products
	manufacturerID := extractManufacturerID(req.Params.URI)
	if manufacturerID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	products, err := s.ports.Catalog.ListProducts(ctx, manufacturerID)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	type productInfo struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		ParentID string `json:"parent_id,omitempty"`
		Active   bool   `json:"active"`
	}

	infos := make([]productInfo, len(products))
	for i := range products {
		infos[i] = productInfo{
			ID:     products[i].ID,
			Name:   products[i].Name,
			Type:   string(products[i].Type),
			Active: products[i].Active,
		}
		if products[i].ParentID != nil {
			infos[i].ParentID = *products[i].ParentID
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling products: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractManufacturerID extracts the manufacturer ID from a URI like
// techdex://manufacturers/{manufacturerId}/products.
func extractManufacturerID(uri string) string {
	const prefix = uriScheme + "manufacturers/"
	const suffix = "/products"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
