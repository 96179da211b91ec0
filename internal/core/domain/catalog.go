package domain

import "time"

// Manufacturer is immutable reference data for an equipment maker.
// Created by admin/ingestion tooling, rarely updated.
type Manufacturer struct {
	// ID is the unique identifier for the manufacturer.
	ID string

	// Name is the display name, unique across manufacturers.
	Name string

	// CreatedAt is when the manufacturer was first registered.
	CreatedAt time.Time
}

// ProductType discriminates the catalog hierarchy level of a Product.
type ProductType string

const (
	// ProductTypeSeries is a product family (no parent).
	ProductTypeSeries ProductType = "series"

	// ProductTypeModel is a concrete machine within a series.
	ProductTypeModel ProductType = "model"

	// ProductTypeOption is an accessory that attaches to a model.
	ProductTypeOption ProductType = "option"
)

// Valid reports whether the product type is one of the known values.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeSeries, ProductTypeModel, ProductTypeOption:
		return true
	}
	return false
}

// Product is a node in the catalog hierarchy: series, model, or option.
// The hierarchy is used for catalog navigation and is independent of the
// compatibility rule graph.
type Product struct {
	// ID is the unique identifier for the product.
	ID string

	// ManufacturerID links to the owning Manufacturer.
	ManufacturerID string

	// Name is the human-readable product name.
	Name string

	// Type is the hierarchy level: series, model, or option.
	Type ProductType

	// ParentID points up the hierarchy: series has none,
	// model points to its series, option points to its model.
	ParentID *string

	// Active marks the product as orderable/serviceable.
	Active bool

	// CreatedAt is when the product was first registered.
	CreatedAt time.Time

	// UpdatedAt is when the product was last updated.
	UpdatedAt time.Time
}

// IsModel reports whether the product is a configurable base model.
func (p *Product) IsModel() bool {
	return p.Type == ProductTypeModel
}

// IsOption reports whether the product is an attachable accessory.
func (p *Product) IsOption() bool {
	return p.Type == ProductTypeOption
}
