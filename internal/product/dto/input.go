package dto

import "github.com/fekuna/goldsmith-catalog-service/internal/media"

// ProductFields carries the descriptive and price-relevant fields exactly as
// submitted. Numeric values stay raw so the use case decides what parses.
type ProductFields struct {
	Name              string
	ShortDescription  string
	ProductID         string
	Karat             string
	Weight            string
	MakingCostPercent string
	WastagePercent    string
}

type CreateProductInput struct {
	ProductFields
	Image *media.File // Optional
}

type UpdateProductInput struct {
	ID string
	ProductFields
	Image *media.File // Optional, replaces the stored image when set
}
