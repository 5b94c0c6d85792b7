package product

import (
	"context"

	"github.com/fekuna/goldsmith-catalog-service/internal/model"
	"github.com/fekuna/goldsmith-catalog-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	// FindByID returns nil, nil when the product does not exist.
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	// Update overwrites every column of an existing product.
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
}
