package product

import (
	"context"

	"github.com/fekuna/goldsmith-catalog-service/internal/model"
	"github.com/fekuna/goldsmith-catalog-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.PricedProduct, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.PricedProduct, int, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]model.PricedProduct, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// RateProvider resolves the current gold rate for a karat. It reports a
// missing rate with apperror.ErrNotFound.
type RateProvider interface {
	GetRate(ctx context.Context, karat model.Karat) (*model.GoldRate, error)
}
