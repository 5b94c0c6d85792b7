package goldrate

import (
	"context"

	"github.com/fekuna/goldsmith-catalog-service/internal/model"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.GoldRate, error)
	// FindByKarat returns nil, nil when no rate is stored for karat.
	FindByKarat(ctx context.Context, karat model.Karat) (*model.GoldRate, error)
	// Upsert creates or overwrites the single row for karat atomically.
	Upsert(ctx context.Context, karat model.Karat, ratePerGram float64) (*model.GoldRate, error)
	Delete(ctx context.Context, karat model.Karat) error
}
