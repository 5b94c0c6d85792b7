package goldrate

import (
	"context"

	"github.com/fekuna/goldsmith-catalog-service/internal/goldrate/dto"
	"github.com/fekuna/goldsmith-catalog-service/internal/model"
)

type UseCase interface {
	ListRates(ctx context.Context) ([]model.GoldRate, error)
	GetRate(ctx context.Context, karat model.Karat) (*model.GoldRate, error)
	SetRate(ctx context.Context, input *dto.SetRateInput) (*model.GoldRate, error)
	DeleteRate(ctx context.Context, karat model.Karat) error
}
