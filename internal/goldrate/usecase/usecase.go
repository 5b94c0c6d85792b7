package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/fekuna/goldsmith-catalog-service/internal/apperror"
	"github.com/fekuna/goldsmith-catalog-service/internal/goldrate"
	"github.com/fekuna/goldsmith-catalog-service/internal/goldrate/dto"
	"github.com/fekuna/goldsmith-catalog-service/internal/model"
	"github.com/fekuna/goldsmith-catalog-service/pkg/broker"
	"github.com/fekuna/goldsmith-catalog-service/pkg/cache"
	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	EventGoldRateUpdated = "GoldRateUpdated"
	EventGoldRateDeleted = "GoldRateDeleted"
)

// Publisher is satisfied by *broker.KafkaProducer.
type Publisher interface {
	Publish(ctx context.Context, key string, event broker.Event) error
}

type goldRateUseCase struct {
	repo      goldrate.Repository
	cache     *cache.RedisClient
	cacheTTL  time.Duration
	publisher Publisher
	logger    logger.ZapLogger
}

// NewGoldRateUseCase wires the rate service. cache and publisher may be nil.
func NewGoldRateUseCase(repo goldrate.Repository, cache *cache.RedisClient, cacheTTL time.Duration, publisher Publisher, log logger.ZapLogger) goldrate.UseCase {
	return &goldRateUseCase{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *goldRateUseCase) ListRates(ctx context.Context) ([]model.GoldRate, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *goldRateUseCase) GetRate(ctx context.Context, karat model.Karat) (*model.GoldRate, error) {
	if rate := uc.cachedRate(ctx, karat); rate != nil {
		return rate, nil
	}

	// The generation is read before the database so a write that lands
	// in between invalidates the fill below.
	gen, genOK := uc.cacheGeneration(ctx, karat)

	rate, err := uc.repo.FindByKarat(ctx, karat)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, apperror.NotFound("Gold rate not found")
	}

	if genOK {
		uc.fillRate(ctx, rate, gen)
	}
	return rate, nil
}

func (uc *goldRateUseCase) SetRate(ctx context.Context, input *dto.SetRateInput) (*model.GoldRate, error) {
	karat, err := model.ParseKarat(input.Karat)
	if err != nil {
		return nil, apperror.InvalidInput("Invalid karat value")
	}
	if math.IsNaN(input.RatePerGram) || math.IsInf(input.RatePerGram, 0) ||
		input.RatePerGram <= 0 || input.RatePerGram > model.MaxRatePerGram {
		return nil, apperror.InvalidInput("ratePerGram must be a number greater than 0 and at most 1000000000")
	}

	rate, err := uc.repo.Upsert(ctx, karat, input.RatePerGram)
	if err != nil {
		return nil, err
	}

	uc.evictRate(ctx, karat)
	go uc.publish(context.Background(), EventGoldRateUpdated, dto.RateEvent{
		Karat:       rate.Karat.String(),
		RatePerGram: rate.RatePerGram,
	})

	uc.logger.Info("gold rate updated",
		zap.String("karat", rate.Karat.String()),
		zap.Float64("rate_per_gram", rate.RatePerGram),
	)
	return rate, nil
}

func (uc *goldRateUseCase) DeleteRate(ctx context.Context, karat model.Karat) error {
	if err := uc.repo.Delete(ctx, karat); err != nil {
		return err
	}

	uc.evictRate(ctx, karat)
	go uc.publish(context.Background(), EventGoldRateDeleted, dto.RateEvent{Karat: karat.String()})
	return nil
}

var errStaleRate = errors.New("gold rate changed while loading")

func cacheKey(karat model.Karat) string {
	return "gold_rate:" + karat.String()
}

// genKey counts writes per karat. Fills only land while it is unchanged.
func genKey(karat model.Karat) string {
	return "gold_rate:gen:" + karat.String()
}

func (uc *goldRateUseCase) cachedRate(ctx context.Context, karat model.Karat) *model.GoldRate {
	if uc.cache == nil {
		return nil
	}
	val, err := uc.cache.Client.Get(ctx, cacheKey(karat)).Result()
	if err != nil {
		if err != redis.Nil {
			uc.logger.Warn("gold rate cache read failed", zap.String("karat", karat.String()), zap.Error(err))
		}
		return nil
	}
	var rate model.GoldRate
	if err := json.Unmarshal([]byte(val), &rate); err != nil {
		return nil
	}
	return &rate
}

func (uc *goldRateUseCase) cacheGeneration(ctx context.Context, karat model.Karat) (int64, bool) {
	if uc.cache == nil {
		return 0, false
	}
	gen, err := uc.cache.Client.Get(ctx, genKey(karat)).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		return 0, false
	}
	return gen, true
}

// fillRate stores rate only if no write has bumped the generation since gen
// was read.
func (uc *goldRateUseCase) fillRate(ctx context.Context, rate *model.GoldRate, gen int64) {
	data, err := json.Marshal(rate)
	if err != nil {
		return
	}
	err = uc.cache.Client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey(rate.Karat)).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if cur != gen {
			return errStaleRate
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, cacheKey(rate.Karat), data, uc.cacheTTL)
			return nil
		})
		return err
	}, genKey(rate.Karat))

	switch {
	case err == nil:
	case errors.Is(err, errStaleRate), errors.Is(err, redis.TxFailedErr):
		uc.logger.Debug("gold rate cache fill skipped", zap.String("karat", rate.Karat.String()))
	default:
		uc.logger.Warn("gold rate cache write failed", zap.String("karat", rate.Karat.String()), zap.Error(err))
	}
}

func (uc *goldRateUseCase) evictRate(ctx context.Context, karat model.Karat) {
	if uc.cache == nil {
		return
	}
	_, err := uc.cache.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(karat))
		pipe.Del(ctx, cacheKey(karat))
		return nil
	})
	if err != nil {
		uc.logger.Warn("gold rate cache evict failed", zap.String("karat", karat.String()), zap.Error(err))
	}
}

func (uc *goldRateUseCase) publish(ctx context.Context, eventType string, payload dto.RateEvent) {
	if uc.publisher == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	event := broker.Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   data,
		Timestamp: time.Now().UTC(),
	}
	if err := uc.publisher.Publish(ctx, payload.Karat, event); err != nil {
		uc.logger.Error("failed to publish gold rate event", zap.String("event_type", eventType), zap.Error(err))
	}
}
