package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/goldsmith-catalog-service/internal/apperror"
	"github.com/fekuna/goldsmith-catalog-service/internal/goldrate/dto"
	"github.com/fekuna/goldsmith-catalog-service/internal/model"
	"github.com/fekuna/goldsmith-catalog-service/pkg/cache"
	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu     sync.Mutex
	rates  map[model.Karat]model.GoldRate
	finds  int
	onFind func()
}

func newMemRepo() *memRepo {
	return &memRepo{rates: map[model.Karat]model.GoldRate{}}
}

func (r *memRepo) FindAll(ctx context.Context) ([]model.GoldRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.GoldRate{}
	for _, k := range model.Karats {
		if rate, ok := r.rates[k]; ok {
			out = append(out, rate)
		}
	}
	return out, nil
}

func (r *memRepo) FindByKarat(ctx context.Context, karat model.Karat) (*model.GoldRate, error) {
	r.mu.Lock()
	r.finds++
	rate, ok := r.rates[karat]
	hook := r.onFind
	r.onFind = nil
	r.mu.Unlock()

	// hook runs after the read, simulating a write racing the cache fill.
	if hook != nil {
		hook()
	}
	if !ok {
		return nil, nil
	}
	return &rate, nil
}

func (r *memRepo) findCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finds
}

func (r *memRepo) Upsert(ctx context.Context, karat model.Karat, ratePerGram float64) (*model.GoldRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	rate, ok := r.rates[karat]
	if !ok {
		rate = model.GoldRate{Karat: karat, CreatedAt: now}
	}
	rate.RatePerGram = ratePerGram
	rate.RatePerSovereign = ratePerGram * model.GramsPerSovereign
	rate.UpdatedAt = now
	r.rates[karat] = rate
	return &rate, nil
}

func (r *memRepo) Delete(ctx context.Context, karat model.Karat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rates[karat]; !ok {
		return apperror.NotFound("Gold rate not found")
	}
	delete(r.rates, karat)
	return nil
}

func newTestUseCase(repo *memRepo) *goldRateUseCase {
	return NewGoldRateUseCase(repo, nil, time.Minute, nil, logger.NewNop()).(*goldRateUseCase)
}

func TestSetRateOverwritesExistingKarat(t *testing.T) {
	repo := newMemRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	first, err := uc.SetRate(ctx, &dto.SetRateInput{Karat: "22k", RatePerGram: 6000})
	require.NoError(t, err)
	assert.Equal(t, 48000.0, first.RatePerSovereign)

	second, err := uc.SetRate(ctx, &dto.SetRateInput{Karat: "22k", RatePerGram: 6100.5})
	require.NoError(t, err)
	assert.Equal(t, 6100.5, second.RatePerGram)
	assert.Equal(t, 6100.5*8, second.RatePerSovereign)

	rates, err := uc.ListRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, model.Karat22, rates[0].Karat)
}

func TestSetRateValidation(t *testing.T) {
	uc := newTestUseCase(newMemRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input dto.SetRateInput
	}{
		{"unknown karat", dto.SetRateInput{Karat: "14k", RatePerGram: 5000}},
		{"empty karat", dto.SetRateInput{RatePerGram: 5000}},
		{"zero rate", dto.SetRateInput{Karat: "24k"}},
		{"negative rate", dto.SetRateInput{Karat: "24k", RatePerGram: -1}},
		{"nan rate", dto.SetRateInput{Karat: "24k", RatePerGram: math.NaN()}},
		{"sovereign overflows", dto.SetRateInput{Karat: "22k", RatePerGram: 1e308}},
		{"above cap", dto.SetRateInput{Karat: "22k", RatePerGram: model.MaxRatePerGram * 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.SetRate(ctx, &tt.input)
			assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
		})
	}
}

func TestGetRateNotFound(t *testing.T) {
	uc := newTestUseCase(newMemRepo())

	_, err := uc.GetRate(context.Background(), model.Karat18)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeleteRate(t *testing.T) {
	repo := newMemRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	_, err := uc.SetRate(ctx, &dto.SetRateInput{Karat: "18k", RatePerGram: 4500})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteRate(ctx, model.Karat18))
	_, err = uc.GetRate(ctx, model.Karat18)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	err = uc.DeleteRate(ctx, model.Karat18)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestUnreachableCacheIsBypassed(t *testing.T) {
	repo := newMemRepo()
	down := &cache.RedisClient{Client: redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})}
	t.Cleanup(func() { down.Close() })

	uc := NewGoldRateUseCase(repo, down, time.Minute, nil, logger.NewNop())
	ctx := context.Background()

	_, err := uc.SetRate(ctx, &dto.SetRateInput{Karat: "24k", RatePerGram: 7000})
	require.NoError(t, err)

	rate, err := uc.GetRate(ctx, model.Karat24)
	require.NoError(t, err)
	assert.Equal(t, 7000.0, rate.RatePerGram)

	require.NoError(t, uc.DeleteRate(ctx, model.Karat24))
}

func newCachedUseCase(t *testing.T, repo *memRepo) (*goldRateUseCase, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := &cache.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { client.Close() })
	return NewGoldRateUseCase(repo, client, time.Minute, nil, logger.NewNop()).(*goldRateUseCase), mr
}

func TestGetRateServesFromCache(t *testing.T) {
	repo := newMemRepo()
	uc, mr := newCachedUseCase(t, repo)
	ctx := context.Background()

	_, err := uc.SetRate(ctx, &dto.SetRateInput{Karat: "22k", RatePerGram: 6000})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cacheKey(model.Karat22)), "writes must not populate the cache")

	for i := 0; i < 3; i++ {
		rate, err := uc.GetRate(ctx, model.Karat22)
		require.NoError(t, err)
		assert.Equal(t, 6000.0, rate.RatePerGram)
		assert.Equal(t, 48000.0, rate.RatePerSovereign)
	}
	assert.Equal(t, 1, repo.findCount())
	assert.True(t, mr.Exists(cacheKey(model.Karat22)))
	assert.Equal(t, time.Minute, mr.TTL(cacheKey(model.Karat22)))
}

func TestSetRateEvictsCachedRate(t *testing.T) {
	repo := newMemRepo()
	uc, mr := newCachedUseCase(t, repo)
	ctx := context.Background()

	_, err := uc.SetRate(ctx, &dto.SetRateInput{Karat: "24k", RatePerGram: 7000})
	require.NoError(t, err)
	_, err = uc.GetRate(ctx, model.Karat24)
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey(model.Karat24)))

	_, err = uc.SetRate(ctx, &dto.SetRateInput{Karat: "24k", RatePerGram: 7100})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cacheKey(model.Karat24)))

	rate, err := uc.GetRate(ctx, model.Karat24)
	require.NoError(t, err)
	assert.Equal(t, 7100.0, rate.RatePerGram)
}

func TestDeleteRateEvictsCachedRate(t *testing.T) {
	repo := newMemRepo()
	uc, mr := newCachedUseCase(t, repo)
	ctx := context.Background()

	_, err := uc.SetRate(ctx, &dto.SetRateInput{Karat: "18k", RatePerGram: 4500})
	require.NoError(t, err)
	_, err = uc.GetRate(ctx, model.Karat18)
	require.NoError(t, err)

	require.NoError(t, uc.DeleteRate(ctx, model.Karat18))
	assert.False(t, mr.Exists(cacheKey(model.Karat18)))

	_, err = uc.GetRate(ctx, model.Karat18)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestWriteDuringLoadDoesNotCacheStaleRate(t *testing.T) {
	tests := []struct {
		name  string
		write func(uc *goldRateUseCase) error
		check func(t *testing.T, uc *goldRateUseCase)
	}{
		{
			name: "update",
			write: func(uc *goldRateUseCase) error {
				_, err := uc.SetRate(context.Background(), &dto.SetRateInput{Karat: "22k", RatePerGram: 6100})
				return err
			},
			check: func(t *testing.T, uc *goldRateUseCase) {
				rate, err := uc.GetRate(context.Background(), model.Karat22)
				require.NoError(t, err)
				assert.Equal(t, 6100.0, rate.RatePerGram)
			},
		},
		{
			name: "delete",
			write: func(uc *goldRateUseCase) error {
				return uc.DeleteRate(context.Background(), model.Karat22)
			},
			check: func(t *testing.T, uc *goldRateUseCase) {
				_, err := uc.GetRate(context.Background(), model.Karat22)
				assert.True(t, errors.Is(err, apperror.ErrNotFound))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			uc, mr := newCachedUseCase(t, repo)
			ctx := context.Background()

			_, err := uc.SetRate(ctx, &dto.SetRateInput{Karat: "22k", RatePerGram: 6000})
			require.NoError(t, err)

			var writeErr error
			repo.onFind = func() { writeErr = tt.write(uc) }

			rate, err := uc.GetRate(ctx, model.Karat22)
			require.NoError(t, err)
			require.NoError(t, writeErr)
			assert.Equal(t, 6000.0, rate.RatePerGram)
			assert.False(t, mr.Exists(cacheKey(model.Karat22)), "stale rate must not be cached")

			tt.check(t, uc)
		})
	}
}
