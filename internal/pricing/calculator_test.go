package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/fekuna/goldsmith-catalog-service/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeReferenceExample(t *testing.T) {
	b, err := Compute(8.5, 6000, 2.5, 2.5)
	require.NoError(t, err)

	assert.Equal(t, 51000.0, b.BasePrice)
	assert.Equal(t, 1275.0, b.MakingCost)
	assert.Equal(t, 1275.0, b.WastageCost)
	assert.Equal(t, 53550.0, b.Total)
}

func TestComputeRounding(t *testing.T) {
	tests := []struct {
		name                               string
		weight, rate, making, wastage      float64
		wantMaking, wantWastage, wantTotal float64
	}{
		{"no surcharges", 2, 7250.25, 0, 0, 0, 0, 14501},
		{"half rounds away from zero", 1, 1, 50, 0, 1, 0, 2},
		{"surcharges rounded independently", 3.3, 6123.45, 12.5, 3.75, 2526, 758, 23491},
		{"fractional grams", 0.35, 9000, 10, 5, 315, 158, 3623},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Compute(tt.weight, tt.rate, tt.making, tt.wastage)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMaking, b.MakingCost)
			assert.Equal(t, tt.wantWastage, b.WastageCost)
			assert.Equal(t, tt.wantTotal, b.Total)
		})
	}
}

func TestComputeTotalNeverBelowBase(t *testing.T) {
	weights := []float64{0.01, 1, 4.75, 12.3, 250}
	rates := []float64{1, 5999.99, 6000, 8345.67}
	pcts := []float64{0, 0.5, 2.5, 18, 100}

	for _, w := range weights {
		for _, r := range rates {
			for _, m := range pcts {
				for _, ws := range pcts {
					first, err := Compute(w, r, m, ws)
					require.NoError(t, err)
					again, err := Compute(w, r, m, ws)
					require.NoError(t, err)

					assert.Equal(t, first, again)
					assert.GreaterOrEqual(t, first.Total, math.Floor(first.BasePrice))
				}
			}
		}
	}
}

func TestComputeRejectsNonFinite(t *testing.T) {
	bad := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, v := range bad {
		_, err := Compute(v, 6000, 1, 1)
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
		_, err = Compute(1, v, 1, 1)
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
		_, err = Compute(1, 6000, v, 1)
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
		_, err = Compute(1, 6000, 1, v)
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	}
}

func TestComputeRejectsOverflow(t *testing.T) {
	huge := math.MaxFloat64 / 10

	tests := []struct {
		name                          string
		weight, rate, making, wastage float64
	}{
		{"huge making percent", 8.5, 6000, huge, 2.5},
		{"huge wastage percent", 8.5, 6000, 2.5, huge},
		{"huge base", huge, huge, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Compute(tt.weight, tt.rate, tt.making, tt.wastage)
			assert.True(t, errors.Is(err, apperror.ErrInvalidInput), "got %v", err)
			assert.Equal(t, Breakdown{}, b)
		})
	}
}
