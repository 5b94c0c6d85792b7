// Package pricing derives a jewelry item's sale price from its gold content.
//
// Every read and write path prices through Compute so that a product shows
// the same figures whether it was just created, listed, fetched or updated.
package pricing

import (
	"fmt"
	"math"

	"github.com/fekuna/goldsmith-catalog-service/internal/apperror"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Breakdown is the result of pricing one item. MakingCost, WastageCost and
// Total are whole currency units; BasePrice is left unrounded.
type Breakdown struct {
	BasePrice   float64
	MakingCost  float64
	WastageCost float64
	Total       float64
}

// Compute prices weight grams of gold at ratePerGram with making and wastage
// surcharges given as percentages of the base price. Rounding is half away
// from zero. Non-finite inputs, and inputs whose price overflows a float64,
// are rejected with apperror.ErrInvalidInput.
func Compute(weight, ratePerGram, makingCostPercent, wastagePercent float64) (Breakdown, error) {
	for _, in := range []struct {
		name  string
		value float64
	}{
		{"weight", weight},
		{"ratePerGram", ratePerGram},
		{"makingCostPercent", makingCostPercent},
		{"wastagePercent", wastagePercent},
	} {
		if math.IsNaN(in.value) || math.IsInf(in.value, 0) {
			return Breakdown{}, apperror.InvalidInput(fmt.Sprintf("Invalid input: %s is not a number.", in.name))
		}
	}

	base := decimal.NewFromFloat(weight).Mul(decimal.NewFromFloat(ratePerGram))
	making := decimal.NewFromFloat(makingCostPercent).Div(hundred).Mul(base)
	wastage := decimal.NewFromFloat(wastagePercent).Div(hundred).Mul(base)
	total := base.Add(making).Add(wastage).Round(0)

	b := Breakdown{
		BasePrice:   base.InexactFloat64(),
		MakingCost:  making.Round(0).InexactFloat64(),
		WastageCost: wastage.Round(0).InexactFloat64(),
		Total:       total.InexactFloat64(),
	}
	for _, out := range []float64{b.BasePrice, b.MakingCost, b.WastageCost, b.Total} {
		if math.IsInf(out, 0) || math.IsNaN(out) {
			return Breakdown{}, apperror.InvalidInput("Invalid input: price is out of range.")
		}
	}
	return b, nil
}
