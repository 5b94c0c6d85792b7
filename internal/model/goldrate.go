package model

import (
	"fmt"
	"strings"
	"time"
)

// Karat is the gold purity grade. Only the constants below are valid.
type Karat string

const (
	Karat24 Karat = "24k"
	Karat22 Karat = "22k"
	Karat18 Karat = "18k"
)

// Karats lists every supported purity, purest first.
var Karats = []Karat{Karat24, Karat22, Karat18}

// GramsPerSovereign converts a per-gram rate into the per-sovereign (poun) rate.
const GramsPerSovereign = 8.0

// MaxRatePerGram bounds accepted rates so derived prices stay finite.
const MaxRatePerGram = 1e9

func ParseKarat(s string) (Karat, error) {
	k := Karat(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("invalid karat %q", s)
	}
	return k, nil
}

func (k Karat) Valid() bool {
	switch k {
	case Karat24, Karat22, Karat18:
		return true
	}
	return false
}

func (k Karat) String() string {
	return string(k)
}

type GoldRate struct {
	Karat       Karat   `db:"karat" json:"karat"`
	RatePerGram float64 `db:"rate_per_gram" json:"ratePerGram"`
	// RatePerSovereign is fixed at write time as RatePerGram * GramsPerSovereign.
	RatePerSovereign float64   `db:"rate_per_sovereign" json:"ratePerUnitAlt"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// IsSet reports whether the rate can be used for pricing.
func (r *GoldRate) IsSet() bool {
	return r != nil && r.RatePerGram > 0
}
