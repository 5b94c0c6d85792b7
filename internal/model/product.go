package model

type Product struct {
	BaseModel
	Name              string  `db:"name" json:"name"`
	ShortDescription  string  `db:"short_description" json:"shortDescription"`
	ExternalProductID string  `db:"external_product_id" json:"productId"`
	Karat             Karat   `db:"karat" json:"karat"`
	Weight            float64 `db:"weight" json:"weight"` // grams
	MakingCostPercent float64 `db:"making_cost_percent" json:"makingCostPercent"`
	WastagePercent    float64 `db:"wastage_percent" json:"wastagePercent"`
	ImageURL          *string `db:"image_url" json:"image"` // Nullable

	// Price snapshot taken at the last write.
	Price           float64 `db:"price" json:"price"`
	MakingCost      float64 `db:"making_cost" json:"makingCost"`
	WastageCost     float64 `db:"wastage_cost" json:"wastageCost"`
	GoldRatePerGram float64 `db:"gold_rate_per_gram" json:"goldRatePerGram"`
}

// PricedProduct is a product as served to readers: price fields reflect the
// current gold rate, or PriceError explains why they could not be derived.
type PricedProduct struct {
	Product
	PriceError string `json:"error,omitempty"`
}
