package dto

type SetRateInput struct {
	Karat       string
	RatePerGram float64
}

// RateEvent is the payload of gold-rate events, both published by this
// service and consumed from the rate feed topic.
type RateEvent struct {
	Karat       string  `json:"karat"`
	RatePerGram float64 `json:"ratePerGram"`
}
