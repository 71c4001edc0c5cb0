package models

type RateResponse struct {
	Currency     string `json:"currency"`
	BaseCurrency string `json:"baseCurrency"`
	Buy          string `json:"buy"`
	Sale         string `json:"sale"`
}
