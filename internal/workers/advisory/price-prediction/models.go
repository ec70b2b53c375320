// internal/workers/advisory/price-prediction/models.go
package priceprediction

import "time"

type Input struct {
	Crop            string `json:"crop"`
	District        string `json:"district"`
	ArrivalQuantity int    `json:"arrival_quantity"`
}

type ForecastRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Output struct {
	PredictedPrice float64       `json:"predicted_price"`
	RiskLevel      string        `json:"risk_level"`
	Confidence     float64       `json:"confidence"`
	HistoricalAvg  float64       `json:"historical_avg"`
	ForecastRange  ForecastRange `json:"forecast_range"`
	Crop           string        `json:"crop"`
	District       string        `json:"district"`
	Source         string        `json:"source"`
	Timestamp      time.Time     `json:"timestamp"`
}
