// internal/workers/advisory/price-prediction/handler.go
package priceprediction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kisan-advisory/internal/common/logger"
	"kisan-advisory/internal/common/validation"
	"kisan-advisory/internal/workers/advisory"
)

const (
	TaskType = "price-prediction"

	MinPrice = 100.0
	MaxPrice = 10000.0

	defaultBasePrice = 2500.0
	baselineArrival  = 1000
	rangeSpread      = 500.0

	SourceHistory = "history"
	SourceStatic  = "static"
)

var ErrInvalidInput = errors.New("INVALID_PRICE_INPUT")

// Base prices in INR per quintal, used when no history is available.
var basePrices = map[string]float64{
	"wheat":     2400,
	"rice":      2200,
	"corn":      1800,
	"maize":     1800,
	"cotton":    5500,
	"sugarcane": 3200,
	"pulses":    4500,
	"oilseeds":  4200,
	"potato":    1200,
	"tomato":    1500,
	"onion":     1800,
	"garlic":    5000,
	"turmeric":  6500,
}

func basePrice(crop string) float64 {
	if p, ok := basePrices[strings.ToLower(crop)]; ok {
		return p
	}
	return defaultBasePrice
}

type Handler struct {
	config  *Config
	history PriceHistory
	logger  logger.Logger
	now     func() time.Time
}

// NewHandler builds the worker. A nil history selects the static base-price
// table.
func NewHandler(config *Config, history PriceHistory, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		history: history,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}
	if res := validation.ValidateStruct(input, GetInputSchema()); !res.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, res.Err())
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	now := h.now()
	base := basePrice(input.Crop)
	price, avg, source, confidence := base, base, SourceStatic, 0.5

	if h.history != nil {
		hist, ok, err := h.history.AveragePrice(ctx, input.Crop, input.District, now)
		switch {
		case err != nil:
			h.logger.Warn("price history unavailable, using base price", map[string]interface{}{
				"crop":  input.Crop,
				"error": err.Error(),
			})
		case ok:
			price, avg, source, confidence = hist, hist, SourceHistory, 0.85
		}
	}

	price = clampPrice(price, base)
	if source == SourceHistory {
		advisory.Record(TaskType, "ok")
	} else {
		advisory.Record(TaskType, "fallback")
	}

	arrival := input.ArrivalQuantity
	if arrival == 0 {
		arrival = baselineArrival
	}

	out := &Output{
		PredictedPrice: price,
		RiskLevel:      oversupplyRisk(float64(arrival), baselineArrival),
		Confidence:     confidence,
		HistoricalAvg:  avg,
		ForecastRange: ForecastRange{
			Min: clampPrice(price-rangeSpread, MinPrice),
			Max: clampPrice(price+rangeSpread, MaxPrice),
		},
		Crop:      input.Crop,
		District:  input.District,
		Source:    source,
		Timestamp: now,
	}

	h.logger.Info("price predicted", map[string]interface{}{
		"crop":     input.Crop,
		"district": input.District,
		"price":    price,
		"source":   source,
	})
	return out, nil
}

// clampPrice keeps p within [MinPrice, MaxPrice]. Prices below the floor are
// replaced by floor, which callers set to the crop's base price.
func clampPrice(p, floor float64) float64 {
	if p < MinPrice {
		p = floor
	}
	if p < MinPrice {
		p = MinPrice
	}
	if p > MaxPrice {
		p = MaxPrice
	}
	return p
}

// oversupplyRisk compares the current arrival with the baseline: above 20%
// growth is High, 10 to 20% Medium, otherwise Low.
func oversupplyRisk(current, baseline float64) string {
	if baseline == 0 {
		return "Medium"
	}
	increase := (current - baseline) / baseline * 100
	switch {
	case increase > 20:
		return "High"
	case increase >= 10:
		return "Medium"
	default:
		return "Low"
	}
}
