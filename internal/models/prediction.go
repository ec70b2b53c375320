// internal/models/prediction.go
package models

import "context"

// Features is the input of a scoring model.
type Features map[string]interface{}

// Prediction is one ranked label produced by a scoring model.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Predictor is an opaque scoring model. Results are ranked best first.
type Predictor interface {
	Predict(ctx context.Context, features Features) ([]Prediction, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(ctx context.Context, features Features) ([]Prediction, error)

func (f PredictorFunc) Predict(ctx context.Context, features Features) ([]Prediction, error) {
	return f(ctx, features)
}
