// Package advisory holds what the crop, disease and price workers share: the
// remote model client and the prediction metric helper.
package advisory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kisan-advisory/internal/common/config"
	commonhttp "kisan-advisory/internal/common/http"
	"kisan-advisory/internal/common/metrics"
	"kisan-advisory/internal/models"
)

var ErrNoPredictions = errors.New("NO_PREDICTIONS")

// RemotePredictor posts features to a model-serving endpoint that answers
// {"predictions":[{"label":..,"confidence":..}]}.
type RemotePredictor struct {
	url    string
	client *commonhttp.Client
}

func NewRemotePredictor(url string, maxRetries int, opts ...commonhttp.Option) *RemotePredictor {
	return &RemotePredictor{
		url:    url,
		client: commonhttp.NewClient(maxRetries, opts...),
	}
}

// PredictorFor returns a RemotePredictor when the worker config names a model
// URL, otherwise builtin.
func PredictorFor(cfg config.WorkerConfig, builtin models.Predictor) models.Predictor {
	if cfg.ModelURL == "" {
		return builtin
	}
	return NewRemotePredictor(cfg.ModelURL, cfg.MaxRetries)
}

type predictRequest struct {
	Features models.Features `json:"features"`
}

type predictResponse struct {
	Predictions []models.Prediction `json:"predictions"`
}

func (p *RemotePredictor) Predict(ctx context.Context, features models.Features) ([]models.Prediction, error) {
	var resp predictResponse
	if err := p.client.PostJSON(ctx, p.url, predictRequest{Features: features}, &resp); err != nil {
		return nil, fmt.Errorf("model endpoint: %w", err)
	}
	if len(resp.Predictions) == 0 {
		return nil, ErrNoPredictions
	}
	return resp.Predictions, nil
}

// Timeout converts the worker's millisecond timeout, defaulting to fallback.
func Timeout(cfg config.WorkerConfig, fallback time.Duration) time.Duration {
	if cfg.Timeout <= 0 {
		return fallback
	}
	return time.Duration(cfg.Timeout) * time.Millisecond
}

// Record counts one prediction outcome: "ok" or "fallback".
func Record(model, status string) {
	metrics.AdvisoryPredictions.WithLabelValues(model, status).Inc()
}
