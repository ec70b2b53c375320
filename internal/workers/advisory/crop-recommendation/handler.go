// internal/workers/advisory/crop-recommendation/handler.go
package croprecommendation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"kisan-advisory/internal/common/logger"
	"kisan-advisory/internal/common/validation"
	"kisan-advisory/internal/models"
	"kisan-advisory/internal/workers/advisory"
)

const (
	TaskType = "crop-recommendation"

	fallbackCrop       = "rice"
	fallbackConfidence = 0.5
	fallbackReasoning  = "Using fallback recommendation due to technical issues"
)

var (
	ErrInvalidInput     = errors.New("INVALID_CROP_INPUT")
	ErrPredictionFailed = errors.New("CROP_PREDICTION_FAILED")
)

type Handler struct {
	config    *Config
	predictor models.Predictor
	logger    logger.Logger
}

func NewHandler(config *Config, predictor models.Predictor, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		predictor: predictor,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute only fails on invalid input. A failing or empty model answer is
// replaced by the fixed rice recommendation.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}
	if res := validation.ValidateStruct(input, GetInputSchema()); !res.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, res.Err())
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	features := prepareFeatures(input)
	output, err := h.rank(ctx, features)
	if err != nil {
		h.logger.Warn("crop model failed, using fallback recommendation", map[string]interface{}{
			"season":   input.Season,
			"soilType": input.SoilType,
			"error":    err.Error(),
		})
		advisory.Record(TaskType, "fallback")
		output = fallbackOutput()
	} else {
		advisory.Record(TaskType, "ok")
	}

	output.InputConditions = *input
	h.logger.Info("crop recommendation produced", map[string]interface{}{
		"topCrop":  output.RecommendedCrops[0].Crop,
		"fallback": output.Fallback,
	})
	return output, nil
}

func (h *Handler) rank(ctx context.Context, features models.Features) (out *Output, err error) {
	if h.predictor == nil {
		return nil, fmt.Errorf("%w: no crop model configured", ErrPredictionFailed)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrPredictionFailed, r)
		}
	}()

	preds, err := h.predictor.Predict(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("%w: empty ranking", ErrPredictionFailed)
	}

	ranked := append([]models.Prediction(nil), preds...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Confidence > ranked[j].Confidence })
	if len(ranked) > h.config.TopN {
		ranked = ranked[:h.config.TopN]
	}

	out = &Output{ConfidenceScores: make(map[string]float64, len(ranked))}
	for _, p := range ranked {
		out.RecommendedCrops = append(out.RecommendedCrops, Recommendation{
			Crop:        p.Label,
			Confidence:  p.Confidence,
			Suitability: infoFor(p.Label),
		})
		out.ConfidenceScores[p.Label] = p.Confidence
	}
	out.Reasoning = reasoning(features, ranked[0].Label)
	return out, nil
}

func fallbackOutput() *Output {
	return &Output{
		RecommendedCrops: []Recommendation{{
			Crop:        fallbackCrop,
			Confidence:  fallbackConfidence,
			Suitability: infoFor(fallbackCrop),
		}},
		ConfidenceScores: map[string]float64{fallbackCrop: fallbackConfidence},
		Reasoning:        fallbackReasoning,
		Fallback:         true,
	}
}
