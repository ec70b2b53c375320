// internal/workers/advisory/disease-detection/handler.go
package diseasedetection

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"time"

	"kisan-advisory/internal/common/logger"
	"kisan-advisory/internal/common/validation"
	"kisan-advisory/internal/models"
	"kisan-advisory/internal/workers/advisory"
)

const (
	TaskType = "disease-detection"

	DetectionFailed = "detection_failed"
)

var (
	ErrInvalidImage     = errors.New("INVALID_IMAGE")
	ErrImageTooLarge    = errors.New("IMAGE_TOO_LARGE")
	ErrDetectionFailed  = errors.New("DISEASE_DETECTION_FAILED")
	errModelUnavailable = errors.New("no disease model configured")
)

type Handler struct {
	config    *Config
	predictor models.Predictor
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(config *Config, predictor models.Predictor, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		predictor: predictor,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Execute rejects undecodable or oversized images. Any model failure yields
// the detection_failed record instead of an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidImage)
	}
	if res := validation.ValidateStruct(input, GetInputSchema()); !res.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, res.Err())
	}
	raw, err := base64.StdEncoding.DecodeString(input.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(raw) > h.config.MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(raw))
	}

	cropType := input.CropType
	if cropType == "" {
		cropType = "general"
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	out, err := h.detect(ctx, input.Image, cropType)
	if err != nil {
		h.logger.Warn("disease model failed", map[string]interface{}{
			"cropType": cropType,
			"error":    err.Error(),
		})
		advisory.Record(TaskType, "fallback")
		return h.failedOutput(err), nil
	}

	advisory.Record(TaskType, "ok")
	h.logger.Info("disease detected", map[string]interface{}{
		"disease":    out.Disease,
		"confidence": out.Confidence,
		"cropType":   cropType,
	})
	return out, nil
}

func (h *Handler) detect(ctx context.Context, image, cropType string) (out *Output, err error) {
	if h.predictor == nil {
		return nil, errModelUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrDetectionFailed, r)
		}
	}()

	preds, err := h.predictor.Predict(ctx, models.Features{"image": image, "crop_type": cropType})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetectionFailed, err)
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("%w: empty ranking", ErrDetectionFailed)
	}

	ranked := append([]models.Prediction(nil), preds...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Confidence > ranked[j].Confidence })

	all := make(map[string]float64, len(ranked))
	for _, p := range ranked {
		all[p.Label] = p.Confidence
	}

	top := ranked[0]
	info := lookupDisease(top.Label)
	return &Output{
		Disease:            top.Label,
		Confidence:         top.Confidence,
		Severity:           info.Severity,
		Treatment:          info.Treatment,
		Prevention:         info.Prevention,
		AllPredictions:     all,
		CropType:           cropType,
		CropSpecificAdvice: adviceFor(top.Label, cropType),
		DetectionTimestamp: h.now(),
		ModelVersion:       h.config.ModelVersion,
	}, nil
}

func (h *Handler) failedOutput(err error) *Output {
	return &Output{
		Disease:            DetectionFailed,
		Confidence:         0.0,
		Severity:           "Unknown",
		Treatment:          "Unable to analyze image. Please try again or consult an expert.",
		Prevention:         "Ensure good quality, well-lit image of the affected plant part.",
		CropType:           "unknown",
		DetectionTimestamp: h.now(),
		ModelVersion:       h.config.ModelVersion,
		Error:              err.Error(),
	}
}
