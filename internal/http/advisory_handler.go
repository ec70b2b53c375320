package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kisan-advisory/internal/common/errors"
	crop "kisan-advisory/internal/workers/advisory/crop-recommendation"
	disease "kisan-advisory/internal/workers/advisory/disease-detection"
	price "kisan-advisory/internal/workers/advisory/price-prediction"
)

type advisoryHandler struct {
	crop    CropRecommender
	disease DiseaseDetector
	price   PricePredictor
}

func (h *advisoryHandler) RecommendCrop(c *gin.Context) {
	var in crop.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json: "+err.Error())
		return
	}
	out, err := h.crop.Execute(c.Request.Context(), &in)
	if err != nil {
		writeAdvisoryError(c, crop.TaskType, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *advisoryHandler) DetectDisease(c *gin.Context) {
	var in disease.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json: "+err.Error())
		return
	}
	out, err := h.disease.Execute(c.Request.Context(), &in)
	if err != nil {
		writeAdvisoryError(c, disease.TaskType, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *advisoryHandler) PredictPrice(c *gin.Context) {
	var in price.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json: "+err.Error())
		return
	}
	out, err := h.price.Execute(c.Request.Context(), &in)
	if err != nil {
		writeAdvisoryError(c, price.TaskType, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func writeAdvisoryError(c *gin.Context, model string, err error) {
	switch {
	case errors.Is(err, crop.ErrInvalidInput),
		errors.Is(err, disease.ErrInvalidImage),
		errors.Is(err, disease.ErrImageTooLarge),
		errors.Is(err, price.ErrInvalidInput):
		badRequest(c, err.Error())
	default:
		writeError(c, apperrors.NewPredictionFailedError(model, err))
	}
}
