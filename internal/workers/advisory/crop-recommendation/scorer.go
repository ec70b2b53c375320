// internal/workers/advisory/crop-recommendation/scorer.go
package croprecommendation

import (
	"context"
	"math"
	"sort"

	"kisan-advisory/internal/models"
)

type cropProfile struct {
	crop                      string
	temperature, rainfall, ph float64
	nitrogen                  float64
}

// Agronomic midpoints per crop, used when no model endpoint is configured.
var cropProfiles = []cropProfile{
	{crop: "rice", temperature: 25, rainfall: 200, ph: 6.5, nitrogen: 80},
	{crop: "wheat", temperature: 18, rainfall: 50, ph: 6.8, nitrogen: 60},
	{crop: "maize", temperature: 24, rainfall: 90, ph: 6.2, nitrogen: 75},
	{crop: "cotton", temperature: 27, rainfall: 80, ph: 7.2, nitrogen: 55},
	{crop: "sugarcane", temperature: 28, rainfall: 160, ph: 7.0, nitrogen: 70},
	{crop: "potato", temperature: 17, rainfall: 60, ph: 5.8, nitrogen: 50},
	{crop: "tomato", temperature: 23, rainfall: 70, ph: 6.4, nitrogen: 45},
	{crop: "onion", temperature: 20, rainfall: 45, ph: 6.6, nitrogen: 40},
	{crop: "soybean", temperature: 26, rainfall: 110, ph: 6.5, nitrogen: 35},
}

// ProfileScorer ranks crops by closeness of the features to each crop's
// profile. Confidences sum to 1.
func ProfileScorer() models.Predictor {
	return models.PredictorFunc(func(_ context.Context, f models.Features) ([]models.Prediction, error) {
		temp := floatFeature(f, "temperature", 25)
		rain := floatFeature(f, "rainfall", 100)
		ph := floatFeature(f, "ph", 7)
		n := floatFeature(f, "n", 50)

		preds := make([]models.Prediction, len(cropProfiles))
		var total float64
		for i, p := range cropProfiles {
			dist := math.Abs(temp-p.temperature)/10 +
				math.Abs(rain-p.rainfall)/100 +
				math.Abs(ph-p.ph) +
				math.Abs(n-p.nitrogen)/50
			score := 1 / (1 + dist)
			preds[i] = models.Prediction{Label: p.crop, Confidence: score}
			total += score
		}
		for i := range preds {
			preds[i].Confidence /= total
		}
		sort.SliceStable(preds, func(i, j int) bool { return preds[i].Confidence > preds[j].Confidence })
		return preds, nil
	})
}
