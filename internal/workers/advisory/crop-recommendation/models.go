// internal/workers/advisory/crop-recommendation/models.go
package croprecommendation

type Input struct {
	SoilType    string   `json:"soil_type"`
	Location    string   `json:"location"`
	Season      string   `json:"season"`
	Temperature *float64 `json:"temperature,omitempty"`
	Rainfall    *float64 `json:"rainfall,omitempty"`
	PHLevel     *float64 `json:"ph_level,omitempty"`
}

type CropInfo struct {
	Season           string `json:"season"`
	WaterRequirement string `json:"water_requirement"`
	Duration         string `json:"duration"`
	Profitability    string `json:"profitability"`
}

type Recommendation struct {
	Crop        string   `json:"crop"`
	Confidence  float64  `json:"confidence"`
	Suitability CropInfo `json:"suitability"`
}

type Output struct {
	RecommendedCrops []Recommendation   `json:"recommended_crops"`
	ConfidenceScores map[string]float64 `json:"confidence_scores"`
	Reasoning        string             `json:"reasoning"`
	InputConditions  Input              `json:"input_conditions"`
	Fallback         bool               `json:"fallback"`
}
