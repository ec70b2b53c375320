// internal/workers/advisory/disease-detection/models.go
package diseasedetection

import "time"

type Input struct {
	Image    string `json:"image"` // base64
	CropType string `json:"crop_type"`
}

type CropAdvice struct {
	Varieties         []string `json:"varieties,omitempty"`
	ChemicalControl   string   `json:"chemical_control,omitempty"`
	CulturalPractices string   `json:"cultural_practices,omitempty"`
}

type Output struct {
	Disease            string             `json:"disease"`
	Confidence         float64            `json:"confidence"`
	Severity           string             `json:"severity"`
	Treatment          string             `json:"treatment"`
	Prevention         string             `json:"prevention"`
	AllPredictions     map[string]float64 `json:"all_predictions,omitempty"`
	CropType           string             `json:"crop_type"`
	CropSpecificAdvice CropAdvice         `json:"crop_specific_advice"`
	DetectionTimestamp time.Time          `json:"detection_timestamp"`
	ModelVersion       string             `json:"model_version"`
	Error              string             `json:"error,omitempty"`
}
