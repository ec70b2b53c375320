// internal/models/intent.go
package models

// Intent names a category of user need.
type Intent string

const (
	IntentCropRecommendation    Intent = "crop_recommendation"
	IntentDiseaseIdentification Intent = "disease_identification"
	IntentWeatherAdvice         Intent = "weather_advice"
	IntentMarketPrices          Intent = "market_prices"
	IntentFertilizerAdvice      Intent = "fertilizer_advice"
	IntentPestControl           Intent = "pest_control"
	IntentGovernmentSchemes     Intent = "government_schemes"
	IntentFarmingTechniques     Intent = "farming_techniques"
	IntentGeneralHelp           Intent = "general_help"

	// IntentUnknown marks a reply built from the fallback template.
	IntentUnknown Intent = "unknown"
	// IntentError marks the reply produced when a turn fails.
	IntentError Intent = "error"
)

// Intents lists every catalog intent in declaration order. Classifier ties
// are broken by position in this slice.
var Intents = []Intent{
	IntentCropRecommendation,
	IntentDiseaseIdentification,
	IntentWeatherAdvice,
	IntentMarketPrices,
	IntentFertilizerAdvice,
	IntentPestControl,
	IntentGovernmentSchemes,
	IntentFarmingTechniques,
	IntentGeneralHelp,
}

// IsCatalog reports whether i is one of Intents.
func (i Intent) IsCatalog() bool {
	for _, known := range Intents {
		if i == known {
			return true
		}
	}
	return false
}

func (i Intent) String() string { return string(i) }
