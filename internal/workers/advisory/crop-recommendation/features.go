// internal/workers/advisory/crop-recommendation/features.go
package croprecommendation

import (
	"fmt"
	"strings"

	"kisan-advisory/internal/models"
)

var seasonalTemperature = map[string]float64{
	"kharif": 28.0,
	"rabi":   18.0,
	"zaid":   32.0,
}

var seasonalRainfall = map[string]float64{
	"kharif": 150.0,
	"rabi":   50.0,
	"zaid":   30.0,
}

type soilProfile struct {
	N, P, K, PH float64
}

var soilProfiles = map[string]soilProfile{
	"clay":   {N: 60, P: 35, K: 45, PH: 7.2},
	"sandy":  {N: 40, P: 25, K: 35, PH: 6.8},
	"loamy":  {N: 50, P: 40, K: 40, PH: 7.0},
	"silt":   {N: 55, P: 38, K: 42, PH: 7.1},
	"peat":   {N: 45, P: 30, K: 38, PH: 6.5},
	"chalky": {N: 48, P: 42, K: 44, PH: 7.8},
}

var defaultSoil = soilProfile{N: 50, P: 40, K: 40, PH: 7.0}

const defaultHumidity = 60.0

// prepareFeatures fills missing weather readings with seasonal defaults and
// takes nutrients from the soil type. The soil pH replaces any supplied pH
// reading.
func prepareFeatures(in *Input) models.Features {
	season := strings.ToLower(in.Season)

	temperature, ok := seasonalTemperature[season]
	if !ok {
		temperature = 25.0
	}
	if in.Temperature != nil {
		temperature = *in.Temperature
	}

	rainfall, ok := seasonalRainfall[season]
	if !ok {
		rainfall = 100.0
	}
	if in.Rainfall != nil {
		rainfall = *in.Rainfall
	}

	soil, ok := soilProfiles[strings.ToLower(in.SoilType)]
	if !ok {
		soil = defaultSoil
	}

	return models.Features{
		"n":           soil.N,
		"p":           soil.P,
		"k":           soil.K,
		"temperature": temperature,
		"humidity":    defaultHumidity,
		"ph":          soil.PH,
		"rainfall":    rainfall,
	}
}

var cropInfo = map[string]CropInfo{
	"rice":   {Season: "Kharif", WaterRequirement: "High", Duration: "120-150 days", Profitability: "Medium"},
	"wheat":  {Season: "Rabi", WaterRequirement: "Medium", Duration: "120-140 days", Profitability: "High"},
	"maize":  {Season: "Kharif", WaterRequirement: "Medium", Duration: "90-110 days", Profitability: "High"},
	"cotton": {Season: "Kharif", WaterRequirement: "Medium", Duration: "150-180 days", Profitability: "High"},
}

func infoFor(crop string) CropInfo {
	if info, ok := cropInfo[strings.ToLower(crop)]; ok {
		return info
	}
	return CropInfo{Season: "Varies", WaterRequirement: "Medium", Duration: "Varies", Profitability: "Medium"}
}

func reasoning(features models.Features, topCrop string) string {
	var parts []string

	temp := floatFeature(features, "temperature", 25)
	switch {
	case temp < 15:
		parts = append(parts, "Cool temperature favors winter crops")
	case temp > 30:
		parts = append(parts, "Hot temperature suggests heat-tolerant crops")
	default:
		parts = append(parts, "Moderate temperature suitable for various crops")
	}

	rain := floatFeature(features, "rainfall", 100)
	if rain < 50 {
		parts = append(parts, "Low rainfall suggests drought-resistant crops")
	} else if rain > 200 {
		parts = append(parts, "High rainfall favors water-loving crops")
	}

	ph := floatFeature(features, "ph", 7.0)
	if ph < 6.0 {
		parts = append(parts, "Acidic soil may need lime treatment")
	} else if ph > 7.5 {
		parts = append(parts, "Alkaline soil may need sulfur treatment")
	}

	return fmt.Sprintf("Based on your conditions, %s appears to be the best choice. %s", topCrop, strings.Join(parts, " "))
}

func floatFeature(f models.Features, key string, def float64) float64 {
	if v, ok := f[key].(float64); ok {
		return v
	}
	return def
}
