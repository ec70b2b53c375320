package croprecommendation

import "kisan-advisory/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"soil_type", "season"},
		Properties: map[string]validation.Property{
			"soil_type": {
				Type:        "string",
				Description: "Soil class, e.g. clay, sandy, loamy",
				Pattern:     validation.StringPtr(validation.NonBlank),
				MaxLength:   validation.IntPtr(50),
			},
			"season": {
				Type:        "string",
				Description: "Cropping season: kharif, rabi or zaid",
				Pattern:     validation.StringPtr(validation.NonBlank),
				MaxLength:   validation.IntPtr(50),
			},
			"location": {
				Type:      "string",
				MaxLength: validation.IntPtr(100),
			},
			"temperature": {
				Type:        "number",
				Description: "Mean temperature in Celsius",
				Minimum:     validation.FloatPtr(-20),
				Maximum:     validation.FloatPtr(60),
			},
			"rainfall": {
				Type:        "number",
				Description: "Seasonal rainfall in mm",
				Minimum:     validation.FloatPtr(0),
			},
			"ph_level": {
				Type:    "number",
				Minimum: validation.FloatPtr(0),
				Maximum: validation.FloatPtr(14),
			},
		},
	}
}
