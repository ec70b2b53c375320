package priceprediction

import "kisan-advisory/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"crop", "district"},
		Properties: map[string]validation.Property{
			"crop": {
				Type:        "string",
				Description: "Commodity name as traded at the mandi",
				Pattern:     validation.StringPtr(validation.NonBlank),
				MaxLength:   validation.IntPtr(100),
			},
			"district": {
				Type:        "string",
				Description: "Market or state the price is predicted for",
				Pattern:     validation.StringPtr(validation.NonBlank),
				MaxLength:   validation.IntPtr(100),
			},
			"arrival_quantity": {
				Type:        "integer",
				Description: "Current arrivals in quintals; 0 means unknown",
				Minimum:     validation.FloatPtr(0),
			},
		},
	}
}
