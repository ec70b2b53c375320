package diseasedetection

import "kisan-advisory/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"image"},
		Properties: map[string]validation.Property{
			"image": {
				Type:        "string",
				Description: "Base64 encoded leaf image",
				Pattern:     validation.StringPtr(validation.NonBlank),
			},
			"crop_type": {
				Type:      "string",
				MaxLength: validation.IntPtr(50),
			},
		},
	}
}
