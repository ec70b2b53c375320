// Package validation checks advisory worker inputs against per-worker JSON
// schemas before any model or backend is touched.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema defines the structure for input schemas
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

type Property struct {
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	Minimum     *float64    `json:"minimum,omitempty"`
	Maximum     *float64    `json:"maximum,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
	Pattern     *string     `json:"pattern,omitempty"`
	MinLength   *int        `json:"minLength,omitempty"`
	MaxLength   *int        `json:"maxLength,omitempty"`
	Nullable    bool        `json:"-"`
	Items       *Property   `json:"items,omitempty"`
	Default     interface{} `json:"default,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// NonBlank matches strings with at least one non-space character.
const NonBlank = `\S`

func IntPtr(i int) *int           { return &i }
func FloatPtr(f float64) *float64 { return &f }
func StringPtr(s string) *string  { return &s }

// document renders s as a JSON schema document. Nullable properties accept
// null alongside their declared type.
func (s JSONSchema) document() map[string]interface{} {
	props := make(map[string]interface{}, len(s.Properties))
	for name, p := range s.Properties {
		props[name] = p.document()
	}
	doc := map[string]interface{}{
		"type":                 s.Type,
		"properties":           props,
		"additionalProperties": s.AdditionalProperties,
	}
	if len(s.Required) > 0 {
		doc["required"] = s.Required
	}
	return doc
}

func (p Property) document() map[string]interface{} {
	raw, _ := json.Marshal(p)
	var doc map[string]interface{}
	_ = json.Unmarshal(raw, &doc)
	if p.Nullable {
		doc["type"] = []string{p.Type, "null"}
	}
	if p.Items != nil {
		doc["items"] = p.Items.document()
	}
	return doc
}

// ValidateInput validates input against schema with detailed errors.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema.document()),
		gojsonschema.NewGoLoader(input),
	)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field:   "(root)",
			Message: err.Error(),
			Code:    "SCHEMA_ERROR",
		}}}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, toValidationError(desc))
	}
	return &ValidationResult{Valid: result.Valid(), Errors: errs}
}

// ValidateStruct validates the JSON form of v, so field names follow v's
// json tags.
func ValidateStruct(v interface{}, schema JSONSchema) *ValidationResult {
	raw, err := json.Marshal(v)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID_TYPE"}}}
	}
	input := map[string]interface{}{}
	if err := json.Unmarshal(raw, &input); err != nil {
		return &ValidationResult{Errors: []ValidationError{{Field: "(root)", Message: "input must be an object", Code: "INVALID_TYPE"}}}
	}
	return ValidateInput(input, schema)
}

var errorCodes = map[string]string{
	"required":                        "REQUIRED_FIELD_MISSING",
	"invalid_type":                    "INVALID_TYPE",
	"additional_property_not_allowed": "EXTRA_FIELD",
	"string_gte":                      "MIN_LENGTH_VIOLATION",
	"string_lte":                      "MAX_LENGTH_VIOLATION",
	"number_gte":                      "MIN_VALUE_VIOLATION",
	"number_lte":                      "MAX_VALUE_VIOLATION",
	"enum":                            "INVALID_ENUM_VALUE",
	"pattern":                         "PATTERN_MISMATCH",
}

func toValidationError(desc gojsonschema.ResultError) ValidationError {
	field := desc.Field()
	switch desc.Type() {
	case "required", "additional_property_not_allowed":
		if p, ok := desc.Details()["property"].(string); ok {
			field = p
		}
	}

	code, ok := errorCodes[desc.Type()]
	if !ok {
		code = strings.ToUpper(desc.Type())
	}
	return ValidationError{Field: field, Message: desc.Description(), Code: code}
}

// Err joins every message, or returns nil for a valid result.
func (vr *ValidationResult) Err() error {
	if vr.Valid {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(vr.GetErrorMessages(), "; "))
}

// GetErrorMessages returns all error messages as strings
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if there are errors for a specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var errors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field {
			errors = append(errors, err)
		}
	}
	return errors
}
