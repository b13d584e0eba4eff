package llm

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaName and SchemaVersion identify the output contract handed to the
// model as a strict decoding constraint.
const (
	SchemaName    = "career_recommendations"
	SchemaVersion = "v1"
)

func stringArray() map[string]interface{} {
	return map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	}
}

// ResponseSchema returns the fixed JSON schema every generation result must
// conform to. All eight top-level fields are required even when empty, and no
// additional properties are permitted anywhere in the shape.
func ResponseSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"summary":          map[string]interface{}{"type": "string"},
			"urgent_actions":   stringArray(),
			"next_7_days_plan": stringArray(),
			"follow_ups": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"company":        map[string]interface{}{"type": "string"},
						"suggested_date": map[string]interface{}{"type": "string"},
						"reason":         map[string]interface{}{"type": "string"},
						"message_draft":  map[string]interface{}{"type": "string"},
					},
					"required":             []string{"company", "suggested_date", "reason", "message_draft"},
					"additionalProperties": false,
				},
			},
			"recruiter_questions": stringArray(),
			"strategy_insights":   stringArray(),
			"interview_prep":      stringArray(),
			"risk_flags":          stringArray(),
		},
		"required": []string{
			"summary",
			"urgent_actions",
			"next_7_days_plan",
			"follow_ups",
			"recruiter_questions",
			"strategy_insights",
			"interview_prep",
			"risk_flags",
		},
		"additionalProperties": false,
	}
}

// ValidateOutput checks raw model output against the response schema. Only
// used when strict output validation is enabled; the default pipeline trusts
// constrained decoding and stops at the JSON-syntax check.
func ValidateOutput(raw string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(ResponseSchema()),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("model output does not match schema %s/%s: %s", SchemaName, SchemaVersion, errs[0].String())
		}
		return fmt.Errorf("model output does not match schema %s/%s", SchemaName, SchemaVersion)
	}
	return nil
}
