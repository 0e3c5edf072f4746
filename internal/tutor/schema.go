package tutor

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const questionItem = `{
	"type": "object",
	"required": ["question", "options", "answer"],
	"properties": {
		"question": {"type": "string", "minLength": 1},
		"options": {
			"type": "object",
			"minProperties": 2,
			"additionalProperties": {"type": "string"}
		},
		"answer": {"type": "string", "minLength": 1},
		"concept": {"type": "string"},
		"difficulty": {"type": "string"}
	}
}`

var questionListSchema = mustSchema(`{
	"type": "array",
	"items": ` + questionItem + `
}`)

var analysisListSchema = mustSchema(`{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["concept_name"],
		"properties": {
			"concept_name": {"type": "string", "minLength": 1},
			"explanation": {"type": "string"},
			"practice_questions": {"type": "array", "items": ` + questionItem + `}
		}
	}
}`)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("tutor: invalid schema: %v", err))
	}
	return schema
}

// validate checks a raw JSON payload against schema.
func validate(schema *gojsonschema.Schema, payload string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return ErrNoPayload
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
}
