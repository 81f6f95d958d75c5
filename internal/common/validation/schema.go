// Package validation checks request bodies against JSON schemas before the
// handlers touch them.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schemas for the session-scoped endpoints. /predict takes form fields and is
// normalized separately; everything else is JSON and validated here.
var (
	SessionRequestSchema = map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"session_id": map[string]interface{}{"type": "string", "minLength": 1},
		},
		"required":             []interface{}{"session_id"},
		"additionalProperties": false,
	}

	SectionRequestSchema = map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"session_id":   map[string]interface{}{"type": "string", "minLength": 1},
			"section_type": map[string]interface{}{"type": "string", "minLength": 1},
		},
		"required":             []interface{}{"session_id", "section_type"},
		"additionalProperties": false,
	}

	ChatRequestSchema = map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"session_id": map[string]interface{}{"type": "string", "minLength": 1},
			"question":   map[string]interface{}{"type": "string", "minLength": 1},
		},
		"required":             []interface{}{"session_id", "question"},
		"additionalProperties": false,
	}
)

// Validate checks data against schemaMap and returns a single descriptive
// error listing every violation.
func Validate(data interface{}, schemaMap map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
	}

	return nil
}
