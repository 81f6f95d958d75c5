// Package predictor turns raw form input into a model-ready feature vector
// and runs it through the loaded classifier.
package predictor

import (
	"strconv"

	"greenverify/internal/model"
)

// FieldValue is one normalized field of a request, tagged by kind.
type FieldValue struct {
	Name        string
	Categorical bool
	Text        string  // categorical fields, raw label
	Number      float64 // numeric fields, clamped to >= 0
}

// Record is a fully populated single-row input over the feature schema, in
// training order.
type Record struct {
	Fields []FieldValue
}

// Normalize builds a Record from a raw value lookup (form fields by name).
// Categorical fields pass through as labels; numeric fields parse as floats,
// default to 0.0 when absent or unparseable, and clamp to a minimum of 0.0.
// Negative input is floored silently rather than rejected.
func Normalize(get func(name string) string, schema *model.Schema) *Record {
	rec := &Record{Fields: make([]FieldValue, 0, len(schema.Features))}
	for _, name := range schema.Features {
		raw := get(name)
		if schema.IsCategorical(name) {
			rec.Fields = append(rec.Fields, FieldValue{Name: name, Categorical: true, Text: raw})
			continue
		}

		value := 0.0
		if raw != "" {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				value = parsed
			}
		}
		if value < 0 {
			value = 0
		}
		rec.Fields = append(rec.Fields, FieldValue{Name: name, Number: value})
	}
	return rec
}

// IsEmpty reports whether every numeric field is zero and every categorical
// field is blank. Such a record describes a building with nothing to certify
// and short-circuits before inference.
func (r *Record) IsEmpty() bool {
	for _, f := range r.Fields {
		if f.Categorical {
			if f.Text != "" {
				return false
			}
		} else if f.Number != 0 {
			return false
		}
	}
	return true
}

// InputsMap renders the record the way it is stored in a session and shown
// in prompts: labels for categorical fields, floats for numeric ones.
func (r *Record) InputsMap() map[string]interface{} {
	out := make(map[string]interface{}, len(r.Fields))
	for _, f := range r.Fields {
		if f.Categorical {
			out[f.Name] = f.Text
		} else {
			out[f.Name] = f.Number
		}
	}
	return out
}
