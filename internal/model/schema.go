// Package model loads the serialized artifact bundle and runs inference over
// the gradient-boosted tree ensemble it contains.
package model

// Schema is the ordered feature list the classifier was trained on, split
// into categorical and numeric fields. The order is fixed at training time
// and every inference call must supply values in this order.
type Schema struct {
	Features    []string
	categorical map[string]bool
}

// NewSchema builds a schema from the feature-name list and the set of fields
// covered by label encoders. Every field without an encoder is numeric.
func NewSchema(features []string, categoricalFields []string) *Schema {
	cat := make(map[string]bool, len(categoricalFields))
	for _, f := range categoricalFields {
		cat[f] = true
	}
	return &Schema{Features: features, categorical: cat}
}

// IsCategorical reports whether name is a categorical field.
func (s *Schema) IsCategorical(name string) bool {
	return s.categorical[name]
}

// NumericFeatures returns the numeric subset in schema order. This is the
// order the scaler expects.
func (s *Schema) NumericFeatures() []string {
	out := make([]string, 0, len(s.Features))
	for _, f := range s.Features {
		if !s.categorical[f] {
			out = append(out, f)
		}
	}
	return out
}
