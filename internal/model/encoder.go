package model

import "fmt"

// LabelEncoder maps one categorical field's category strings to the integer
// codes fixed at training time. The code is the index into Classes.
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// Transform returns the code for category. Unseen categories (including the
// empty string) map to code 0 rather than failing, mirroring training-side
// behavior for out-of-vocabulary input.
func (e *LabelEncoder) Transform(category string) float64 {
	for i, c := range e.Classes {
		if c == category {
			return float64(i)
		}
	}
	return 0
}

// Scaler is a fitted standard transform applied to the numeric feature
// subset: (x - mean) / scale, element-wise in the numeric schema order.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform scales the numeric sub-vector in place-order and returns a new
// slice. The input length must match the fitted dimension.
func (s *Scaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.Mean) || len(s.Mean) != len(s.Scale) {
		return nil, fmt.Errorf("scaler dimension mismatch: got %d values, fitted for %d", len(values), len(s.Mean))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}
