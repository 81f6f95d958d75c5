package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelEncoder_Transform(t *testing.T) {
	enc := &LabelEncoder{Classes: []string{"Commercial", "Industrial", "Residential"}}

	tests := []struct {
		name     string
		category string
		want     float64
	}{
		{"first class", "Commercial", 0},
		{"middle class", "Industrial", 1},
		{"last class", "Residential", 2},
		{"unseen category falls back to zero", "Floating", 0},
		{"empty string falls back to zero", "", 0},
		{"case sensitive", "commercial", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enc.Transform(tt.category))
		})
	}
}

func TestScaler_Transform(t *testing.T) {
	s := &Scaler{Mean: []float64{50, 0.5}, Scale: []float64{25, 0.5}}

	out, err := s.Transform([]float64{75, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out[0], 1e-9)
	assert.InDelta(t, -1.0, out[1], 1e-9)
}

func TestScaler_Transform_DimensionMismatch(t *testing.T) {
	s := &Scaler{Mean: []float64{50}, Scale: []float64{25}}

	_, err := s.Transform([]float64{1, 2})
	assert.Error(t, err)
}

func TestScaler_Transform_ZeroScale(t *testing.T) {
	// A constant training column yields scale 0; transform must not divide
	// by zero.
	s := &Scaler{Mean: []float64{3}, Scale: []float64{0}}

	out, err := s.Transform([]float64{5})
	require.NoError(t, err)
	assert.Equal(t, 2.0, out[0])
}

func TestSchema_NumericFeatures(t *testing.T) {
	s := NewSchema(
		[]string{"Building_Type", "Energy_Efficiency", "Climate_Zone", "Water_Conservation"},
		[]string{"Building_Type", "Climate_Zone"},
	)

	assert.Equal(t, []string{"Energy_Efficiency", "Water_Conservation"}, s.NumericFeatures())
	assert.True(t, s.IsCategorical("Building_Type"))
	assert.False(t, s.IsCategorical("Energy_Efficiency"))
}
