// Package modeltest writes a small known artifact bundle to disk for tests.
package modeltest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Feature names of the fixture bundle, in training order. Building_Type and
// Climate_Zone are categorical, the rest numeric.
var Features = []string{
	"Building_Type",
	"Climate_Zone",
	"Energy_Efficiency",
	"Water_Conservation",
	"Waste_Management",
	"Renewable_Energy_Usage",
	"Indoor_Air_Quality",
	"Social_Benefits",
	"Air_Pollution_Control",
}

var BuildingTypes = []string{"Commercial", "Industrial", "Institutional", "Residential"}
var ClimateZones = []string{"Cold", "Composite", "Hot_Dry", "Temperate", "Warm_Humid"}

// The fixture booster splits each outcome tree on the scaled
// Energy_Efficiency value (feature index 2): low efficiency pushes the margin
// toward class 0 (1 star), high efficiency toward class 4 (5 stars). A raw
// Energy_Efficiency of 10 scales to -1.6 and predicts 1 star; 90 scales to
// +1.6 and predicts 5 stars.
func bundle() map[string]interface{} {
	leaf := func(v float64) map[string]interface{} {
		return map[string]interface{}{"is_leaf": true, "leaf": v}
	}
	split := func(feature int, threshold float64) map[string]interface{} {
		return map[string]interface{}{"feature": feature, "threshold": threshold, "left": 1, "right": 2}
	}

	return map[string]interface{}{
		"gbt_model.json": map[string]interface{}{
			"num_classes": 5,
			"base_score":  0.0,
			"trees": []interface{}{
				map[string]interface{}{
					"class": 0,
					"nodes": []interface{}{split(2, 0), leaf(2.0), leaf(-1.0)},
				},
				map[string]interface{}{
					"class": 1,
					"nodes": []interface{}{leaf(0.0)},
				},
				map[string]interface{}{
					"class": 2,
					"nodes": []interface{}{leaf(0.0)},
				},
				map[string]interface{}{
					"class": 3,
					"nodes": []interface{}{leaf(0.0)},
				},
				map[string]interface{}{
					"class": 4,
					"nodes": []interface{}{split(2, 0), leaf(-1.0), leaf(2.0)},
				},
			},
		},
		"label_encoders.json": map[string]interface{}{
			"Building_Type": map[string]interface{}{"classes": BuildingTypes},
			"Climate_Zone":  map[string]interface{}{"classes": ClimateZones},
		},
		"feature_names.json": Features,
		"scaler.json": map[string]interface{}{
			// Numeric subset order: Energy_Efficiency, Water_Conservation,
			// Waste_Management, Renewable_Energy_Usage, Indoor_Air_Quality,
			// Social_Benefits, Air_Pollution_Control.
			"mean":  []float64{50, 50, 0.5, 30, 50, 0.5, 0.5},
			"scale": []float64{25, 25, 0.5, 20, 25, 0.5, 0.5},
		},
		"reverse_mapping.json": map[string]int{
			"0": 1, "1": 2, "2": 3, "3": 4, "4": 5,
		},
	}
}

// WriteBundle writes the fixture artifacts into dir and returns dir.
func WriteBundle(t *testing.T, dir string) string {
	t.Helper()
	for name, content := range bundle() {
		data, err := json.MarshalIndent(content, "", "  ")
		if err != nil {
			t.Fatalf("marshal fixture %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return dir
}

// WriteBundleWithout writes the fixture bundle minus one file, for
// fail-closed loader tests.
func WriteBundleWithout(t *testing.T, dir, omit string) string {
	t.Helper()
	WriteBundle(t, dir)
	if err := os.Remove(filepath.Join(dir, omit)); err != nil {
		t.Fatalf("remove fixture %s: %v", omit, err)
	}
	return dir
}
