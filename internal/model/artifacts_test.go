package model_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"greenverify/internal/model"
	"greenverify/internal/model/modeltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FullBundle(t *testing.T) {
	dir := modeltest.WriteBundle(t, t.TempDir())

	arts, err := model.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, modeltest.Features, arts.Schema.Features)
	assert.Equal(t, 5, arts.Booster.NumClasses)
	assert.Len(t, arts.LabelEncoders, 2)
	assert.Len(t, arts.Scaler.Mean, len(arts.Schema.NumericFeatures()))
	for idx := 0; idx < arts.Booster.NumClasses; idx++ {
		rating, ok := arts.ReverseMapping[idx]
		assert.True(t, ok)
		assert.Equal(t, idx+1, rating)
	}
}

func TestLoad_FailsClosedOnEachMissingFile(t *testing.T) {
	files := []string{
		model.BoosterFile,
		model.LabelEncodersFile,
		model.FeatureNamesFile,
		model.ScalerFile,
		model.ReverseMappingFile,
	}

	for _, missing := range files {
		t.Run(missing, func(t *testing.T) {
			dir := modeltest.WriteBundleWithout(t, t.TempDir(), missing)

			arts, err := model.Load(dir)
			assert.Nil(t, arts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "artifact")
		})
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := modeltest.WriteBundle(t, t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, model.ScalerFile), []byte("{not json"), 0o644))

	_, err := model.Load(dir)
	assert.Error(t, err)
}

func TestLoad_InconsistentScalerDimension(t *testing.T) {
	dir := modeltest.WriteBundle(t, t.TempDir())
	bad, _ := json.Marshal(map[string]interface{}{
		"mean":  []float64{1, 2},
		"scale": []float64{1, 1},
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, model.ScalerFile), bad, 0o644))

	_, err := model.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inconsistent")
}

func TestLoad_ReverseMappingMissingClass(t *testing.T) {
	dir := modeltest.WriteBundle(t, t.TempDir())
	bad, _ := json.Marshal(map[string]int{"0": 1, "1": 2, "2": 3, "3": 4})
	require.NoError(t, os.WriteFile(filepath.Join(dir, model.ReverseMappingFile), bad, 0o644))

	_, err := model.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inconsistent")
}

func TestLoad_EncoderFieldNotInSchema(t *testing.T) {
	dir := modeltest.WriteBundle(t, t.TempDir())
	bad, _ := json.Marshal(map[string]interface{}{
		"Building_Type": map[string]interface{}{"classes": modeltest.BuildingTypes},
		"Orientation":   map[string]interface{}{"classes": []string{"North", "South"}},
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, model.LabelEncodersFile), bad, 0o644))

	_, err := model.Load(dir)
	assert.Error(t, err)
}
