package predictor_test

import (
	"testing"

	"greenverify/internal/common/logger"
	"greenverify/internal/model"
	"greenverify/internal/model/modeltest"
	"greenverify/internal/predictor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixturePipeline(t *testing.T) *predictor.Pipeline {
	t.Helper()
	arts, err := model.Load(modeltest.WriteBundle(t, t.TempDir()))
	require.NoError(t, err)
	return predictor.NewPipeline(arts, logger.Nop())
}

func fixtureForm(overrides map[string]string) func(string) string {
	base := map[string]string{
		"Building_Type":          "Residential",
		"Climate_Zone":           "Composite",
		"Energy_Efficiency":      "50",
		"Water_Conservation":     "50",
		"Waste_Management":       "1",
		"Renewable_Energy_Usage": "30",
		"Indoor_Air_Quality":     "50",
		"Social_Benefits":        "1",
		"Air_Pollution_Control":  "1",
	}
	for k, v := range overrides {
		base[k] = v
	}
	return func(name string) string { return base[name] }
}

func TestPipeline_Predict_LowEfficiencyIsOneStar(t *testing.T) {
	p := loadFixturePipeline(t)
	rec := predictor.Normalize(fixtureForm(map[string]string{"Energy_Efficiency": "10"}), p.Schema())

	pred, err := p.Predict(rec)
	require.NoError(t, err)

	assert.Equal(t, 1, pred.Rating)
	assert.Greater(t, pred.Confidence, 0.0)
	assert.LessOrEqual(t, pred.Confidence, 1.0)
}

func TestPipeline_Predict_HighEfficiencyIsFiveStars(t *testing.T) {
	p := loadFixturePipeline(t)
	rec := predictor.Normalize(fixtureForm(map[string]string{"Energy_Efficiency": "90"}), p.Schema())

	pred, err := p.Predict(rec)
	require.NoError(t, err)
	assert.Equal(t, 5, pred.Rating)
}

func TestPipeline_Predict_ProbabilitiesWellFormed(t *testing.T) {
	p := loadFixturePipeline(t)
	rec := predictor.Normalize(fixtureForm(nil), p.Schema())

	pred, err := p.Predict(rec)
	require.NoError(t, err)

	require.Len(t, pred.Probabilities, 5)
	var sum float64
	for i, entry := range pred.Probabilities {
		assert.Equal(t, i+1, entry.Label)
		assert.GreaterOrEqual(t, entry.Probability, 0.0)
		sum += entry.Probability
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	assert.Contains(t, []int{1, 2, 3, 4, 5}, pred.Rating)

	// Confidence must be the probability mass of the predicted rating.
	for _, entry := range pred.Probabilities {
		if entry.Label == pred.Rating {
			assert.InDelta(t, pred.Confidence, entry.Probability, 1e-12)
		}
	}
}

func TestPipeline_Predict_Deterministic(t *testing.T) {
	p := loadFixturePipeline(t)
	rec := predictor.Normalize(fixtureForm(nil), p.Schema())

	first, err := p.Predict(rec)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := p.Predict(rec)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPipeline_Predict_UnseenCategoryDoesNotFail(t *testing.T) {
	p := loadFixturePipeline(t)
	rec := predictor.Normalize(fixtureForm(map[string]string{
		"Building_Type": "Houseboat",
		"Climate_Zone":  "Lunar",
	}), p.Schema())

	pred, err := p.Predict(rec)
	require.NoError(t, err)
	assert.Contains(t, []int{1, 2, 3, 4, 5}, pred.Rating)

	// Fallback code 0 means the prediction equals the first-class encoding.
	baseline := predictor.Normalize(fixtureForm(map[string]string{
		"Building_Type": "Commercial",
		"Climate_Zone":  "Cold",
	}), p.Schema())
	basePred, err := p.Predict(baseline)
	require.NoError(t, err)
	assert.Equal(t, basePred, pred)
}
